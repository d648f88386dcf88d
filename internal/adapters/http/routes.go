package web

import "net/http"

// registerRoutes wires the JSON API.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/people/search", handleSearchPeople)
	mux.HandleFunc("POST /api/people", handleInvitePerson)

	mux.HandleFunc("GET /api/events", handleListEvents)
	mux.HandleFunc("POST /api/events", handleCreateEvent)

	mux.HandleFunc("PUT /api/events/{eventId}/persistent-attendees", handleReplaceRoster)
	mux.HandleFunc("DELETE /api/events/{eventId}/persistent-attendees/{personId}", handleRemoveRosterMember)

	mux.HandleFunc("GET /api/events/{eventId}/capture", handleGetCapture)
	mux.HandleFunc("PUT /api/submit-attendance/{eventId}", handleSubmitAttendance)
	mux.HandleFunc("GET /api/events/{eventId}/summary", handleGetWeekSummary)
	mux.HandleFunc("GET /api/events/{eventId}/export", handleExportWeek)
}
