package web

import (
	"fmt"
	"net/http"
	"time"

	"celltrack/internal/application/orchestrators"
	"celltrack/internal/application/projections"
	"celltrack/internal/domain/export"
	"celltrack/internal/domain/roster"
	"celltrack/internal/domain/ticket"
	"celltrack/internal/domain/week"
)

// ticketDTO is the wire shape of a ticket assignment.
type ticketDTO struct {
	TierName      string  `json:"tierName"`
	Price         float64 `json:"price"`
	PaymentMethod string  `json:"paymentMethod"`
	PaidAmount    float64 `json:"paidAmount"`
	Owing         float64 `json:"owing"`
}

// rosterEntryDTO is the wire shape of one capture roster row.
type rosterEntryDTO struct {
	PersonID     string    `json:"personId"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Leader12     string    `json:"leader12,omitempty"`
	Leader144    string    `json:"leader144,omitempty"`
	Decision     string    `json:"decision,omitempty"`
	CheckedIn    bool      `json:"checkedIn"`
	IsPersistent bool      `json:"isPersistent"`
	Ticket       ticketDTO `json:"ticket"`
}

func toRosterDTO(entries []roster.Entry) []rosterEntryDTO {
	out := make([]rosterEntryDTO, len(entries))
	for i, e := range entries {
		out[i] = rosterEntryDTO{
			PersonID:     e.PersonID,
			FullName:     e.FullName,
			Email:        e.Email,
			Phone:        e.Phone,
			Leader12:     e.Leader12,
			Leader144:    e.Leader144,
			Decision:     e.Decision,
			CheckedIn:    e.CheckedIn,
			IsPersistent: e.IsPersistent,
			Ticket: ticketDTO{
				TierName:      e.Ticket.TierName,
				Price:         e.Ticket.Price,
				PaymentMethod: e.Ticket.PaymentMethod,
				PaidAmount:    e.Ticket.Paid(),
				Owing:         e.Ticket.Owing(),
			},
		}
	}
	return out
}

// summaryDTO is the wire shape of the previous week's numbers.
type summaryDTO struct {
	WeekID              string `json:"weekId,omitempty"`
	LastAttendanceCount int    `json:"lastAttendanceCount"`
	LastHeadcount       int    `json:"lastHeadcount"`
	FirstTimeCount      int    `json:"firstTimeCount"`
	RecommitmentCount   int    `json:"recommitmentCount"`
}

func toSummaryResponse(s week.Summary) summaryDTO {
	return summaryDTO{
		WeekID:              s.WeekID,
		LastAttendanceCount: s.LastAttendanceCount,
		LastHeadcount:       s.LastHeadcount,
		FirstTimeCount:      s.FirstTimeCount,
		RecommitmentCount:   s.RecommitmentCount,
	}
}

// handleGetCapture handles GET /api/events/{eventId}/capture.
// Serves the merged working roster a capture session opens with. The merged
// list is cached briefly; any write to the event invalidates it.
func handleGetCapture(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID := r.PathValue("eventId")

	if cached, ok := rosterCache.Get(eventID); ok {
		ev, err := stores.EventStore.GetByID(ctx, eventID)
		if err != nil {
			internalError(w, err)
			return
		}
		summary, err := projections.QueryGetWeekSummary(ctx, projections.GetWeekSummaryQuery{EventID: eventID},
			projections.GetWeekSummaryDeps{WeekStore: stores.WeekStore})
		if err != nil {
			internalError(w, err)
			return
		}
		totals := projections.QueryTicketTotals(cached)
		writeCaptureResponse(w, ev.Name, week.ID(timeNow()), cached, summary, totals.TotalPaid, totals.TotalOwing)
		return
	}

	result, err := projections.QueryGetCaptureRoster(ctx, projections.GetCaptureRosterQuery{EventID: eventID},
		projections.GetCaptureRosterDeps{
			EventStore:  stores.EventStore,
			RosterStore: stores.RosterStore,
			WeekStore:   stores.WeekStore,
			Now:         timeNow,
		})
	if err != nil {
		internalError(w, err)
		return
	}

	rosterCache.Put(eventID, result.Roster)
	writeCaptureResponse(w, result.Event.Name, result.WeekID, result.Roster, result.Summary, result.TotalPaid, result.TotalOwing)
}

func writeCaptureResponse(w http.ResponseWriter, eventName, weekID string, entries []roster.Entry, summary week.Summary, paid, owing float64) {
	writeJSON(w, http.StatusOK, map[string]any{
		"eventName":  eventName,
		"weekId":     weekID,
		"roster":     toRosterDTO(entries),
		"summary":    toSummaryResponse(summary),
		"totalPaid":  paid,
		"totalOwing": owing,
	})
}

// attendeeDTO is the wire shape of one submitted attendance entry.
// checkedIn defaults to true when absent.
type attendeeDTO struct {
	PersonID   string    `json:"personId" validate:"required"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Leader12   string    `json:"leader12"`
	Leader144  string    `json:"leader144"`
	CheckedIn  *bool     `json:"checkedIn"`
	Decision   string    `json:"decision"`
	Ticket     ticketDTO `json:"ticket"`
	RecordedAt string    `json:"recordedAt" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

func (d attendeeDTO) entry() week.AttendanceEntry {
	entry := week.AttendanceEntry{
		PersonID:  d.PersonID,
		FullName:  d.FullName,
		Email:     d.Email,
		Phone:     d.Phone,
		Leader12:  d.Leader12,
		Leader144: d.Leader144,
		CheckedIn: d.CheckedIn == nil || *d.CheckedIn,
		Decision:  d.Decision,
		Ticket: ticket.Assignment{
			TierName:      d.Ticket.TierName,
			Price:         d.Ticket.Price,
			PaymentMethod: d.Ticket.PaymentMethod,
			PaidAmount:    d.Ticket.PaidAmount,
		},
	}
	if t, err := time.Parse(time.RFC3339, d.RecordedAt); err == nil {
		entry.Timestamp = t
	}
	return entry
}

// submitAttendanceRequest is the wire shape of one capture session's save.
type submitAttendanceRequest struct {
	WeekID         string            `json:"weekId"`
	Attendees      []attendeeDTO     `json:"attendees" validate:"dive"`
	TotalHeadcount int               `json:"totalHeadcounts" validate:"gte=0"`
	DidNotMeet     bool              `json:"didNotMeet"`
	Roster         []rosterMemberDTO `json:"roster" validate:"dive"`
	LeaderEmail    string            `json:"leaderEmail" validate:"omitempty,email"`
	LeaderName     string            `json:"leaderName"`
}

// handleSubmitAttendance handles PUT /api/submit-attendance/{eventId}.
// Only attendees the leader checked in belong in the saved week.
func handleSubmitAttendance(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventId")

	var req submitAttendanceRequest
	if err := strictDecode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	input := orchestrators.SaveWeekInput{
		EventID:     eventID,
		WeekID:      req.WeekID,
		Headcount:   req.TotalHeadcount,
		DidNotMeet:  req.DidNotMeet,
		LeaderEmail: req.LeaderEmail,
		LeaderName:  req.LeaderName,
	}
	for _, a := range req.Attendees {
		entry := a.entry()
		if !entry.CheckedIn {
			continue
		}
		input.Attendees = append(input.Attendees, entry)
	}
	for _, m := range req.Roster {
		input.Roster = append(input.Roster, m.summary())
	}

	result, err := orchestrators.ExecuteSaveWeek(r.Context(), input, orchestrators.SaveWeekDeps{
		EventStore:  stores.EventStore,
		RosterStore: stores.RosterStore,
		WeekStore:   stores.WeekStore,
		Notifier:    weekNotifier,
		Now:         timeNow,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	rosterCache.Invalidate(eventID)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"weekId":  result.Record.WeekID,
		"status":  result.Record.Status,
		"summary": toSummaryResponse(result.Summary),
	})
}

// handleGetWeekSummary handles GET /api/events/{eventId}/summary.
func handleGetWeekSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := projections.QueryGetWeekSummary(r.Context(),
		projections.GetWeekSummaryQuery{EventID: r.PathValue("eventId")},
		projections.GetWeekSummaryDeps{WeekStore: stores.WeekStore})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryResponse(summary))
}

// handleExportWeek handles GET /api/events/{eventId}/export.
// Streams the checked-in attendees of the current capture roster as CSV.
func handleExportWeek(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventId")

	result, err := projections.QueryGetCaptureRoster(r.Context(), projections.GetCaptureRosterQuery{EventID: eventID},
		projections.GetCaptureRosterDeps{
			EventStore:  stores.EventStore,
			RosterStore: stores.RosterStore,
			WeekStore:   stores.WeekStore,
			Now:         timeNow,
		})
	if err != nil {
		internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Event.Name+"-"+result.WeekID+".csv"))
	if err := export.WriteCheckedIn(w, result.Roster); err != nil {
		internalError(w, err)
	}
}
