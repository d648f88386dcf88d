package web

import (
	"net/http"

	"celltrack/internal/application/orchestrators"
	"celltrack/internal/domain/event"
	"celltrack/internal/domain/person"
)

// priceTierDTO is the wire shape of one ticket price tier.
type priceTierDTO struct {
	Name          string  `json:"name" validate:"required"`
	Price         float64 `json:"price" validate:"gte=0"`
	AgeGroup      string  `json:"ageGroup"`
	MemberType    string  `json:"memberType"`
	PaymentMethod string  `json:"paymentMethod"`
}

// createEventRequest is the wire shape of a new event.
type createEventRequest struct {
	Name        string         `json:"name" validate:"required"`
	IsTicketed  bool           `json:"isTicketed"`
	PriceTiers  []priceTierDTO `json:"priceTiers" validate:"dive"`
	LeaderEmail string         `json:"leaderEmail" validate:"omitempty,email"`
	LeaderName  string         `json:"leaderName"`
}

// handleListEvents handles GET /api/events.
func handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := stores.EventStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]map[string]any, len(events))
	for i, ev := range events {
		out[i] = map[string]any{
			"id":         ev.ID,
			"name":       ev.Name,
			"isTicketed": ev.IsTicketed,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": out})
}

// handleCreateEvent handles POST /api/events.
func handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := strictDecode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ev := event.Event{
		ID:          generateID(),
		Name:        req.Name,
		IsTicketed:  req.IsTicketed,
		LeaderEmail: req.LeaderEmail,
		LeaderName:  req.LeaderName,
		CreatedAt:   timeNow(),
	}
	for _, tier := range req.PriceTiers {
		ev.PriceTiers = append(ev.PriceTiers, event.PriceTier{
			Name:          tier.Name,
			Price:         tier.Price,
			AgeGroup:      tier.AgeGroup,
			MemberType:    tier.MemberType,
			PaymentMethod: tier.PaymentMethod,
		})
	}
	if err := ev.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: err.Error()})
		return
	}

	if err := stores.EventStore.Save(r.Context(), ev); err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "id": ev.ID})
}

// rosterMemberDTO is the wire shape of one persistent roster member.
type rosterMemberDTO struct {
	PersonID  string `json:"personId" validate:"required"`
	FullName  string `json:"fullName" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	Leader12  string `json:"leader12"`
	Leader144 string `json:"leader144"`
}

func (d rosterMemberDTO) summary() person.Summary {
	return person.Summary{
		ID:        d.PersonID,
		FullName:  d.FullName,
		Email:     d.Email,
		Phone:     d.Phone,
		Leader12:  d.Leader12,
		Leader144: d.Leader144,
	}
}

// replaceRosterRequest is the wire shape of a roster replacement.
type replaceRosterRequest struct {
	Members []rosterMemberDTO `json:"members" validate:"dive"`
}

// handleReplaceRoster handles PUT /api/events/{eventId}/persistent-attendees.
// The stored roster becomes exactly the submitted list.
func handleReplaceRoster(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventId")

	var req replaceRosterRequest
	if err := strictDecode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	members := make([]person.Summary, len(req.Members))
	for i, m := range req.Members {
		members[i] = m.summary()
	}
	if err := stores.RosterStore.Replace(r.Context(), eventID, members); err != nil {
		internalError(w, err)
		return
	}

	rosterCache.Invalidate(eventID)
	writeJSON(w, http.StatusOK, apiResponse{Success: true})
}

// handleRemoveRosterMember handles
// DELETE /api/events/{eventId}/persistent-attendees/{personId}.
func handleRemoveRosterMember(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteRemoveRosterMember(r.Context(), orchestrators.RemoveRosterMemberInput{
		EventID:  r.PathValue("eventId"),
		PersonID: r.PathValue("personId"),
	}, orchestrators.RemoveRosterMemberDeps{
		RosterStore: stores.RosterStore,
		WeekStore:   stores.WeekStore,
		Now:         timeNow,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	rosterCache.Invalidate(r.PathValue("eventId"))
	writeJSON(w, http.StatusOK, apiResponse{Success: true})
}
