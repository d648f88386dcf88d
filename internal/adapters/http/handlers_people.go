package web

import (
	"net/http"
	"strconv"

	"celltrack/internal/application/orchestrators"
	"celltrack/internal/domain/person"
)

// personSummaryDTO is the wire shape of a search result row.
type personSummaryDTO struct {
	ID        string `json:"id"`
	FullName  string `json:"fullName"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Leader12  string `json:"leader12,omitempty"`
	Leader144 string `json:"leader144,omitempty"`
}

func toSummaryDTO(s person.Summary) personSummaryDTO {
	return personSummaryDTO{
		ID:        s.ID,
		FullName:  s.FullName,
		Email:     s.Email,
		Phone:     s.Phone,
		Leader12:  s.Leader12,
		Leader144: s.Leader144,
	}
}

// handleSearchPeople handles GET /api/people/search?q=<name>&limit=<n>.
// The inviter typeahead; an empty or failing search returns an empty list.
func handleSearchPeople(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := orchestrators.ExecuteSearchPeople(r.Context(), orchestrators.SearchPeopleInput{
		Query: r.URL.Query().Get("q"),
		Limit: limit,
	}, orchestrators.SearchPeopleDeps{
		Primary: stores.PersonStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	people := make([]personSummaryDTO, len(result.People))
	for i, p := range result.People {
		people[i] = toSummaryDTO(p)
	}
	writeJSON(w, http.StatusOK, map[string]any{"people": people})
}

// invitePersonRequest is the wire shape of a new-person registration.
type invitePersonRequest struct {
	InviterID string `json:"invitedBy" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Surname   string `json:"surname"`
	Gender    string `json:"gender"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	DOB       string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Address   string `json:"address"`
	Stage     string `json:"stage"`
	EventID   string `json:"eventId"`
}

// handleInvitePerson handles POST /api/people.
func handleInvitePerson(w http.ResponseWriter, r *http.Request) {
	var req invitePersonRequest
	if err := strictDecode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := orchestrators.ExecuteInvitePerson(r.Context(), orchestrators.InvitePersonInput{
		InviterID: req.InviterID,
		Name:      req.Name,
		Surname:   req.Surname,
		Gender:    req.Gender,
		Email:     req.Email,
		Phone:     req.Phone,
		DOB:       req.DOB,
		Address:   req.Address,
		Stage:     req.Stage,
		EventID:   req.EventID,
	}, orchestrators.InvitePersonDeps{
		PersonStore: stores.PersonStore,
		RosterStore: stores.RosterStore,
		GenerateID:  generateID,
		Now:         timeNow,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if req.EventID != "" {
		rosterCache.Invalidate(req.EventID)
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"person": map[string]any{
			"id":       result.Person.ID,
			"fullName": result.Person.FullName,
			"level":    result.Person.Level,
		},
	})
}
