package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"celltrack/internal/domain/person"
)

// InvitePersonStore defines the person store interface needed for invites.
type InvitePersonStore interface {
	GetByID(ctx context.Context, id string) (person.Person, error)
	Save(ctx context.Context, p person.Person) error
}

// InviteRosterStore defines the roster store interface needed for invites.
type InviteRosterStore interface {
	Add(ctx context.Context, eventID string, member person.Summary) error
}

// InvitePersonInput carries input for the invite orchestrator. InviterID is
// obtained by the caller after the leader selects from the search shortlist.
type InvitePersonInput struct {
	InviterID string
	Name      string
	Surname   string
	Gender    string
	Email     string
	Phone     string
	DOB       string
	Address   string
	Stage     string
	EventID   string // optional: also add the new person to this event's roster
}

// InvitePersonDeps holds dependencies for InvitePerson.
type InvitePersonDeps struct {
	PersonStore InvitePersonStore
	RosterStore InviteRosterStore // optional: nil skips the roster add
	GenerateID  func() string
	Now         func() time.Time
}

// InvitePersonResult carries the created person.
type InvitePersonResult struct {
	Person person.Person
}

// ExecuteInvitePerson creates a newly invited person, assigning their leader
// chain from the inviter's inferred hierarchy level, and optionally adds
// them to an event's persistent roster.
// PRE: InviterID refers to an existing person
// POST: Person persisted with chain and level set once; inviter unchanged
// INVARIANT: validation failures surface before any store write
func ExecuteInvitePerson(ctx context.Context, input InvitePersonInput, deps InvitePersonDeps) (InvitePersonResult, error) {
	fullName := strings.TrimSpace(strings.TrimSpace(input.Name) + " " + strings.TrimSpace(input.Surname))
	if fullName == "" {
		return InvitePersonResult{}, &ValidationError{Field: "name", Reason: "name is required"}
	}
	if input.InviterID == "" {
		return InvitePersonResult{}, &ValidationError{Field: "invitedBy", Reason: "inviter must be selected from the search results"}
	}
	if input.Email != "" && !strings.Contains(input.Email, "@") {
		return InvitePersonResult{}, &ValidationError{Field: "email", Reason: "malformed email address"}
	}

	inviter, err := deps.PersonStore.GetByID(ctx, input.InviterID)
	if err != nil {
		return InvitePersonResult{}, &ValidationError{Field: "invitedBy", Reason: "inviter not found"}
	}

	chain := person.ChainForInvitee(inviter)
	p := person.Person{
		ID:        deps.GenerateID(),
		FullName:  fullName,
		Email:     strings.TrimSpace(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		Gender:    input.Gender,
		DOB:       input.DOB,
		Address:   input.Address,
		Stage:     input.Stage,
		Chain:     chain,
		Level:     person.Classify(fullName, chain),
		InvitedBy: inviter.FullName,
		CreatedAt: deps.Now(),
	}
	if err := p.Validate(); err != nil {
		return InvitePersonResult{}, &ValidationError{Reason: err.Error()}
	}

	if err := deps.PersonStore.Save(ctx, p); err != nil {
		return InvitePersonResult{}, &PersistenceError{Op: "create person", Err: err}
	}

	if input.EventID != "" && deps.RosterStore != nil {
		if err := deps.RosterStore.Add(ctx, input.EventID, p.Summarize()); err != nil {
			return InvitePersonResult{Person: p}, &PartialSaveError{
				Completed: "create person",
				Failed:    "add to roster",
				Err:       err,
			}
		}
	}

	slog.Info("invite_event", "event", "person_invited", "person_id", p.ID, "name", p.FullName,
		"invited_by", inviter.FullName, "level", p.Level, "cell_id", input.EventID)
	return InvitePersonResult{Person: p}, nil
}
