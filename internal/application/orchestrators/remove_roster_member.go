package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"celltrack/internal/domain/week"
)

// RemoveRosterStore defines the roster store interface needed for removal.
type RemoveRosterStore interface {
	Remove(ctx context.Context, eventID, personID string) error
}

// RemoveWeekStore defines the week store interface needed for removal.
type RemoveWeekStore interface {
	GetRecord(ctx context.Context, eventID, weekID string) (week.Record, error)
	SaveRecord(ctx context.Context, rec week.Record) error
}

// RemoveRosterMemberInput carries input for the removal orchestrator.
type RemoveRosterMemberInput struct {
	EventID  string
	PersonID string
}

// RemoveRosterMemberDeps holds dependencies for RemoveRosterMember.
type RemoveRosterMemberDeps struct {
	RosterStore RemoveRosterStore
	WeekStore   RemoveWeekStore
	Now         func() time.Time
}

// ExecuteRemoveRosterMember removes a person from an event's persistent
// roster. This is the only operation that shrinks the roster, and the only
// one that clears a stored ticket assignment: the person's entry is also
// dropped from the still-open current week, if one has been saved.
// PRE: EventID and PersonID are non-empty
// POST: person absent from the roster and from the current week's entries
func ExecuteRemoveRosterMember(ctx context.Context, input RemoveRosterMemberInput, deps RemoveRosterMemberDeps) error {
	if input.EventID == "" {
		return &ValidationError{Field: "eventId", Reason: "event id is required"}
	}
	if input.PersonID == "" {
		return &ValidationError{Field: "personId", Reason: "person id is required"}
	}

	if err := deps.RosterStore.Remove(ctx, input.EventID, input.PersonID); err != nil {
		return &PersistenceError{Op: "remove from roster", Err: err}
	}

	// Drop the entry from the current week if it has already been saved.
	weekID := week.ID(deps.Now())
	rec, err := deps.WeekStore.GetRecord(ctx, input.EventID, weekID)
	if err != nil {
		slog.Debug("roster_remove_no_open_week", "cell_id", input.EventID, "week", weekID)
		return nil
	}

	kept := rec.Attendees[:0]
	removed := false
	for _, entry := range rec.Attendees {
		if entry.PersonID == input.PersonID {
			removed = true
			continue
		}
		kept = append(kept, entry)
	}
	if !removed {
		return nil
	}
	rec.Attendees = kept
	rec.Status = week.ResolveStatus(len(rec.Attendees), rec.TotalHeadcount, rec.Status == week.StatusDidNotMeet)

	if err := deps.WeekStore.SaveRecord(ctx, rec); err != nil {
		return &PartialSaveError{
			Completed: "remove from roster",
			Failed:    "update week record",
			Err:       err,
		}
	}

	slog.Info("roster_event", "event", "member_removed", "cell_id", input.EventID, "person_id", input.PersonID, "week", weekID)
	return nil
}
