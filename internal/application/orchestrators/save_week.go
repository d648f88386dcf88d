package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"celltrack/internal/domain/event"
	"celltrack/internal/domain/person"
	"celltrack/internal/domain/week"
)

// SaveWeekEventStore defines the event store interface needed for saves.
type SaveWeekEventStore interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
}

// SaveWeekRosterStore defines the roster store interface needed for saves.
// Replace is a full-replace upsert keyed by event id, so retries converge.
type SaveWeekRosterStore interface {
	Replace(ctx context.Context, eventID string, members []person.Summary) error
}

// SaveWeekStore defines the week store interface needed for saves.
// SaveRecord is a full-replace upsert keyed by (event id, week id).
type SaveWeekStore interface {
	SaveRecord(ctx context.Context, rec week.Record) error
}

// WeekNotifier sends the capturing leader a post-save summary.
type WeekNotifier interface {
	WeekSaved(ctx context.Context, ev event.Event, rec week.Record, summary week.Summary) error
}

// SaveWeekInput carries one capture session's save payload.
type SaveWeekInput struct {
	EventID     string
	WeekID      string // optional: defaults to the current ISO week
	Attendees   []week.AttendanceEntry
	Headcount   int
	DidNotMeet  bool
	Roster      []person.Summary // the persistent roster to persist alongside
	LeaderEmail string
	LeaderName  string
}

// SaveWeekDeps holds dependencies for SaveWeek.
type SaveWeekDeps struct {
	EventStore  SaveWeekEventStore
	RosterStore SaveWeekRosterStore
	WeekStore   SaveWeekStore
	Notifier    WeekNotifier // optional: nil skips the leader email
	Now         func() time.Time
}

// SaveWeekResult carries the stored record and its derived summary.
type SaveWeekResult struct {
	Record  week.Record
	Summary week.Summary
}

// ExecuteSaveWeek validates a capture session and applies the week state
// transition: did_not_meet only when explicitly flagged with nothing
// captured, complete when anyone attended or a headcount was taken,
// incomplete otherwise. The save fully replaces the week's attendee list;
// identical input always yields the same record.
//
// Persisting the roster and persisting the week record are two independent
// store calls. A failure of the second returns a PartialSaveError; both
// steps are idempotent so the caller retries the whole save.
//
// PRE: input passed validation produces no store writes on failure
// POST: roster replaced, week record upserted, leader notified best-effort
func ExecuteSaveWeek(ctx context.Context, input SaveWeekInput, deps SaveWeekDeps) (SaveWeekResult, error) {
	if input.EventID == "" {
		return SaveWeekResult{}, &ValidationError{Field: "eventId", Reason: "event id is required"}
	}
	if input.LeaderEmail != "" && !strings.Contains(input.LeaderEmail, "@") {
		return SaveWeekResult{}, &ValidationError{Field: "leaderEmail", Reason: "malformed email address"}
	}
	for _, entry := range input.Attendees {
		if entry.PersonID == "" {
			return SaveWeekResult{}, &ValidationError{Field: "attendees", Reason: "attendance entry is missing a person reference"}
		}
	}

	ev, err := deps.EventStore.GetByID(ctx, input.EventID)
	if err != nil {
		return SaveWeekResult{}, &ValidationError{Field: "eventId", Reason: "event not found"}
	}

	now := deps.Now()
	weekID := input.WeekID
	if weekID == "" {
		weekID = week.ID(now)
	}

	status := week.ResolveStatus(len(input.Attendees), input.Headcount, input.DidNotMeet)

	var entries []week.AttendanceEntry
	if status == week.StatusComplete {
		entries = make([]week.AttendanceEntry, len(input.Attendees))
		for i, entry := range input.Attendees {
			entry.CheckedIn = true
			if entry.Timestamp.IsZero() {
				entry.Timestamp = now
			}
			if ev.IsTicketed && entry.Ticket.Assigned() && entry.Ticket.Price == 0 {
				if tier, err := ev.TierByName(entry.Ticket.TierName); err == nil {
					entry.Ticket.Price = tier.Price
				}
			}
			entries[i] = entry
		}
	}

	rec := week.Record{
		EventID:        input.EventID,
		WeekID:         weekID,
		Status:         status,
		Attendees:      entries,
		TotalHeadcount: input.Headcount,
		SavedAt:        now,
	}
	if err := rec.Validate(); err != nil {
		return SaveWeekResult{}, &ValidationError{Reason: err.Error()}
	}

	if err := deps.RosterStore.Replace(ctx, input.EventID, input.Roster); err != nil {
		return SaveWeekResult{}, &PersistenceError{Op: "persist roster", Err: err}
	}

	if err := deps.WeekStore.SaveRecord(ctx, rec); err != nil {
		return SaveWeekResult{}, &PartialSaveError{
			Completed: "persist roster",
			Failed:    "persist week record",
			Err:       err,
		}
	}

	summary := week.Summarize(&rec)
	slog.Info("attendance_event", "event", "week_saved", "cell_id", input.EventID,
		"week", weekID, "status", status, "attendees", len(entries), "headcount", input.Headcount)

	// Best-effort leader notification after a successful save.
	if deps.Notifier != nil && input.LeaderEmail != "" {
		if err := deps.Notifier.WeekSaved(ctx, ev, rec, summary); err != nil {
			slog.Warn("week_saved_notify_failed", "error", err.Error(), "cell_id", input.EventID, "week", weekID)
		}
	}

	return SaveWeekResult{Record: rec, Summary: summary}, nil
}
