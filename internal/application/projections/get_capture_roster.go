package projections

import (
	"context"
	"time"

	"celltrack/internal/domain/event"
	"celltrack/internal/domain/person"
	"celltrack/internal/domain/roster"
	"celltrack/internal/domain/ticket"
	"celltrack/internal/domain/week"
)

// CaptureEventStore defines the event store interface for this projection.
type CaptureEventStore interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
}

// CaptureRosterStore defines the roster store interface for this projection.
type CaptureRosterStore interface {
	List(ctx context.Context, eventID string) ([]person.Summary, error)
}

// CaptureWeekStore defines the week store interface for this projection.
type CaptureWeekStore interface {
	ListByEvent(ctx context.Context, eventID string) ([]week.Record, error)
}

// GetCaptureRosterQuery carries query parameters.
type GetCaptureRosterQuery struct {
	EventID string
}

// GetCaptureRosterDeps holds dependencies for GetCaptureRoster.
type GetCaptureRosterDeps struct {
	EventStore  CaptureEventStore
	RosterStore CaptureRosterStore
	WeekStore   CaptureWeekStore
	Now         func() time.Time
}

// GetCaptureRosterResult is everything a capture session opens with: the
// merged working list, the current week id, and last week's numbers.
type GetCaptureRosterResult struct {
	Event      event.Event
	WeekID     string
	Roster     []roster.Entry
	Summary    week.Summary
	TotalPaid  float64
	TotalOwing float64
}

// QueryGetCaptureRoster builds the canonical attendee list for a capture
// session by merging the event's persistent roster with the most recently
// completed week's saved attendees.
// PRE: EventID refers to an existing event
// POST: Roster has no duplicate ids; persistent entries come first
func QueryGetCaptureRoster(ctx context.Context, query GetCaptureRosterQuery, deps GetCaptureRosterDeps) (GetCaptureRosterResult, error) {
	ev, err := deps.EventStore.GetByID(ctx, query.EventID)
	if err != nil {
		return GetCaptureRosterResult{}, err
	}

	members, err := deps.RosterStore.List(ctx, query.EventID)
	if err != nil {
		return GetCaptureRosterResult{}, err
	}
	persistent := make([]roster.Entry, 0, len(members))
	for _, m := range members {
		persistent = append(persistent, roster.Entry{
			PersonID:     m.ID,
			FullName:     m.FullName,
			Email:        m.Email,
			Phone:        m.Phone,
			Leader12:     m.Leader12,
			Leader144:    m.Leader144,
			IsPersistent: true,
		})
	}

	records, err := deps.WeekStore.ListByEvent(ctx, query.EventID)
	if err != nil {
		return GetCaptureRosterResult{}, err
	}
	latest := latestComplete(records)

	var saved []week.SnapshotAttendee
	if latest != nil {
		saved = make([]week.SnapshotAttendee, 0, len(latest.Attendees))
		for _, entry := range latest.Attendees {
			saved = append(saved, entry.Snapshot())
		}
	}

	merged := roster.Merge(persistent, saved)

	lines := make([]ticket.Line, len(merged))
	for i, e := range merged {
		lines[i] = e.Line()
	}
	paid, owing := ticket.Totals(lines)

	return GetCaptureRosterResult{
		Event:      ev,
		WeekID:     week.ID(deps.Now()),
		Roster:     merged,
		Summary:    week.Summarize(latest),
		TotalPaid:  paid,
		TotalOwing: owing,
	}, nil
}

// latestComplete picks the completed record with the highest week id.
// Store iteration order never decides the result.
func latestComplete(records []week.Record) *week.Record {
	var best *week.Record
	for i := range records {
		if records[i].Status != week.StatusComplete {
			continue
		}
		if best == nil || week.IDLess(best.WeekID, records[i].WeekID) {
			best = &records[i]
		}
	}
	return best
}
