package projections

import (
	"context"
	"errors"
	"testing"
	"time"

	"celltrack/internal/domain/event"
	"celltrack/internal/domain/person"
	"celltrack/internal/domain/ticket"
	"celltrack/internal/domain/week"
)

var fixedTime = time.Date(2025, 3, 5, 19, 30, 0, 0, time.UTC) // 2025-W10

func fixedNow() time.Time { return fixedTime }

type mockEventStore struct {
	events map[string]event.Event
}

func (m *mockEventStore) GetByID(_ context.Context, id string) (event.Event, error) {
	ev, ok := m.events[id]
	if !ok {
		return event.Event{}, errors.New("not found")
	}
	return ev, nil
}

type mockRosterStore struct {
	rosters map[string][]person.Summary
}

func (m *mockRosterStore) List(_ context.Context, eventID string) ([]person.Summary, error) {
	return m.rosters[eventID], nil
}

type mockWeekStore struct {
	records map[string][]week.Record
}

func (m *mockWeekStore) ListByEvent(_ context.Context, eventID string) ([]week.Record, error) {
	return m.records[eventID], nil
}

func captureDeps(events *mockEventStore, rosters *mockRosterStore, weeks *mockWeekStore) GetCaptureRosterDeps {
	return GetCaptureRosterDeps{
		EventStore:  events,
		RosterStore: rosters,
		WeekStore:   weeks,
		Now:         fixedNow,
	}
}

func TestQueryGetCaptureRoster(t *testing.T) {
	events := &mockEventStore{events: map[string]event.Event{
		"cell-1": {ID: "cell-1", Name: "Friday Night Cell"},
	}}
	rosters := &mockRosterStore{rosters: map[string][]person.Summary{
		"cell-1": {
			{ID: "p1", FullName: "Thabo Nkosi", Leader12: "Jane Doe"},
			{ID: "p2", FullName: "Carla Mokoena"},
		},
	}}
	weeks := &mockWeekStore{records: map[string][]week.Record{
		"cell-1": {
			{
				EventID: "cell-1", WeekID: "2025-W08", Status: week.StatusComplete,
				Attendees: []week.AttendanceEntry{
					{PersonID: "p1", CheckedIn: true, Decision: "first-time"},
				},
			},
			{
				EventID: "cell-1", WeekID: "2025-W09", Status: week.StatusComplete,
				TotalHeadcount: 7,
				Attendees: []week.AttendanceEntry{
					{PersonID: "p1", CheckedIn: true, Email: "thabo@example.org"},
					{PersonID: "p3", FullName: "Sipho Dlamini", CheckedIn: true, Decision: "Re-Commitment",
						Ticket: ticket.Assignment{TierName: "Adult", Price: 150, PaidAmount: 100}},
				},
			},
		},
	}}

	result, err := QueryGetCaptureRoster(context.Background(), GetCaptureRosterQuery{EventID: "cell-1"},
		captureDeps(events, rosters, weeks))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.WeekID != "2025-W10" {
		t.Errorf("WeekID = %q, want 2025-W10", result.WeekID)
	}

	// Persistent first, then week-only, with the latest completed week
	// (W09, not W08) overlaid.
	wantOrder := []string{"p1", "p2", "p3"}
	if len(result.Roster) != len(wantOrder) {
		t.Fatalf("roster size = %d, want %d", len(result.Roster), len(wantOrder))
	}
	for i, id := range wantOrder {
		if result.Roster[i].PersonID != id {
			t.Errorf("roster[%d] = %q, want %q", i, result.Roster[i].PersonID, id)
		}
	}

	p1 := result.Roster[0]
	if p1.Email != "thabo@example.org" {
		t.Errorf("p1.Email = %q, saved week value must win", p1.Email)
	}
	if p1.FullName != "Thabo Nkosi" {
		t.Errorf("p1.FullName = %q, empty saved value must not clobber", p1.FullName)
	}
	if !p1.IsPersistent || !p1.CheckedIn {
		t.Errorf("p1 flags = %+v", p1)
	}
	if result.Roster[2].IsPersistent {
		t.Error("p3 is week-only and must not be persistent")
	}

	if result.Summary.WeekID != "2025-W09" {
		t.Errorf("Summary.WeekID = %q, want 2025-W09", result.Summary.WeekID)
	}
	if result.Summary.RecommitmentCount != 1 || result.Summary.LastAttendanceCount != 2 || result.Summary.LastHeadcount != 7 {
		t.Errorf("unexpected summary: %+v", result.Summary)
	}

	if result.TotalPaid != 100 || result.TotalOwing != 50 {
		t.Errorf("totals = (%v, %v), want (100, 50)", result.TotalPaid, result.TotalOwing)
	}
}

func TestQueryGetCaptureRoster_NoHistory(t *testing.T) {
	events := &mockEventStore{events: map[string]event.Event{
		"cell-1": {ID: "cell-1", Name: "Friday Night Cell"},
	}}
	rosters := &mockRosterStore{rosters: map[string][]person.Summary{
		"cell-1": {{ID: "p1", FullName: "Thabo Nkosi"}},
	}}
	weeks := &mockWeekStore{records: map[string][]week.Record{}}

	result, err := QueryGetCaptureRoster(context.Background(), GetCaptureRosterQuery{EventID: "cell-1"},
		captureDeps(events, rosters, weeks))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Roster) != 1 {
		t.Fatalf("roster size = %d, want 1", len(result.Roster))
	}
	if result.Roster[0].CheckedIn {
		t.Error("persistent-only entries start unchecked")
	}
	if result.Summary != (week.Summary{}) {
		t.Errorf("expected zero summary, got %+v", result.Summary)
	}
}

func TestQueryGetWeekSummary(t *testing.T) {
	weeks := &mockWeekStore{records: map[string][]week.Record{
		"cell-1": {
			{EventID: "cell-1", WeekID: "2025-W09", Status: week.StatusIncomplete},
			{EventID: "cell-1", WeekID: "2025-W08", Status: week.StatusComplete, TotalHeadcount: 12},
		},
	}}

	summary, err := QueryGetWeekSummary(context.Background(), GetWeekSummaryQuery{EventID: "cell-1"},
		GetWeekSummaryDeps{WeekStore: weeks})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.WeekID != "2025-W08" || summary.LastHeadcount != 12 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}

func TestSummarizeDocument(t *testing.T) {
	doc := []byte(`{"2025-W10": {"status": "complete", "attendees": [{"decision": "first-time commitment"}, {"decision": "Re-Commitment"}]}}`)

	summary, err := SummarizeDocument(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.FirstTimeCount != 1 || summary.RecommitmentCount != 1 || summary.LastAttendanceCount != 2 {
		t.Errorf("unexpected summary: %+v", summary)
	}
}

func TestSummarizeDocument_NothingComplete(t *testing.T) {
	summary, err := SummarizeDocument([]byte(`{"2025-W10": {"status": "incomplete"}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != (week.Summary{}) {
		t.Errorf("expected zero summary, got %+v", summary)
	}
}
