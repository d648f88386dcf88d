package week

import (
	"testing"
	"time"
)

// TestID verifies ISO-8601 week identifiers, including year-boundary weeks
// that trip up locale-dependent week numbering.
func TestID(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2025-01-01", "2025-W01"}, // Wednesday of the week containing the first Thursday
		{"2024-12-30", "2025-W01"}, // Monday belonging to the next ISO year
		{"2021-01-01", "2020-W53"}, // Friday still in the previous ISO year
		{"2023-01-01", "2022-W52"}, // Sunday closes out the previous ISO year
		{"2025-02-03", "2025-W06"}, // single-digit weeks are zero-padded
		{"2025-06-18", "2025-W25"},
	}

	for _, tt := range tests {
		day, err := time.Parse("2006-01-02", tt.date)
		if err != nil {
			t.Fatalf("bad test date %q: %v", tt.date, err)
		}
		if got := ID(day); got != tt.want {
			t.Errorf("ID(%s) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestParseID(t *testing.T) {
	year, wk, ok := ParseID("2025-W06")
	if !ok || year != 2025 || wk != 6 {
		t.Errorf("ParseID(2025-W06) = (%d, %d, %v)", year, wk, ok)
	}

	// Unpadded historical ids parse too.
	year, wk, ok = ParseID("2025-W9")
	if !ok || year != 2025 || wk != 9 {
		t.Errorf("ParseID(2025-W9) = (%d, %d, %v)", year, wk, ok)
	}

	if _, _, ok := ParseID("last tuesday"); ok {
		t.Error("expected ParseID to reject a non-week string")
	}
	if _, _, ok := ParseID("2025-W54"); ok {
		t.Error("expected ParseID to reject week 54")
	}
}

func TestResolveStatus(t *testing.T) {
	tests := []struct {
		name       string
		attendees  int
		headcount  int
		didNotMeet bool
		want       string
	}{
		{"explicit did-not-meet with nothing captured", 0, 0, true, StatusDidNotMeet},
		{"attendees override the did-not-meet flag", 1, 0, true, StatusComplete},
		{"headcount overrides the did-not-meet flag", 0, 5, true, StatusComplete},
		{"attendees alone complete the week", 3, 0, false, StatusComplete},
		{"headcount alone completes the week", 0, 12, false, StatusComplete},
		{"nothing captured stays incomplete", 0, 0, false, StatusIncomplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveStatus(tt.attendees, tt.headcount, tt.didNotMeet)
			if got != tt.want {
				t.Errorf("ResolveStatus(%d, %d, %v) = %q, want %q",
					tt.attendees, tt.headcount, tt.didNotMeet, got, tt.want)
			}
		})
	}
}

func TestDecisionMatching(t *testing.T) {
	if !IsFirstTime("first-time commitment") {
		t.Error("expected first-time match")
	}
	if !IsFirstTime("First Time") {
		t.Error("expected case-insensitive first-time match")
	}
	if IsFirstTime("re-commitment") {
		t.Error("re-commitment must not count as first-time")
	}
	if !IsRecommitment("Re-Commitment") {
		t.Error("expected re-commitment match")
	}
	if !IsRecommitment("recommitment") {
		t.Error("expected unhyphenated re-commitment match")
	}
	if IsRecommitment("first-time commitment") {
		t.Error("first-time must not count as re-commitment")
	}
}

func TestSummarize(t *testing.T) {
	rec := &Record{
		EventID: "event-1",
		WeekID:  "2025-W10",
		Status:  StatusComplete,
		Attendees: []AttendanceEntry{
			{PersonID: "p1", Decision: "first-time commitment"},
			{PersonID: "p2", Decision: "Re-Commitment"},
			{PersonID: "p3", Decision: DecisionNone},
		},
		TotalHeadcount: 15,
	}

	s := Summarize(rec)
	if s.FirstTimeCount != 1 {
		t.Errorf("FirstTimeCount = %d, want 1", s.FirstTimeCount)
	}
	if s.RecommitmentCount != 1 {
		t.Errorf("RecommitmentCount = %d, want 1", s.RecommitmentCount)
	}
	if s.LastAttendanceCount != 3 {
		t.Errorf("LastAttendanceCount = %d, want 3", s.LastAttendanceCount)
	}
	if s.LastHeadcount != 15 {
		t.Errorf("LastHeadcount = %d, want 15", s.LastHeadcount)
	}
}

func TestSummarize_NilRecord(t *testing.T) {
	s := Summarize(nil)
	if s != (Summary{}) {
		t.Errorf("Summarize(nil) = %+v, want zero summary", s)
	}
}

func TestValidate(t *testing.T) {
	rec := Record{EventID: "event-1", WeekID: "2025-W10"}
	if err := rec.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	rec = Record{WeekID: "2025-W10"}
	if err := rec.Validate(); err != ErrEmptyEventID {
		t.Errorf("expected ErrEmptyEventID, got %v", err)
	}

	rec = Record{EventID: "event-1", WeekID: "2025-W10", Attendees: []AttendanceEntry{{}}}
	if err := rec.Validate(); err != ErrEmptyPersonID {
		t.Errorf("expected ErrEmptyPersonID, got %v", err)
	}
}
