package week

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"celltrack/internal/domain/ticket"
)

// Status constants for a week record. None of the three is terminal; a
// later save for the same week id may re-enter any of them.
const (
	StatusIncomplete = "incomplete"
	StatusComplete   = "complete"
	StatusDidNotMeet = "did_not_meet"
)

// Decision constants for the commitment captured at check-in.
const (
	DecisionNone         = "none"
	DecisionFirstTime    = "first-time"
	DecisionRecommitment = "re-commitment"
)

// Domain errors
var (
	ErrEmptyEventID  = errors.New("week record must belong to an event")
	ErrEmptyWeekID   = errors.New("week id cannot be empty")
	ErrEmptyPersonID = errors.New("attendance entry must reference a person")
)

// AttendanceEntry is one person's captured state for a single week.
type AttendanceEntry struct {
	PersonID  string
	FullName  string
	Email     string
	Phone     string
	Leader12  string
	Leader144 string
	CheckedIn bool
	Decision  string
	Ticket    ticket.Assignment
	Timestamp time.Time
}

// Record is the per-calendar-week attendance snapshot for one event.
type Record struct {
	EventID        string
	WeekID         string
	Status         string
	Attendees      []AttendanceEntry
	TotalHeadcount int
	SavedAt        time.Time
}

// Validate checks if the Record has valid data.
// PRE: Record struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (r *Record) Validate() error {
	if r.EventID == "" {
		return ErrEmptyEventID
	}
	if r.WeekID == "" {
		return ErrEmptyWeekID
	}
	for _, entry := range r.Attendees {
		if entry.PersonID == "" {
			return ErrEmptyPersonID
		}
	}
	return nil
}

// ID computes the canonical week identifier for a point in time.
// Week numbering follows ISO-8601 (weeks start Monday; week 1 contains the
// year's first Thursday), independent of locale settings.
// PRE: t is any time
// POST: Returns "{ISOYear}-W{ISOWeek}" with the week zero-padded to 2 digits
func ID(t time.Time) string {
	year, wk := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, wk)
}

// ParseID splits a week identifier into ISO year and week number.
// Historical data carries week ids in loose formats ("2025-W9", "2025-W09"),
// so parsing is lenient about zero padding.
// POST: Returns (year, week, true) on success, zeros and false otherwise
func ParseID(id string) (year, wk int, ok bool) {
	if _, err := fmt.Sscanf(id, "%d-W%d", &year, &wk); err != nil {
		return 0, 0, false
	}
	if year <= 0 || wk < 1 || wk > 53 {
		return 0, 0, false
	}
	return year, wk, true
}

// ResolveStatus applies the save-time state machine.
// PRE: attendeeCount and headcount are the save payload's values
// POST: did_not_meet only when explicitly flagged with an empty list and
// zero headcount; complete when anyone attended or a headcount was taken;
// incomplete otherwise
func ResolveStatus(attendeeCount, headcount int, didNotMeet bool) string {
	switch {
	case didNotMeet && attendeeCount == 0 && headcount == 0:
		return StatusDidNotMeet
	case attendeeCount > 0 || headcount > 0:
		return StatusComplete
	default:
		return StatusIncomplete
	}
}

// IsFirstTime reports whether a decision string records a first-time
// commitment. Historical data is free-text, so matching is by substring.
func IsFirstTime(decision string) bool {
	return strings.Contains(strings.ToLower(decision), "first")
}

// IsRecommitment reports whether a decision string records a re-commitment.
func IsRecommitment(decision string) bool {
	lower := strings.ToLower(decision)
	return strings.Contains(lower, "re-commitment") || strings.Contains(lower, "recommitment")
}

// Summary holds the derived numbers shown when an event is next opened.
type Summary struct {
	WeekID              string
	FirstTimeCount      int
	RecommitmentCount   int
	LastAttendanceCount int
	LastHeadcount       int
}

// Summarize derives the decision breakdown and counts from a record.
// PRE: r may be nil (no completed history)
// POST: Returns all-zero summary for nil input
func Summarize(r *Record) Summary {
	if r == nil {
		return Summary{}
	}
	s := Summary{
		WeekID:              r.WeekID,
		LastAttendanceCount: len(r.Attendees),
		LastHeadcount:       r.TotalHeadcount,
	}
	for _, entry := range r.Attendees {
		if IsFirstTime(entry.Decision) {
			s.FirstTimeCount++
		}
		if IsRecommitment(entry.Decision) {
			s.RecommitmentCount++
		}
	}
	return s
}
