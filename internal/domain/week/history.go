package week

import (
	"encoding/json"
	"time"

	"celltrack/internal/domain/ticket"
)

// Historical attendance documents appear in two shapes: a single flat record
// carrying "status" directly, or a map keyed by date-like strings where each
// value carries "status". History is the tagged form both normalize into;
// nothing downstream branches on document shape.

// SnapshotAttendee mirrors the loose attendee shape found in saved
// attendance documents. CheckedIn is a pointer because absence means
// checked in; only an explicit false means not checked in.
type SnapshotAttendee struct {
	PersonID      string   `json:"id"`
	FullName      string   `json:"full_name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	Leader12      string   `json:"leader_12"`
	Leader144     string   `json:"leader_144"`
	CheckedIn     *bool    `json:"checked_in,omitempty"`
	Decision      string   `json:"decision"`
	TierName      string   `json:"ticket_type"`
	Price         float64  `json:"price"`
	PaymentMethod string   `json:"payment_method"`
	PaidAmount    *float64 `json:"paid_amount,omitempty"`
	IsPersistent  bool     `json:"is_persistent"`
}

// WasCheckedIn reports the snapshot's check-in state; absent means true.
func (a SnapshotAttendee) WasCheckedIn() bool {
	return a.CheckedIn == nil || *a.CheckedIn
}

// SnapshotRecord is one week's worth of saved attendance in document form.
type SnapshotRecord struct {
	WeekID          string             `json:"week,omitempty"`
	Status          string             `json:"status"`
	Attendees       []SnapshotAttendee `json:"attendees"`
	TotalHeadcounts int                `json:"total_headcounts"`
}

// History is the normalized tagged variant of an attendance document.
// Exactly one of Flat or Weeks is populated.
type History struct {
	Flat  *SnapshotRecord
	Weeks map[string]SnapshotRecord
}

// ParseHistory normalizes a raw attendance document into a History.
// PRE: data is a JSON object (either shape)
// POST: Returns the tagged variant; unparseable map values are skipped
func ParseHistory(data []byte) (History, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return History{}, err
	}

	// Flat shape: a top-level "status" holding a JSON string.
	if raw, ok := fields["status"]; ok {
		var status string
		if err := json.Unmarshal(raw, &status); err == nil {
			var flat SnapshotRecord
			if err := json.Unmarshal(data, &flat); err != nil {
				return History{}, err
			}
			return History{Flat: &flat}, nil
		}
	}

	weeks := make(map[string]SnapshotRecord, len(fields))
	for key, raw := range fields {
		var rec SnapshotRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		if rec.WeekID == "" {
			rec.WeekID = key
		}
		weeks[key] = rec
	}
	return History{Weeks: weeks}, nil
}

// LatestComplete returns the most recently completed week in the history.
// The flat shape wins when complete. For the map shape, completed entries
// are compared by week id (parsed ISO year/week when possible, string
// comparison otherwise) and the maximum wins; map iteration order never
// decides the result.
// POST: Returns (record, true) or (zero, false) when nothing is complete
func (h History) LatestComplete() (SnapshotRecord, bool) {
	if h.Flat != nil {
		if h.Flat.Status == StatusComplete {
			return *h.Flat, true
		}
		return SnapshotRecord{}, false
	}

	var (
		best    SnapshotRecord
		bestKey string
		found   bool
	)
	for key, rec := range h.Weeks {
		if rec.Status != StatusComplete {
			continue
		}
		if !found || IDLess(bestKey, key) {
			best = rec
			bestKey = key
			found = true
		}
	}
	return best, found
}

// IDLess orders two week identifiers, preferring ISO year/week parsing so
// "2025-W9" sorts before "2025-W10".
func IDLess(a, b string) bool {
	ay, aw, aok := ParseID(a)
	by, bw, bok := ParseID(b)
	if aok && bok {
		if ay != by {
			return ay < by
		}
		return aw < bw
	}
	return a < b
}

// Snapshot converts a ledger attendance entry into the loose document
// shape, preserving the explicit check-in state.
func (e AttendanceEntry) Snapshot() SnapshotAttendee {
	checked := e.CheckedIn
	paid := e.Ticket.PaidAmount
	return SnapshotAttendee{
		PersonID:      e.PersonID,
		FullName:      e.FullName,
		Email:         e.Email,
		Phone:         e.Phone,
		Leader12:      e.Leader12,
		Leader144:     e.Leader144,
		CheckedIn:     &checked,
		Decision:      e.Decision,
		TierName:      e.Ticket.TierName,
		Price:         e.Ticket.Price,
		PaymentMethod: e.Ticket.PaymentMethod,
		PaidAmount:    &paid,
	}
}

// Entry converts a snapshot attendee into a ledger attendance entry.
func (a SnapshotAttendee) Entry() AttendanceEntry {
	var paid float64
	if a.PaidAmount != nil {
		paid = *a.PaidAmount
	}
	return AttendanceEntry{
		PersonID:  a.PersonID,
		FullName:  a.FullName,
		Email:     a.Email,
		Phone:     a.Phone,
		Leader12:  a.Leader12,
		Leader144: a.Leader144,
		CheckedIn: a.WasCheckedIn(),
		Decision:  a.Decision,
		Ticket: ticket.Assignment{
			TierName:      a.TierName,
			Price:         a.Price,
			PaymentMethod: a.PaymentMethod,
			PaidAmount:    paid,
		},
	}
}

// Record converts a snapshot record into a ledger record for an event.
func (r SnapshotRecord) Record(eventID string, savedAt time.Time) Record {
	rec := Record{
		EventID:        eventID,
		WeekID:         r.WeekID,
		Status:         r.Status,
		TotalHeadcount: r.TotalHeadcounts,
		SavedAt:        savedAt,
	}
	for _, a := range r.Attendees {
		rec.Attendees = append(rec.Attendees, a.Entry())
	}
	return rec
}
