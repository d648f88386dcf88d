package roster

import (
	"celltrack/internal/domain/ticket"
	"celltrack/internal/domain/week"
)

// Entry is one row in the canonical attendee list for a capture session.
type Entry struct {
	PersonID     string
	FullName     string
	Email        string
	Phone        string
	Leader12     string
	Leader144    string
	Decision     string
	CheckedIn    bool
	IsPersistent bool
	Ticket       ticket.Assignment
}

// Line adapts an entry to the ticket reconciler's view.
func (e Entry) Line() ticket.Line {
	return ticket.Line{CheckedIn: e.CheckedIn, Assignment: e.Ticket}
}

// Merge combines an event's persistent attendee list with the most recent
// saved week snapshot into one deduplicated list keyed by person id.
//
// Persistent entries seed the list in order with IsPersistent=true. Saved
// attendees then either append (week-only, in the order encountered) or
// overlay the existing entry: each field is overwritten only when the saved
// value is non-empty, CheckedIn reflects the snapshot (absent means true),
// and IsPersistent is OR-ed across both sources.
//
// PRE: persistent carries no duplicate ids
// POST: output has no duplicate ids; persistent entries come first
func Merge(persistent []Entry, saved []week.SnapshotAttendee) []Entry {
	merged := make([]Entry, 0, len(persistent)+len(saved))
	index := make(map[string]int, len(persistent)+len(saved))

	for _, e := range persistent {
		if _, ok := index[e.PersonID]; ok {
			continue
		}
		e.IsPersistent = true
		index[e.PersonID] = len(merged)
		merged = append(merged, e)
	}

	for _, s := range saved {
		i, ok := index[s.PersonID]
		if !ok {
			index[s.PersonID] = len(merged)
			merged = append(merged, fromSnapshot(s))
			continue
		}
		overlay(&merged[i], s)
	}

	return merged
}

func fromSnapshot(s week.SnapshotAttendee) Entry {
	e := Entry{
		PersonID:     s.PersonID,
		FullName:     s.FullName,
		Email:        s.Email,
		Phone:        s.Phone,
		Leader12:     s.Leader12,
		Leader144:    s.Leader144,
		Decision:     s.Decision,
		CheckedIn:    s.WasCheckedIn(),
		IsPersistent: s.IsPersistent,
	}
	e.Ticket = ticket.Assignment{
		TierName:      s.TierName,
		Price:         s.Price,
		PaymentMethod: s.PaymentMethod,
	}
	if s.PaidAmount != nil {
		e.Ticket.PaidAmount = *s.PaidAmount
	}
	return e
}

// overlay applies the saved snapshot on top of an existing entry. Saved
// non-empty values win; empty saved values keep the prior merged value.
func overlay(e *Entry, s week.SnapshotAttendee) {
	setNonEmpty(&e.FullName, s.FullName)
	setNonEmpty(&e.Email, s.Email)
	setNonEmpty(&e.Phone, s.Phone)
	setNonEmpty(&e.Leader12, s.Leader12)
	setNonEmpty(&e.Leader144, s.Leader144)
	setNonEmpty(&e.Decision, s.Decision)
	if s.TierName != "" {
		e.Ticket.TierName = s.TierName
		e.Ticket.Price = s.Price
		e.Ticket.PaymentMethod = s.PaymentMethod
	}
	if s.PaidAmount != nil {
		e.Ticket.PaidAmount = *s.PaidAmount
	}
	e.CheckedIn = s.WasCheckedIn()
	e.IsPersistent = e.IsPersistent || s.IsPersistent
}

func setNonEmpty(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
