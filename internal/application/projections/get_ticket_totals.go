package projections

import (
	"celltrack/internal/domain/roster"
	"celltrack/internal/domain/ticket"
)

// TicketTotalsResult carries the running totals shown while a leader edits
// a ticketed capture session.
type TicketTotalsResult struct {
	TotalPaid  float64
	TotalOwing float64
}

// QueryTicketTotals computes payment totals over the session's currently
// checked-in attendees. Unchecked attendees keep their stored assignment
// but contribute nothing.
func QueryTicketTotals(entries []roster.Entry) TicketTotalsResult {
	lines := make([]ticket.Line, len(entries))
	for i, e := range entries {
		lines[i] = e.Line()
	}
	paid, owing := ticket.Totals(lines)
	return TicketTotalsResult{TotalPaid: paid, TotalOwing: owing}
}
