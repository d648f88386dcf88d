package ticket

import "math"

// Assignment records the tier and payment state captured against one
// attendee for a ticketed event. A zero Assignment means no ticket has
// been assigned.
type Assignment struct {
	TierName      string
	Price         float64
	PaymentMethod string
	PaidAmount    float64
}

// Assigned reports whether a tier has been captured.
func (a Assignment) Assigned() bool {
	return a.TierName != ""
}

// Paid returns the paid amount with absent or invalid input coerced to 0.
// Payment fields arrive from free-text inputs, so NaN must not poison totals.
func (a Assignment) Paid() float64 {
	if math.IsNaN(a.PaidAmount) {
		return 0
	}
	return a.PaidAmount
}

// Owing returns the outstanding balance for the assignment.
// Owing is always computed, never stored.
// PRE: Price is the assigned tier's price
// POST: Returns Price minus the coerced paid amount
func (a Assignment) Owing() float64 {
	price := a.Price
	if math.IsNaN(price) {
		price = 0
	}
	return price - a.Paid()
}

// Line pairs an assignment with the attendee's current check-in state.
// Unchecking an attendee excludes them from totals without clearing the
// stored assignment; only an explicit roster removal clears it.
type Line struct {
	CheckedIn  bool
	Assignment Assignment
}

// Totals sums payments and outstanding balances over checked-in lines only.
// PRE: lines is the current capture session's attendee list
// POST: Returns (totalPaid, totalOwing); unchecked lines contribute nothing
func Totals(lines []Line) (totalPaid, totalOwing float64) {
	for _, line := range lines {
		if !line.CheckedIn {
			continue
		}
		totalPaid += line.Assignment.Paid()
		totalOwing += line.Assignment.Owing()
	}
	return totalPaid, totalOwing
}
