package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"celltrack/internal/domain/roster"
)

// Header is the fixed column order for the check-in export. Downstream
// spreadsheets key off these names, so the order must not change.
var Header = []string{"Name", "Email", "Leader @12", "Leader @144", "Phone", "Decision", "Checked In"}

// WriteCheckedIn writes the currently checked-in attendees as CSV.
// PRE: entries is the capture session's merged roster
// POST: Header row plus one row per checked-in attendee; unchecked
// attendees are excluded entirely
func WriteCheckedIn(w io.Writer, entries []roster.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, e := range entries {
		if !e.CheckedIn {
			continue
		}
		row := []string{
			e.FullName,
			e.Email,
			e.Leader12,
			e.Leader144,
			e.Phone,
			e.Decision,
			strconv.FormatBool(e.CheckedIn),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
