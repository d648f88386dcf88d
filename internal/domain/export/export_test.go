package export

import (
	"strings"
	"testing"

	"celltrack/internal/domain/roster"
)

func TestWriteCheckedIn(t *testing.T) {
	entries := []roster.Entry{
		{PersonID: "p1", FullName: "Thabo Nkosi", Email: "thabo@example.org", Leader12: "Jane Doe", Phone: "0821110000", Decision: "first-time", CheckedIn: true},
		{PersonID: "p2", FullName: "Carla Mokoena", CheckedIn: false},
	}

	var sb strings.Builder
	if err := WriteCheckedIn(&sb, entries); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus 1 row, got %d lines", len(lines))
	}
	if lines[0] != "Name,Email,Leader @12,Leader @144,Phone,Decision,Checked In" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Thabo Nkosi,thabo@example.org,Jane Doe,") {
		t.Errorf("unexpected row: %q", lines[1])
	}
	if strings.Contains(sb.String(), "Carla") {
		t.Error("unchecked attendee must not be exported")
	}
}
