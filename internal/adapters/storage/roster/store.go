package roster

import (
	"context"

	"celltrack/internal/domain/person"
)

// Store persists the persistent roster of an event. Members keep their
// insertion order so the capture screen is stable across reloads.
type Store interface {
	List(ctx context.Context, eventID string) ([]person.Summary, error)
	Add(ctx context.Context, eventID string, member person.Summary) error
	Remove(ctx context.Context, eventID, personID string) error
	Replace(ctx context.Context, eventID string, members []person.Summary) error
}
