package week

import (
	"context"

	domain "celltrack/internal/domain/week"
)

// Store persists weekly attendance records. SaveRecord fully replaces the
// record and its attendee list, so a retried save converges on the same
// stored state.
type Store interface {
	SaveRecord(ctx context.Context, rec domain.Record) error
	GetRecord(ctx context.Context, eventID, weekID string) (domain.Record, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Record, error)
	DeleteRecord(ctx context.Context, eventID, weekID string) error
}
