package event

import (
	"context"

	domain "celltrack/internal/domain/event"
)

// Store persists Event state, price tiers included.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Event, error)
	Save(ctx context.Context, value domain.Event) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Event, error)
}
