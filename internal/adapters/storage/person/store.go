package person

import (
	"context"

	domain "celltrack/internal/domain/person"
)

// Store persists Person state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Person, error)
	Save(ctx context.Context, value domain.Person) error
	Delete(ctx context.Context, id string) error
	SearchByName(ctx context.Context, query string, limit int) ([]domain.Summary, error)
}
