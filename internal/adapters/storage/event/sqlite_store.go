package event

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"celltrack/internal/adapters/storage"
	domain "celltrack/internal/domain/event"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new event store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an Event and its price tiers.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Event, error) {
	query := "SELECT id, name, is_ticketed, leader_email, leader_name, created_at FROM event WHERE id = ?"

	row := s.db.QueryRowContext(ctx, query, id)

	var entity domain.Event
	var createdAt string
	err := row.Scan(
		&entity.ID,
		&entity.Name,
		&entity.IsTicketed,
		&entity.LeaderEmail,
		&entity.LeaderName,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return domain.Event{}, fmt.Errorf("event not found: %w", err)
	}
	if err != nil {
		return domain.Event{}, err
	}
	if t, perr := time.Parse(time.RFC3339, createdAt); perr == nil {
		entity.CreatedAt = t
	}

	tiers, err := s.tiersFor(ctx, id)
	if err != nil {
		return domain.Event{}, err
	}
	entity.PriceTiers = tiers
	return entity, nil
}

// tiersFor loads the price tiers for one event, stable by name.
func (s *SQLiteStore) tiersFor(ctx context.Context, eventID string) ([]domain.PriceTier, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, price, age_group, member_type, payment_method FROM price_tier WHERE event_id = ? ORDER BY name",
		eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tiers []domain.PriceTier
	for rows.Next() {
		var tier domain.PriceTier
		if err := rows.Scan(
			&tier.Name,
			&tier.Price,
			&tier.AgeGroup,
			&tier.MemberType,
			&tier.PaymentMethod,
		); err != nil {
			return nil, err
		}
		tiers = append(tiers, tier)
	}
	return tiers, rows.Err()
}

// Save persists an Event and fully replaces its price tiers.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update), tiers match entity.PriceTiers
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := "INSERT INTO event (id, name, is_ticketed, leader_email, leader_name, created_at) VALUES (?, ?, ?, ?, ?, ?) " +
		"ON CONFLICT(id) DO UPDATE SET name=excluded.name, is_ticketed=excluded.is_ticketed, leader_email=excluded.leader_email, leader_name=excluded.leader_name, created_at=excluded.created_at"

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		entity.IsTicketed,
		entity.LeaderEmail,
		entity.LeaderName,
		entity.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM price_tier WHERE event_id = ?", entity.ID); err != nil {
		return err
	}
	for _, tier := range entity.PriceTiers {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO price_tier (event_id, name, price, age_group, member_type, payment_method) VALUES (?, ?, ?, ?, ?, ?)",
			entity.ID,
			tier.Name,
			tier.Price,
			tier.AgeGroup,
			tier.MemberType,
			tier.PaymentMethod,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Delete removes an Event and its tiers.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM price_tier WHERE event_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM event WHERE id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

// List retrieves all events ordered by name, without tiers.
// PRE: none
// POST: Returns all events
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, is_ticketed, leader_email, leader_name, created_at FROM event ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Event
	for rows.Next() {
		var entity domain.Event
		var createdAt string
		if err := rows.Scan(
			&entity.ID,
			&entity.Name,
			&entity.IsTicketed,
			&entity.LeaderEmail,
			&entity.LeaderName,
			&createdAt,
		); err != nil {
			return nil, err
		}
		if t, perr := time.Parse(time.RFC3339, createdAt); perr == nil {
			entity.CreatedAt = t
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
