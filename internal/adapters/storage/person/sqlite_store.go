package person

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"celltrack/internal/adapters/storage"
	domain "celltrack/internal/domain/person"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new person store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Person by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Person, error) {
	query := "SELECT id, full_name, email, phone, gender, dob, address, stage, leader_1, leader_12, leader_144, leader_1728, level, invited_by, created_at FROM person WHERE id = ?"

	row := s.db.QueryRowContext(ctx, query, id)

	var entity domain.Person
	var createdAt string
	err := row.Scan(
		&entity.ID,
		&entity.FullName,
		&entity.Email,
		&entity.Phone,
		&entity.Gender,
		&entity.DOB,
		&entity.Address,
		&entity.Stage,
		&entity.Chain.Leader1,
		&entity.Chain.Leader12,
		&entity.Chain.Leader144,
		&entity.Chain.Leader1728,
		&entity.Level,
		&entity.InvitedBy,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return domain.Person{}, fmt.Errorf("person not found: %w", err)
	}
	if err != nil {
		return domain.Person{}, err
	}
	if t, perr := time.Parse(time.RFC3339, createdAt); perr == nil {
		entity.CreatedAt = t
	}
	return entity, nil
}

// Save persists a Person to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Person) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Upsert implementation
	fields := []string{"id", "full_name", "email", "phone", "gender", "dob", "address", "stage", "leader_1", "leader_12", "leader_144", "leader_1728", "level", "invited_by", "created_at"}
	placeholders := []string{"?", "?", "?", "?", "?", "?", "?", "?", "?", "?", "?", "?", "?", "?", "?"}
	updates := []string{"full_name=excluded.full_name", "email=excluded.email", "phone=excluded.phone", "gender=excluded.gender", "dob=excluded.dob", "address=excluded.address", "stage=excluded.stage", "leader_1=excluded.leader_1", "leader_12=excluded.leader_12", "leader_144=excluded.leader_144", "leader_1728=excluded.leader_1728", "level=excluded.level", "invited_by=excluded.invited_by", "created_at=excluded.created_at"}

	query := fmt.Sprintf(
		"INSERT INTO person (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.FullName,
		entity.Email,
		entity.Phone,
		entity.Gender,
		entity.DOB,
		entity.Address,
		entity.Stage,
		entity.Chain.Leader1,
		entity.Chain.Leader12,
		entity.Chain.Leader144,
		entity.Chain.Leader1728,
		entity.Level,
		entity.InvitedBy,
		entity.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Person from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM person WHERE id = ?", id)
	return err
}

// SearchByName finds people whose name matches the query (case-insensitive LIKE).
// PRE: query is non-empty, limit > 0
// POST: Returns matching summaries ordered by name
func (s *SQLiteStore) SearchByName(ctx context.Context, query string, limit int) ([]domain.Summary, error) {
	q := "SELECT id, full_name, email, phone, leader_1, leader_12, leader_144, leader_1728 FROM person WHERE full_name LIKE ? ORDER BY full_name LIMIT ?"
	rows, err := s.db.QueryContext(ctx, q, "%"+query+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Summary
	for rows.Next() {
		var entity domain.Summary
		if err := rows.Scan(
			&entity.ID,
			&entity.FullName,
			&entity.Email,
			&entity.Phone,
			&entity.Leader1,
			&entity.Leader12,
			&entity.Leader144,
			&entity.Leader1728,
		); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
