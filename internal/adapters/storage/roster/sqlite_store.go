package roster

import (
	"context"
	"database/sql"

	"celltrack/internal/adapters/storage"
	"celltrack/internal/domain/person"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new roster store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List retrieves the roster for an event in insertion order.
// PRE: eventID is non-empty
// POST: Returns the roster, empty when the event has none
func (s *SQLiteStore) List(ctx context.Context, eventID string) ([]person.Summary, error) {
	query := "SELECT person_id, full_name, email, phone, leader_1, leader_12, leader_144, leader_1728 FROM persistent_attendee WHERE event_id = ? ORDER BY position"
	rows, err := s.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []person.Summary
	for rows.Next() {
		var entity person.Summary
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

// Add appends one member to the roster, or updates them in place when
// already present.
// PRE: eventID and member.ID are non-empty
// POST: Member is on the roster exactly once
func (s *SQLiteStore) Add(ctx context.Context, eventID string, member person.Summary) error {
	query := "INSERT INTO persistent_attendee (event_id, person_id, full_name, email, phone, leader_1, leader_12, leader_144, leader_1728, position) " +
		"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position)+1, 0) FROM persistent_attendee WHERE event_id = ?)) " +
		"ON CONFLICT(event_id, person_id) DO UPDATE SET full_name=excluded.full_name, email=excluded.email, phone=excluded.phone, leader_1=excluded.leader_1, leader_12=excluded.leader_12, leader_144=excluded.leader_144, leader_1728=excluded.leader_1728"

	_, err := s.db.ExecContext(ctx, query,
		eventID,
		member.ID,
		member.FullName,
		member.Email,
		member.Phone,
		member.Leader1,
		member.Leader12,
		member.Leader144,
		member.Leader1728,
		eventID,
	)
	return err
}

// Remove takes one member off the roster. Removing someone not on it is
// a no-op.
// PRE: eventID and personID are non-empty
// POST: Member is not on the roster
func (s *SQLiteStore) Remove(ctx context.Context, eventID, personID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM persistent_attendee WHERE event_id = ? AND person_id = ?", eventID, personID)
	return err
}

// Replace swaps the event's entire roster for the given list, preserving
// the list's order. Replaying the same list yields the same stored state.
// PRE: eventID is non-empty
// POST: Stored roster equals members, position follows slice order
func (s *SQLiteStore) Replace(ctx context.Context, eventID string, members []person.Summary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM persistent_attendee WHERE event_id = ?", eventID); err != nil {
		return err
	}
	for i, member := range members {
		err := insertMember(ctx, tx, eventID, member, i)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func insertMember(ctx context.Context, tx *sql.Tx, eventID string, member person.Summary, position int) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO persistent_attendee (event_id, person_id, full_name, email, phone, leader_1, leader_12, leader_144, leader_1728, position) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		eventID,
		member.ID,
		member.FullName,
		member.Email,
		member.Phone,
		member.Leader1,
		member.Leader12,
		member.Leader144,
		member.Leader1728,
		position,
	)
	return err
}
