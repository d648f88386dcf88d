package week

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"celltrack/internal/adapters/storage"
	domain "celltrack/internal/domain/week"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new week record store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// SaveRecord upserts a week record and replaces its attendee list in one
// transaction.
// PRE: rec has been validated
// POST: Stored record equals rec, attendee rows follow slice order
func (s *SQLiteStore) SaveRecord(ctx context.Context, rec domain.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := "INSERT INTO week_record (event_id, week_id, status, total_headcount, saved_at) VALUES (?, ?, ?, ?, ?) " +
		"ON CONFLICT(event_id, week_id) DO UPDATE SET status=excluded.status, total_headcount=excluded.total_headcount, saved_at=excluded.saved_at"

	_, err = tx.ExecContext(ctx, query,
		rec.EventID,
		rec.WeekID,
		rec.Status,
		rec.TotalHeadcount,
		rec.SavedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM attendance_entry WHERE event_id = ? AND week_id = ?", rec.EventID, rec.WeekID); err != nil {
		return err
	}
	for i, entry := range rec.Attendees {
		var recordedAt string
		if !entry.Timestamp.IsZero() {
			recordedAt = entry.Timestamp.UTC().Format(time.RFC3339)
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO attendance_entry (event_id, week_id, person_id, full_name, email, phone, leader_12, leader_144, checked_in, decision, tier_name, price, payment_method, paid_amount, recorded_at, position) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			rec.EventID,
			rec.WeekID,
			entry.PersonID,
			entry.FullName,
			entry.Email,
			entry.Phone,
			entry.Leader12,
			entry.Leader144,
			entry.CheckedIn,
			entry.Decision,
			entry.Ticket.TierName,
			entry.Ticket.Price,
			entry.Ticket.PaymentMethod,
			entry.Ticket.PaidAmount,
			recordedAt,
			i,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetRecord retrieves one week record with its attendees.
// PRE: eventID and weekID are non-empty
// POST: Returns the record or an error if not found
func (s *SQLiteStore) GetRecord(ctx context.Context, eventID, weekID string) (domain.Record, error) {
	query := "SELECT event_id, week_id, status, total_headcount, saved_at FROM week_record WHERE event_id = ? AND week_id = ?"

	row := s.db.QueryRowContext(ctx, query, eventID, weekID)

	rec, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Record{}, fmt.Errorf("week record not found: %w", err)
	}
	if err != nil {
		return domain.Record{}, err
	}

	attendees, err := s.attendeesFor(ctx, eventID, weekID)
	if err != nil {
		return domain.Record{}, err
	}
	rec.Attendees = attendees
	return rec, nil
}

// ListByEvent retrieves every week record for an event, attendees included,
// ordered by week id.
// PRE: eventID is non-empty
// POST: Returns all records, empty when the event has none
func (s *SQLiteStore) ListByEvent(ctx context.Context, eventID string) ([]domain.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT event_id, week_id, status, total_headcount, saved_at FROM week_record WHERE event_id = ? ORDER BY week_id",
		eventID)
	if err != nil {
		return nil, err
	}

	var results []domain.Record
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			rows.Close()
			return nil, err
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range results {
		attendees, err := s.attendeesFor(ctx, eventID, results[i].WeekID)
		if err != nil {
			return nil, err
		}
		results[i].Attendees = attendees
	}
	return results, nil
}

// DeleteRecord removes one week record and its attendees.
// PRE: eventID and weekID are non-empty
// POST: Record is removed
func (s *SQLiteStore) DeleteRecord(ctx context.Context, eventID, weekID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM attendance_entry WHERE event_id = ? AND week_id = ?", eventID, weekID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM week_record WHERE event_id = ? AND week_id = ?", eventID, weekID); err != nil {
		return err
	}
	return tx.Commit()
}

func scanRecord(scan func(...any) error) (domain.Record, error) {
	var rec domain.Record
	var savedAt string
	err := scan(
		&rec.EventID,
		&rec.WeekID,
		&rec.Status,
		&rec.TotalHeadcount,
		&savedAt,
	)
	if err != nil {
		return domain.Record{}, err
	}
	if t, perr := time.Parse(time.RFC3339, savedAt); perr == nil {
		rec.SavedAt = t
	}
	return rec, nil
}

// attendeesFor loads the attendee rows for one week in capture order.
func (s *SQLiteStore) attendeesFor(ctx context.Context, eventID, weekID string) ([]domain.AttendanceEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT person_id, full_name, email, phone, leader_12, leader_144, checked_in, decision, tier_name, price, payment_method, paid_amount, recorded_at FROM attendance_entry WHERE event_id = ? AND week_id = ? ORDER BY position",
		eventID, weekID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AttendanceEntry
	for rows.Next() {
		var entry domain.AttendanceEntry
		var recordedAt string
		if err := rows.Scan(
			&entry.PersonID,
			&entry.FullName,
			&entry.Email,
			&entry.Phone,
			&entry.Leader12,
			&entry.Leader144,
			&entry.CheckedIn,
			&entry.Decision,
			&entry.Ticket.TierName,
			&entry.Ticket.Price,
			&entry.Ticket.PaymentMethod,
			&entry.Ticket.PaidAmount,
			&recordedAt,
		); err != nil {
			return nil, err
		}
		if t, perr := time.Parse(time.RFC3339, recordedAt); perr == nil {
			entry.Timestamp = t
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
