package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables
	schema := `
	CREATE TABLE IF NOT EXISTS person (
		id TEXT PRIMARY KEY,
		full_name TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		gender TEXT,
		dob TEXT,
		address TEXT,
		stage TEXT NOT NULL DEFAULT 'win',
		leader_1 TEXT,
		leader_12 TEXT,
		leader_144 TEXT,
		leader_1728 TEXT,
		level TEXT NOT NULL DEFAULT 'member',
		invited_by TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_person_full_name ON person(full_name);

	CREATE TABLE IF NOT EXISTS event (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		is_ticketed INTEGER NOT NULL DEFAULT 0,
		leader_email TEXT,
		leader_name TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS price_tier (
		event_id TEXT NOT NULL,
		name TEXT NOT NULL,
		price REAL NOT NULL DEFAULT 0,
		age_group TEXT,
		member_type TEXT,
		payment_method TEXT,
		PRIMARY KEY (event_id, name),
		FOREIGN KEY (event_id) REFERENCES event(id)
	);

	CREATE TABLE IF NOT EXISTS persistent_attendee (
		event_id TEXT NOT NULL,
		person_id TEXT NOT NULL,
		full_name TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		leader_1 TEXT,
		leader_12 TEXT,
		leader_144 TEXT,
		leader_1728 TEXT,
		position INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (event_id, person_id),
		FOREIGN KEY (event_id) REFERENCES event(id)
	);

	CREATE TABLE IF NOT EXISTS week_record (
		event_id TEXT NOT NULL,
		week_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'incomplete',
		total_headcount INTEGER NOT NULL DEFAULT 0,
		saved_at TEXT NOT NULL,
		PRIMARY KEY (event_id, week_id),
		FOREIGN KEY (event_id) REFERENCES event(id)
	);

	CREATE TABLE IF NOT EXISTS attendance_entry (
		event_id TEXT NOT NULL,
		week_id TEXT NOT NULL,
		person_id TEXT NOT NULL,
		full_name TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		leader_12 TEXT,
		leader_144 TEXT,
		checked_in INTEGER NOT NULL DEFAULT 1,
		decision TEXT,
		tier_name TEXT,
		price REAL NOT NULL DEFAULT 0,
		payment_method TEXT,
		paid_amount REAL NOT NULL DEFAULT 0,
		recorded_at TEXT,
		position INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (event_id, week_id, person_id),
		FOREIGN KEY (event_id, week_id) REFERENCES week_record(event_id, week_id)
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
