package storage

import (
	"database/sql"
	"sort"
	"testing"

	_ "modernc.org/sqlite"
)

// openTestDB creates an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// In-memory databases are per-connection; keep a single one so
	// pragmas and schema apply to every query.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

// getTableNames returns sorted table names from sqlite_master, excluding internal tables.
func getTableNames(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan table name: %v", err)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// expectedTables is the sorted list of tables after InitDB.
var expectedTables = []string{
	"attendance_entry",
	"event",
	"persistent_attendee",
	"person",
	"price_tier",
	"week_record",
}

// TestInitDB_Fresh verifies the schema applies cleanly to an empty database.
func TestInitDB_Fresh(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB failed on fresh db: %v", err)
	}

	tables := getTableNames(t, db)
	if len(tables) != len(expectedTables) {
		t.Errorf("got %d tables, want %d\ngot:  %v\nwant: %v", len(tables), len(expectedTables), tables, expectedTables)
	}
	for i, want := range expectedTables {
		if i >= len(tables) {
			t.Errorf("missing table: %s", want)
			continue
		}
		if tables[i] != want {
			t.Errorf("table[%d] = %q, want %q", i, tables[i], want)
		}
	}
}

// TestInitDB_Idempotent verifies that running InitDB twice produces no errors.
func TestInitDB_Idempotent(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("first InitDB failed: %v", err)
	}
	if err := InitDB(db); err != nil {
		t.Fatalf("second InitDB failed: %v", err)
	}
}

// TestInitDB_DataSurvival verifies that existing data survives a re-run.
func TestInitDB_DataSurvival(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}

	_, err := db.Exec(`INSERT INTO person (id, full_name, created_at) VALUES ('p1', 'Thabo Nkosi', '2025-03-05T19:30:00Z')`)
	if err != nil {
		t.Fatalf("failed to insert test person: %v", err)
	}
	_, err = db.Exec(`INSERT INTO event (id, name, created_at) VALUES ('e1', 'Friday Night Cell', '2025-03-05T19:30:00Z')`)
	if err != nil {
		t.Fatalf("failed to insert test event: %v", err)
	}

	if err := InitDB(db); err != nil {
		t.Fatalf("second InitDB failed: %v", err)
	}

	var name string
	if err := db.QueryRow("SELECT full_name FROM person WHERE id = 'p1'").Scan(&name); err != nil {
		t.Fatalf("person data lost after re-init: %v", err)
	}
	if name != "Thabo Nkosi" {
		t.Errorf("person name = %q, want %q", name, "Thabo Nkosi")
	}
}

// TestInitDB_ForeignKeys verifies foreign key enforcement is enabled.
func TestInitDB_ForeignKeys(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}

	_, err := db.Exec(`INSERT INTO price_tier (event_id, name, price) VALUES ('missing-event', 'Adult', 150)`)
	if err == nil {
		t.Error("expected foreign key violation inserting tier for missing event")
	}
}
