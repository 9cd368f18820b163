// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the single point where the database schema is loaded for
// tests. Test files never declare tables of their own; setupTestDB loads
// db.GetSchemaSQL() so tests run against the authoritative schema.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/launchgate/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// Every connection to :memory: is a separate database.
	testDB.SetMaxOpenConns(1)

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedPreference writes a raw preference value, bypassing the repository.
func seedPreference(t *testing.T, db *sql.DB, key, value string) {
	t.Helper()
	_, err := db.Exec("INSERT OR REPLACE INTO preferences (key, value) VALUES (?, ?)", key, value)
	if err != nil {
		t.Fatalf("failed to seed preference: %v", err)
	}
}

// seedUpdateState overwrites the update_state row.
func seedUpdateState(t *testing.T, db *sql.DB, status, version string, immediate bool) {
	t.Helper()
	imm := 0
	if immediate {
		imm = 1
	}
	_, err := db.Exec("UPDATE update_state SET status = ?, version = ?, immediate_allowed = ? WHERE id = 1", status, version, imm)
	if err != nil {
		t.Fatalf("failed to seed update state: %v", err)
	}
}
