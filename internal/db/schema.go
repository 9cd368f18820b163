package db

import (
	"database/sql"
	"log/slog"
)

// SchemaSQL is the complete schema for fresh installs.
// It reflects the state after all migrations.
//
// Tests load it through GetSchemaSQL() and never declare tables of their
// own, so a repository referencing a missing column fails with "no such
// column" at test time.
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Preferences (durable key/value user settings)
CREATE TABLE IF NOT EXISTS preferences (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Launch events (audit trail of launch sessions)
CREATE TABLE IF NOT EXISTS launch_events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL DEFAULT '',
	kind TEXT NOT NULL,
	detail TEXT NOT NULL DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_launch_events_session ON launch_events(session_id);

-- Update state (simulated store update platform, single row)
CREATE TABLE IF NOT EXISTS update_state (
	id INTEGER PRIMARY KEY CHECK(id = 1),
	status TEXT NOT NULL CHECK(status IN ('none', 'available', 'in_progress')) DEFAULT 'none',
	version TEXT NOT NULL DEFAULT '',
	immediate_allowed INTEGER NOT NULL DEFAULT 0,
	correlation_id TEXT NOT NULL DEFAULT '',
	request_code INTEGER NOT NULL DEFAULT 0,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

INSERT OR IGNORE INTO update_state (id, status) VALUES (1, 'none');
`

// InitSchema creates the schema on a fresh database and migrates an
// existing one.
func InitSchema(db *sql.DB, logger *slog.Logger) error {
	var tableCount int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		return RunMigrations(db, logger)
	}

	var oldTableCount int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('preferences', 'launch_events')").Scan(&oldTableCount)
	if err != nil {
		return err
	}
	if oldTableCount > 0 {
		// Tables from before versioning existed.
		return RunMigrations(db, logger)
	}

	// Completely fresh install - create the modern schema directly and mark
	// every migration as applied.
	if _, err := db.Exec(SchemaSQL); err != nil {
		return err
	}
	if err := createVersionTable(db); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return err
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
