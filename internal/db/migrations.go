package db

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Migration is one versioned schema change.
type Migration struct {
	Version int
	Name    string
	Up      func(tx *sql.Tx) error
}

var migrations = []Migration{
	{
		Version: 1,
		Name:    "initial_preferences_and_launch_events",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_update_state",
		Up:      migrationV2,
	},
}

func createVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// RunMigrations executes all pending migrations.
func RunMigrations(db *sql.DB, logger *slog.Logger) error {
	if err := createVersionTable(db); err != nil {
		return err
	}

	var currentVersion int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		logger.Info("running migration", "version", migration.Version, "name", migration.Name)

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// migrationV1 creates the preference store and the launch audit trail.
func migrationV1(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS launch_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL DEFAULT '',
			kind TEXT NOT NULL,
			detail TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_launch_events_session ON launch_events(session_id);
	`)
	return err
}

// migrationV2 adds the single-row simulated update platform.
func migrationV2(tx *sql.Tx) error {
	_, err := tx.Exec(`
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
	`)
	return err
}
