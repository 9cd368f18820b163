package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/launchgate/internal/ctxutil"
	"github.com/example/launchgate/internal/ports/secondary"
)

// LaunchEventRepository implements secondary.LaunchEventRepository with SQLite.
type LaunchEventRepository struct {
	db *sql.DB
}

// NewLaunchEventRepository creates a new SQLite launch event repository.
func NewLaunchEventRepository(db *sql.DB) *LaunchEventRepository {
	return &LaunchEventRepository{db: db}
}

// Record persists an event for the session carried by ctx.
func (r *LaunchEventRepository) Record(ctx context.Context, kind, detail string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO launch_events (session_id, kind, detail) VALUES (?, ?, ?)`,
		ctxutil.SessionFromContext(ctx),
		kind,
		detail,
	)
	if err != nil {
		return fmt.Errorf("failed to record launch event: %w", err)
	}
	return nil
}

// List retrieves launch events matching the given filters, newest first.
func (r *LaunchEventRepository) List(ctx context.Context, filters secondary.LaunchEventFilters) ([]*secondary.LaunchEventRecord, error) {
	query := `SELECT id, session_id, kind, detail, created_at FROM launch_events WHERE 1=1`
	args := []any{}

	if filters.SessionID != "" {
		query += " AND session_id = ?"
		args = append(args, filters.SessionID)
	}

	query += " ORDER BY id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list launch events: %w", err)
	}
	defer rows.Close()

	var events []*secondary.LaunchEventRecord
	for rows.Next() {
		var createdAt time.Time
		record := &secondary.LaunchEventRecord{}
		if err := rows.Scan(&record.ID, &record.SessionID, &record.Kind, &record.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan launch event: %w", err)
		}
		record.CreatedAt = createdAt.Format(time.RFC3339)
		events = append(events, record)
	}

	return events, rows.Err()
}

// Ensure LaunchEventRepository implements the interface
var _ secondary.LaunchEventRepository = (*LaunchEventRepository)(nil)
