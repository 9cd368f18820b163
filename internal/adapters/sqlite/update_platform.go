package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/launchgate/internal/core/update"
	"github.com/example/launchgate/internal/ports/secondary"
)

// Status values of the update_state row.
const (
	updateStatusNone       = "none"
	updateStatusAvailable  = "available"
	updateStatusInProgress = "in_progress"
)

// UpdatePlatform simulates the store's in-app update API on a single
// update_state row. It implements both secondary.UpdatePlatform and
// secondary.UpdateAdmin.
type UpdatePlatform struct {
	db *sql.DB
}

// NewUpdatePlatform creates a new SQLite-backed update platform.
func NewUpdatePlatform(db *sql.DB) *UpdatePlatform {
	return &UpdatePlatform{db: db}
}

// QueryAvailability reports the stored state as an Availability.
func (p *UpdatePlatform) QueryAvailability(ctx context.Context) (update.Availability, error) {
	record, err := p.Status(ctx)
	if err != nil {
		return update.Availability{}, err
	}

	switch record.Status {
	case updateStatusNone:
		return update.NoUpdate(), nil
	case updateStatusAvailable:
		return update.UpdateAvailable(record.Version, record.ImmediateAllowed), nil
	case updateStatusInProgress:
		return update.ImmediateUpdateInProgress(record.Version), nil
	default:
		return update.Availability{}, fmt.Errorf("unknown update status %q", record.Status)
	}
}

// StartFlow marks the pending update as in progress.
func (p *UpdatePlatform) StartFlow(ctx context.Context, req update.FlowRequest) error {
	if req.Type != update.FlowImmediate {
		return fmt.Errorf("unsupported update flow type: %s", req.Type)
	}

	result, err := p.db.ExecContext(ctx,
		`UPDATE update_state
		 SET status = ?, correlation_id = ?, request_code = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = 1 AND status IN (?, ?)`,
		updateStatusInProgress, req.CorrelationID, req.RequestCode,
		updateStatusAvailable, updateStatusInProgress,
	)
	if err != nil {
		return fmt.Errorf("failed to start update flow: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to verify update flow start: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no update to start")
	}
	return nil
}

// Publish makes version available, replacing whatever was pending.
func (p *UpdatePlatform) Publish(ctx context.Context, version string, immediateAllowed bool) error {
	_, err := p.db.ExecContext(ctx,
		`UPDATE update_state
		 SET status = ?, version = ?, immediate_allowed = ?, correlation_id = '', request_code = 0, updated_at = CURRENT_TIMESTAMP
		 WHERE id = 1`,
		updateStatusAvailable, version, boolToInt(immediateAllowed),
	)
	if err != nil {
		return fmt.Errorf("failed to publish update: %w", err)
	}
	return nil
}

// Complete clears any pending or in-progress update.
func (p *UpdatePlatform) Complete(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx,
		`UPDATE update_state
		 SET status = ?, correlation_id = '', request_code = 0, updated_at = CURRENT_TIMESTAMP
		 WHERE id = 1`,
		updateStatusNone,
	)
	if err != nil {
		return fmt.Errorf("failed to complete update: %w", err)
	}
	return nil
}

// Status returns the raw update_state row.
func (p *UpdatePlatform) Status(ctx context.Context) (*secondary.UpdateStateRecord, error) {
	var (
		immediate int
		updatedAt time.Time
	)

	record := &secondary.UpdateStateRecord{}
	err := p.db.QueryRowContext(ctx,
		`SELECT status, version, immediate_allowed, correlation_id, request_code, updated_at FROM update_state WHERE id = 1`,
	).Scan(&record.Status,
		&record.Version,
		&immediate,
		&record.CorrelationID,
		&record.RequestCode,
		&updatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("update state not initialized")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query update state: %w", err)
	}
	record.ImmediateAllowed = immediate != 0
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Ensure UpdatePlatform implements the interfaces
var (
	_ secondary.UpdatePlatform = (*UpdatePlatform)(nil)
	_ secondary.UpdateAdmin    = (*UpdatePlatform)(nil)
)
