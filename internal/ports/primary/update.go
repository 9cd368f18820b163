package primary

import (
	"context"

	"github.com/example/launchgate/internal/core/update"
)

// UpdateService defines the primary port for update supervision.
// Neither operation returns an error: failures are reported in the
// UpdateReport and never block content.
type UpdateService interface {
	// CheckForUpdate runs the post-unlock check.
	CheckForUpdate(ctx context.Context) UpdateReport

	// ResumeStuckUpdate restarts an interrupted immediate flow, if any.
	ResumeStuckUpdate(ctx context.Context) UpdateReport
}

// UpdateReport describes what one update operation observed and did.
type UpdateReport struct {
	Trigger       string
	Availability  update.Availability
	FlowStarted   bool
	CorrelationID string
	QueryErr      error
	FlowErr       error
}

// UpdateAdminService drives the simulated store from the host CLI.
type UpdateAdminService interface {
	// Publish makes a version available.
	Publish(ctx context.Context, version string, immediateAllowed bool) error

	// Complete marks the pending update as installed.
	Complete(ctx context.Context) error

	// Status returns the store's current view.
	Status(ctx context.Context) (*UpdateStatus, error)
}

// UpdateStatus is the store's current view.
type UpdateStatus struct {
	Availability  update.Availability
	CorrelationID string
	RequestCode   int
	UpdatedAt     string
}
