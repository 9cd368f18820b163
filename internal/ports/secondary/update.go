package secondary

import (
	"context"

	"github.com/example/launchgate/internal/core/update"
)

// UpdatePlatform defines the secondary port for the store's in-app update API.
type UpdatePlatform interface {
	// QueryAvailability reports the current update availability.
	QueryAvailability(ctx context.Context) (update.Availability, error)

	// StartFlow hands an update flow to the platform. The flow's result is
	// not reported here; it shows up in a later QueryAvailability.
	StartFlow(ctx context.Context, req update.FlowRequest) error
}

// UpdateAdmin drives the simulated platform from the host CLI.
type UpdateAdmin interface {
	// Publish makes a new version available.
	Publish(ctx context.Context, version string, immediateAllowed bool) error

	// Complete marks any pending or in-progress update as installed.
	Complete(ctx context.Context) error

	// Status returns the raw platform record.
	Status(ctx context.Context) (*UpdateStateRecord, error)
}

// UpdateStateRecord represents the simulated platform state as stored.
type UpdateStateRecord struct {
	Status           string // "none", "available", "in_progress"
	Version          string
	ImmediateAllowed bool
	CorrelationID    string
	RequestCode      int
	UpdatedAt        string
}
