package secondary

import "context"

// LaunchEventRecord represents a launch session event as stored in persistence.
type LaunchEventRecord struct {
	ID        int64
	SessionID string
	Kind      string
	Detail    string
	CreatedAt string
}

// LaunchEventFilters contains filter options for listing launch events.
type LaunchEventFilters struct {
	SessionID string
	Limit     int
}

// LaunchEventRepository defines the secondary port for the launch audit trail.
// Implementations extract the session from context.
type LaunchEventRepository interface {
	// Record writes an event for the session in ctx.
	Record(ctx context.Context, kind, detail string) error

	// List retrieves events, newest first.
	List(ctx context.Context, filters LaunchEventFilters) ([]*LaunchEventRecord, error)
}
