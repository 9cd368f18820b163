package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/launchgate/internal/core/update"
	"github.com/example/launchgate/internal/ports/primary"
)

// UpdateAdapter translates update commands to UpdateService and
// UpdateAdminService calls.
type UpdateAdapter struct {
	updates primary.UpdateService
	admin   primary.UpdateAdminService
	out     io.Writer
}

// NewUpdateAdapter creates a new UpdateAdapter.
func NewUpdateAdapter(updates primary.UpdateService, admin primary.UpdateAdminService, out io.Writer) *UpdateAdapter {
	return &UpdateAdapter{
		updates: updates,
		admin:   admin,
		out:     out,
	}
}

// Check runs the post-unlock check outside a session.
func (a *UpdateAdapter) Check(ctx context.Context) primary.UpdateReport {
	report := a.updates.CheckForUpdate(ctx)
	printReport(a.out, report)
	return report
}

// Resume sends one foreground-regain signal.
func (a *UpdateAdapter) Resume(ctx context.Context) primary.UpdateReport {
	report := a.updates.ResumeStuckUpdate(ctx)
	printReport(a.out, report)
	return report
}

// Publish makes a version available in the simulated store.
func (a *UpdateAdapter) Publish(ctx context.Context, version string, immediate bool) error {
	if err := a.admin.Publish(ctx, version, immediate); err != nil {
		return fmt.Errorf("failed to publish update: %w", err)
	}

	mode := "flexible only"
	if immediate {
		mode = "immediate allowed"
	}
	fmt.Fprintf(a.out, "✓ Published %s (%s)\n", version, mode)
	return nil
}

// Complete finishes the pending update in the simulated store.
func (a *UpdateAdapter) Complete(ctx context.Context) error {
	if err := a.admin.Complete(ctx); err != nil {
		return fmt.Errorf("failed to complete update: %w", err)
	}
	fmt.Fprintln(a.out, "✓ Update installed")
	return nil
}

// Status displays the simulated store's state.
func (a *UpdateAdapter) Status(ctx context.Context) error {
	status, err := a.admin.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get update status: %w", err)
	}

	fmt.Fprintf(a.out, "\nAvailability: %s\n", colorAvailability(status.Availability))
	if status.Availability.Version != "" {
		fmt.Fprintf(a.out, "Version:      %s\n", status.Availability.Version)
	}
	if status.CorrelationID != "" {
		fmt.Fprintf(a.out, "Flow:         %s (request code %d)\n", status.CorrelationID, status.RequestCode)
	}
	fmt.Fprintf(a.out, "Updated:      %s\n", status.UpdatedAt)
	fmt.Fprintln(a.out)
	return nil
}

func colorAvailability(a update.Availability) string {
	switch a.Kind {
	case update.KindUpdateAvailable:
		return color.New(color.FgBlue).Sprint(a)
	case update.KindImmediateUpdateInProgress:
		return color.New(color.FgYellow).Sprint(a)
	default:
		return a.String()
	}
}
