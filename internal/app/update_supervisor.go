package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/launchgate/internal/core/effects"
	"github.com/example/launchgate/internal/core/update"
	"github.com/example/launchgate/internal/ports/primary"
	"github.com/example/launchgate/internal/ports/secondary"
)

// Launch event kinds written by the supervisor.
const (
	eventUpdateQueried     = "update_queried"
	eventUpdateQueryFailed = "update_query_failed"
	eventUpdateFlowStarted = "update_flow_started"
	eventUpdateFlowFailed  = "update_flow_failed"
)

// UpdateSupervisor implements primary.UpdateService.
// Both operations re-query the platform and converge on what it reports
// now; nothing is remembered between calls.
type UpdateSupervisor struct {
	platform secondary.UpdatePlatform
	executor EffectExecutor
	newID    func() string
	logger   *slog.Logger
}

// NewUpdateSupervisor creates a new UpdateSupervisor.
// newID generates flow correlation IDs.
func NewUpdateSupervisor(platform secondary.UpdatePlatform, executor EffectExecutor, newID func() string, logger *slog.Logger) *UpdateSupervisor {
	return &UpdateSupervisor{
		platform: platform,
		executor: executor,
		newID:    newID,
		logger:   logger,
	}
}

// CheckForUpdate runs the post-unlock check.
func (s *UpdateSupervisor) CheckForUpdate(ctx context.Context) primary.UpdateReport {
	return s.reconcile(ctx, update.TriggerCheck, update.PlanCheck)
}

// ResumeStuckUpdate restarts an immediate flow the platform still reports
// as in progress.
func (s *UpdateSupervisor) ResumeStuckUpdate(ctx context.Context) primary.UpdateReport {
	return s.reconcile(ctx, update.TriggerResume, update.PlanResume)
}

func (s *UpdateSupervisor) reconcile(ctx context.Context, trigger string, planner func(update.Availability) update.Plan) primary.UpdateReport {
	report := primary.UpdateReport{Trigger: trigger}

	availability, err := s.platform.QueryAvailability(ctx)
	if err != nil {
		report.QueryErr = fmt.Errorf("%w: %w", ErrUpdateQuery, err)
		s.logger.Warn("error checking for update", "trigger", trigger, "error", err)
		s.bestEffort(ctx, launchEvent(eventUpdateQueryFailed, trigger+": "+err.Error()))
		return report
	}
	report.Availability = availability

	plan := planner(availability)
	s.bestEffort(ctx, launchEvent(eventUpdateQueried, trigger+": "+availability.String()))

	for _, eff := range plan.Effects() {
		flow, ok := eff.(effects.UpdateFlowEffect)
		if !ok {
			s.bestEffort(ctx, eff)
			continue
		}

		flow.CorrelationID = s.newID()
		report.CorrelationID = flow.CorrelationID

		if err := s.executor.Execute(ctx, []effects.Effect{flow}); err != nil {
			report.FlowErr = fmt.Errorf("%w: %w", ErrUpdateFlowStart, err)
			s.logger.Error("error starting immediate update", "trigger", trigger, "correlation_id", flow.CorrelationID, "error", err)
			s.bestEffort(ctx, launchEvent(eventUpdateFlowFailed, flow.CorrelationID))
			continue
		}

		report.FlowStarted = true
		s.bestEffort(ctx, launchEvent(eventUpdateFlowStarted, flow.CorrelationID))
	}

	return report
}

func (s *UpdateSupervisor) bestEffort(ctx context.Context, eff effects.Effect) {
	if err := s.executor.Execute(ctx, []effects.Effect{eff}); err != nil {
		s.logger.Warn("update effect failed", "effect", eff.EffectType(), "error", err)
	}
}

// Ensure UpdateSupervisor implements the interface
var _ primary.UpdateService = (*UpdateSupervisor)(nil)
