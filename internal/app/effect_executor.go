// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/launchgate/internal/core/effects"
	"github.com/example/launchgate/internal/core/update"
	"github.com/example/launchgate/internal/ports/secondary"
)

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - the only place I/O happens.
type EffectExecutor interface {
	Execute(ctx context.Context, effs []effects.Effect) error
}

// DefaultEffectExecutor implements EffectExecutor with real I/O.
type DefaultEffectExecutor struct {
	events      secondary.LaunchEventRepository
	platform    secondary.UpdatePlatform
	requestCode int
	logger      *slog.Logger
}

// NewEffectExecutor creates a new DefaultEffectExecutor.
// requestCode is attached to every update flow request.
func NewEffectExecutor(events secondary.LaunchEventRepository, platform secondary.UpdatePlatform, requestCode int, logger *slog.Logger) *DefaultEffectExecutor {
	return &DefaultEffectExecutor{
		events:      events,
		platform:    platform,
		requestCode: requestCode,
		logger:      logger,
	}
}

// Execute processes a slice of effects, executing each in sequence.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	for _, eff := range effs {
		if err := e.executeOne(ctx, eff); err != nil {
			return fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect) error {
	switch typed := eff.(type) {
	case effects.PersistEffect:
		return e.executePersist(ctx, typed)
	case effects.UpdateFlowEffect:
		return e.executeUpdateFlow(ctx, typed)
	case effects.LogEffect:
		e.logger.Log(ctx, logLevel(typed.Level), typed.Message, logAttrs(typed.Fields)...)
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

func (e *DefaultEffectExecutor) executePersist(ctx context.Context, eff effects.PersistEffect) error {
	switch eff.Entity {
	case "launch_event":
		return e.executeLaunchEventOp(ctx, eff)
	default:
		return fmt.Errorf("unknown entity: %s", eff.Entity)
	}
}

func (e *DefaultEffectExecutor) executeLaunchEventOp(ctx context.Context, eff effects.PersistEffect) error {
	switch eff.Operation {
	case "create":
		data, ok := eff.Data.(map[string]string)
		if !ok {
			return fmt.Errorf("invalid launch event data type: %T", eff.Data)
		}
		return e.events.Record(ctx, data["kind"], data["detail"])
	default:
		return fmt.Errorf("unknown launch event operation: %s", eff.Operation)
	}
}

func (e *DefaultEffectExecutor) executeUpdateFlow(ctx context.Context, eff effects.UpdateFlowEffect) error {
	req := update.FlowRequest{
		Type:          update.FlowType(eff.FlowType),
		CorrelationID: eff.CorrelationID,
		RequestCode:   e.requestCode,
	}
	if req.Type != update.FlowImmediate {
		return fmt.Errorf("unsupported update flow type: %s", eff.FlowType)
	}
	return e.platform.StartFlow(ctx, req)
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func logAttrs(fields map[string]any) []any {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}

// launchEvent builds the persist effect for one launch event.
func launchEvent(kind, detail string) effects.PersistEffect {
	return effects.PersistEffect{
		Entity:    "launch_event",
		Operation: "create",
		Data: map[string]string{
			"kind":   kind,
			"detail": detail,
		},
	}
}
