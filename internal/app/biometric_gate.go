package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/example/launchgate/internal/core/effects"
	"github.com/example/launchgate/internal/core/launch"
	"github.com/example/launchgate/internal/ports/secondary"
)

// GateHooks are called by the gate when it reaches a decision.
// They run outside the gate's lock, on whichever goroutine delivered the event.
type GateHooks struct {
	OnUnlocked   func(ctx context.Context)
	OnTerminated func(ctx context.Context, reason launch.Outcome)
}

// BiometricGate is the shell around launch.Machine. Every event goes through
// launch.Apply under the lock, so concurrent or repeated deliveries are
// reduced to at most one transition each; effects run after the lock is
// released.
type BiometricGate struct {
	mu      sync.Mutex
	machine launch.Machine

	presenter secondary.ChallengePresenter
	executor  EffectExecutor
	hooks     GateHooks
	logger    *slog.Logger
}

// NewBiometricGate creates a gate in the Initializing state.
func NewBiometricGate(presenter secondary.ChallengePresenter, executor EffectExecutor, hooks GateHooks, logger *slog.Logger) *BiometricGate {
	return &BiometricGate{
		machine:   launch.NewMachine(),
		presenter: presenter,
		executor:  executor,
		hooks:     hooks,
		logger:    logger,
	}
}

// State returns the current launch state.
func (g *BiometricGate) State() launch.State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.machine.State
}

// Machine returns a copy of the full machine.
func (g *BiometricGate) Machine() launch.Machine {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.machine
}

// Resolve delivers the loader's answer.
func (g *BiometricGate) Resolve(ctx context.Context, enabled bool) {
	g.dispatch(ctx, launch.PreferenceResolved{Enabled: enabled})
}

// Recompose delivers a redraw of the presentation layer.
func (g *BiometricGate) Recompose(ctx context.Context) {
	g.dispatch(ctx, launch.Recomposed{})
}

// Finish delivers a challenge outcome.
func (g *BiometricGate) Finish(ctx context.Context, outcome launch.Outcome) {
	g.dispatch(ctx, launch.ChallengeFinished{Outcome: outcome})
}

func (g *BiometricGate) dispatch(ctx context.Context, ev launch.Event) {
	g.mu.Lock()
	from := g.machine.State
	next, effs := launch.Apply(g.machine, ev)
	g.machine = next
	g.mu.Unlock()

	if from != next.State {
		g.logger.Debug("launch state changed", "from", from, "to", next.State, "event", ev.EventType())
	}
	g.run(ctx, effs)
}

func (g *BiometricGate) run(ctx context.Context, effs []effects.Effect) {
	for _, eff := range effs {
		switch typed := eff.(type) {
		case effects.ChallengeEffect:
			g.presentChallenge(ctx)
		case effects.ContentEffect:
			if g.hooks.OnUnlocked != nil {
				g.hooks.OnUnlocked(ctx)
			}
		case effects.TerminateEffect:
			if g.hooks.OnTerminated != nil {
				g.hooks.OnTerminated(ctx, launch.Outcome(typed.Reason))
			}
		default:
			// Audit and log failures must not hold up the gate.
			if err := g.executor.Execute(ctx, []effects.Effect{eff}); err != nil {
				g.logger.Warn("launch effect failed", "effect", eff.EffectType(), "error", err)
			}
		}
	}
}

func (g *BiometricGate) presentChallenge(ctx context.Context) {
	// The outcome arrives later, possibly after ctx is done; it still has
	// to reach the machine so the session ends with a decision.
	outcomeCtx := context.WithoutCancel(ctx)
	g.presenter.PresentChallenge(ctx, secondary.ChallengeCallbacks{
		OnSuccess: func() {
			g.Finish(outcomeCtx, launch.OutcomeSuccess)
		},
		OnUserCancel: func() {
			g.Finish(outcomeCtx, launch.OutcomeUserCancelled)
		},
		OnError: func(err error) {
			g.logger.Warn("lock challenge error", "error", err)
			g.Finish(outcomeCtx, launch.OutcomeError)
		},
	})
}
