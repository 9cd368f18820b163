package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/example/launchgate/internal/core/launch"
	"github.com/example/launchgate/internal/core/update"
)

func newTestGate(presenter *mockChallengePresenter, hooks GateHooks) (*BiometricGate, *mockLaunchEventRepository) {
	events := newMockLaunchEventRepository()
	executor := NewEffectExecutor(events, newMockUpdatePlatform(update.NoUpdate()), 100, discardLogger())
	return NewBiometricGate(presenter, executor, hooks, discardLogger()), events
}

func TestBiometricGate_ConcurrentSignalsDecideOnce(t *testing.T) {
	presenter := newMockChallengePresenter(answerManually)
	var unlocked atomic.Int32
	gate, events := newTestGate(presenter, GateHooks{
		OnUnlocked: func(ctx context.Context) { unlocked.Add(1) },
	})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			gate.Resolve(ctx, true)
		}()
		go func() {
			defer wg.Done()
			gate.Recompose(ctx)
		}()
	}
	wg.Wait()

	if gate.State() != launch.StateLocked {
		t.Errorf("State = %q, want %q", gate.State(), launch.StateLocked)
	}
	if presenter.count() != 1 {
		t.Errorf("challenges = %d, want 1", presenter.count())
	}
	if got := events.count(launch.EventDecision); got != 1 {
		t.Errorf("decision events = %d, want 1", got)
	}

	// Duplicate outcomes from the platform unlock once.
	var outcomes sync.WaitGroup
	for i := 0; i < 10; i++ {
		outcomes.Add(1)
		go func() {
			defer outcomes.Done()
			gate.Finish(ctx, launch.OutcomeSuccess)
		}()
	}
	outcomes.Wait()

	if unlocked.Load() != 1 {
		t.Errorf("OnUnlocked calls = %d, want 1", unlocked.Load())
	}
}

func TestBiometricGate_CancelAfterContextDoneStillTerminates(t *testing.T) {
	presenter := newMockChallengePresenter(answerManually)
	terminated := make(chan launch.Outcome, 1)
	gate, _ := newTestGate(presenter, GateHooks{
		OnTerminated: func(ctx context.Context, reason launch.Outcome) {
			if ctx.Err() != nil {
				t.Errorf("termination ran with done context: %v", ctx.Err())
			}
			terminated <- reason
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	gate.Resolve(ctx, true)
	cancel()
	presenter.answer(answerCancel)

	select {
	case reason := <-terminated:
		if reason != launch.OutcomeUserCancelled {
			t.Errorf("reason = %q, want %q", reason, launch.OutcomeUserCancelled)
		}
	default:
		t.Fatal("gate did not terminate")
	}
	if gate.Machine().State == launch.StateUnlocked {
		t.Error("cancelled gate unlocked")
	}
}

func TestBiometricGate_AuditFailureDoesNotBlockDecision(t *testing.T) {
	presenter := newMockChallengePresenter(answerManually)
	gate, events := newTestGate(presenter, GateHooks{})
	events.recordErr = errors.New("disk full")

	gate.Resolve(context.Background(), true)

	if presenter.count() != 1 {
		t.Errorf("challenges = %d, want 1", presenter.count())
	}
}
