package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/example/launchgate/internal/core/launch"
	"github.com/example/launchgate/internal/ctxutil"
	"github.com/example/launchgate/internal/ports/primary"
	"github.com/example/launchgate/internal/ports/secondary"
)

// LaunchSession coordinates one launch: splash hold, preference load, gate
// decision, and the post-unlock update check.
type LaunchSession struct {
	id      string
	loader  *PreferenceLoader
	splash  *SplashHold
	gate    *BiometricGate
	updates primary.UpdateService
	logger  *slog.Logger

	mu        sync.Mutex
	ctx       context.Context
	started   bool
	biometric bool

	checkOnce  sync.Once
	finishOnce sync.Once
	done       chan struct{}
	result     primary.LaunchResult
	err        error
}

// NewLaunchSession creates a session with its own gate and prompt guard.
func NewLaunchSession(id string, store secondary.PreferenceStore, presenter secondary.ChallengePresenter, updates primary.UpdateService, executor EffectExecutor, logger *slog.Logger) *LaunchSession {
	logger = logger.With("session_id", id)
	s := &LaunchSession{
		id:      id,
		loader:  NewPreferenceLoader(store, logger),
		splash:  NewSplashHold(),
		updates: updates,
		logger:  logger,
		ctx:     ctxutil.WithSessionID(context.Background(), id),
		done:    make(chan struct{}),
	}
	s.gate = NewBiometricGate(presenter, executor, GateHooks{
		OnUnlocked:   s.onUnlocked,
		OnTerminated: s.onTerminated,
	}, logger)
	return s
}

// ID returns the session identifier.
func (s *LaunchSession) ID() string {
	return s.id
}

// Start is the onLaunch signal. Only the first call has an effect.
func (s *LaunchSession) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	ctx = ctxutil.WithSessionID(ctx, s.id)
	s.ctx = ctx
	s.mu.Unlock()

	go func() {
		enabled := s.loader.Load(ctx)
		if ctx.Err() != nil {
			// Torn down before the read resolved: commit nothing.
			s.logger.Debug("launch abandoned before preference resolved")
			return
		}

		s.mu.Lock()
		s.biometric = enabled
		s.mu.Unlock()

		s.gate.Resolve(ctx, enabled)
		s.splash.Release()
	}()
}

// ShouldHoldSplash reports whether the splash must stay on screen.
func (s *LaunchSession) ShouldHoldSplash() bool {
	return s.splash.ShouldHold()
}

// SplashReleased is closed once the splash may go away.
func (s *LaunchSession) SplashReleased() <-chan struct{} {
	return s.splash.Released()
}

// State returns the current gate state.
func (s *LaunchSession) State() launch.State {
	return s.gate.State()
}

// Recompose is the presentation layer's redraw signal.
func (s *LaunchSession) Recompose() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	s.gate.Recompose(ctx)
}

// Wait blocks until the session reaches its outcome or ctx is done.
// An unlocked session returns after the post-unlock update check reported.
func (s *LaunchSession) Wait(ctx context.Context) (*primary.LaunchResult, error) {
	select {
	case <-s.done:
		result := s.result
		return &result, s.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Done is closed once the session has an outcome.
func (s *LaunchSession) Done() <-chan struct{} {
	return s.done
}

// OnForegroundRegain is the foreground-regain signal. It does not depend on
// the gate: a flow left over from an earlier process is resumed even while
// this session is still locked.
func (s *LaunchSession) OnForegroundRegain(ctx context.Context) primary.UpdateReport {
	return s.updates.ResumeStuckUpdate(ctxutil.WithSessionID(ctx, s.id))
}

func (s *LaunchSession) onUnlocked(ctx context.Context) {
	s.checkOnce.Do(func() {
		// Content is visible from here on; the check runs alongside it.
		go func() {
			if err := launch.CanCheckForUpdate(s.gate.State()).Error(); err != nil {
				s.logger.Warn("skipping update check", "error", err)
				s.finish(primary.LaunchResult{ContentShown: true}, nil)
				return
			}
			report := s.updates.CheckForUpdate(ctx)
			s.finish(primary.LaunchResult{ContentShown: true, Update: &report}, nil)
		}()
	})
}

func (s *LaunchSession) onTerminated(ctx context.Context, reason launch.Outcome) {
	err := primary.ErrChallengeFailed
	if reason == launch.OutcomeUserCancelled {
		err = primary.ErrChallengeCancelled
	}
	s.finish(primary.LaunchResult{Terminated: true, TerminationReason: string(reason)}, err)
}

func (s *LaunchSession) finish(result primary.LaunchResult, err error) {
	s.finishOnce.Do(func() {
		// A decision implies the preference resolved.
		s.splash.Release()

		s.mu.Lock()
		result.BiometricEnabled = s.biometric
		s.mu.Unlock()

		result.SessionID = s.id
		result.State = s.gate.State()
		s.result = result
		s.err = err
		close(s.done)
	})
}

// Ensure LaunchSession implements the interface
var _ primary.LaunchSession = (*LaunchSession)(nil)
