// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import (
	"context"
	"errors"

	"github.com/example/launchgate/internal/core/launch"
)

// Termination causes returned by LaunchSession.Wait.
var (
	ErrChallengeCancelled = errors.New("lock challenge cancelled")
	ErrChallengeFailed    = errors.New("lock challenge failed")
)

// LaunchService defines the primary port for launching the application.
type LaunchService interface {
	// NewSession creates a launch session. Each session owns its own gate
	// and prompt guard; sessions never share them.
	NewSession(ctx context.Context) LaunchSession

	// History lists recorded launch events.
	History(ctx context.Context, filters HistoryFilters) ([]*LaunchEvent, error)
}

// LaunchSession is one launch, from process start to the first unlocked content.
type LaunchSession interface {
	// ID returns the session identifier.
	ID() string

	// Start is the onLaunch signal. It returns immediately; the preference
	// read runs in the background until ctx is done.
	Start(ctx context.Context)

	// ShouldHoldSplash reports whether the splash must stay on screen.
	ShouldHoldSplash() bool

	// State returns the current gate state.
	State() launch.State

	// Recompose is the presentation layer's redraw signal.
	Recompose()

	// Wait blocks until content is shown or the session terminates.
	// A terminated session returns ErrChallengeCancelled or ErrChallengeFailed.
	Wait(ctx context.Context) (*LaunchResult, error)

	// OnForegroundRegain is the foreground-regain signal.
	OnForegroundRegain(ctx context.Context) UpdateReport
}

// LaunchResult describes how a session ended.
type LaunchResult struct {
	SessionID         string
	State             launch.State
	BiometricEnabled  bool
	ContentShown      bool
	Terminated        bool
	TerminationReason string
	Update            *UpdateReport // nil unless the post-unlock check ran
}

// HistoryFilters contains filter options for listing launch events.
type HistoryFilters struct {
	SessionID string
	Limit     int
}

// LaunchEvent represents a recorded launch event.
type LaunchEvent struct {
	ID        int64
	SessionID string
	Kind      string
	Detail    string
	CreatedAt string
}
