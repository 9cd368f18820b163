// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// business logic to services.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/example/launchgate/internal/core/launch"
	"github.com/example/launchgate/internal/ports/primary"
)

// LaunchAdapter drives a launch session the way a UI host would: it polls
// the splash hold on every frame and recomposes until the session decides.
type LaunchAdapter struct {
	service primary.LaunchService
	out     io.Writer
}

// NewLaunchAdapter creates a new LaunchAdapter with the given service.
func NewLaunchAdapter(service primary.LaunchService, out io.Writer) *LaunchAdapter {
	return &LaunchAdapter{
		service: service,
		out:     out,
	}
}

// LaunchOptions controls one launch.
type LaunchOptions struct {
	// Tick is the frame interval.
	Tick time.Duration
	// Regains is the number of foreground-regain signals sent after the
	// session decided.
	Regains int
}

// Launch runs one session to its outcome.
func (a *LaunchAdapter) Launch(ctx context.Context, opts LaunchOptions) (*primary.LaunchResult, error) {
	if opts.Tick <= 0 {
		opts.Tick = 16 * time.Millisecond
	}

	session := a.service.NewSession(ctx)
	session.Start(ctx)
	fmt.Fprintf(a.out, "Session %s\n", session.ID())

	type waitResult struct {
		result *primary.LaunchResult
		err    error
	}
	waited := make(chan waitResult, 1)
	go func() {
		result, err := session.Wait(ctx)
		waited <- waitResult{result, err}
	}()

	ticker := time.NewTicker(opts.Tick)
	defer ticker.Stop()

	frames := 0
	splash := true
	last := launch.State("")
	var outcome waitResult

	// frame mirrors one redraw. The last frame only reports, since the
	// session has already decided.
	frame := func(final bool) {
		frames++
		if splash && !session.ShouldHoldSplash() {
			splash = false
			fmt.Fprintf(a.out, "Splash released after %d frame(s)\n", frames)
		}
		if splash {
			return
		}

		if !final {
			session.Recompose()
		}
		if state := session.State(); state != last {
			last = state
			fmt.Fprintf(a.out, "State: %s\n", colorState(state))
		}
	}

loop:
	for {
		select {
		case outcome = <-waited:
			if outcome.result != nil {
				frame(true)
			}
			break loop
		case <-ticker.C:
			frame(false)
		}
	}

	if outcome.err != nil && outcome.result == nil {
		return nil, outcome.err
	}

	a.printResult(outcome.result)

	for i := 0; i < opts.Regains; i++ {
		report := session.OnForegroundRegain(ctx)
		fmt.Fprintf(a.out, "Foreground regain %d: ", i+1)
		printReport(a.out, report)
	}

	return outcome.result, outcome.err
}

func (a *LaunchAdapter) printResult(result *primary.LaunchResult) {
	if result.Terminated {
		fmt.Fprintf(a.out, "%s Session terminated (%s)\n", color.New(color.FgRed).Sprint("✗"), result.TerminationReason)
		return
	}

	lock := "off"
	if result.BiometricEnabled {
		lock = "on"
	}
	fmt.Fprintf(a.out, "%s Content shown (lock %s)\n", color.New(color.FgGreen).Sprint("✓"), lock)
	if result.Update != nil {
		fmt.Fprint(a.out, "Update check: ")
		printReport(a.out, *result.Update)
	}
}

// History lists recorded launch events.
func (a *LaunchAdapter) History(ctx context.Context, sessionID string, limit int) error {
	events, err := a.service.History(ctx, primary.HistoryFilters{
		SessionID: sessionID,
		Limit:     limit,
	})
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Fprintln(a.out, "No launch events found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-6s %-38s %-22s %-26s %s\n", "ID", "SESSION", "KIND", "DETAIL", "AT")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────────────────────────────────────────")
	for _, e := range events {
		fmt.Fprintf(a.out, "%-6d %-38s %-22s %-26s %s\n", e.ID, e.SessionID, e.Kind, e.Detail, e.CreatedAt)
	}
	fmt.Fprintln(a.out)

	return nil
}

// IsTermination reports whether err ended a session at the lock challenge.
func IsTermination(err error) bool {
	return errors.Is(err, primary.ErrChallengeCancelled) || errors.Is(err, primary.ErrChallengeFailed)
}

func colorState(state launch.State) string {
	switch state {
	case launch.StateUnlocked:
		return color.New(color.FgGreen).Sprint(state)
	case launch.StateLocked:
		return color.New(color.FgYellow).Sprint(state)
	default:
		return string(state)
	}
}
