package launch

import "fmt"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// ChallengeContext provides context for the challenge request guard.
type ChallengeContext struct {
	State           State
	PromptRequested bool
	Terminated      bool
}

// CanRequestChallenge evaluates whether a challenge may be requested now.
// Rule: only while Locked, only once per Locked entry, never after termination.
func CanRequestChallenge(ctx ChallengeContext) GuardResult {
	if ctx.State != StateLocked {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("challenge can only be requested while locked (state: %s)", ctx.State),
		}
	}
	if ctx.Terminated {
		return GuardResult{
			Allowed: false,
			Reason:  "session is terminating",
		}
	}
	if ctx.PromptRequested {
		return GuardResult{
			Allowed: false,
			Reason:  "challenge already requested for this launch",
		}
	}
	return GuardResult{Allowed: true}
}

// CanCheckForUpdate evaluates whether the update check may run.
// Rule: the update check only runs once the session is unlocked.
func CanCheckForUpdate(state State) GuardResult {
	if state != StateUnlocked {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("update check requires an unlocked session (state: %s)", state),
		}
	}
	return GuardResult{Allowed: true}
}
