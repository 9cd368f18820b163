package preference

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

// ToggleContext provides context for changing the biometric lock flag.
type ToggleContext struct {
	CurrentlyEnabled bool
	WantEnabled      bool
	CanAuthenticate  bool
}

// CanSetBiometric evaluates whether the lock flag may be changed.
// Rule: enabling requires an enrolled authenticator. Disabling is always allowed.
// Setting the flag to its current value is a no-op and allowed.
func CanSetBiometric(ctx ToggleContext) GuardResult {
	if ctx.WantEnabled && !ctx.CurrentlyEnabled && !ctx.CanAuthenticate {
		return GuardResult{
			Allowed: false,
			Reason:  "no authenticator enrolled - run: launchgate settings enroll",
		}
	}
	return GuardResult{Allowed: true}
}

// NeedsChallenge reports whether changing the flag must be confirmed by a
// passed challenge first. Any actual change does, as long as there is an
// authenticator to challenge with.
func NeedsChallenge(ctx ToggleContext) bool {
	return ctx.CurrentlyEnabled != ctx.WantEnabled && ctx.CanAuthenticate
}

// CanEnroll evaluates whether a passphrase is acceptable for enrollment.
func CanEnroll(passphrase string) GuardResult {
	if len(passphrase) < MinPassphraseLength {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("passphrase must be at least %d characters", MinPassphraseLength),
		}
	}
	return GuardResult{Allowed: true}
}

// MinPassphraseLength is the shortest passphrase accepted by CanEnroll.
const MinPassphraseLength = 4
