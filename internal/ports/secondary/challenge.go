package secondary

import "context"

// ChallengeCallbacks receive the outcome of one challenge.
// Exactly one of them is called, possibly on another goroutine.
type ChallengeCallbacks struct {
	OnSuccess    func()
	OnUserCancel func()
	OnError      func(err error)
}

// ChallengePresenter defines the secondary port for the lock challenge
// (a biometric prompt on devices, a passphrase prompt on terminals).
type ChallengePresenter interface {
	// PresentChallenge starts a challenge and returns immediately.
	// Cancelling ctx must surface as OnUserCancel.
	PresentChallenge(ctx context.Context, cb ChallengeCallbacks)

	// CanAuthenticate reports whether an authenticator is enrolled.
	CanAuthenticate(ctx context.Context) bool
}
