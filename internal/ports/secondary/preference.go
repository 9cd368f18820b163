// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// PreferenceSnapshot is one consistent read of the preference store.
type PreferenceSnapshot struct {
	BiometricEnabled bool
	// BiometricCorrupt is set when the stored flag could not be parsed.
	// BiometricEnabled is then false.
	BiometricCorrupt bool
	Theme            string
	PassphraseHash   string
}

// PreferenceStore defines the secondary port for durable user preferences.
// The launch gate only ever calls Read; the settings surface writes and observes.
type PreferenceStore interface {
	// Read returns the current snapshot once.
	Read(ctx context.Context) (*PreferenceSnapshot, error)

	// Observe emits the current snapshot, then one snapshot per change.
	// The channel is closed when ctx is done.
	Observe(ctx context.Context) (<-chan PreferenceSnapshot, error)

	// SetBiometricEnabled writes the lock flag.
	SetBiometricEnabled(ctx context.Context, enabled bool) error

	// SetTheme writes the theme preference.
	SetTheme(ctx context.Context, theme string) error

	// SetPassphraseHash writes the enrolled authenticator hash.
	SetPassphraseHash(ctx context.Context, hash string) error
}
