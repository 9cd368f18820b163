package primary

import (
	"context"

	"github.com/example/launchgate/internal/core/preference"
)

// SettingsService defines the primary port for the settings surface.
// Changes never re-lock a session that is already running.
type SettingsService interface {
	// GetSettings reads the current settings.
	GetSettings(ctx context.Context) (*Settings, error)

	// SetBiometricEnabled changes the lock flag after a passed challenge.
	SetBiometricEnabled(ctx context.Context, enabled bool) error

	// SetTheme changes the theme preference.
	SetTheme(ctx context.Context, theme string) error

	// Enroll stores a new passphrase authenticator.
	Enroll(ctx context.Context, passphrase string) error

	// Watch streams settings until ctx is done.
	Watch(ctx context.Context) (<-chan Settings, error)
}

// Settings is the user-visible settings state.
type Settings struct {
	BiometricEnabled bool
	// BiometricCorrupt means the stored flag is unreadable and reads as off.
	BiometricCorrupt bool
	Theme            preference.Theme
	Enrolled         bool
}
