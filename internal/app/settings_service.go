package app

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/example/launchgate/internal/core/preference"
	"github.com/example/launchgate/internal/ports/primary"
	"github.com/example/launchgate/internal/ports/secondary"
)

// SettingsServiceImpl implements the SettingsService interface.
type SettingsServiceImpl struct {
	store     secondary.PreferenceStore
	presenter secondary.ChallengePresenter
	logger    *slog.Logger
}

// NewSettingsService creates a new SettingsService with injected dependencies.
func NewSettingsService(store secondary.PreferenceStore, presenter secondary.ChallengePresenter, logger *slog.Logger) *SettingsServiceImpl {
	return &SettingsServiceImpl{
		store:     store,
		presenter: presenter,
		logger:    logger,
	}
}

// GetSettings reads the current settings.
func (s *SettingsServiceImpl) GetSettings(ctx context.Context) (*primary.Settings, error) {
	snap, err := s.store.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	settings := toSettings(*snap)
	return &settings, nil
}

// SetBiometricEnabled changes the lock flag. An actual change must be
// confirmed by a passed challenge first. A corrupt stored flag counts as
// disabled and is always rewritten.
func (s *SettingsServiceImpl) SetBiometricEnabled(ctx context.Context, enabled bool) error {
	snap, err := s.store.Read(ctx)
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	toggle := preference.ToggleContext{
		CurrentlyEnabled: snap.BiometricEnabled,
		WantEnabled:      enabled,
		CanAuthenticate:  s.presenter.CanAuthenticate(ctx),
	}
	if err := preference.CanSetBiometric(toggle).Error(); err != nil {
		return err
	}
	if toggle.CurrentlyEnabled == toggle.WantEnabled && !snap.BiometricCorrupt {
		return nil
	}

	if preference.NeedsChallenge(toggle) {
		if err := s.confirm(ctx); err != nil {
			return err
		}
	}

	if err := s.store.SetBiometricEnabled(ctx, enabled); err != nil {
		return fmt.Errorf("failed to save lock preference: %w", err)
	}
	s.logger.Info("lock preference changed", "enabled", enabled)
	return nil
}

// SetTheme changes the theme preference.
func (s *SettingsServiceImpl) SetTheme(ctx context.Context, theme string) error {
	if !preference.ValidTheme(theme) {
		return fmt.Errorf("unknown theme %q (want system, light or dark)", theme)
	}
	if err := s.store.SetTheme(ctx, string(preference.ParseTheme(theme))); err != nil {
		return fmt.Errorf("failed to save theme preference: %w", err)
	}
	return nil
}

// Enroll stores a new passphrase authenticator. Replacing an existing one
// requires passing a challenge with the old one.
func (s *SettingsServiceImpl) Enroll(ctx context.Context, passphrase string) error {
	if err := preference.CanEnroll(passphrase).Error(); err != nil {
		return err
	}

	if s.presenter.CanAuthenticate(ctx) {
		if err := s.confirm(ctx); err != nil {
			return err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash passphrase: %w", err)
	}
	if err := s.store.SetPassphraseHash(ctx, string(hash)); err != nil {
		return fmt.Errorf("failed to save passphrase: %w", err)
	}
	return nil
}

// Watch streams settings until ctx is done.
func (s *SettingsServiceImpl) Watch(ctx context.Context) (<-chan primary.Settings, error) {
	snaps, err := s.store.Observe(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to observe settings: %w", err)
	}

	out := make(chan primary.Settings)
	go func() {
		defer close(out)
		for snap := range snaps {
			select {
			case out <- toSettings(snap):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// confirm runs one challenge and waits for its outcome.
func (s *SettingsServiceImpl) confirm(ctx context.Context) error {
	outcome := make(chan error, 1)
	send := func(err error) {
		select {
		case outcome <- err:
		default:
		}
	}

	s.presenter.PresentChallenge(ctx, secondary.ChallengeCallbacks{
		OnSuccess:    func() { send(nil) },
		OnUserCancel: func() { send(primary.ErrChallengeCancelled) },
		OnError:      func(err error) { send(fmt.Errorf("%w: %w", primary.ErrChallengeFailed, err)) },
	})

	select {
	case err := <-outcome:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func toSettings(snap secondary.PreferenceSnapshot) primary.Settings {
	return primary.Settings{
		BiometricEnabled: snap.BiometricEnabled,
		BiometricCorrupt: snap.BiometricCorrupt,
		Theme:            preference.ParseTheme(snap.Theme),
		Enrolled:         snap.PassphraseHash != "",
	}
}

// Ensure SettingsServiceImpl implements the interface
var _ primary.SettingsService = (*SettingsServiceImpl)(nil)
