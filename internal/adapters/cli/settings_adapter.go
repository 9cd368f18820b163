package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/launchgate/internal/ports/primary"
)

// SettingsAdapter translates settings commands to SettingsService calls.
type SettingsAdapter struct {
	service primary.SettingsService
	out     io.Writer
}

// NewSettingsAdapter creates a new SettingsAdapter with the given service.
func NewSettingsAdapter(service primary.SettingsService, out io.Writer) *SettingsAdapter {
	return &SettingsAdapter{
		service: service,
		out:     out,
	}
}

// Show displays the current settings.
func (a *SettingsAdapter) Show(ctx context.Context) error {
	settings, err := a.service.GetSettings(ctx)
	if err != nil {
		return err
	}
	a.print(*settings)
	return nil
}

// SetBiometric turns the launch lock on or off.
func (a *SettingsAdapter) SetBiometric(ctx context.Context, enabled bool) error {
	if err := a.service.SetBiometricEnabled(ctx, enabled); err != nil {
		return fmt.Errorf("failed to change lock: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Launch lock %s\n", onOff(enabled))
	return nil
}

// SetTheme changes the theme preference.
func (a *SettingsAdapter) SetTheme(ctx context.Context, theme string) error {
	if err := a.service.SetTheme(ctx, theme); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Theme set to %s\n", theme)
	return nil
}

// Enroll stores a new passphrase.
func (a *SettingsAdapter) Enroll(ctx context.Context, passphrase string) error {
	if err := a.service.Enroll(ctx, passphrase); err != nil {
		return fmt.Errorf("failed to enroll passphrase: %w", err)
	}
	fmt.Fprintln(a.out, "✓ Passphrase enrolled")
	return nil
}

// Watch prints settings on every change until ctx is done.
func (a *SettingsAdapter) Watch(ctx context.Context) error {
	stream, err := a.service.Watch(ctx)
	if err != nil {
		return err
	}
	for settings := range stream {
		a.print(settings)
	}
	return nil
}

func (a *SettingsAdapter) print(s primary.Settings) {
	lock := onOff(s.BiometricEnabled)
	if s.BiometricEnabled {
		lock = color.New(color.FgGreen).Sprint(lock)
	}
	if s.BiometricCorrupt {
		lock += color.New(color.FgRed).Sprint(" (stored value unreadable)")
	}
	enrolled := color.New(color.FgYellow).Sprint("no")
	if s.Enrolled {
		enrolled = "yes"
	}
	fmt.Fprintf(a.out, "Lock: %s  Theme: %s  Passphrase enrolled: %s\n", lock, s.Theme, enrolled)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
