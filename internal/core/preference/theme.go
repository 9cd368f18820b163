// Package preference contains the pure rules for user preferences.
package preference

import "strings"

// Theme is the user's display theme choice.
type Theme string

const (
	ThemeSystem Theme = "SYSTEM"
	ThemeLight  Theme = "LIGHT"
	ThemeDark   Theme = "DARK"
)

// Preference keys as stored in the preference store.
const (
	KeyBiometricAuth      = "biometric_auth"
	KeyTheme              = "theme_preference"
	KeyLockPassphraseHash = "lock_passphrase_hash"
)

// ParseTheme maps a stored or user-supplied value to a Theme.
// Unknown values fall back to ThemeSystem.
func ParseTheme(s string) Theme {
	switch Theme(strings.ToUpper(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight
	case ThemeDark:
		return ThemeDark
	default:
		return ThemeSystem
	}
}

// ValidTheme reports whether s names a theme exactly (case-insensitive).
func ValidTheme(s string) bool {
	switch Theme(strings.ToUpper(strings.TrimSpace(s))) {
	case ThemeSystem, ThemeLight, ThemeDark:
		return true
	}
	return false
}
