package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Defaults for a missing config file or omitted fields.
const (
	DefaultLogLevel          = "info"
	DefaultUpdateRequestCode = 100
	DefaultChallengeAttempts = 3
	DefaultSplashTickMS      = 16
)

// dirName is the per-directory state folder holding config and database.
const dirName = ".launchgate"

// Config represents the flat launchgate configuration
type Config struct {
	Version           string `json:"version"`
	DBPath            string `json:"db_path,omitempty"`   // defaults to .launchgate/launchgate.db
	LogLevel          string `json:"log_level,omitempty"` // debug, info, warn, error
	UpdateRequestCode int    `json:"update_request_code,omitempty"`
	ChallengeAttempts int    `json:"challenge_attempts,omitempty"`
	SplashTickMS      int    `json:"splash_tick_ms,omitempty"`
}

// Default returns the configuration used when dir has no config file.
func Default(dir string) *Config {
	return &Config{
		Version:           "1",
		DBPath:            filepath.Join(dir, dirName, "launchgate.db"),
		LogLevel:          DefaultLogLevel,
		UpdateRequestCode: DefaultUpdateRequestCode,
		ChallengeAttempts: DefaultChallengeAttempts,
		SplashTickMS:      DefaultSplashTickMS,
	}
}

// LoadConfig reads .launchgate/config.json from the specified directory.
// A missing file yields Default(dir); omitted fields take their defaults.
func LoadConfig(dir string) (*Config, error) {
	cfg := Default(dir)

	path := filepath.Join(dir, dirName, "config.json")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Fields present but zero fall back too.
	defaults := Default(dir)
	if cfg.DBPath == "" {
		cfg.DBPath = defaults.DBPath
	} else if !filepath.IsAbs(cfg.DBPath) {
		cfg.DBPath = filepath.Join(dir, dirName, cfg.DBPath)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if cfg.UpdateRequestCode == 0 {
		cfg.UpdateRequestCode = defaults.UpdateRequestCode
	}
	if cfg.ChallengeAttempts <= 0 {
		cfg.ChallengeAttempts = defaults.ChallengeAttempts
	}
	if cfg.SplashTickMS <= 0 {
		cfg.SplashTickMS = defaults.SplashTickMS
	}

	return cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	stateDir := filepath.Join(dir, dirName)
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s dir: %w", dirName, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(stateDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// SplashTick returns the frame interval for splash polling.
func (c *Config) SplashTick() time.Duration {
	return time.Duration(c.SplashTickMS) * time.Millisecond
}

// DefaultDir returns the directory used when none is given: the user's home.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return home, nil
}
