// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/example/launchgate/internal/core/preference"
	"github.com/example/launchgate/internal/ports/secondary"
)

// DefaultObservePoll is how often Observe looks for writes made by other
// processes sharing the database file.
const DefaultObservePoll = 500 * time.Millisecond

// PreferenceRepository implements secondary.PreferenceStore with SQLite.
type PreferenceRepository struct {
	db   *sql.DB
	poll time.Duration

	mu          sync.Mutex
	subscribers map[chan struct{}]struct{}
}

// NewPreferenceRepository creates a new SQLite preference repository.
func NewPreferenceRepository(db *sql.DB) *PreferenceRepository {
	return &PreferenceRepository{
		db:          db,
		poll:        DefaultObservePoll,
		subscribers: make(map[chan struct{}]struct{}),
	}
}

// Read returns the current snapshot. Missing keys take their defaults;
// a stored flag that is not a boolean reads as disabled and is marked
// corrupt so it can be overwritten.
func (r *PreferenceRepository) Read(ctx context.Context) (*secondary.PreferenceSnapshot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key, value FROM preferences WHERE key IN (?, ?, ?)`,
		preference.KeyBiometricAuth, preference.KeyTheme, preference.KeyLockPassphraseHash,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}
	defer rows.Close()

	snap := &secondary.PreferenceSnapshot{Theme: string(preference.ThemeSystem)}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		switch key {
		case preference.KeyBiometricAuth:
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				snap.BiometricCorrupt = true
				continue
			}
			snap.BiometricEnabled = enabled
		case preference.KeyTheme:
			snap.Theme = value
		case preference.KeyLockPassphraseHash:
			snap.PassphraseHash = value
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}

	return snap, nil
}

// Observe emits the current snapshot, then every distinct snapshot after it.
// Writes through this repository are seen immediately, writes from other
// processes on the next poll.
func (r *PreferenceRepository) Observe(ctx context.Context) (<-chan secondary.PreferenceSnapshot, error) {
	first, err := r.Read(ctx)
	if err != nil {
		return nil, err
	}

	notify := make(chan struct{}, 1)
	r.mu.Lock()
	r.subscribers[notify] = struct{}{}
	r.mu.Unlock()

	out := make(chan secondary.PreferenceSnapshot, 1)
	out <- *first

	go func() {
		defer close(out)
		defer func() {
			r.mu.Lock()
			delete(r.subscribers, notify)
			r.mu.Unlock()
		}()

		ticker := time.NewTicker(r.poll)
		defer ticker.Stop()

		last := *first
		for {
			select {
			case <-ctx.Done():
				return
			case <-notify:
			case <-ticker.C:
			}

			snap, err := r.Read(ctx)
			if err != nil {
				// Unreadable: keep the last good value and retry.
				continue
			}
			if *snap == last {
				continue
			}
			last = *snap
			select {
			case out <- last:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// SetBiometricEnabled writes the lock flag.
func (r *PreferenceRepository) SetBiometricEnabled(ctx context.Context, enabled bool) error {
	return r.set(ctx, preference.KeyBiometricAuth, strconv.FormatBool(enabled))
}

// SetTheme writes the theme preference.
func (r *PreferenceRepository) SetTheme(ctx context.Context, theme string) error {
	return r.set(ctx, preference.KeyTheme, theme)
}

// SetPassphraseHash writes the enrolled authenticator hash.
func (r *PreferenceRepository) SetPassphraseHash(ctx context.Context, hash string) error {
	return r.set(ctx, preference.KeyLockPassphraseHash, hash)
}

func (r *PreferenceRepository) set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write preference %s: %w", key, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for sub := range r.subscribers {
		select {
		case sub <- struct{}{}:
		default:
		}
	}
	return nil
}

// Ensure PreferenceRepository implements the interface
var _ secondary.PreferenceStore = (*PreferenceRepository)(nil)
