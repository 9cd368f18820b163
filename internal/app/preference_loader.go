package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/launchgate/internal/ports/secondary"
)

// PreferenceLoader reads the lock flag once at launch.
type PreferenceLoader struct {
	store  secondary.PreferenceStore
	logger *slog.Logger
}

// NewPreferenceLoader creates a new PreferenceLoader.
func NewPreferenceLoader(store secondary.PreferenceStore, logger *slog.Logger) *PreferenceLoader {
	return &PreferenceLoader{store: store, logger: logger}
}

// Load returns the lock flag from the first snapshot of the store.
// Read failures never reach the caller: the flag defaults to false so a
// broken store cannot lock the user out.
func (l *PreferenceLoader) Load(ctx context.Context) bool {
	if l.store == nil {
		l.logger.Warn("preference store not initialized, lock disabled")
		return false
	}

	snap, err := l.store.Read(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false
		}
		l.logger.Warn("lock preference unavailable, lock disabled",
			"error", fmt.Errorf("%w: %w", ErrPreferenceRead, err))
		return false
	}
	if snap == nil {
		return false
	}
	if snap.BiometricCorrupt {
		l.logger.Warn("lock preference unavailable, lock disabled",
			"error", fmt.Errorf("%w: stored flag is not a boolean", ErrPreferenceRead))
		return false
	}

	return snap.BiometricEnabled
}
