package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/example/launchgate/internal/adapters/sqlite"
	"github.com/example/launchgate/internal/core/preference"
)

func TestPreferenceRepository_Read_Defaults(t *testing.T) {
	repo := sqlite.NewPreferenceRepository(setupTestDB(t))

	snap, err := repo.Read(context.Background())
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if snap.BiometricEnabled {
		t.Error("expected lock disabled by default")
	}
	if snap.Theme != string(preference.ThemeSystem) {
		t.Errorf("expected theme %q, got %q", preference.ThemeSystem, snap.Theme)
	}
	if snap.PassphraseHash != "" {
		t.Errorf("expected no passphrase hash, got %q", snap.PassphraseHash)
	}
}

func TestPreferenceRepository_Read_ParsesFlag(t *testing.T) {
	tests := []struct {
		stored      string
		want        bool
		wantCorrupt bool
	}{
		{"true", true, false},
		{"false", false, false},
		{"1", true, false},
		{"0", false, false},
		{"yes", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.stored, func(t *testing.T) {
			db := setupTestDB(t)
			seedPreference(t, db, preference.KeyBiometricAuth, tt.stored)
			repo := sqlite.NewPreferenceRepository(db)

			snap, err := repo.Read(context.Background())
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if snap.BiometricEnabled != tt.want {
				t.Errorf("expected %v, got %v", tt.want, snap.BiometricEnabled)
			}
			if snap.BiometricCorrupt != tt.wantCorrupt {
				t.Errorf("BiometricCorrupt = %v, want %v", snap.BiometricCorrupt, tt.wantCorrupt)
			}
		})
	}
}

func TestPreferenceRepository_SetBiometricEnabled_RepairsCorruptFlag(t *testing.T) {
	db := setupTestDB(t)
	seedPreference(t, db, preference.KeyBiometricAuth, "garbage")
	repo := sqlite.NewPreferenceRepository(db)
	ctx := context.Background()

	if err := repo.SetBiometricEnabled(ctx, false); err != nil {
		t.Fatalf("SetBiometricEnabled failed: %v", err)
	}
	snap, err := repo.Read(ctx)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if snap.BiometricCorrupt || snap.BiometricEnabled {
		t.Errorf("expected a clean disabled flag, got %+v", snap)
	}
}

func TestPreferenceRepository_SetAndRead(t *testing.T) {
	repo := sqlite.NewPreferenceRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.SetBiometricEnabled(ctx, true); err != nil {
		t.Fatalf("SetBiometricEnabled failed: %v", err)
	}
	if err := repo.SetTheme(ctx, "DARK"); err != nil {
		t.Fatalf("SetTheme failed: %v", err)
	}
	if err := repo.SetPassphraseHash(ctx, "$2a$10$abc"); err != nil {
		t.Fatalf("SetPassphraseHash failed: %v", err)
	}
	// Overwrite, not duplicate.
	if err := repo.SetTheme(ctx, "LIGHT"); err != nil {
		t.Fatalf("SetTheme failed: %v", err)
	}

	snap, err := repo.Read(ctx)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !snap.BiometricEnabled || snap.Theme != "LIGHT" || snap.PassphraseHash != "$2a$10$abc" {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}

func TestPreferenceRepository_Observe(t *testing.T) {
	repo := sqlite.NewPreferenceRepository(setupTestDB(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := repo.Observe(ctx)
	if err != nil {
		t.Fatalf("Observe failed: %v", err)
	}

	first := receive(t, stream)
	if first.BiometricEnabled {
		t.Error("expected initial snapshot with lock disabled")
	}

	if err := repo.SetBiometricEnabled(ctx, true); err != nil {
		t.Fatalf("SetBiometricEnabled failed: %v", err)
	}
	if next := receive(t, stream); !next.BiometricEnabled {
		t.Error("expected snapshot with lock enabled")
	}

	cancel()
	select {
	case _, ok := <-stream:
		if ok {
			// One buffered value may still drain before the close.
			<-stream
		}
	case <-time.After(2 * time.Second):
		t.Fatal("stream not closed after cancel")
	}
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for value")
		var zero T
		return zero
	}
}
