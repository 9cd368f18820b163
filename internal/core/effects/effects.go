// Package effects defines effect types as data structures representing I/O operations.
// This is the foundation of the Functional Core / Imperative Shell pattern.
// Effects are pure data - they describe what should happen, not how.
package effects

// Effect is the base interface for all effects.
// Effects represent I/O operations as data that can be interpreted by the shell.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// LogEffect represents a logging operation.
type LogEffect struct {
	Level   string // "debug", "info", "warn", "error"
	Message string
	Fields  map[string]any
}

func (e LogEffect) EffectType() string { return "log" }

// PersistEffect represents a persistence operation.
type PersistEffect struct {
	Entity    string // e.g., "launch_event"
	Operation string // e.g., "create"
	Data      any    // The entity data
}

func (e PersistEffect) EffectType() string { return "persist" }

// ChallengeEffect asks the shell to present the lock challenge.
// The gate emits it at most once per Locked entry.
type ChallengeEffect struct{}

func (e ChallengeEffect) EffectType() string { return "challenge" }

// ContentEffect signals that app content may now be shown.
type ContentEffect struct{}

func (e ContentEffect) EffectType() string { return "content" }

// TerminateEffect signals that the hosting session must close.
type TerminateEffect struct {
	Reason string
}

func (e TerminateEffect) EffectType() string { return "terminate" }

// UpdateFlowEffect represents starting an in-app update flow on the platform.
// Planners leave CorrelationID empty; the shell assigns one before execution.
type UpdateFlowEffect struct {
	FlowType      string // "immediate"
	Trigger       string // "check" or "resume"
	CorrelationID string
}

func (e UpdateFlowEffect) EffectType() string { return "update_flow" }
