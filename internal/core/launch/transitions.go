// Package launch contains the pure business logic for the launch gate.
// This is part of the Functional Core - no I/O, only pure functions.
package launch

import "github.com/example/launchgate/internal/core/effects"

// State represents the possible states of a launch session.
type State string

const (
	StateInitializing              State = "initializing"
	StateAwaitingBiometricDecision State = "awaiting_biometric_decision"
	StateLocked                    State = "locked"
	StateUnlocked                  State = "unlocked"
)

// Outcome is the result of a single challenge invocation.
type Outcome string

const (
	OutcomeSuccess       Outcome = "success"
	OutcomeUserCancelled Outcome = "user_cancelled"
	OutcomeError         Outcome = "error"
)

// Event kinds recorded in the launch event log.
const (
	EventPreferenceResolved = "preference_resolved"
	EventDecision           = "decision"
	EventChallengeRequested = "challenge_requested"
	EventChallengeFinished  = "challenge_finished"
)

// Event is an input to the launch state machine.
type Event interface {
	EventType() string
}

// PreferenceResolved is delivered when the preference loader has an answer.
// It may be delivered more than once; only the first one has an effect.
type PreferenceResolved struct {
	Enabled bool
}

func (e PreferenceResolved) EventType() string { return "preference_resolved" }

// Recomposed is delivered whenever the presentation layer redraws.
type Recomposed struct{}

func (e Recomposed) EventType() string { return "recomposed" }

// ChallengeFinished carries the outcome reported by the challenge collaborator.
type ChallengeFinished struct {
	Outcome Outcome
}

func (e ChallengeFinished) EventType() string { return "challenge_finished" }

// Machine is the complete state of one launch session's gate.
// PromptRequested is the prompt guard: it is only ever reset by
// constructing a new Machine.
type Machine struct {
	State           State
	PromptRequested bool
	Terminated      bool
}

// NewMachine returns the machine in its initial state.
func NewMachine() Machine {
	return Machine{State: StateInitializing}
}

// ContentVisible reports whether app content may be shown.
func (m Machine) ContentVisible() bool {
	return m.State == StateUnlocked
}

// Apply is the single transition function of the gate. It returns the next
// machine and the effects the shell must run. Events that do not apply to
// the current state are no-ops, which makes redundant deliveries harmless.
func Apply(m Machine, ev Event) (Machine, []effects.Effect) {
	switch e := ev.(type) {
	case PreferenceResolved:
		return resolve(m, e.Enabled)
	case Recomposed:
		return requestChallenge(m)
	case ChallengeFinished:
		return finishChallenge(m, e.Outcome)
	default:
		return m, nil
	}
}

func resolve(m Machine, enabled bool) (Machine, []effects.Effect) {
	if m.State != StateInitializing {
		return m, nil
	}
	m.State = StateAwaitingBiometricDecision

	effs := []effects.Effect{
		record(EventPreferenceResolved, boolDetail(enabled)),
	}

	if !enabled {
		m.State = StateUnlocked
		effs = append(effs,
			record(EventDecision, string(StateUnlocked)),
			effects.LogEffect{Level: "debug", Message: "biometric lock disabled, unlocking"},
			effects.ContentEffect{},
		)
		return m, effs
	}

	m.State = StateLocked
	effs = append(effs,
		record(EventDecision, string(StateLocked)),
		effects.LogEffect{Level: "debug", Message: "biometric lock enabled, locking"},
	)
	m, challenge := requestChallenge(m)
	return m, append(effs, challenge...)
}

func requestChallenge(m Machine) (Machine, []effects.Effect) {
	guard := CanRequestChallenge(ChallengeContext{
		State:           m.State,
		PromptRequested: m.PromptRequested,
		Terminated:      m.Terminated,
	})
	if !guard.Allowed {
		return m, nil
	}
	m.PromptRequested = true
	return m, []effects.Effect{
		record(EventChallengeRequested, ""),
		effects.ChallengeEffect{},
	}
}

func finishChallenge(m Machine, outcome Outcome) (Machine, []effects.Effect) {
	// Only the outcome of the one outstanding challenge counts.
	if m.State != StateLocked || !m.PromptRequested || m.Terminated {
		return m, nil
	}

	if outcome == OutcomeSuccess {
		m.State = StateUnlocked
		return m, []effects.Effect{
			record(EventChallengeFinished, string(outcome)),
			effects.ContentEffect{},
		}
	}

	// Cancelled and failed challenges end the session. No retry.
	if outcome != OutcomeUserCancelled {
		outcome = OutcomeError
	}
	m.Terminated = true
	return m, []effects.Effect{
		record(EventChallengeFinished, string(outcome)),
		effects.LogEffect{Level: "info", Message: "challenge not passed, terminating session", Fields: map[string]any{"outcome": string(outcome)}},
		effects.TerminateEffect{Reason: string(outcome)},
	}
}

func record(kind, detail string) effects.PersistEffect {
	return effects.PersistEffect{
		Entity:    "launch_event",
		Operation: "create",
		Data: map[string]string{
			"kind":   kind,
			"detail": detail,
		},
	}
}

func boolDetail(v bool) string {
	if v {
		return "enabled"
	}
	return "disabled"
}
