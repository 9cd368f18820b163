// Package update contains the pure business logic for in-app update supervision.
// Planners look at the current availability and decide what to do about it;
// they never remember what happened on a previous call.
package update

import (
	"fmt"

	"github.com/example/launchgate/internal/core/effects"
)

// AvailabilityKind is the discriminator of Availability.
type AvailabilityKind string

const (
	KindNoUpdate                  AvailabilityKind = "no_update"
	KindUpdateAvailable           AvailabilityKind = "update_available"
	KindImmediateUpdateInProgress AvailabilityKind = "immediate_update_in_progress"
)

// Availability is what the platform reports about pending updates.
// SupportsImmediate is only meaningful for KindUpdateAvailable.
type Availability struct {
	Kind              AvailabilityKind
	SupportsImmediate bool
	Version           string
}

// NoUpdate returns an availability with nothing pending.
func NoUpdate() Availability {
	return Availability{Kind: KindNoUpdate}
}

// UpdateAvailable returns an availability with a pending update.
func UpdateAvailable(version string, supportsImmediate bool) Availability {
	return Availability{Kind: KindUpdateAvailable, Version: version, SupportsImmediate: supportsImmediate}
}

// ImmediateUpdateInProgress returns the availability of a started but unfinished flow.
func ImmediateUpdateInProgress(version string) Availability {
	return Availability{Kind: KindImmediateUpdateInProgress, Version: version}
}

func (a Availability) String() string {
	switch a.Kind {
	case KindUpdateAvailable:
		return fmt.Sprintf("%s(immediate=%t)", a.Kind, a.SupportsImmediate)
	case "":
		return string(KindNoUpdate)
	default:
		return string(a.Kind)
	}
}

// FlowType is the kind of update flow requested from the platform.
type FlowType string

const (
	FlowImmediate FlowType = "immediate"
)

// FlowRequest is handed to the platform to start an update flow.
// CorrelationID and RequestCode only route the flow's result channel.
type FlowRequest struct {
	Type          FlowType
	CorrelationID string
	RequestCode   int
}

// Triggers for a plan.
const (
	TriggerCheck  = "check"
	TriggerResume = "resume"
)

// Plan is the decision for one availability observation.
type Plan struct {
	Trigger      string
	Availability Availability
	LogOps       []effects.LogEffect
	FlowOps      []effects.UpdateFlowEffect
}

// Effects returns all effects as a flat slice for execution, logs first.
func (p Plan) Effects() []effects.Effect {
	result := make([]effects.Effect, 0, len(p.LogOps)+len(p.FlowOps))
	for _, e := range p.LogOps {
		result = append(result, e)
	}
	for _, e := range p.FlowOps {
		result = append(result, e)
	}
	return result
}

// PlanCheck decides what the post-unlock update check does.
// Only an available update that allows an immediate flow starts one.
func PlanCheck(a Availability) Plan {
	plan := Plan{Trigger: TriggerCheck, Availability: a}

	switch {
	case a.Kind == KindUpdateAvailable && a.SupportsImmediate:
		plan.LogOps = append(plan.LogOps, debug("starting immediate update", a))
		plan.FlowOps = append(plan.FlowOps, effects.UpdateFlowEffect{
			FlowType: string(FlowImmediate),
			Trigger:  TriggerCheck,
		})
	case a.Kind == KindUpdateAvailable:
		plan.LogOps = append(plan.LogOps, debug("immediate update not allowed", a))
	default:
		plan.LogOps = append(plan.LogOps, debug("no update available", a))
	}

	return plan
}

// PlanResume decides what a foreground regain does.
// A flow that was started but never completed is started again.
func PlanResume(a Availability) Plan {
	plan := Plan{Trigger: TriggerResume, Availability: a}

	if a.Kind != KindImmediateUpdateInProgress {
		return plan
	}

	plan.LogOps = append(plan.LogOps, debug("resuming stuck immediate update", a))
	plan.FlowOps = append(plan.FlowOps, effects.UpdateFlowEffect{
		FlowType: string(FlowImmediate),
		Trigger:  TriggerResume,
	})
	return plan
}

func debug(msg string, a Availability) effects.LogEffect {
	fields := map[string]any{"availability": a.String()}
	if a.Version != "" {
		fields["version"] = a.Version
	}
	return effects.LogEffect{Level: "debug", Message: msg, Fields: fields}
}
