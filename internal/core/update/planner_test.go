package update

import (
	"testing"

	"github.com/example/launchgate/internal/core/effects"
)

func TestPlanCheck(t *testing.T) {
	tests := []struct {
		name          string
		availability  Availability
		wantStartFlow bool
		wantLog       string
	}{
		{
			name:          "immediate update available",
			availability:  UpdateAvailable("2.0.0", true),
			wantStartFlow: true,
			wantLog:       "starting immediate update",
		},
		{
			name:          "update available without immediate support",
			availability:  UpdateAvailable("2.0.0", false),
			wantStartFlow: false,
			wantLog:       "immediate update not allowed",
		},
		{
			name:          "no update",
			availability:  NoUpdate(),
			wantStartFlow: false,
			wantLog:       "no update available",
		},
		{
			name:          "in-progress flow is left to resume",
			availability:  ImmediateUpdateInProgress("2.0.0"),
			wantStartFlow: false,
			wantLog:       "no update available",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := PlanCheck(tt.availability)

			if plan.Trigger != TriggerCheck {
				t.Errorf("Trigger = %q, want %q", plan.Trigger, TriggerCheck)
			}
			wantFlows := 0
			if tt.wantStartFlow {
				wantFlows = 1
			}
			if len(plan.FlowOps) != wantFlows {
				t.Fatalf("FlowOps = %d, want %d", len(plan.FlowOps), wantFlows)
			}
			if wantFlows == 1 && plan.FlowOps[0].FlowType != string(FlowImmediate) {
				t.Errorf("FlowType = %q, want %q", plan.FlowOps[0].FlowType, FlowImmediate)
			}

			if len(plan.LogOps) != 1 || plan.LogOps[0].Message != tt.wantLog {
				t.Errorf("LogOps = %+v, want single %q", plan.LogOps, tt.wantLog)
			}

			effs := plan.Effects()
			if len(effs) != 1+wantFlows {
				t.Fatalf("Effects() = %d, want %d", len(effs), 1+wantFlows)
			}
			if _, ok := effs[0].(effects.LogEffect); !ok {
				t.Errorf("Effects()[0] = %T, want the log first", effs[0])
			}
		})
	}
}

func TestPlanResume(t *testing.T) {
	tests := []struct {
		name          string
		availability  Availability
		wantStartFlow bool
	}{
		{"stuck immediate flow", ImmediateUpdateInProgress("2.0.0"), true},
		{"fresh update is not resumed", UpdateAvailable("2.0.0", true), false},
		{"no update", NoUpdate(), false},
		{"zero value", Availability{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := PlanResume(tt.availability)

			if tt.wantStartFlow {
				if len(plan.FlowOps) != 1 || plan.FlowOps[0].Trigger != TriggerResume {
					t.Errorf("FlowOps = %+v, want one resume flow", plan.FlowOps)
				}
			} else if len(plan.Effects()) != 0 {
				t.Errorf("Effects() = %d, want 0", len(plan.Effects()))
			}
		})
	}
}

func TestPlanResume_IsLevelTriggered(t *testing.T) {
	// Every observation of a stuck flow yields a restart, no matter how many
	// came before.
	a := ImmediateUpdateInProgress("2.0.0")
	for i := 0; i < 3; i++ {
		if len(PlanResume(a).FlowOps) != 1 {
			t.Fatalf("observation %d did not restart the flow", i)
		}
	}
}

func TestAvailabilityString(t *testing.T) {
	tests := []struct {
		a    Availability
		want string
	}{
		{NoUpdate(), "no_update"},
		{Availability{}, "no_update"},
		{UpdateAvailable("1", true), "update_available(immediate=true)"},
		{ImmediateUpdateInProgress("1"), "immediate_update_in_progress"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
