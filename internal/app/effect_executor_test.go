package app

import (
	"context"
	"strings"
	"testing"

	"github.com/example/launchgate/internal/core/effects"
	"github.com/example/launchgate/internal/core/update"
	"github.com/example/launchgate/internal/ctxutil"
)

func TestEffectExecutor_Execute(t *testing.T) {
	events := newMockLaunchEventRepository()
	platform := newMockUpdatePlatform(update.NoUpdate())
	executor := NewEffectExecutor(events, platform, 100, discardLogger())
	ctx := ctxutil.WithSessionID(context.Background(), "sess-042")

	err := executor.Execute(ctx, []effects.Effect{
		effects.LogEffect{Level: "debug", Message: "hello", Fields: map[string]any{"k": "v"}},
		launchEvent("decision", "locked"),
		effects.UpdateFlowEffect{FlowType: "immediate", Trigger: "check", CorrelationID: "flow-1"},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if kinds := events.kinds(); len(kinds) != 1 || kinds[0] != "decision" {
		t.Errorf("events = %v, want [decision]", kinds)
	}
	if events.events[0].SessionID != "sess-042" {
		t.Errorf("SessionID = %q, want %q", events.events[0].SessionID, "sess-042")
	}

	flows := platform.startedFlows()
	if len(flows) != 1 {
		t.Fatalf("started flows = %d, want 1", len(flows))
	}
	want := update.FlowRequest{Type: update.FlowImmediate, CorrelationID: "flow-1", RequestCode: 100}
	if flows[0] != want {
		t.Errorf("flow = %+v, want %+v", flows[0], want)
	}
}

func TestEffectExecutor_Errors(t *testing.T) {
	executor := NewEffectExecutor(newMockLaunchEventRepository(), newMockUpdatePlatform(update.NoUpdate()), 100, discardLogger())

	tests := []struct {
		name    string
		effect  effects.Effect
		wantErr string
	}{
		{"gate-local effect", effects.ChallengeEffect{}, "unknown effect type"},
		{"unknown entity", effects.PersistEffect{Entity: "mission", Operation: "create"}, "unknown entity"},
		{"bad data", effects.PersistEffect{Entity: "launch_event", Operation: "create", Data: 42}, "invalid launch event data"},
		{"flexible flow", effects.UpdateFlowEffect{FlowType: "flexible"}, "unsupported update flow type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := executor.Execute(context.Background(), []effects.Effect{tt.effect})
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Execute() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
