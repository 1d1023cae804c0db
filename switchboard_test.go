package switchboard_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	switchboard "github.com/switchboard-dev/switchboard"
	"github.com/switchboard-dev/switchboard/pkg/adapters/memory"
	"github.com/switchboard-dev/switchboard/pkg/registry"
	"github.com/switchboard-dev/switchboard/pkg/resolver"
	"github.com/switchboard-dev/switchboard/pkg/schema"
	"github.com/switchboard-dev/switchboard/pkg/session"
)

func supportGraph() *schema.Graph {
	return &schema.Graph{
		CustomerID:  "customer_1",
		Name:        "Acme Support",
		Description: "Front-desk intake with a technical specialist",
		Agents: []schema.Agent{
			{
				Name:          "IntakeAgent",
				Instructions:  "Greet the caller and figure out what they need.",
				OnEnterPrompt: "Hi! How can I help you today?",
				Edges: []schema.Edge{
					{Name: "transfer_to_specialist", Action: schema.ActionHandoff, TargetAgent: "SpecialistAgent"},
					{Name: "log_interaction", Action: schema.ActionTool},
					{Name: "escalate", Action: schema.ActionTool, TargetAgent: "SpecialistAgent"},
				},
			},
			{
				Name:          "SpecialistAgent",
				Instructions:  "Answer deep technical questions about the product.",
				OnEnterPrompt: "You're through to the specialist.",
			},
		},
	}
}

func newEngine(t *testing.T, opts ...switchboard.Option) *switchboard.Engine {
	t.Helper()
	eng := switchboard.New(memory.NewGraphStore(), memory.NewSessionStore(), opts...)
	require.NoError(t, eng.ReplaceGraph(context.Background(), supportGraph()))
	return eng
}

func TestEngine_StartSession(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)

	state, err := eng.StartSession(ctx, "session-1", "customer_1")
	require.NoError(t, err)
	assert.Equal(t, "IntakeAgent", state.Name)
	assert.Equal(t, "Hi! How can I help you today?", state.OnEnterPrompt)
}

func TestEngine_TriggerHandoff(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)

	_, err := eng.StartSession(ctx, "session-1", "customer_1")
	require.NoError(t, err)

	transition, err := eng.Trigger(ctx, "session-1", "transfer_to_specialist")
	require.NoError(t, err)
	assert.Equal(t, resolver.KindHandoff, transition.Kind)
	assert.Equal(t, "SpecialistAgent", transition.Target.Name)

	// The handoff is already applied to the session.
	current, err := eng.CurrentState(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "SpecialistAgent", current.Name)
}

func TestEngine_TriggerToolThenComplete(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)

	_, err := eng.StartSession(ctx, "session-1", "customer_1")
	require.NoError(t, err)

	// Tool edge without follow-up: control stays put.
	transition, err := eng.Trigger(ctx, "session-1", "log_interaction")
	require.NoError(t, err)
	assert.Equal(t, resolver.KindToolInvocation, transition.Kind)
	assert.Equal(t, "log_interaction", transition.ToolName)

	target, err := eng.CompleteTool(ctx, "session-1", "log_interaction")
	require.NoError(t, err)
	assert.Nil(t, target)

	current, err := eng.CurrentState(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "IntakeAgent", current.Name)

	// Tool edge with follow-up: CompleteTool applies the handoff.
	transition, err = eng.Trigger(ctx, "session-1", "escalate")
	require.NoError(t, err)
	require.NotNil(t, transition.Target)

	target, err = eng.CompleteTool(ctx, "session-1", "escalate")
	require.NoError(t, err)
	require.NotNil(t, target)
	assert.Equal(t, "SpecialistAgent", target.Name)

	current, err = eng.CurrentState(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "SpecialistAgent", current.Name)
}

func TestEngine_TriggerUnknownEdge(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)

	_, err := eng.StartSession(ctx, "session-1", "customer_1")
	require.NoError(t, err)

	_, err = eng.Trigger(ctx, "session-1", "nonexistent_edge")
	var edgeErr *resolver.UnknownEdgeError
	require.ErrorAs(t, err, &edgeErr)
}

func TestEngine_ReplaceGraph_RejectsInvalid(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)

	bad := supportGraph()
	bad.Agents[0].Edges[0].TargetAgent = "GhostAgent"

	err := eng.ReplaceGraph(ctx, bad)
	var refErr *schema.ReferentialIntegrityError
	require.ErrorAs(t, err, &refErr)
}

func TestEngine_ReplaceGraph_LiveSwap(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)

	_, err := eng.StartSession(ctx, "session-1", "customer_1")
	require.NoError(t, err)

	// Replace the whole graph while the session is live; same agent names,
	// new instructions.
	replacement := supportGraph()
	replacement.Agents[0].Instructions = "Updated intake script."
	require.NoError(t, eng.ReplaceGraph(ctx, replacement))

	current, err := eng.CurrentState(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "Updated intake script.", current.Instructions)
}

func TestEngine_StaleSessionAfterReplace(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)

	_, err := eng.StartSession(ctx, "session-1", "customer_1")
	require.NoError(t, err)
	_, err = eng.Trigger(ctx, "session-1", "transfer_to_specialist")
	require.NoError(t, err)

	// The replacement drops SpecialistAgent entirely; the session pointer is
	// now stale and must fail fatally, not hang or guess.
	replacement := &schema.Graph{
		CustomerID: "customer_1",
		Agents: []schema.Agent{
			{Name: "IntakeAgent", Instructions: "Greet the caller."},
		},
	}
	require.NoError(t, eng.ReplaceGraph(ctx, replacement))

	_, err = eng.CurrentState(ctx, "session-1")
	var agentErr *resolver.UnknownAgentError
	require.ErrorAs(t, err, &agentErr)
	assert.Equal(t, "SpecialistAgent", agentErr.Agent)
}

func TestEngine_LifecycleHooks(t *testing.T) {
	ctx := context.Background()

	var enters, handoffs, tools []string
	hooks := switchboard.LifecycleHooks{
		OnAgentEnter: func(_ context.Context, e *switchboard.AgentEvent) {
			enters = append(enters, e.Agent)
		},
		OnHandoff: func(_ context.Context, e *switchboard.HandoffEvent) {
			handoffs = append(handoffs, e.From+"->"+e.To)
		},
		OnToolCall: func(_ context.Context, e *switchboard.ToolEvent) {
			tools = append(tools, e.Tool)
		},
	}

	eng := newEngine(t, switchboard.WithLifecycleHooks(hooks))

	_, err := eng.StartSession(ctx, "session-1", "customer_1")
	require.NoError(t, err)
	_, err = eng.Trigger(ctx, "session-1", "log_interaction")
	require.NoError(t, err)
	_, err = eng.Trigger(ctx, "session-1", "transfer_to_specialist")
	require.NoError(t, err)

	assert.Equal(t, []string{"IntakeAgent", "SpecialistAgent"}, enters)
	assert.Equal(t, []string{"IntakeAgent->SpecialistAgent"}, handoffs)
	assert.Equal(t, []string{"log_interaction"}, tools)
}

func TestEngine_RegistryGate(t *testing.T) {
	ctx := context.Background()

	reg := registry.New()
	eng := switchboard.New(memory.NewGraphStore(), memory.NewSessionStore(), switchboard.WithRegistry(reg))

	g := supportGraph()
	g.Agents[1].Tools = []string{"lookup_ticket"}
	require.NoError(t, eng.ReplaceGraph(ctx, g))

	// Empty registry: the graph references tools the host never declared.
	_, err := eng.StartSession(ctx, "session-1", "customer_1")
	var toolErr *resolver.UndeclaredToolError
	require.ErrorAs(t, err, &toolErr)

	// Declare everything the graph needs and the session starts.
	for _, name := range []string{"lookup_ticket", "log_interaction", "escalate"} {
		reg.Register(name, func(ctx context.Context, args map[string]any) (any, error) { return nil, nil })
	}
	_, err = eng.StartSession(ctx, "session-2", "customer_1")
	require.NoError(t, err)
}

func TestEngine_EndSession(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)

	_, err := eng.StartSession(ctx, "session-1", "customer_1")
	require.NoError(t, err)
	require.NoError(t, eng.EndSession(ctx, "session-1"))

	_, err = eng.CurrentState(ctx, "session-1")
	assert.ErrorIs(t, err, session.ErrNotFound)
}
