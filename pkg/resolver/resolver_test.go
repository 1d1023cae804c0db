package resolver

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/switchboard-dev/switchboard/pkg/schema"
)

func intakeGraph(t *testing.T) *schema.Graph {
	t.Helper()
	g := &schema.Graph{
		CustomerID: "customer_1",
		Agents: []schema.Agent{
			{
				Name:          "IntakeAgent",
				Instructions:  "Greet the caller and figure out what they need.",
				OnEnterPrompt: "Hi! How can I help you today?",
				Edges: []schema.Edge{
					{
						Name:        "transfer_to_specialist",
						Description: "Route technical questions to the specialist",
						Action:      schema.ActionHandoff,
						TargetAgent: "SpecialistAgent",
					},
					{
						Name:   "log_interaction",
						Action: schema.ActionTool,
					},
					{
						Name:        "escalate",
						Action:      schema.ActionTool,
						TargetAgent: "SpecialistAgent",
					},
				},
			},
			{
				Name:          "SpecialistAgent",
				Instructions:  "Answer deep technical questions about the product.",
				OnEnterPrompt: "You're through to the specialist.",
				Tools:         []string{"lookup_ticket"},
			},
		},
	}
	require.NoError(t, schema.Validate(g))
	return g
}

func TestInitialize_ReturnsEntryAgent(t *testing.T) {
	r := New()
	g := intakeGraph(t)

	state, err := r.Initialize(g)
	require.NoError(t, err)
	assert.Equal(t, "IntakeAgent", state.Name)
	assert.Equal(t, "Hi! How can I help you today?", state.OnEnterPrompt)
}

func TestInitialize_EmptyGraph(t *testing.T) {
	r := New()
	g := &schema.Graph{CustomerID: "customer_1"}

	_, err := r.Initialize(g)
	var emptyErr *EmptyGraphError
	require.ErrorAs(t, err, &emptyErr)
	assert.Equal(t, "customer_1", emptyErr.CustomerID)
}

func TestResolveEdge_Handoff(t *testing.T) {
	r := New()
	g := intakeGraph(t)

	transition, err := r.ResolveEdge(g, "IntakeAgent", "transfer_to_specialist")
	require.NoError(t, err)
	assert.Equal(t, KindHandoff, transition.Kind)
	require.NotNil(t, transition.Target)
	assert.Equal(t, "SpecialistAgent", transition.Target.Name)
	assert.Equal(t, []string{"lookup_ticket"}, transition.Target.Tools)
}

func TestResolveEdge_ToolInvocation(t *testing.T) {
	r := New()
	g := intakeGraph(t)

	transition, err := r.ResolveEdge(g, "IntakeAgent", "log_interaction")
	require.NoError(t, err)
	assert.Equal(t, KindToolInvocation, transition.Kind)
	assert.Equal(t, "log_interaction", transition.ToolName)
	assert.Nil(t, transition.Target, "tool edge without target carries no follow-up")
}

func TestResolveEdge_ToolInvocationWithFollowUp(t *testing.T) {
	r := New()
	g := intakeGraph(t)

	transition, err := r.ResolveEdge(g, "IntakeAgent", "escalate")
	require.NoError(t, err)
	assert.Equal(t, KindToolInvocation, transition.Kind)
	assert.Equal(t, "escalate", transition.ToolName)
	require.NotNil(t, transition.Target)
	assert.Equal(t, "SpecialistAgent", transition.Target.Name)
}

func TestResolveEdge_UnknownEdge(t *testing.T) {
	r := New()
	g := intakeGraph(t)

	_, err := r.ResolveEdge(g, "IntakeAgent", "nonexistent_edge")
	var edgeErr *UnknownEdgeError
	require.ErrorAs(t, err, &edgeErr)
	assert.Equal(t, "IntakeAgent", edgeErr.Agent)
	assert.Equal(t, "nonexistent_edge", edgeErr.Edge)
}

func TestResolveEdge_EdgeOnOtherAgentDoesNotCount(t *testing.T) {
	r := New()
	g := intakeGraph(t)

	// transfer_to_specialist exists on IntakeAgent, not on SpecialistAgent.
	_, err := r.ResolveEdge(g, "SpecialistAgent", "transfer_to_specialist")
	var edgeErr *UnknownEdgeError
	require.ErrorAs(t, err, &edgeErr)
	assert.Equal(t, "SpecialistAgent", edgeErr.Agent)
}

func TestResolveEdge_UnknownAgent(t *testing.T) {
	r := New()
	g := intakeGraph(t)

	_, err := r.ResolveEdge(g, "GhostAgent", "transfer_to_specialist")
	var agentErr *UnknownAgentError
	require.ErrorAs(t, err, &agentErr)
	assert.Equal(t, "GhostAgent", agentErr.Agent)
}

func TestResolveEdge_AmbiguousEdgeUsesFirstDeclaration(t *testing.T) {
	r := New()
	// Hand-built graph that bypasses validation on purpose.
	g := &schema.Graph{
		CustomerID: "customer_1",
		Agents: []schema.Agent{
			{
				Name:         "IntakeAgent",
				Instructions: "Route the caller.",
				Edges: []schema.Edge{
					{Name: "route", Action: schema.ActionHandoff, TargetAgent: "FirstTarget"},
					{Name: "route", Action: schema.ActionHandoff, TargetAgent: "SecondTarget"},
				},
			},
			{Name: "FirstTarget", Instructions: "First."},
			{Name: "SecondTarget", Instructions: "Second."},
		},
	}

	transition, err := r.ResolveEdge(g, "IntakeAgent", "route")

	var ambErr *AmbiguousEdgeError
	require.ErrorAs(t, err, &ambErr, "ambiguity must be surfaced, not swallowed")
	assert.Equal(t, 2, ambErr.Count)

	// The transition alongside the warning is still usable.
	require.NotNil(t, transition.Target)
	assert.Equal(t, "FirstTarget", transition.Target.Name)
}

func TestCurrentState_Idempotent(t *testing.T) {
	r := New()
	g := intakeGraph(t)

	first, err := r.CurrentState(g, "SpecialistAgent")
	require.NoError(t, err)
	second, err := r.CurrentState(g, "SpecialistAgent")
	require.NoError(t, err)

	assert.True(t, reflect.DeepEqual(first, second), "repeated lookups must be identical")
}

func TestCurrentState_CopiesTools(t *testing.T) {
	r := New()
	g := intakeGraph(t)

	state, err := r.CurrentState(g, "SpecialistAgent")
	require.NoError(t, err)

	state.Tools[0] = "mutated"
	again, err := r.CurrentState(g, "SpecialistAgent")
	require.NoError(t, err)
	assert.Equal(t, "lookup_ticket", again.Tools[0], "returned state must not alias the graph")
}

type capSet map[string]bool

func (c capSet) Declared(name string) bool { return c[name] }

func TestValidateCapabilities(t *testing.T) {
	g := intakeGraph(t)

	full := capSet{"lookup_ticket": true, "log_interaction": true, "escalate": true}
	require.NoError(t, New(WithCapabilities(full)).ValidateCapabilities(g))

	partial := capSet{"lookup_ticket": true}
	err := New(WithCapabilities(partial)).ValidateCapabilities(g)
	var toolErr *UndeclaredToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, "IntakeAgent", toolErr.Agent)
	assert.Contains(t, toolErr.Tools, "log_interaction")

	// Without a capability set the check is a no-op.
	require.NoError(t, New().ValidateCapabilities(g))
}
