package resolver

import (
	"log/slog"

	"github.com/switchboard-dev/switchboard/internal/logging"
	"github.com/switchboard-dev/switchboard/pkg/schema"
)

// AgentState is the fully resolved runtime view of one agent, ready to hand
// to the session/transport layer. Values are copied out of the graph so a
// returned state can never alias shared configuration.
type AgentState struct {
	Name          string   `json:"name"`
	Instructions  string   `json:"instructions"`
	OnEnterPrompt string   `json:"on_enter_prompt,omitempty"`
	Tools         []string `json:"tools,omitempty"`
}

// TransitionKind tags the two possible outcomes of resolving an edge.
type TransitionKind string

const (
	// KindHandoff means control transfers to Target immediately.
	KindHandoff TransitionKind = "handoff"
	// KindToolInvocation means the host must run the tool named ToolName.
	// If Target is non-nil it is the post-tool handoff to apply once the
	// tool completes; the resolver never executes anything itself.
	KindToolInvocation TransitionKind = "tool_invocation"
)

// Transition is the outcome of resolving an edge against a graph.
type Transition struct {
	Kind     TransitionKind `json:"kind"`
	Edge     string         `json:"edge"`
	ToolName string         `json:"tool_name,omitempty"`
	Target   *AgentState    `json:"target,omitempty"`
}

// CapabilitySet reports whether a tool identifier is declared by the host
// environment. *registry.Registry satisfies it.
type CapabilitySet interface {
	Declared(name string) bool
}

// Resolver turns a validated graph plus a current-agent pointer into the
// next executable agent state. It is a pure function of its arguments: it
// holds no session state and is safe for any number of concurrent callers.
type Resolver struct {
	logger *slog.Logger
	caps   CapabilitySet
}

// Option configures the Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for advisory warnings (e.g. ambiguity).
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithCapabilities enables strict tool checking against the host's declared
// capability set, via ValidateCapabilities.
func WithCapabilities(caps CapabilitySet) Option {
	return func(r *Resolver) {
		r.caps = caps
	}
}

// New creates a Resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Initialize resolves the entry state for a new session: the agent flagged
// is_entry, or the first declared agent. The validator guarantees a
// non-empty graph, so EmptyGraphError here indicates a caller bug.
func (r *Resolver) Initialize(g *schema.Graph) (AgentState, error) {
	entry, ok := g.Entry()
	if !ok {
		return AgentState{}, &EmptyGraphError{CustomerID: g.CustomerID}
	}
	return stateOf(entry), nil
}

// CurrentState is a pure lookup of an agent's resolved state. Two calls with
// no intervening change yield identical results.
func (r *Resolver) CurrentState(g *schema.Graph, agentName string) (AgentState, error) {
	agent, ok := g.FindAgent(agentName)
	if !ok {
		return AgentState{}, &UnknownAgentError{Agent: agentName}
	}
	return stateOf(agent), nil
}

// ResolveEdge resolves a requested transition out of the current agent.
//
// For a handoff edge the Transition carries the target agent's full state,
// ready to become the new current agent. For a tool edge it names the tool
// the host must invoke, plus the optional post-tool handoff state.
//
// If the agent somehow declares the edge name twice (the validator rejects
// this, but stale or hand-built graphs may not have passed it), the first
// declaration wins and the returned error is an *AmbiguousEdgeError; the
// Transition alongside it is still valid and callers should log and proceed.
func (r *Resolver) ResolveEdge(g *schema.Graph, currentAgent, edgeName string) (Transition, error) {
	agent, ok := g.FindAgent(currentAgent)
	if !ok {
		return Transition{}, &UnknownAgentError{Agent: currentAgent}
	}

	var edge *schema.Edge
	matches := 0
	for i := range agent.Edges {
		if agent.Edges[i].Name == edgeName {
			if edge == nil {
				edge = &agent.Edges[i]
			}
			matches++
		}
	}
	if edge == nil {
		return Transition{}, &UnknownEdgeError{Agent: currentAgent, Edge: edgeName}
	}

	transition, err := r.buildTransition(g, agent, edge)
	if err != nil {
		return Transition{}, err
	}

	if matches > 1 {
		ambErr := &AmbiguousEdgeError{Agent: currentAgent, Edge: edgeName, Count: matches}
		r.logger.Warn("ambiguous edge name, using first declaration",
			"agent", currentAgent,
			"edge", edgeName,
			"matches", matches,
		)
		return transition, ambErr
	}
	return transition, nil
}

func (r *Resolver) buildTransition(g *schema.Graph, agent *schema.Agent, edge *schema.Edge) (Transition, error) {
	switch edge.Action {
	case schema.ActionHandoff:
		target, ok := g.FindAgent(edge.TargetAgent)
		if !ok {
			return Transition{}, &UnknownAgentError{Agent: edge.TargetAgent}
		}
		state := stateOf(target)
		return Transition{Kind: KindHandoff, Edge: edge.Name, Target: &state}, nil

	case schema.ActionTool:
		t := Transition{Kind: KindToolInvocation, Edge: edge.Name, ToolName: edge.Name}
		if edge.TargetAgent != "" {
			target, ok := g.FindAgent(edge.TargetAgent)
			if !ok {
				return Transition{}, &UnknownAgentError{Agent: edge.TargetAgent}
			}
			state := stateOf(target)
			t.Target = &state
		}
		return t, nil

	default:
		// Unreachable for validated graphs; treat as a missing edge rather
		// than inventing a third transition kind.
		return Transition{}, &UnknownEdgeError{Agent: agent.Name, Edge: edge.Name}
	}
}

// ValidateCapabilities checks every agent's tool identifiers and every tool
// edge against the configured capability set. Tool registries belong to the
// host environment, so this runs at session start rather than at
// schema-validation time.
func (r *Resolver) ValidateCapabilities(g *schema.Graph) error {
	if r.caps == nil {
		return nil
	}
	for i := range g.Agents {
		agent := &g.Agents[i]
		var missing []string
		for _, tool := range agent.Tools {
			if !r.caps.Declared(tool) {
				missing = append(missing, tool)
			}
		}
		for j := range agent.Edges {
			e := &agent.Edges[j]
			if e.Action == schema.ActionTool && !r.caps.Declared(e.Name) {
				missing = append(missing, e.Name)
			}
		}
		if len(missing) > 0 {
			return &UndeclaredToolError{Agent: agent.Name, Tools: missing}
		}
	}
	return nil
}

func stateOf(a *schema.Agent) AgentState {
	state := AgentState{
		Name:          a.Name,
		Instructions:  a.Instructions,
		OnEnterPrompt: a.OnEnterPrompt,
	}
	if a.Tools != nil {
		state.Tools = append([]string(nil), a.Tools...)
	}
	return state
}
