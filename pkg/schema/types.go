package schema

// Action is the closed set of edge behaviors. Unknown values are rejected
// during validation; there is no third variant.
type Action string

const (
	// ActionHandoff transfers control to the edge's target agent.
	ActionHandoff Action = "handoff"
	// ActionTool invokes an external tool named after the edge. Control stays
	// with the current agent unless the edge also names a follow-up target.
	ActionTool Action = "action"
)

// Edge is one possible transition out of an agent. Once the owning graph has
// been validated, edges are treated as immutable.
type Edge struct {
	Name        string `json:"name" yaml:"name" mapstructure:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Action      Action `json:"action" yaml:"action" mapstructure:"action"`

	// TargetAgent references another agent's name in the same graph.
	// Required for handoff edges; optional post-action handoff for tool edges.
	TargetAgent string `json:"target_agent,omitempty" yaml:"target_agent,omitempty" mapstructure:"target_agent"`
}

// Agent is one node in the graph: a conversational persona with instructions,
// an entry prompt, permitted tools, and outgoing edges.
type Agent struct {
	Name          string   `json:"name" yaml:"name" mapstructure:"name"`
	Instructions  string   `json:"instructions" yaml:"instructions" mapstructure:"instructions"`
	OnEnterPrompt string   `json:"on_enter_prompt,omitempty" yaml:"on_enter_prompt,omitempty" mapstructure:"on_enter_prompt"`
	Tools         []string `json:"tools,omitempty" yaml:"tools,omitempty" mapstructure:"tools"`
	Edges         []Edge   `json:"edges,omitempty" yaml:"edges,omitempty" mapstructure:"edges"`

	// IsEntry marks the session entry agent explicitly. At most one agent per
	// graph may carry it; when absent, the first declared agent is the entry.
	IsEntry bool `json:"is_entry,omitempty" yaml:"is_entry,omitempty" mapstructure:"is_entry"`
}

// Graph is the full customer configuration ("customer schema"): an ordered
// collection of agents plus routing metadata. A validated Graph is immutable
// and safe to share across concurrent sessions; replacing a customer's graph
// must swap the whole object, never mutate one in place.
type Graph struct {
	CustomerID  string  `json:"customer_id" yaml:"customer_id" mapstructure:"customer_id"`
	Name        string  `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Agents      []Agent `json:"agents" yaml:"agents" mapstructure:"agents"`
}

// FindAgent returns the first agent with the given name in declaration order.
func (g *Graph) FindAgent(name string) (*Agent, bool) {
	for i := range g.Agents {
		if g.Agents[i].Name == name {
			return &g.Agents[i], true
		}
	}
	return nil, false
}

// Entry returns the session entry agent: the one flagged is_entry if present,
// otherwise the first declared agent. ok is false for an empty graph.
func (g *Graph) Entry() (*Agent, bool) {
	for i := range g.Agents {
		if g.Agents[i].IsEntry {
			return &g.Agents[i], true
		}
	}
	if len(g.Agents) == 0 {
		return nil, false
	}
	return &g.Agents[0], true
}

// FindEdge returns the first edge with the given name in declaration order.
func (a *Agent) FindEdge(name string) (*Edge, bool) {
	for i := range a.Edges {
		if a.Edges[i].Name == name {
			return &a.Edges[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy of the graph. Stores hand out clones so callers
// can never mutate a shared validated instance through a returned pointer.
func (g *Graph) Clone() *Graph {
	if g == nil {
		return nil
	}
	out := *g
	out.Agents = make([]Agent, len(g.Agents))
	for i, a := range g.Agents {
		ca := a
		if a.Tools != nil {
			ca.Tools = append([]string(nil), a.Tools...)
		}
		if a.Edges != nil {
			ca.Edges = append([]Edge(nil), a.Edges...)
		}
		out.Agents[i] = ca
	}
	return &out
}
