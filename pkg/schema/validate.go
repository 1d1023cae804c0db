package schema

import (
	"fmt"
	"regexp"
)

// Agent and edge names appear verbatim in logs and tool dispatch keys, so
// they are restricted to identifier-safe characters.
var nameRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Customer IDs are used as persistence keys. Lower-case only: normalizing
// case silently would break document round-tripping, so mixed case is
// rejected instead.
var customerIDRE = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Field limits, matching what the persistence layer is sized for.
const (
	maxNameLen         = 100
	maxCustomerIDLen   = 50
	maxGraphNameLen    = 200
	maxEdgeDescLen     = 500
	maxGraphDescLen    = 1000
	maxOnEnterLen      = 1000
	maxInstructionsLen = 10000
	maxAgents          = 20
)

// Validate gates a graph before it may be used by the resolver or persisted.
// Checks run in a fixed order and stop at the first offending rule:
//
//  1. shape: name patterns, closed action enum, required fields, size limits
//  2. agent-name uniqueness, then edge-name uniqueness within each agent
//  3. edge target referential integrity (handoff and post-action targets
//     are checked with the same strictness)
//  4. content safety of instructions and on_enter_prompt
//
// A graph either fully validates or is unusable; nothing is auto-corrected.
func Validate(g *Graph) error {
	if g == nil {
		return &ShapeError{Entity: "graph", Field: "graph", Reason: "document is empty"}
	}

	if err := validateGraphShape(g); err != nil {
		return err
	}
	if err := validateUniqueness(g); err != nil {
		return err
	}
	if err := validateEdgeTargets(g); err != nil {
		return err
	}
	return validateContentSafety(g)
}

func validateGraphShape(g *Graph) error {
	switch {
	case g.CustomerID == "":
		return &ShapeError{Entity: "graph", Field: "customer_id", Reason: "required"}
	case len(g.CustomerID) > maxCustomerIDLen:
		return &ShapeError{Entity: "graph", Field: "customer_id", Reason: fmt.Sprintf("exceeds %d characters", maxCustomerIDLen)}
	case !customerIDRE.MatchString(g.CustomerID):
		return &ShapeError{Entity: "graph", Field: "customer_id", Reason: "must contain only lower-case letters, digits, underscores and hyphens"}
	case len(g.Name) > maxGraphNameLen:
		return &ShapeError{Entity: "graph", Field: "name", Reason: fmt.Sprintf("exceeds %d characters", maxGraphNameLen)}
	case len(g.Description) > maxGraphDescLen:
		return &ShapeError{Entity: "graph", Field: "description", Reason: fmt.Sprintf("exceeds %d characters", maxGraphDescLen)}
	case len(g.Agents) == 0:
		return &ShapeError{Entity: "graph", Field: "agents", Reason: "at least one agent is required"}
	case len(g.Agents) > maxAgents:
		return &ShapeError{Entity: "graph", Field: "agents", Reason: fmt.Sprintf("exceeds %d agents", maxAgents)}
	}

	entries := 0
	for i := range g.Agents {
		if err := g.Agents[i].validateShape(); err != nil {
			return err
		}
		if g.Agents[i].IsEntry {
			entries++
		}
	}
	if entries > 1 {
		return &ShapeError{Entity: "graph", Field: "agents", Reason: "more than one agent flagged is_entry"}
	}
	return nil
}

// validateShape checks local constraints only. Cross-agent rules (uniqueness,
// target existence) belong to Validate, which owns the full namespace.
func (a *Agent) validateShape() error {
	if err := validateName("agent", a.Name, a.Name); err != nil {
		return err
	}
	switch {
	case a.Instructions == "":
		return &ShapeError{Entity: "agent", Name: a.Name, Field: "instructions", Reason: "required"}
	case len(a.Instructions) > maxInstructionsLen:
		return &ShapeError{Entity: "agent", Name: a.Name, Field: "instructions", Reason: fmt.Sprintf("exceeds %d characters", maxInstructionsLen)}
	case len(a.OnEnterPrompt) > maxOnEnterLen:
		return &ShapeError{Entity: "agent", Name: a.Name, Field: "on_enter_prompt", Reason: fmt.Sprintf("exceeds %d characters", maxOnEnterLen)}
	}
	for i := range a.Edges {
		if err := a.Edges[i].validateShape(); err != nil {
			return err
		}
	}
	return nil
}

func (e *Edge) validateShape() error {
	if err := validateName("edge", e.Name, e.Name); err != nil {
		return err
	}
	if len(e.Description) > maxEdgeDescLen {
		return &ShapeError{Entity: "edge", Name: e.Name, Field: "description", Reason: fmt.Sprintf("exceeds %d characters", maxEdgeDescLen)}
	}
	switch e.Action {
	case ActionHandoff:
		if e.TargetAgent == "" {
			return &ShapeError{Entity: "edge", Name: e.Name, Field: "target_agent", Reason: "required for handoff edges"}
		}
	case ActionTool:
		// target_agent is an optional post-action handoff here.
	default:
		return &ShapeError{Entity: "edge", Name: e.Name, Field: "action", Reason: fmt.Sprintf("unknown action %q (want %q or %q)", e.Action, ActionHandoff, ActionTool)}
	}
	return nil
}

func validateName(entity, owner, name string) error {
	switch {
	case name == "":
		return &ShapeError{Entity: entity, Name: owner, Field: "name", Reason: "required"}
	case len(name) > maxNameLen:
		return &ShapeError{Entity: entity, Name: owner, Field: "name", Reason: fmt.Sprintf("exceeds %d characters", maxNameLen)}
	case !nameRE.MatchString(name):
		return &ShapeError{Entity: entity, Name: owner, Field: "name", Reason: "must match [A-Za-z_][A-Za-z0-9_]*"}
	}
	return nil
}

// Agent names are the only lookup and handoff-targeting key; duplicates make
// targeting ambiguous and are rejected outright.
func validateUniqueness(g *Graph) error {
	agents := make(map[string]struct{}, len(g.Agents))
	for i := range g.Agents {
		name := g.Agents[i].Name
		if _, dup := agents[name]; dup {
			return &ReferentialIntegrityError{Agent: name, Reason: "duplicate agent name"}
		}
		agents[name] = struct{}{}

		edges := make(map[string]struct{}, len(g.Agents[i].Edges))
		for j := range g.Agents[i].Edges {
			edge := g.Agents[i].Edges[j].Name
			if _, dup := edges[edge]; dup {
				return &ReferentialIntegrityError{Agent: name, Edge: edge, Reason: "duplicate edge name"}
			}
			edges[edge] = struct{}{}
		}
	}
	return nil
}

// A dangling handoff is a live-conversation dead end; catching it here turns
// a runtime failure into a rejected configuration.
func validateEdgeTargets(g *Graph) error {
	names := make(map[string]struct{}, len(g.Agents))
	for i := range g.Agents {
		names[g.Agents[i].Name] = struct{}{}
	}
	for i := range g.Agents {
		for j := range g.Agents[i].Edges {
			e := &g.Agents[i].Edges[j]
			if e.TargetAgent == "" {
				continue
			}
			if _, ok := names[e.TargetAgent]; !ok {
				return &ReferentialIntegrityError{
					Agent:  g.Agents[i].Name,
					Edge:   e.Name,
					Reason: fmt.Sprintf("target_agent %q not found in graph", e.TargetAgent),
				}
			}
		}
	}
	return nil
}

func validateContentSafety(g *Graph) error {
	for i := range g.Agents {
		a := &g.Agents[i]
		if err := scanText(a.Name, "instructions", a.Instructions); err != nil {
			return err
		}
		if err := scanText(a.Name, "on_enter_prompt", a.OnEnterPrompt); err != nil {
			return err
		}
	}
	return nil
}
