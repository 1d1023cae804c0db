package schema

import "fmt"

// ShapeError reports a single field violating its local constraints
// (bad name pattern, unknown action, missing required field).
type ShapeError struct {
	Entity string // "graph", "agent" or "edge"
	Name   string // offending agent/edge name, empty for graph-level fields
	Field  string
	Reason string
}

func (e *ShapeError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s: field %q: %s", e.Entity, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s %q: field %q: %s", e.Entity, e.Name, e.Field, e.Reason)
}

// ReferentialIntegrityError reports a duplicate agent/edge name or a
// target_agent that does not exist in the graph.
type ReferentialIntegrityError struct {
	Agent  string
	Edge   string // empty for agent-level duplicates
	Reason string
}

func (e *ReferentialIntegrityError) Error() string {
	if e.Edge == "" {
		return fmt.Sprintf("agent %q: %s", e.Agent, e.Reason)
	}
	return fmt.Sprintf("agent %q: edge %q: %s", e.Agent, e.Edge, e.Reason)
}

// ContentSafetyError reports a denylisted phrase in operator-supplied prompt
// text. The phrase and field are named so the operator can remediate.
type ContentSafetyError struct {
	Agent  string
	Field  string
	Phrase string
}

func (e *ContentSafetyError) Error() string {
	return fmt.Sprintf("agent %q: field %q contains denylisted phrase %q", e.Agent, e.Field, e.Phrase)
}
