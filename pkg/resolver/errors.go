package resolver

import (
	"fmt"
	"strings"
)

// EmptyGraphError indicates an attempt to initialize a session on a graph
// with no agents. The validator rejects such graphs, so seeing this means
// the caller bypassed validation.
type EmptyGraphError struct {
	CustomerID string
}

func (e *EmptyGraphError) Error() string {
	return fmt.Sprintf("graph %q has no agents", e.CustomerID)
}

// UnknownAgentError indicates a current-agent pointer that references no
// agent in the graph, e.g. a stale pointer after a graph replacement.
// Fatal for the session; do not retry.
type UnknownAgentError struct {
	Agent string
}

func (e *UnknownAgentError) Error() string {
	return fmt.Sprintf("agent %q not found in graph", e.Agent)
}

// UnknownEdgeError indicates a requested edge that the current agent does not
// declare. Edges on other agents do not count. Fatal for the session's turn.
type UnknownEdgeError struct {
	Agent string
	Edge  string
}

func (e *UnknownEdgeError) Error() string {
	return fmt.Sprintf("agent %q has no edge %q", e.Agent, e.Edge)
}

// AmbiguousEdgeError reports two edges sharing a name on one agent. Non-fatal:
// the Transition returned alongside it used the first declaration, and the
// caller should log a warning.
type AmbiguousEdgeError struct {
	Agent string
	Edge  string
	Count int
}

func (e *AmbiguousEdgeError) Error() string {
	return fmt.Sprintf("agent %q declares edge %q %d times; used first declaration", e.Agent, e.Edge, e.Count)
}

// UndeclaredToolError reports tool identifiers a graph references that the
// host's capability set does not declare.
type UndeclaredToolError struct {
	Agent string
	Tools []string
}

func (e *UndeclaredToolError) Error() string {
	return fmt.Sprintf("agent %q references undeclared tools: %s", e.Agent, strings.Join(e.Tools, ", "))
}
