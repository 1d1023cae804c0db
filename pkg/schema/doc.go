// Package schema defines the declarative agent-graph model and its
// validation gate.
//
// A Graph describes one customer's conversational workflow: an ordered set
// of Agents, each with instructions, an entry prompt, permitted tools, and
// named Edges that either hand control to another agent or invoke an
// external tool.
//
// Graphs are constructed from untrusted documents (JSON, YAML, or generic
// maps) and validated exactly once at construction. Validation is fail-fast:
// the first violated rule aborts with a typed error (ShapeError,
// ReferentialIntegrityError, ContentSafetyError) and the document is
// rejected whole. There is no partially valid graph.
//
// A validated Graph is immutable. Sessions hold a reference to it plus their
// own current-agent pointer; replacing a customer's configuration swaps the
// whole Graph object atomically.
package schema
