// Package resolver implements the runtime state machine over a validated
// agent graph.
//
// One state exists per agent name. The resolver exposes three operations:
// Initialize (entry state for a new session), ResolveEdge (turn a requested
// edge into a handoff or a tool invocation), and CurrentState (pure lookup).
// All three are pure functions of their arguments: the resolver never stores
// the current-agent pointer, performs no I/O, and is safe for concurrent use
// over a shared immutable graph.
//
// Speaking the entry prompt, executing tools, and persisting the new
// current-agent pointer are the caller's responsibility.
package resolver
