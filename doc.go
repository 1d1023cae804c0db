/*
Package switchboard turns a declarative agent-graph document into a live,
switchable conversational runtime.

An operator describes a multi-step workflow as a directed graph of named
agents, each with instructions, an entry utterance, callable tools, and
transition edges to other agents. Switchboard validates that document once,
then resolves transitions turn by turn: given the current agent and a
requested edge, it yields either the next agent's state or a tool invocation
for the host to execute.

The core never performs I/O. Media transport, tool execution, and HTTP
surfaces live in the host; switchboard tells the host which agent is active
and with which instructions.

# Architecture

  - pkg/schema: graph model plus the fail-fast validation gate.
  - pkg/resolver: the pure state machine over a validated graph.
  - pkg/session: the per-session current-agent pointer and its locking.
  - pkg/registry: the host's explicit tool capability set.
  - pkg/ports, pkg/adapters: persistence ports with memory, Redis, and
    file-backed implementations.

# Usage

	graphs := memory.NewGraphStore()
	eng := switchboard.New(graphs, memory.NewSessionStore())

	if err := eng.ReplaceGraph(ctx, graph); err != nil {
		log.Fatal(err) // document rejected whole, with the offending rule
	}

	state, err := eng.StartSession(ctx, "session-1", "customer_1")
	// speak state.OnEnterPrompt, then per turn:
	transition, err := eng.Trigger(ctx, "session-1", "transfer_to_specialist")

A Transition is either a handoff (already applied to the session) or a tool
invocation the host must run, optionally followed by CompleteTool to apply
the edge's post-tool handoff.
*/
package switchboard
