package switchboard

import (
	"context"
	"time"
)

// AgentEvent reports an agent becoming the current agent of a session.
type AgentEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	SessionID  string    `json:"session_id"`
	CustomerID string    `json:"customer_id"`
	Agent      string    `json:"agent"`
}

// HandoffEvent reports a completed control transfer between agents.
type HandoffEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	SessionID  string    `json:"session_id"`
	CustomerID string    `json:"customer_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Edge       string    `json:"edge"`
}

// ToolEvent reports a tool invocation handed to the host.
type ToolEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	SessionID  string    `json:"session_id"`
	CustomerID string    `json:"customer_id"`
	Agent      string    `json:"agent"`
	Tool       string    `json:"tool"`
}

// LifecycleHooks defines callbacks for engine observability. Hooks run
// synchronously on the resolving goroutine; keep them fast.
type LifecycleHooks struct {
	OnAgentEnter func(context.Context, *AgentEvent)
	OnHandoff    func(context.Context, *HandoffEvent)
	OnToolCall   func(context.Context, *ToolEvent)
}

func (e *Engine) emitAgentEnter(ctx context.Context, sessionID, customerID, agent string) {
	if e.hooks.OnAgentEnter == nil {
		return
	}
	e.hooks.OnAgentEnter(ctx, &AgentEvent{
		Timestamp:  time.Now(),
		SessionID:  sessionID,
		CustomerID: customerID,
		Agent:      agent,
	})
}

func (e *Engine) emitHandoff(ctx context.Context, sessionID, customerID, from, to, edge string) {
	if e.hooks.OnHandoff == nil {
		return
	}
	e.hooks.OnHandoff(ctx, &HandoffEvent{
		Timestamp:  time.Now(),
		SessionID:  sessionID,
		CustomerID: customerID,
		From:       from,
		To:         to,
		Edge:       edge,
	})
}

func (e *Engine) emitToolCall(ctx context.Context, sessionID, customerID, agent, tool string) {
	if e.hooks.OnToolCall == nil {
		return
	}
	e.hooks.OnToolCall(ctx, &ToolEvent{
		Timestamp:  time.Now(),
		SessionID:  sessionID,
		CustomerID: customerID,
		Agent:      agent,
		Tool:       tool,
	})
}
