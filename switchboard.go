package switchboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/switchboard-dev/switchboard/internal/logging"
	"github.com/switchboard-dev/switchboard/pkg/ports"
	"github.com/switchboard-dev/switchboard/pkg/registry"
	"github.com/switchboard-dev/switchboard/pkg/resolver"
	"github.com/switchboard-dev/switchboard/pkg/schema"
	"github.com/switchboard-dev/switchboard/pkg/session"
)

// Engine is the high-level entry point: it wires the graph store, the
// session manager, and the pure resolver into a host-facing API. The engine
// never executes tools and never speaks; it tells the host which agent is
// active and which tool to run.
type Engine struct {
	graphs   ports.GraphStore
	sessions *session.Manager
	resolver *resolver.Resolver
	registry *registry.Registry
	hooks    LifecycleHooks
	logger   *slog.Logger

	// cache holds validated graphs by customer id. Entries are immutable;
	// ReplaceGraph swaps whole values, so a concurrent resolve observes
	// either the old or the new graph, never a mix.
	cache sync.Map
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithSessionManager injects a fully configured manager, e.g. one carrying a
// distributed locker.
func WithSessionManager(mgr *session.Manager) Option {
	return func(e *Engine) {
		e.sessions = mgr
	}
}

// WithRegistry declares the host's tool capability set. When set, sessions
// fail to start on graphs that reference undeclared tools.
func WithRegistry(reg *registry.Registry) Option {
	return func(e *Engine) {
		e.registry = reg
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// New creates an Engine over a graph store and a session store. The graph
// store is the system of record; WithSessionManager replaces the default
// manager when distributed locking is needed.
func New(graphs ports.GraphStore, sessions session.Store, opts ...Option) *Engine {
	e := &Engine{
		graphs:   graphs,
		sessions: session.NewManager(sessions),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	resolverOpts := []resolver.Option{resolver.WithLogger(e.logger)}
	if e.registry != nil {
		resolverOpts = append(resolverOpts, resolver.WithCapabilities(e.registry))
	}
	e.resolver = resolver.New(resolverOpts...)
	return e
}

// Graph returns the validated graph for a customer, loading and caching it
// on first use.
func (e *Engine) Graph(ctx context.Context, customerID string) (*schema.Graph, error) {
	if cached, ok := e.cache.Load(customerID); ok {
		return cached.(*schema.Graph), nil
	}
	g, err := e.graphs.Load(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(g); err != nil {
		return nil, fmt.Errorf("stored graph for %q failed validation: %w", customerID, err)
	}
	e.cache.Store(customerID, g)
	return g, nil
}

// ReplaceGraph validates a replacement graph, persists it, and swaps the
// cached reference atomically. Live sessions observe the new graph on their
// next resolve call.
func (e *Engine) ReplaceGraph(ctx context.Context, g *schema.Graph) error {
	if err := schema.Validate(g); err != nil {
		return err
	}
	clone := g.Clone()
	if err := e.graphs.Save(ctx, clone); err != nil {
		return fmt.Errorf("failed to persist graph: %w", err)
	}
	e.cache.Store(clone.CustomerID, clone)
	e.logger.Info("graph replaced", "customer_id", clone.CustomerID, "agents", len(clone.Agents))
	return nil
}

// StartSession begins (or resumes) a session for a customer and returns the
// resolved state of its current agent. New sessions start at the entry agent.
func (e *Engine) StartSession(ctx context.Context, sessionID, customerID string) (resolver.AgentState, error) {
	g, err := e.Graph(ctx, customerID)
	if err != nil {
		return resolver.AgentState{}, err
	}
	if e.registry != nil {
		if err := e.resolver.ValidateCapabilities(g); err != nil {
			return resolver.AgentState{}, err
		}
	}

	entry, err := e.resolver.Initialize(g)
	if err != nil {
		return resolver.AgentState{}, err
	}

	state, err := e.sessions.LoadOrStart(ctx, sessionID, customerID, entry.Name)
	if err != nil {
		return resolver.AgentState{}, err
	}

	current, err := e.resolver.CurrentState(g, state.CurrentAgent)
	if err != nil {
		return resolver.AgentState{}, err
	}

	e.emitAgentEnter(ctx, sessionID, customerID, current.Name)
	return current, nil
}

// Trigger resolves a requested edge for a session. Handoffs are applied to
// the session before returning; tool invocations are returned for the host
// to execute, with any follow-up handoff applied via CompleteTool.
func (e *Engine) Trigger(ctx context.Context, sessionID, edgeName string) (resolver.Transition, error) {
	var transition resolver.Transition

	err := e.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		state, err := e.sessions.Store().Load(ctx, sessionID)
		if err != nil {
			return err
		}
		g, err := e.Graph(ctx, state.CustomerID)
		if err != nil {
			return err
		}

		transition, err = e.resolver.ResolveEdge(g, state.CurrentAgent, edgeName)
		var ambErr *resolver.AmbiguousEdgeError
		if err != nil {
			// Ambiguity is advisory; anything else aborts the turn.
			if !errors.As(err, &ambErr) {
				return err
			}
			e.logger.Warn("ambiguous edge resolved by declaration order",
				"session_id", sessionID, "edge", edgeName)
		}

		switch transition.Kind {
		case resolver.KindHandoff:
			from := state.CurrentAgent
			state.MoveTo(transition.Target.Name)
			if err := e.sessions.Store().Save(ctx, sessionID, state); err != nil {
				return fmt.Errorf("failed to persist handoff: %w", err)
			}
			e.emitHandoff(ctx, sessionID, state.CustomerID, from, transition.Target.Name, edgeName)
			e.emitAgentEnter(ctx, sessionID, state.CustomerID, transition.Target.Name)

		case resolver.KindToolInvocation:
			e.emitToolCall(ctx, sessionID, state.CustomerID, state.CurrentAgent, transition.ToolName)
		}
		return nil
	})
	return transition, err
}

// CompleteTool applies the post-tool follow-up handoff of a tool edge, if the
// edge declares one. Hosts call it after the external tool finished. The
// resolution is pure, so re-resolving the edge here is safe.
func (e *Engine) CompleteTool(ctx context.Context, sessionID, edgeName string) (*resolver.AgentState, error) {
	var target *resolver.AgentState

	err := e.sessions.WithLock(ctx, sessionID, func(ctx context.Context) error {
		state, err := e.sessions.Store().Load(ctx, sessionID)
		if err != nil {
			return err
		}
		g, err := e.Graph(ctx, state.CustomerID)
		if err != nil {
			return err
		}

		transition, err := e.resolver.ResolveEdge(g, state.CurrentAgent, edgeName)
		var ambErr *resolver.AmbiguousEdgeError
		if err != nil && !errors.As(err, &ambErr) {
			return err
		}
		if transition.Kind != resolver.KindToolInvocation || transition.Target == nil {
			return nil // no follow-up declared
		}

		from := state.CurrentAgent
		state.MoveTo(transition.Target.Name)
		if err := e.sessions.Store().Save(ctx, sessionID, state); err != nil {
			return fmt.Errorf("failed to persist follow-up handoff: %w", err)
		}
		target = transition.Target
		e.emitHandoff(ctx, sessionID, state.CustomerID, from, target.Name, edgeName)
		e.emitAgentEnter(ctx, sessionID, state.CustomerID, target.Name)
		return nil
	})
	return target, err
}

// CurrentState returns the resolved state of a session's current agent.
func (e *Engine) CurrentState(ctx context.Context, sessionID string) (resolver.AgentState, error) {
	state, err := e.sessions.Load(ctx, sessionID)
	if err != nil {
		return resolver.AgentState{}, err
	}
	g, err := e.Graph(ctx, state.CustomerID)
	if err != nil {
		return resolver.AgentState{}, err
	}
	return e.resolver.CurrentState(g, state.CurrentAgent)
}

// EndSession removes a session's state.
func (e *Engine) EndSession(ctx context.Context, sessionID string) error {
	return e.sessions.Delete(ctx, sessionID)
}

// Sessions exposes the session manager for host integrations.
func (e *Engine) Sessions() *session.Manager {
	return e.sessions
}
