// Package registry holds the explicit capability set of tools a host
// environment makes available to its agents. It replaces any notion of a
// process-wide tool mapping: each deployment (and each test) constructs its
// own registry and passes it where needed.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNotFound is returned by Execute for undeclared tools.
var ErrNotFound = errors.New("tool not found")

// ToolFunc is the signature for a tool implementation. It receives a context
// and a map of arguments, and returns a result or error.
type ToolFunc func(ctx context.Context, args map[string]any) (any, error)

// Registry manages the available tools. Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]ToolFunc
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{tools: make(map[string]ToolFunc)}
}

// Register adds a tool. A tool with the same name is overwritten.
func (r *Registry) Register(name string, fn ToolFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[name] = fn
}

// Declared reports whether a tool identifier is registered. The resolver
// uses this for optional strict validation without ever invoking anything.
func (r *Registry) Declared(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// Names returns the declared tool identifiers, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute looks up a tool by name and runs it.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (any, error) {
	r.mu.RLock()
	fn, ok := r.tools[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return fn(ctx, args)
}
