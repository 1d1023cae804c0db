// Package memory provides in-memory graph and session stores, used by tests
// and single-process embeddings.
package memory

import (
	"context"
	"sync"

	"github.com/switchboard-dev/switchboard/pkg/ports"
	"github.com/switchboard-dev/switchboard/pkg/schema"
	"github.com/switchboard-dev/switchboard/pkg/session"
)

// GraphStore implements ports.GraphStore in memory. Safe for concurrent use.
type GraphStore struct {
	mu   sync.RWMutex
	data map[string]*schema.Graph
}

// NewGraphStore creates an empty in-memory graph store.
func NewGraphStore() *GraphStore {
	return &GraphStore{data: make(map[string]*schema.Graph)}
}

// Save stores a clone of the graph, replacing any previous version whole.
func (s *GraphStore) Save(ctx context.Context, g *schema.Graph) error {
	clone := g.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[clone.CustomerID] = clone
	return nil
}

// Load returns a clone so callers cannot mutate the stored graph.
func (s *GraphStore) Load(ctx context.Context, customerID string) (*schema.Graph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.data[customerID]
	if !ok {
		return nil, ports.ErrGraphNotFound
	}
	return g.Clone(), nil
}

// Delete removes the graph for a customer id.
func (s *GraphStore) Delete(ctx context.Context, customerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, customerID)
	return nil
}

// List returns the stored customer ids.
func (s *GraphStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}

// SessionStore implements session.Store in memory. Safe for concurrent use.
type SessionStore struct {
	mu   sync.RWMutex
	data map[string]*session.State
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{data: make(map[string]*session.State)}
}

// Save stores a copy of the state.
func (s *SessionStore) Save(ctx context.Context, sessionID string, state *session.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = state.Clone()
	return nil
}

// Load returns a copy of the state.
func (s *SessionStore) Load(ctx context.Context, sessionID string) (*session.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.data[sessionID]
	if !ok {
		return nil, session.ErrNotFound
	}
	return state.Clone(), nil
}

// Delete removes the state.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns active session ids.
func (s *SessionStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}
