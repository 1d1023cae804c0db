// Package redis provides Redis-backed graph and session stores plus a
// distributed locker, for deployments where multiple replicas serve the same
// customers.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/switchboard-dev/switchboard/pkg/ports"
	"github.com/switchboard-dev/switchboard/pkg/schema"
	"github.com/switchboard-dev/switchboard/pkg/session"
)

const defaultPrefix = "switchboard:"

// SessionStore implements session.Store on Redis. State is stored as JSON
// under <prefix>session:<id>, optionally with a TTL so abandoned voice
// sessions expire on their own.
type SessionStore struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// SessionOption configures the SessionStore.
type SessionOption func(*SessionStore)

// WithTTL sets an expiry on stored sessions (default: no expiry).
func WithTTL(ttl time.Duration) SessionOption {
	return func(s *SessionStore) {
		s.ttl = ttl
	}
}

// WithSessionPrefix overrides the key prefix.
func WithSessionPrefix(prefix string) SessionOption {
	return func(s *SessionStore) {
		s.prefix = prefix
	}
}

// NewSessionStore creates a session store from an existing client.
func NewSessionStore(client *backend.Client, opts ...SessionOption) *SessionStore {
	s := &SessionStore{client: client, prefix: defaultPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SessionStore) key(sessionID string) string {
	return s.prefix + "session:" + sessionID
}

// Save persists the state as JSON, refreshing the TTL if one is configured.
func (s *SessionStore) Save(ctx context.Context, sessionID string, state *session.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session state: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis error saving session: %w", err)
	}
	return nil
}

// Load retrieves and decodes the state.
func (s *SessionStore) Load(ctx context.Context, sessionID string) (*session.State, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis error loading session: %w", err)
	}
	var state session.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode session state: %w", err)
	}
	return &state, nil
}

// Delete removes the session key.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis error deleting session: %w", err)
	}
	return nil
}

// List scans for active session ids.
func (s *SessionStore) List(ctx context.Context) ([]string, error) {
	return scanKeys(ctx, s.client, s.prefix+"session:")
}

// GraphStore implements ports.GraphStore on Redis: validated graph documents
// as JSON under <prefix>graph:<customer_id>. Saving sets the whole document
// in one command, so any concurrent Load observes either the old or the new
// graph in full.
type GraphStore struct {
	client *backend.Client
	prefix string
}

// GraphOption configures the GraphStore.
type GraphOption func(*GraphStore)

// WithGraphPrefix overrides the key prefix.
func WithGraphPrefix(prefix string) GraphOption {
	return func(s *GraphStore) {
		s.prefix = prefix
	}
}

// NewGraphStore creates a graph store from an existing client.
func NewGraphStore(client *backend.Client, opts ...GraphOption) *GraphStore {
	s := &GraphStore{client: client, prefix: defaultPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *GraphStore) key(customerID string) string {
	return s.prefix + "graph:" + customerID
}

// Save persists the graph document.
func (s *GraphStore) Save(ctx context.Context, g *schema.Graph) error {
	data, err := g.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}
	if err := s.client.Set(ctx, s.key(g.CustomerID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis error saving graph: %w", err)
	}
	return nil
}

// Load retrieves and decodes the graph document.
func (s *GraphStore) Load(ctx context.Context, customerID string) (*schema.Graph, error) {
	data, err := s.client.Get(ctx, s.key(customerID)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, ports.ErrGraphNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis error loading graph: %w", err)
	}
	var g schema.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("failed to decode graph: %w", err)
	}
	return &g, nil
}

// Delete removes the graph document.
func (s *GraphStore) Delete(ctx context.Context, customerID string) error {
	if err := s.client.Del(ctx, s.key(customerID)).Err(); err != nil {
		return fmt.Errorf("redis error deleting graph: %w", err)
	}
	return nil
}

// List scans for stored customer ids.
func (s *GraphStore) List(ctx context.Context) ([]string, error) {
	return scanKeys(ctx, s.client, s.prefix+"graph:")
}

func scanKeys(ctx context.Context, client *backend.Client, keyPrefix string) ([]string, error) {
	var ids []string
	iter := client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), keyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis error listing keys: %w", err)
	}
	return ids, nil
}
