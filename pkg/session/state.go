package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a session id cannot be found in the store.
var ErrNotFound = errors.New("session not found")

// State is everything a live session owns: a pointer to its customer's graph
// (by id, never by reference) and the single mutable current-agent pointer.
// The graph itself is immutable and shared; all mutation happens here.
type State struct {
	CustomerID   string   `json:"customer_id"`
	CurrentAgent string   `json:"current_agent"`
	History      []string `json:"history,omitempty"`
}

// NewState creates a session state starting at the given agent.
func NewState(customerID, entryAgent string) *State {
	return &State{
		CustomerID:   customerID,
		CurrentAgent: entryAgent,
		History:      []string{entryAgent},
	}
}

// MoveTo applies a handoff: the target becomes the current agent and is
// appended to the session history.
func (s *State) MoveTo(agent string) {
	s.CurrentAgent = agent
	s.History = append(s.History, agent)
}

// Clone returns a copy safe to hand across store boundaries.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	out := *s
	if s.History != nil {
		out.History = append([]string(nil), s.History...)
	}
	return &out
}

// Store persists session state by session id. Defined here, next to its
// consumer (Manager); adapters in pkg/adapters implement it.
type Store interface {
	// Save persists the state for a session id.
	Save(ctx context.Context, sessionID string, state *State) error

	// Load retrieves the state for a session id.
	// Returns ErrNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*State, error)

	// Delete removes the state for a session id.
	Delete(ctx context.Context, sessionID string) error

	// List returns the known session ids.
	List(ctx context.Context) ([]string, error)
}
