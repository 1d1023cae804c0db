package ports

import (
	"context"
	"errors"

	"github.com/switchboard-dev/switchboard/pkg/schema"
)

// ErrGraphNotFound is returned when a customer id has no stored graph.
var ErrGraphNotFound = errors.New("graph not found")

// GraphStore persists validated customer graphs, keyed by customer id.
// Implementations must hand back graphs the caller can mutate freely
// (copies, not shared references) so a stored graph stays immutable.
type GraphStore interface {
	// Save persists the graph under its customer id, replacing any previous
	// version whole. Callers validate before saving.
	Save(ctx context.Context, g *schema.Graph) error

	// Load retrieves the graph for a customer id.
	// Returns ErrGraphNotFound if the customer has no graph.
	Load(ctx context.Context, customerID string) (*schema.Graph, error)

	// Delete removes the graph for a customer id.
	Delete(ctx context.Context, customerID string) error

	// List returns the customer ids that have stored graphs.
	List(ctx context.Context) ([]string, error)
}
