package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/switchboard-dev/switchboard/pkg/schema"
)

// RunGraphStoreContract verifies that a GraphStore implementation adheres to
// the interface contract. Adapters call it from their own tests.
func RunGraphStoreContract(t *testing.T, store GraphStore) {
	ctx := context.Background()
	customerID := "contract-" + time.Now().Format("20060102150405")

	graph := &schema.Graph{
		CustomerID: customerID,
		Name:       "Contract Fixture",
		Agents: []schema.Agent{
			{
				Name:          "IntakeAgent",
				Instructions:  "Greet the caller.",
				OnEnterPrompt: "Hello!",
				Edges: []schema.Edge{
					{Name: "transfer_to_specialist", Action: schema.ActionHandoff, TargetAgent: "SpecialistAgent"},
				},
			},
			{Name: "SpecialistAgent", Instructions: "Answer technical questions."},
		},
	}
	require.NoError(t, schema.Validate(graph))

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, graph))

		loaded, err := store.Load(ctx, customerID)
		require.NoError(t, err)
		assert.Equal(t, graph.CustomerID, loaded.CustomerID)
		require.Len(t, loaded.Agents, 2)
		assert.Equal(t, "IntakeAgent", loaded.Agents[0].Name)
		assert.Equal(t, "SpecialistAgent", loaded.Agents[0].Edges[0].TargetAgent)
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, customerID)
		require.NoError(t, err)
		loaded.Agents[0].Name = "Mutated"

		again, err := store.Load(ctx, customerID)
		require.NoError(t, err)
		assert.Equal(t, "IntakeAgent", again.Agents[0].Name, "mutating a loaded graph must not affect the store")
	})

	t.Run("Save replaces whole", func(t *testing.T) {
		replacement := graph.Clone()
		replacement.Agents = replacement.Agents[:1]
		replacement.Agents[0].Edges = nil
		require.NoError(t, schema.Validate(replacement))
		require.NoError(t, store.Save(ctx, replacement))

		loaded, err := store.Load(ctx, customerID)
		require.NoError(t, err)
		assert.Len(t, loaded.Agents, 1)

		// Restore for the remaining subtests.
		require.NoError(t, store.Save(ctx, graph))
	})

	t.Run("Load non-existent", func(t *testing.T) {
		_, err := store.Load(ctx, "no-such-"+customerID)
		assert.ErrorIs(t, err, ErrGraphNotFound)
	})

	t.Run("List", func(t *testing.T) {
		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, customerID)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, customerID))
		_, err := store.Load(ctx, customerID)
		assert.ErrorIs(t, err, ErrGraphNotFound)
	})
}
