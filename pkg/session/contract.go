package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStoreContract verifies that a Store implementation adheres to the
// interface contract. Adapters call it from their own tests.
func RunStoreContract(t *testing.T, store Store) {
	ctx := context.Background()
	sessionID := "contract-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		state := NewState("customer_1", "IntakeAgent")
		state.MoveTo("SpecialistAgent")

		require.NoError(t, store.Save(ctx, sessionID, state))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "customer_1", loaded.CustomerID)
		assert.Equal(t, "SpecialistAgent", loaded.CurrentAgent)
		assert.Equal(t, []string{"IntakeAgent", "SpecialistAgent"}, loaded.History)
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.CurrentAgent = "Mutated"

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "SpecialistAgent", again.CurrentAgent)
	})

	t.Run("Load non-existent", func(t *testing.T) {
		_, err := store.Load(ctx, "no-such-"+sessionID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("List", func(t *testing.T) {
		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, sessionID)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, sessionID))
		_, err := store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
