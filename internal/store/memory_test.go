package store_test

import (
	"context"
	"testing"

	"github.com/cookmate/cookmate/backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	runContract(t, func(t *testing.T) store.CatalogStore {
		return store.NewMemoryStore()
	})
}

func TestMemoryStore_UndecodableBody(t *testing.T) {
	s := store.NewMemoryStore()
	s.Put(store.CollectionRecipes, "broken", nil)
	s.Put(store.CollectionRecipes, "ok", map[string]any{"title": "Soup"})

	docs, err := s.ReadAll(context.Background(), store.CollectionRecipes)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Nil(t, docs[0].Fields)
	assert.Equal(t, "Soup", docs[1].Fields["title"])

	err = s.UpdateField(context.Background(), store.CollectionRecipes, "broken", "title", "x")
	assert.Error(t, err)
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	s := store.NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ReadAll(ctx, store.CollectionRecipes)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.Create(ctx, store.CollectionRecipes, map[string]any{})
	assert.ErrorIs(t, err, context.Canceled)
}
