package store_test

import (
	"context"
	"testing"

	"github.com/cookmate/cookmate/backend/internal/store"
	"github.com/cookmate/cookmate/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMongoStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	db := testhelpers.SetupTestMongo(t)

	runContract(t, func(t *testing.T) store.CatalogStore {
		require.NoError(t, db.Drop(context.Background()))
		return store.NewMongoStore(db)
	})
}

func TestMongoStore_MalformedIDs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	s := store.NewMongoStore(testhelpers.SetupTestMongo(t))
	ctx := context.Background()

	_, err := s.Read(ctx, store.CollectionRecipes, "not-an-object-id")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.UpdateField(ctx, store.CollectionRecipes, "not-an-object-id", "title", "x"), store.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, store.CollectionRecipes, "not-an-object-id"), store.ErrNotFound)
}
