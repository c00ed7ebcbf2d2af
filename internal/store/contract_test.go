package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cookmate/cookmate/backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runContract exercises behaviour every CatalogStore must share.
func runContract(t *testing.T, newStore func(t *testing.T) store.CatalogStore) {
	ctx := context.Background()

	t.Run("create and read", func(t *testing.T) {
		s := newStore(t)
		id, err := s.Create(ctx, store.CollectionRecipes, map[string]any{
			"title":      "Soup",
			"categories": []any{"Dinner"},
		})
		require.NoError(t, err)
		require.NotEmpty(t, id)

		doc, err := s.Read(ctx, store.CollectionRecipes, id)
		require.NoError(t, err)
		assert.Equal(t, id, doc.ID)
		assert.Equal(t, "Soup", doc.Fields["title"])
		assert.Equal(t, []any{"Dinner"}, doc.Fields["categories"])
		assert.NotContains(t, doc.Fields, "_id")
	})

	t.Run("read all keeps store order", func(t *testing.T) {
		s := newStore(t)
		var ids []string
		for _, title := range []string{"first", "second", "third"} {
			id, err := s.Create(ctx, store.CollectionRecipes, map[string]any{"title": title})
			require.NoError(t, err)
			ids = append(ids, id)
		}
		_, err := s.Create(ctx, store.CollectionUsers, map[string]any{"username": "chef"})
		require.NoError(t, err)

		docs, err := s.ReadAll(ctx, store.CollectionRecipes)
		require.NoError(t, err)
		require.Len(t, docs, 3)
		for i, d := range docs {
			assert.Equal(t, ids[i], d.ID)
		}
	})

	t.Run("read where supports dotted paths and numbers", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Create(ctx, store.CollectionFavorites, map[string]any{
			"userId": "u1",
			"recipe": map[string]any{"title": "Soup", "rating": 4},
		})
		require.NoError(t, err)
		_, err = s.Create(ctx, store.CollectionFavorites, map[string]any{
			"userId": "u2",
			"recipe": map[string]any{"title": "Bread", "rating": 4.5},
		})
		require.NoError(t, err)

		docs, err := s.ReadWhere(ctx, store.CollectionFavorites, "recipe.title", "Soup")
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "u1", docs[0].Fields["userId"])

		docs, err = s.ReadWhere(ctx, store.CollectionFavorites, "recipe.rating", 4)
		require.NoError(t, err)
		assert.Len(t, docs, 1)

		docs, err = s.ReadWhere(ctx, store.CollectionFavorites, "userId", "nobody")
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("update field", func(t *testing.T) {
		s := newStore(t)
		id, err := s.Create(ctx, store.CollectionRecipes, map[string]any{"title": "Soup", "isDraft": true})
		require.NoError(t, err)

		require.NoError(t, s.UpdateField(ctx, store.CollectionRecipes, id, "isDraft", false))
		require.NoError(t, s.UpdateField(ctx, store.CollectionRecipes, id, "calories.amount", 120.0))

		doc, err := s.Read(ctx, store.CollectionRecipes, id)
		require.NoError(t, err)
		assert.Equal(t, false, doc.Fields["isDraft"])
		assert.Equal(t, "Soup", doc.Fields["title"])
		calories, ok := doc.Fields["calories"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, 120.0, calories["amount"])
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		id, err := s.Create(ctx, store.CollectionRecipes, map[string]any{"title": "Soup"})
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, store.CollectionRecipes, id))
		_, err = s.Read(ctx, store.CollectionRecipes, id)
		assert.True(t, errors.Is(err, store.ErrNotFound))
	})

	t.Run("missing ids", func(t *testing.T) {
		s := newStore(t)
		missing := "000000000000000000000000"

		_, err := s.Read(ctx, store.CollectionRecipes, missing)
		assert.True(t, errors.Is(err, store.ErrNotFound))
		err = s.UpdateField(ctx, store.CollectionRecipes, missing, "title", "x")
		assert.True(t, errors.Is(err, store.ErrNotFound))
		err = s.Delete(ctx, store.CollectionRecipes, missing)
		assert.True(t, errors.Is(err, store.ErrNotFound))
	})

	t.Run("returned fields are copies", func(t *testing.T) {
		s := newStore(t)
		input := map[string]any{"title": "Soup", "categories": []any{"Dinner"}}
		id, err := s.Create(ctx, store.CollectionRecipes, input)
		require.NoError(t, err)
		input["title"] = "changed"

		doc, err := s.Read(ctx, store.CollectionRecipes, id)
		require.NoError(t, err)
		doc.Fields["categories"].([]any)[0] = "Lunch"

		again, err := s.Read(ctx, store.CollectionRecipes, id)
		require.NoError(t, err)
		assert.Equal(t, "Soup", again.Fields["title"])
		assert.Equal(t, []any{"Dinner"}, again.Fields["categories"])
	})
}
