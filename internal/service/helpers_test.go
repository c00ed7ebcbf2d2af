package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/cookmate/cookmate/backend/internal/catalog"
	"github.com/cookmate/cookmate/backend/internal/model"
	"github.com/cookmate/cookmate/backend/internal/service"
	"github.com/cookmate/cookmate/backend/internal/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

type testEnv struct {
	store     *store.MemoryStore
	auth      *service.AuthService
	recipes   *service.RecipeService
	favorites *service.FavoriteService
}

func newTestEnv(t *testing.T, blobs service.BlobStore) *testEnv {
	t.Helper()
	s := store.NewMemoryStore()
	log := zap.NewNop()
	recipes := service.NewRecipeService(s, blobs, log)
	env := &testEnv{
		store:     s,
		auth:      service.NewAuthService(s, testSecret, time.Hour, nil, log),
		recipes:   recipes,
		favorites: service.NewFavoriteService(s, recipes, log),
	}
	for _, ing := range []model.Ingredient{
		{Name: "flour", Unit: "cups", Substitutes: []string{"almond flour"}},
		{Name: "Egg", Unit: "pcs", Substitutes: []string{}},
	} {
		_, err := s.Create(context.Background(), store.CollectionIngredients, catalog.IngredientToFields(ing))
		require.NoError(t, err)
	}
	return env
}

func (e *testEnv) signUp(t *testing.T, username string) string {
	t.Helper()
	id, err := e.auth.SignUp(context.Background(), username+"@example.com", "secret123", username)
	require.NoError(t, err)
	return id
}

func pancakes() service.NewRecipe {
	return service.NewRecipe{
		Title:            "Pancakes",
		Ingredients:      []catalog.IngredientLine{{Name: "Flour", Amount: 2}, {Name: "egg", Amount: 1}, {Name: "Maple syrup", Amount: 0.5}},
		PreparationSteps: "Mix, rest, fry.",
		CookingTime:      "15 min",
		PrepTime:         "5 min",
		ServingSize:      "4",
		Categories:       []string{"Breakfast", " Sweet "},
		Difficulty:       model.DifficultyEasy,
		Calories:         model.Nutrient{Amount: 350},
	}
}

func (e *testEnv) createRecipe(t *testing.T, authorID string, in service.NewRecipe) model.Recipe {
	t.Helper()
	r, err := e.recipes.CreateRecipe(context.Background(), authorID, in)
	require.NoError(t, err)
	return r
}
