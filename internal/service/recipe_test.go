package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cookmate/cookmate/backend/internal/catalog"
	"github.com/cookmate/cookmate/backend/internal/mocks"
	"github.com/cookmate/cookmate/backend/internal/model"
	"github.com/cookmate/cookmate/backend/internal/service"
	"github.com/cookmate/cookmate/backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateRecipeResolvesIngredients(t *testing.T) {
	env := newTestEnv(t, nil)
	author := env.signUp(t, "chef")

	r := env.createRecipe(t, author, pancakes())

	require.NotEmpty(t, r.ID)
	assert.Equal(t, author, r.AuthorID)
	assert.Equal(t, []model.Ingredient{
		{Amount: 2, Unit: "cups", Name: "Flour", Substitutes: []string{"almond flour"}},
		{Amount: 1, Unit: "pcs", Name: "egg", Substitutes: []string{}},
		{Amount: 0.5, Unit: "units", Name: "Maple syrup", Substitutes: []string{}},
	}, r.Ingredients)
	assert.Equal(t, []string{"Breakfast", "Sweet"}, r.Categories)
	assert.Equal(t, model.Nutrient{Amount: 350, Unit: "kcal"}, r.Calories)
	assert.Equal(t, model.Nutrient{Amount: 0, Unit: "g"}, r.Protein)

	stored, err := env.recipes.GetRecipe(context.Background(), author, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r, stored)

	user, err := env.auth.GetUser(context.Background(), author)
	require.NoError(t, err)
	assert.Equal(t, []string{r.ID}, user.CreatedRecipes)
}

func TestCreateRecipeValidation(t *testing.T) {
	env := newTestEnv(t, nil)
	author := env.signUp(t, "chef")

	in := pancakes()
	in.Title = ""
	in.Ingredients = []catalog.IngredientLine{{Name: " ", Amount: 1}}
	_, err := env.recipes.CreateRecipe(context.Background(), author, in)

	var verr *catalog.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{catalog.MsgTitleRequired, catalog.MsgIngredientRequired}, verr.Messages)

	docs, err := env.store.ReadAll(context.Background(), store.CollectionRecipes)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestCreateRecipeUnknownAuthor(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.recipes.CreateRecipe(context.Background(), "ghost", pancakes())
	assert.True(t, errors.Is(err, catalog.ErrNotFound))
}

func TestListRecipes(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	chef := env.signUp(t, "chef")
	baker := env.signUp(t, "baker")

	a := env.createRecipe(t, chef, pancakes())
	omelette := pancakes()
	omelette.Title = "Omelette"
	omelette.Categories = []string{"Lunch"}
	omelette.Difficulty = model.DifficultyMedium
	b := env.createRecipe(t, baker, omelette)
	draft := pancakes()
	draft.Title = "Secret Eggs"
	draft.IsDraft = true
	c := env.createRecipe(t, baker, draft)
	env.store.Put(store.CollectionRecipes, "corrupt", nil)

	all, err := env.recipes.ListRecipes(ctx, chef, catalog.Criteria{})
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID}, ids(all))

	// Someone else's drafts stay hidden even when asked for.
	all, err = env.recipes.ListRecipes(ctx, chef, catalog.Criteria{AuthorID: baker, IncludeDrafts: true})
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, ids(all))

	own, err := env.recipes.ListRecipes(ctx, baker, catalog.Criteria{AuthorID: baker, IncludeDrafts: true})
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID, c.ID}, ids(own))

	found, err := env.recipes.ListRecipes(ctx, chef, catalog.Criteria{TextQuery: "OME", Difficulty: model.DifficultyMedium})
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, ids(found))
}

func TestGetRecipeHidesOthersDrafts(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	chef := env.signUp(t, "chef")
	baker := env.signUp(t, "baker")
	in := pancakes()
	in.IsDraft = true
	r := env.createRecipe(t, chef, in)

	_, err := env.recipes.GetRecipe(ctx, baker, r.ID)
	assert.True(t, errors.Is(err, catalog.ErrNotFound))

	got, err := env.recipes.GetRecipe(ctx, chef, r.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDraft)

	_, err = env.recipes.GetRecipe(ctx, chef, "missing")
	assert.True(t, errors.Is(err, catalog.ErrNotFound))
}

func TestUpdateRecipeField(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	chef := env.signUp(t, "chef")
	baker := env.signUp(t, "baker")
	r := env.createRecipe(t, chef, pancakes())

	updated, err := env.recipes.UpdateRecipeField(ctx, chef, r.ID, catalog.FieldCookingTime, "20 min")
	require.NoError(t, err)
	assert.Equal(t, "20 min", updated.CookingTime)

	updated, err = env.recipes.UpdateRecipeField(ctx, chef, r.ID, catalog.FieldCategories, []any{"Brunch"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Brunch"}, updated.Categories)

	got, err := env.recipes.GetRecipe(ctx, chef, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "20 min", got.CookingTime)
	assert.Equal(t, []string{"Brunch"}, got.Categories)

	_, err = env.recipes.UpdateRecipeField(ctx, baker, r.ID, catalog.FieldTitle, "Mine now")
	assert.True(t, errors.Is(err, catalog.ErrForbidden))

	_, err = env.recipes.UpdateRecipeField(ctx, chef, r.ID, catalog.FieldAuthorID, baker)
	assert.True(t, errors.Is(err, catalog.ErrValidation))

	_, err = env.recipes.UpdateRecipeField(ctx, chef, r.ID, catalog.FieldDifficulty, "Impossible")
	assert.True(t, errors.Is(err, catalog.ErrValidation))

	_, err = env.recipes.UpdateRecipeField(ctx, chef, r.ID, catalog.FieldTitle, "  ")
	var verr *catalog.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{catalog.MsgTitleRequired}, verr.Messages)
}

func TestUpdateRecipeIngredientsResolvesLines(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	chef := env.signUp(t, "chef")
	r := env.createRecipe(t, chef, pancakes())

	updated, err := env.recipes.UpdateRecipeField(ctx, chef, r.ID, catalog.FieldIngredients, []any{
		map[string]any{"name": "Flour", "amount": 3.0},
		map[string]any{"name": "Saffron", "amount": 1, "unit": "pinch"},
	})
	require.NoError(t, err)

	want := []model.Ingredient{
		{Amount: 3, Unit: "cups", Name: "Flour", Substitutes: []string{"almond flour"}},
		{Amount: 1, Unit: catalog.DefaultIngredientUnit, Name: "Saffron", Substitutes: []string{}},
	}
	assert.Equal(t, want, updated.Ingredients)

	got, err := env.recipes.GetRecipe(ctx, chef, r.ID)
	require.NoError(t, err)
	assert.Equal(t, want, got.Ingredients)

	_, err = env.recipes.UpdateRecipeField(ctx, chef, r.ID, catalog.FieldIngredients, []any{
		map[string]any{"name": "Flour", "amount": 0},
	})
	assert.True(t, errors.Is(err, catalog.ErrValidation))
}

func TestDeleteRecipe(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	chef := env.signUp(t, "chef")
	baker := env.signUp(t, "baker")
	r := env.createRecipe(t, chef, pancakes())

	assert.True(t, errors.Is(env.recipes.DeleteRecipe(ctx, baker, r.ID), catalog.ErrForbidden))
	require.NoError(t, env.recipes.DeleteRecipe(ctx, chef, r.ID))
	assert.True(t, errors.Is(env.recipes.DeleteRecipe(ctx, chef, r.ID), catalog.ErrNotFound))

	user, err := env.auth.GetUser(ctx, chef)
	require.NoError(t, err)
	assert.Empty(t, user.CreatedRecipes)
}

func TestSetRecipeImage(t *testing.T) {
	blobs := new(mocks.MockBlobStore)
	env := newTestEnv(t, blobs)
	ctx := context.Background()
	chef := env.signUp(t, "chef")
	r := env.createRecipe(t, chef, pancakes())
	data := []byte{0xff, 0xd8, 0xff}

	blobs.On("Upload", mock.Anything, mock.MatchedBy(func(path string) bool {
		return strings.HasPrefix(path, "users/"+chef+"/recipes/images/") && strings.HasSuffix(path, ".jpg")
	}), data, "image/jpeg").Return("https://cdn.example.com/a.jpg", nil).Once()

	updated, err := env.recipes.SetRecipeImage(ctx, chef, r.ID, data, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.jpg", updated.ImageReference)

	got, err := env.recipes.GetRecipe(ctx, chef, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.jpg", got.ImageReference)

	blobs.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("access denied")).Once()
	_, err = env.recipes.SetRecipeImage(ctx, chef, r.ID, data, "image/jpeg")
	var cerr *catalog.CollaboratorError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "blob store", cerr.Collaborator)

	blobs.AssertExpectations(t)
}

func TestSetRecipeImageWithoutBlobStore(t *testing.T) {
	env := newTestEnv(t, nil)
	chef := env.signUp(t, "chef")
	r := env.createRecipe(t, chef, pancakes())

	_, err := env.recipes.SetRecipeImage(context.Background(), chef, r.ID, []byte("x"), "image/png")
	assert.ErrorIs(t, err, service.ErrBlobStoreDisabled)
}

func TestStoreFailuresAreCollaboratorErrors(t *testing.T) {
	s := new(mocks.MockCatalogStore)
	recipes := service.NewRecipeService(s, nil, zap.NewNop())
	s.On("ReadAll", mock.Anything, store.CollectionRecipes).Return(nil, errors.New("connection reset"))

	_, err := recipes.ListRecipes(context.Background(), "u1", catalog.Criteria{})

	var cerr *catalog.CollaboratorError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "catalog store", cerr.Collaborator)
	assert.ErrorContains(t, err, "connection reset")
}

func TestListIngredients(t *testing.T) {
	env := newTestEnv(t, nil)
	env.store.Put(store.CollectionIngredients, "broken", nil)

	ings, err := env.recipes.ListIngredients(context.Background())
	require.NoError(t, err)
	require.Len(t, ings, 2)
	assert.Equal(t, "flour", ings[0].Name)
	assert.Equal(t, "Egg", ings[1].Name)
}

func ids(recipes []model.Recipe) []string {
	out := make([]string, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.ID)
	}
	return out
}
