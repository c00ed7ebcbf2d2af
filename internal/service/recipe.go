package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cookmate/cookmate/backend/internal/catalog"
	"github.com/cookmate/cookmate/backend/internal/model"
	"github.com/cookmate/cookmate/backend/internal/store"
	"go.uber.org/zap"
)

// NewRecipe is the caller input for CreateRecipe. Ingredient lines are
// resolved against the reference list; zero-valued nutrition units take the
// kcal or g default.
type NewRecipe struct {
	Title             string
	Ingredients       []catalog.IngredientLine
	PreparationSteps  string
	CookingTime       string
	PrepTime          string
	ServingSize       string
	Categories        []string
	Difficulty        model.Difficulty
	IsDraft           bool
	RecipeDescription string
	Calories          model.Nutrient
	Fat               model.Nutrient
	Carbs             model.Nutrient
	Protein           model.Nutrient
}

// updatableFields are the stored fields an author may change one at a time.
var updatableFields = map[string]bool{
	catalog.FieldTitle:             true,
	catalog.FieldIngredients:       true,
	catalog.FieldPreparationSteps:  true,
	catalog.FieldCookingTime:       true,
	catalog.FieldPrepTime:          true,
	catalog.FieldServingSize:       true,
	catalog.FieldCategories:        true,
	catalog.FieldDifficulty:        true,
	catalog.FieldIsDraft:           true,
	catalog.FieldRecipeDescription: true,
	catalog.FieldCalories:          true,
	catalog.FieldFat:               true,
	catalog.FieldCarbs:             true,
	catalog.FieldProtein:           true,
}

// RecipeService handles recipe operations
type RecipeService struct {
	store store.CatalogStore
	blobs BlobStore
	log   *zap.Logger
	now   func() time.Time
}

var _ IRecipeService = (*RecipeService)(nil)

// NewRecipeService creates a new RecipeService instance. blobs may be nil when
// image uploads are disabled.
func NewRecipeService(s store.CatalogStore, blobs BlobStore, log *zap.Logger) *RecipeService {
	return &RecipeService{
		store: s,
		blobs: blobs,
		log:   log.Named("recipes"),
		now:   time.Now,
	}
}

// CreateRecipe resolves, validates and stores a recipe for authorID, then
// records it on the author's profile.
func (s *RecipeService) CreateRecipe(ctx context.Context, authorID string, in NewRecipe) (model.Recipe, error) {
	reference, err := s.ListIngredients(ctx)
	if err != nil {
		return model.Recipe{}, err
	}

	r := model.Recipe{
		Title:             strings.TrimSpace(in.Title),
		Ingredients:       catalog.ResolveIngredients(in.Ingredients, reference),
		PreparationSteps:  in.PreparationSteps,
		CookingTime:       in.CookingTime,
		PrepTime:          in.PrepTime,
		ServingSize:       in.ServingSize,
		Categories:        cleanCategories(in.Categories),
		Difficulty:        in.Difficulty,
		IsDraft:           in.IsDraft,
		AuthorID:          authorID,
		RecipeDescription: in.RecipeDescription,
		Calories:          withUnit(in.Calories, catalog.UnitKilocalories),
		Fat:               withUnit(in.Fat, catalog.UnitGrams),
		Carbs:             withUnit(in.Carbs, catalog.UnitGrams),
		Protein:           withUnit(in.Protein, catalog.UnitGrams),
	}
	if err := catalog.ValidateRecipeSubmission(r); err != nil {
		return model.Recipe{}, err
	}

	author, err := findUserDoc(ctx, s.store, authorID)
	if err != nil {
		return model.Recipe{}, fmt.Errorf("author: %w", err)
	}

	id, err := s.store.Create(ctx, store.CollectionRecipes, catalog.ToStoredFields(r))
	if err != nil {
		return model.Recipe{}, storeErr(err)
	}
	r.ID = id

	created := append(catalog.UserFromFields(author.Fields).CreatedRecipes, id)
	if err := s.store.UpdateField(ctx, store.CollectionUsers, author.ID, catalog.FieldCreatedRecipes, toAnySlice(created)); err != nil {
		s.log.Warn("failed to record created recipe on profile",
			zap.String("user_id", authorID), zap.String("recipe_id", id), zap.Error(err))
	}

	s.log.Info("recipe created",
		zap.String("recipe_id", id), zap.String("author_id", authorID), zap.Bool("draft", r.IsDraft))
	return r, nil
}

// GetRecipe returns one recipe. Drafts are only visible to their author.
func (s *RecipeService) GetRecipe(ctx context.Context, viewerID, id string) (model.Recipe, error) {
	r, err := s.load(ctx, id)
	if err != nil {
		return model.Recipe{}, err
	}
	if r.IsDraft && r.AuthorID != viewerID {
		return model.Recipe{}, fmt.Errorf("recipe %s: %w", id, catalog.ErrNotFound)
	}
	return r, nil
}

// ListRecipes runs criteria over the whole catalog in store order. Drafts are
// only included when the viewer asks for their own recipes.
func (s *RecipeService) ListRecipes(ctx context.Context, viewerID string, criteria catalog.Criteria) ([]model.Recipe, error) {
	if viewerID == "" || criteria.AuthorID != viewerID {
		criteria.IncludeDrafts = false
	}
	all, err := s.readAll(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Query(all, criteria), nil
}

// UpdateRecipeField changes a single stored field. The updated recipe must
// still pass submission validation.
func (s *RecipeService) UpdateRecipeField(ctx context.Context, userID, id, field string, value any) (model.Recipe, error) {
	if !updatableFields[field] {
		return model.Recipe{}, &catalog.ValidationError{
			Messages: []string{fmt.Sprintf("Field %q cannot be updated", field)},
		}
	}

	current, err := s.loadOwned(ctx, userID, id)
	if err != nil {
		return model.Recipe{}, err
	}

	fields := catalog.ToStoredFields(current)
	fields[field] = value
	updated := catalog.FromStoredFields(fields)
	updated.ID = id
	if field == catalog.FieldIngredients {
		reference, err := s.ListIngredients(ctx)
		if err != nil {
			return model.Recipe{}, err
		}
		updated.Ingredients = catalog.ResolveIngredients(ingredientLines(updated.Ingredients), reference)
	}
	if err := catalog.ValidateRecipeSubmission(updated); err != nil {
		return model.Recipe{}, err
	}

	// Store the normalized value so the document keeps canonical shapes.
	stored := catalog.ToStoredFields(updated)[field]
	if err := s.store.UpdateField(ctx, store.CollectionRecipes, id, field, stored); err != nil {
		return model.Recipe{}, storeErr(err)
	}

	s.log.Info("recipe updated", zap.String("recipe_id", id), zap.String("field", field))
	return updated, nil
}

// DeleteRecipe removes a recipe owned by userID. Favorites keep their
// snapshots.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, id string) error {
	if _, err := s.loadOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, store.CollectionRecipes, id); err != nil {
		return storeErr(err)
	}

	if author, err := findUserDoc(ctx, s.store, userID); err == nil {
		created := catalog.UserFromFields(author.Fields).CreatedRecipes
		remaining := make([]string, 0, len(created))
		for _, rid := range created {
			if rid != id {
				remaining = append(remaining, rid)
			}
		}
		if err := s.store.UpdateField(ctx, store.CollectionUsers, author.ID, catalog.FieldCreatedRecipes, toAnySlice(remaining)); err != nil {
			s.log.Warn("failed to drop deleted recipe from profile", zap.String("recipe_id", id), zap.Error(err))
		}
	}

	s.log.Info("recipe deleted", zap.String("recipe_id", id), zap.String("user_id", userID))
	return nil
}

// SetRecipeImage uploads an image for a recipe owned by userID and points the
// recipe's image reference at it.
func (s *RecipeService) SetRecipeImage(ctx context.Context, userID, id string, data []byte, contentType string) (model.Recipe, error) {
	if s.blobs == nil {
		return model.Recipe{}, catalog.Collaborator(collabBlob, ErrBlobStoreDisabled)
	}
	r, err := s.loadOwned(ctx, userID, id)
	if err != nil {
		return model.Recipe{}, err
	}

	url, err := s.blobs.Upload(ctx, RecipeImagePath(userID, s.now()), data, contentType)
	if err != nil {
		return model.Recipe{}, catalog.Collaborator(collabBlob, err)
	}
	if err := s.store.UpdateField(ctx, store.CollectionRecipes, id, catalog.FieldImageReference, url); err != nil {
		return model.Recipe{}, storeErr(err)
	}

	r.ImageReference = url
	s.log.Info("recipe image uploaded", zap.String("recipe_id", id), zap.Int("bytes", len(data)))
	return r, nil
}

// ListIngredients returns the reference ingredient list in store order.
func (s *RecipeService) ListIngredients(ctx context.Context) ([]model.Ingredient, error) {
	docs, err := s.store.ReadAll(ctx, store.CollectionIngredients)
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]model.Ingredient, 0, len(docs))
	for _, d := range docs {
		if d.Fields == nil {
			s.log.Warn("skipping undecodable document",
				zap.String("collection", store.CollectionIngredients), zap.String("id", d.ID))
			continue
		}
		out = append(out, catalog.IngredientFromFields(d.Fields))
	}
	return out, nil
}

// readAll assembles every decodable recipe document. Bodies that cannot be
// decoded are logged and skipped so one corrupt document does not fail the
// listing.
func (s *RecipeService) readAll(ctx context.Context) ([]model.Recipe, error) {
	docs, err := s.store.ReadAll(ctx, store.CollectionRecipes)
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]model.Recipe, 0, len(docs))
	for _, d := range docs {
		if d.Fields == nil {
			s.log.Warn("skipping undecodable document",
				zap.String("collection", store.CollectionRecipes), zap.String("id", d.ID))
			continue
		}
		r := catalog.FromStoredFields(d.Fields)
		r.ID = d.ID
		out = append(out, r)
	}
	return out, nil
}

func (s *RecipeService) load(ctx context.Context, id string) (model.Recipe, error) {
	doc, err := s.store.Read(ctx, store.CollectionRecipes, id)
	if err != nil {
		return model.Recipe{}, storeErr(err)
	}
	if doc.Fields == nil {
		s.log.Warn("undecodable recipe document", zap.String("id", id))
		return model.Recipe{}, fmt.Errorf("recipe %s: %w", id, catalog.ErrNotFound)
	}
	r := catalog.FromStoredFields(doc.Fields)
	r.ID = doc.ID
	return r, nil
}

func (s *RecipeService) loadOwned(ctx context.Context, userID, id string) (model.Recipe, error) {
	r, err := s.load(ctx, id)
	if err != nil {
		return model.Recipe{}, err
	}
	if r.AuthorID != userID {
		if r.IsDraft {
			return model.Recipe{}, fmt.Errorf("recipe %s: %w", id, catalog.ErrNotFound)
		}
		return model.Recipe{}, fmt.Errorf("recipe %s: %w", id, catalog.ErrForbidden)
	}
	return r, nil
}

func withUnit(n model.Nutrient, unit string) model.Nutrient {
	if n.Unit == "" {
		n.Unit = unit
	}
	return n
}

// ingredientLines keeps only what a user types for an ingredient so the
// rest can be resolved again.
func ingredientLines(ingredients []model.Ingredient) []catalog.IngredientLine {
	lines := make([]catalog.IngredientLine, 0, len(ingredients))
	for _, ing := range ingredients {
		lines = append(lines, catalog.IngredientLine{Name: ing.Name, Amount: ing.Amount})
	}
	return lines
}

func cleanCategories(categories []string) []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
