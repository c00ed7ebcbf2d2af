package service

import (
	"context"
	"time"

	"github.com/cookmate/cookmate/backend/internal/catalog"
	"github.com/cookmate/cookmate/backend/internal/model"
	"github.com/cookmate/cookmate/backend/internal/store"
	"go.uber.org/zap"
)

// FavoriteService persists favorites decided by catalog.Favorites. Each call
// reads the user's entries, decides, then writes; two concurrent adds of the
// same title can both pass the duplicate check.
type FavoriteService struct {
	store   store.CatalogStore
	recipes IRecipeService
	log     *zap.Logger
	now     func() time.Time
}

var _ IFavoriteService = (*FavoriteService)(nil)

func NewFavoriteService(s store.CatalogStore, recipes IRecipeService, log *zap.Logger) *FavoriteService {
	return &FavoriteService{
		store:   s,
		recipes: recipes,
		log:     log.Named("favorites"),
		now:     time.Now,
	}
}

// AddFavorite snapshots the recipe into the user's favorites. A second add of
// a recipe with the same title returns catalog.ErrAlreadyExists.
func (s *FavoriteService) AddFavorite(ctx context.Context, userID, recipeID string) (model.FavoriteEntry, error) {
	recipe, err := s.recipes.GetRecipe(ctx, userID, recipeID)
	if err != nil {
		return model.FavoriteEntry{}, err
	}
	favs, err := s.load(ctx, userID)
	if err != nil {
		return model.FavoriteEntry{}, err
	}

	entry, err := favs.Add(userID, recipe, s.now().UTC())
	if err != nil {
		return model.FavoriteEntry{}, err
	}
	id, err := s.store.Create(ctx, store.CollectionFavorites, catalog.FavoriteToStoredFields(entry))
	if err != nil {
		return model.FavoriteEntry{}, storeErr(err)
	}
	entry.ID = id

	s.log.Info("favorite added", zap.String("user_id", userID), zap.String("title", recipe.Title))
	return entry, nil
}

// RemoveFavorite deletes the first favorite of userID with the given title.
// It works after the original recipe has been deleted.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID, title string) error {
	favs, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	entry, err := favs.Remove(userID, title)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, store.CollectionFavorites, entry.ID); err != nil {
		return storeErr(err)
	}
	s.log.Info("favorite removed", zap.String("user_id", userID), zap.String("title", title))
	return nil
}

// RemoveFavoriteForRecipe removes the favorite matching the current title of
// recipeID.
func (s *FavoriteService) RemoveFavoriteForRecipe(ctx context.Context, userID, recipeID string) error {
	recipe, err := s.recipes.GetRecipe(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	return s.RemoveFavorite(ctx, userID, recipe.Title)
}

// ListFavorites returns the user's recipe snapshots in store order.
func (s *FavoriteService) ListFavorites(ctx context.Context, userID string) ([]model.Recipe, error) {
	favs, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return favs.List(userID), nil
}

func (s *FavoriteService) load(ctx context.Context, userID string) (*catalog.Favorites, error) {
	docs, err := s.store.ReadWhere(ctx, store.CollectionFavorites, catalog.FieldUserID, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	entries := make([]model.FavoriteEntry, 0, len(docs))
	for _, d := range docs {
		if d.Fields == nil {
			s.log.Warn("skipping undecodable document",
				zap.String("collection", store.CollectionFavorites), zap.String("id", d.ID))
			continue
		}
		e := catalog.FavoriteFromFields(d.Fields)
		e.ID = d.ID
		entries = append(entries, e)
	}
	return catalog.NewFavorites(entries), nil
}
