package service

import (
	"context"
	"time"

	"github.com/cookmate/cookmate/backend/internal/catalog"
	"github.com/cookmate/cookmate/backend/internal/model"
	"github.com/cookmate/cookmate/backend/internal/types"
)

// IdentityProvider issues and checks user identities.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password, displayName string) (string, error)
	SignIn(ctx context.Context, email, password string) (userID, token string, err error)
	SignOut(ctx context.Context, token string) error
	CurrentUserID(ctx context.Context) (string, bool)
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
	UsernameAvailable(ctx context.Context, username string) (bool, error)
	GetUser(ctx context.Context, userID string) (model.User, error)
}

// BlobStore stores binary objects and returns a URL to read them back.
type BlobStore interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

// TokenRevoker remembers revoked token ids until their expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, authorID string, in NewRecipe) (model.Recipe, error)
	GetRecipe(ctx context.Context, viewerID, id string) (model.Recipe, error)
	ListRecipes(ctx context.Context, viewerID string, criteria catalog.Criteria) ([]model.Recipe, error)
	UpdateRecipeField(ctx context.Context, userID, id, field string, value any) (model.Recipe, error)
	DeleteRecipe(ctx context.Context, userID, id string) error
	SetRecipeImage(ctx context.Context, userID, id string, data []byte, contentType string) (model.Recipe, error)
	ListIngredients(ctx context.Context) ([]model.Ingredient, error)
}

// IFavoriteService defines the interface for favorite operations
type IFavoriteService interface {
	AddFavorite(ctx context.Context, userID, recipeID string) (model.FavoriteEntry, error)
	RemoveFavorite(ctx context.Context, userID, title string) error
	RemoveFavoriteForRecipe(ctx context.Context, userID, recipeID string) error
	ListFavorites(ctx context.Context, userID string) ([]model.Recipe, error)
}
