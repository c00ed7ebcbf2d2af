package types

import (
	"github.com/cookmate/cookmate/backend/internal/catalog"
	"github.com/cookmate/cookmate/backend/internal/model"
)

// RegisterRequest is the sign-up form. Field contents are checked by the
// identity service so every problem is reported at once.
type RegisterRequest struct {
	Email    string `json:"email" binding:"max=320"`
	Password string `json:"password" binding:"max=128"`
	Username string `json:"username" binding:"max=64"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,max=320"`
	Password string `json:"password" binding:"required,max=128"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

// NutrientInput is an optional nutrition fact on the create form.
type NutrientInput struct {
	Amount float64 `json:"amount" binding:"gte=0"`
	Unit   string  `json:"unit" binding:"max=16"`
}

// CreateRecipeRequest is the create form. Completeness is checked after
// ingredient resolution; binding only bounds sizes.
type CreateRecipeRequest struct {
	Title             string                   `json:"title" binding:"max=200"`
	Ingredients       []catalog.IngredientLine `json:"ingredients" binding:"max=100,dive"`
	PreparationSteps  string                   `json:"preparation_steps" binding:"max=10000"`
	CookingTime       string                   `json:"cooking_time" binding:"max=64"`
	PrepTime          string                   `json:"prep_time" binding:"max=64"`
	ServingSize       string                   `json:"serving_size" binding:"max=64"`
	Categories        []string                 `json:"categories" binding:"max=20,dive,max=64"`
	Difficulty        string                   `json:"difficulty" binding:"max=16"`
	IsDraft           bool                     `json:"is_draft"`
	RecipeDescription string                   `json:"recipe_description" binding:"max=2000"`
	Calories          *NutrientInput           `json:"calories"`
	Fat               *NutrientInput           `json:"fat"`
	Carbs             *NutrientInput           `json:"carbs"`
	Protein           *NutrientInput           `json:"protein"`
}

// UpdateRecipeFieldRequest changes one stored field of a recipe. Field uses
// the stored name, e.g. "cookingTime" or "isDraft".
type UpdateRecipeFieldRequest struct {
	Field string `json:"field" binding:"required,max=64"`
	Value any    `json:"value"`
}

// ListRecipesQuery holds the query string of GET /recipes.
type ListRecipesQuery struct {
	Q          string `form:"q" binding:"max=200"`
	Categories string `form:"categories" binding:"max=1000"`
	Difficulty string `form:"difficulty" binding:"omitempty,difficulty"`
	Author     string `form:"author" binding:"max=64"`
	Drafts     bool   `form:"drafts"`
}

type RecipeListResponse struct {
	Recipes []model.Recipe `json:"recipes"`
	Count   int            `json:"count"`
}
