package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cookmate/cookmate/backend/internal/catalog"
	"github.com/cookmate/cookmate/backend/internal/middleware"
	"github.com/cookmate/cookmate/backend/internal/model"
	"github.com/cookmate/cookmate/backend/internal/service"
	"github.com/cookmate/cookmate/backend/internal/types"
)

// MaxImageSize bounds recipe image uploads.
const MaxImageSize = 10 << 20

type RecipeHandler struct {
	recipes service.IRecipeService
	limiter *middleware.RateLimiter
}

func NewRecipeHandler(recipes service.IRecipeService, limiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, limiter: limiter}
}

// RegisterRoutes expects router to be behind the auth middleware.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	create := []gin.HandlerFunc{h.CreateRecipe}
	if h.limiter != nil {
		create = append([]gin.HandlerFunc{h.limiter.RateLimitMiddleware()}, create...)
	}

	router.GET("/ingredients", h.ListIngredients)
	router.GET("/users/me/recipes", h.ListMyRecipes)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", create...)
		recipes.GET("/:id", h.GetRecipe)
		recipes.PATCH("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.PUT("/:id/image", h.UploadImage)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var q types.ListRecipesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindingError(c, err)
		return
	}

	recipes, err := h.recipes.ListRecipes(c.Request.Context(), currentUser(c), catalog.Criteria{
		TextQuery:     q.Q,
		Categories:    splitList(q.Categories),
		Difficulty:    model.Difficulty(q.Difficulty),
		AuthorID:      q.Author,
		IncludeDrafts: q.Drafts,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.RecipeListResponse{Recipes: recipes, Count: len(recipes)})
}

// ListMyRecipes returns the caller's own recipes, drafts included.
func (h *RecipeHandler) ListMyRecipes(c *gin.Context) {
	userID := currentUser(c)
	recipes, err := h.recipes.ListRecipes(c.Request.Context(), userID, catalog.Criteria{
		AuthorID:      userID,
		IncludeDrafts: true,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.RecipeListResponse{Recipes: recipes, Count: len(recipes)})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), currentUser(c), newRecipe(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	var req types.UpdateRecipeFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	recipe, err := h.recipes.UpdateRecipeField(c.Request.Context(), currentUser(c), c.Param("id"), req.Field, req.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	if err := h.recipes.DeleteRecipe(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage takes the multipart "image" field and stores it as the recipe
// image.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if file.Size > MaxImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image is too large"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, MaxImageSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "file is not an image"})
		return
	}

	recipe, err := h.recipes.SetRecipeImage(c.Request.Context(), currentUser(c), c.Param("id"), data, contentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) ListIngredients(c *gin.Context) {
	ingredients, err := h.recipes.ListIngredients(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients, "count": len(ingredients)})
}

func newRecipe(req types.CreateRecipeRequest) service.NewRecipe {
	return service.NewRecipe{
		Title:             req.Title,
		Ingredients:       req.Ingredients,
		PreparationSteps:  req.PreparationSteps,
		CookingTime:       req.CookingTime,
		PrepTime:          req.PrepTime,
		ServingSize:       req.ServingSize,
		Categories:        req.Categories,
		Difficulty:        model.Difficulty(strings.TrimSpace(req.Difficulty)),
		IsDraft:           req.IsDraft,
		RecipeDescription: req.RecipeDescription,
		Calories:          nutrient(req.Calories),
		Fat:               nutrient(req.Fat),
		Carbs:             nutrient(req.Carbs),
		Protein:           nutrient(req.Protein),
	}
}

func nutrient(in *types.NutrientInput) model.Nutrient {
	if in == nil {
		return model.Nutrient{}
	}
	return model.Nutrient{Amount: in.Amount, Unit: strings.TrimSpace(in.Unit)}
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}
