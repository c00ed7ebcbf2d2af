package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cookmate/cookmate/backend/internal/middleware"
	"github.com/cookmate/cookmate/backend/internal/service"
)

// Dependencies are the services the HTTP API is built on. RecipeLimiter may be
// nil when redis is not configured.
type Dependencies struct {
	Identity      service.IdentityProvider
	Recipes       service.IRecipeService
	Favorites     service.IFavoriteService
	RecipeLimiter *middleware.RateLimiter
}

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "CookMate API is running",
	})
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	RegisterValidators()

	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	v1.GET("/health", HealthCheck)

	authHandler := NewAuthHandler(deps.Identity)
	recipeHandler := NewRecipeHandler(deps.Recipes, deps.RecipeLimiter)
	favoriteHandler := NewFavoriteHandler(deps.Favorites)

	authHandler.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Identity))
	authHandler.RegisterProtectedRoutes(protected)
	recipeHandler.RegisterRoutes(protected)
	favoriteHandler.RegisterRoutes(protected)
}

// currentUser returns the authenticated user id. Routes behind the auth
// middleware always have one.
func currentUser(c *gin.Context) string {
	id, _ := middleware.UserID(c)
	return id
}
