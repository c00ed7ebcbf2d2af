package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cookmate/cookmate/backend/internal/service"
)

type FavoriteHandler struct {
	favorites service.IFavoriteService
}

func NewFavoriteHandler(favorites service.IFavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// RegisterRoutes expects router to be behind the auth middleware.
func (h *FavoriteHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/recipes/:id/favorite", h.AddFavorite)
	router.DELETE("/recipes/:id/favorite", h.RemoveFavoriteForRecipe)
	router.GET("/favorites", h.ListFavorites)
	router.DELETE("/favorites", h.RemoveFavorite)
}

func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	entry, err := h.favorites.AddFavorite(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *FavoriteHandler) RemoveFavoriteForRecipe(c *gin.Context) {
	if err := h.favorites.RemoveFavoriteForRecipe(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveFavorite removes by title, which still works after the original
// recipe is gone.
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	title := c.Query("title")
	if strings.TrimSpace(title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if err := h.favorites.RemoveFavorite(c.Request.Context(), currentUser(c), title); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	favorites, err := h.favorites.ListFavorites(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites, "count": len(favorites)})
}
