package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cookmate/cookmate/backend/internal/middleware"
	"github.com/cookmate/cookmate/backend/internal/service"
	"github.com/cookmate/cookmate/backend/internal/types"
)

type AuthHandler struct {
	identity service.IdentityProvider
}

func NewAuthHandler(identity service.IdentityProvider) *AuthHandler {
	return &AuthHandler{identity: identity}
}

// RegisterRoutes registers the public auth routes.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/username-available", h.UsernameAvailable)
	}
}

// RegisterProtectedRoutes registers the routes that need a signed-in user.
func (h *AuthHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.POST("/auth/logout", h.Logout)
	router.GET("/me", h.Me)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.identity.SignUp(ctx, req.Email, req.Password, req.Username); err != nil {
		respondError(c, err)
		return
	}
	userID, token, err := h.identity.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.AuthResponse{UserID: userID, Token: token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	userID, token, err := h.identity.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.AuthResponse{UserID: userID, Token: token})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.identity.SignOut(c.Request.Context(), c.GetString(middleware.ContextToken)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) UsernameAvailable(c *gin.Context) {
	available, err := h.identity.UsernameAvailable(c.Request.Context(), c.Query("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": available})
}

// Me returns the profile of the signed-in user.
func (h *AuthHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()
	userID, ok := h.identity.CurrentUserID(ctx)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	user, err := h.identity.GetUser(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
