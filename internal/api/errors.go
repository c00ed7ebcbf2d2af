package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cookmate/cookmate/backend/internal/catalog"
	"github.com/cookmate/cookmate/backend/internal/service"
)

// respondError maps a service error to its HTTP status.
func respondError(c *gin.Context, err error) {
	var verr *catalog.ValidationError
	var cerr *catalog.CollaboratorError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "errors": verr.Messages})
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, catalog.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, catalog.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "only the author may change this recipe"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrTokenRevoked):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.As(err, &cerr):
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": cerr.Collaborator + " unavailable"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// respondBindingError reports a malformed request body or query.
func respondBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "errors": bindingMessages(err)})
}
