package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/cookmate/cookmate/backend/internal/catalog"
	"github.com/cookmate/cookmate/backend/internal/service"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", &catalog.ValidationError{Messages: []string{"Title is required"}}, http.StatusUnprocessableEntity},
		{"not found", fmt.Errorf("recipe x: %w", catalog.ErrNotFound), http.StatusNotFound},
		{"already exists", catalog.ErrAlreadyExists, http.StatusConflict},
		{"forbidden", catalog.ErrForbidden, http.StatusForbidden},
		{"credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"token", fmt.Errorf("%w: expired", service.ErrInvalidToken), http.StatusUnauthorized},
		{"collaborator", catalog.Collaborator("catalog store", errors.New("dial tcp")), http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondError(c, tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestRespondErrorHidesInternalDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, catalog.Collaborator("catalog store", errors.New("password=hunter2")))

	assert.NotContains(t, w.Body.String(), "hunter2")
	assert.Len(t, c.Errors, 1)
}
