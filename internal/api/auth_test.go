package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cookmate/cookmate/backend/internal/model"
)

func TestHealthCheck(t *testing.T) {
	a := newTestAPI(t)

	for _, path := range []string{"/health", "/api/v1/health"} {
		w := a.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "healthy")
	}
}

func TestRegister(t *testing.T) {
	a := newTestAPI(t)

	userID, token := a.register(t, "chef")
	assert.NotEmpty(t, userID)
	assert.NotEmpty(t, token)

	w := a.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": "chef@example.com", "password": "secret123", "username": "other",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": "nope", "password": "123", "username": "",
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode[struct {
		Errors []string `json:"errors"`
	}](t, w)
	assert.Equal(t, []string{
		"Username cannot be empty",
		"Invalid email address",
		"Password must be at least 6 characters",
	}, body.Errors)

	w = a.do(t, http.MethodPost, "/api/v1/auth/register", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	a := newTestAPI(t)
	userID, _ := a.register(t, "chef")

	w := a.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "chef@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID)

	w = a.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "chef@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "chef@example.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "password is required")
}

func TestMeAndLogout(t *testing.T) {
	a := newTestAPI(t)
	userID, token := a.register(t, "chef")

	assert.Equal(t, http.StatusUnauthorized, a.do(t, http.MethodGet, "/api/v1/me", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, a.do(t, http.MethodGet, "/api/v1/me", "garbage", nil).Code)

	w := a.do(t, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode[model.User](t, w)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "chef", user.DisplayName)
	assert.Equal(t, model.AuthLevelUser, user.AuthLevel)

	assert.Equal(t, http.StatusNoContent, a.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil).Code)
}

func TestUsernameAvailable(t *testing.T) {
	a := newTestAPI(t)
	a.register(t, "chef")

	w := a.do(t, http.MethodGet, "/api/v1/auth/username-available?username=chef", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"available":false}`, w.Body.String())

	w = a.do(t, http.MethodGet, "/api/v1/auth/username-available?username=baker", "", nil)
	assert.JSONEq(t, `{"available":true}`, w.Body.String())

	w = a.do(t, http.MethodGet, "/api/v1/auth/username-available", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
