package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cookmate/cookmate/backend/internal/api"
	"github.com/cookmate/cookmate/backend/internal/catalog"
	"github.com/cookmate/cookmate/backend/internal/mocks"
	"github.com/cookmate/cookmate/backend/internal/model"
	"github.com/cookmate/cookmate/backend/internal/service"
	"github.com/cookmate/cookmate/backend/internal/store"
	"github.com/cookmate/cookmate/backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	router *gin.Engine
	store  *store.MemoryStore
	blobs  *mocks.MockBlobStore
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	s := store.NewMemoryStore()
	log := zap.NewNop()
	blobs := new(mocks.MockBlobStore)
	recipes := service.NewRecipeService(s, blobs, log)

	_, err := s.Create(context.Background(), store.CollectionIngredients, catalog.IngredientToFields(model.Ingredient{
		Name: "Flour", Unit: "cups", Substitutes: []string{"oat flour"},
	}))
	require.NoError(t, err)

	router := gin.New()
	api.RegisterRoutes(router, api.Dependencies{
		Identity:  service.NewAuthService(s, "api-test-secret", time.Hour, nil, log),
		Recipes:   recipes,
		Favorites: service.NewFavoriteService(s, recipes, log),
	})
	return &testAPI{router: router, store: s, blobs: blobs}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) upload(t *testing.T, path, token string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "dish.png")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// register signs up username and returns its user id and token.
func (a *testAPI) register(t *testing.T, username string) (string, string) {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    username + "@example.com",
		"password": "secret123",
		"username": username,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode[types.AuthResponse](t, w)
	return resp.UserID, resp.Token
}

func (a *testAPI) createRecipe(t *testing.T, token string, body map[string]any) model.Recipe {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/recipes", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[model.Recipe](t, w)
}

func recipeBody(title string) map[string]any {
	return map[string]any{
		"title":             title,
		"ingredients":       []map[string]any{{"name": "flour", "amount": 2}, {"name": "Salt", "amount": 1}},
		"preparation_steps": "Mix and bake.",
		"cooking_time":      "30 min",
		"prep_time":         "10 min",
		"serving_size":      "2",
		"categories":        []string{"Dinner"},
		"difficulty":        "Easy",
	}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
