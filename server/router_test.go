package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notemark/config"
	"notemark/handler"
	"notemark/repository"
	"notemark/services"
	"notemark/usecase"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type envelope struct {
	Success bool            `json:"success"`
	Count   *int            `json:"count"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Stack   string          `json:"stack"`
}

type testAPI struct {
	t      *testing.T
	router   *gin.Engine
	token    string
	pagesURL string
}

func newTestAPI(t *testing.T, env string) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	pages := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `<html><head><meta property="og:title" content="Fetched Title"></head></html>`)
	}))
	t.Cleanup(pages.Close)

	cfg := config.Config{
		App:   config.AppConfig{Env: env},
		HTTP:  config.HTTPConfig{AllowedOrigins: []string{"*"}},
		Store: config.StoreConfig{Driver: config.StoreMemory},
	}

	tokens, err := services.NewTokenService(testSecret, services.DefaultTokenTTL, "notemark")
	require.NoError(t, err)
	hasher := services.NewPasswordHasher(services.Argon2Params{
		Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32,
	})
	resolver := services.NewResolver(services.ResolverOptions{Client: pages.Client()})

	router := NewRouter(cfg, Services{
		Auth:      usecase.NewAuthService(repository.NewMemoryUserRepo(), hasher, tokens),
		Notes:     usecase.NewNotesService(repository.NewMemoryNoteStore()),
		Bookmarks: usecase.NewBookmarksService(repository.NewMemoryBookmarkStore(), resolver),
		Health:    handler.NewHealthHandler(config.StoreMemory, nil),
	})

	return &testAPI{t: t, router: router, pagesURL: pages.URL}
}

func (a *testAPI) do(method, path string, body any) (int, envelope) {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (a *testAPI) login() {
	a.t.Helper()
	code, env := a.do(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Ada", "email": "ada@example.com", "password": "hunter22",
	})
	require.Equal(a.t, http.StatusCreated, code, env.Message)

	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &auth))
	a.token = auth.Token
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

type note struct {
	ID         string   `json:"_id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	IsFavorite bool     `json:"isFavorite"`
}

type bookmark struct {
	ID          string   `json:"_id"`
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

func TestAuthFlow(t *testing.T) {
	api := newTestAPI(t, "development")

	code, env := api.do(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Ada", "email": "Ada@Example.com", "password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, code)
	registered := decodeData[map[string]string](t, env)
	assert.Equal(t, "ada@example.com", registered["email"])
	assert.NotEmpty(t, registered["token"])
	assert.NotContains(t, registered, "password")

	code, env = api.do(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Ada", "email": "ada@example.com", "password": "hunter22",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "User already exists with this email", env.Message)

	code, env = api.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "ada@example.com", "password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid credentials", env.Message)

	code, env = api.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "ada@example.com", "password": "hunter22",
	})
	require.Equal(t, http.StatusOK, code)
	api.token = decodeData[map[string]string](t, env)["token"]

	code, env = api.do(http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, code)
	me := decodeData[map[string]string](t, env)
	assert.Equal(t, registered["_id"], me["_id"])
	assert.Equal(t, "Ada", me["name"])

	api.token = "forged"
	code, env = api.do(http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Not authorized - invalid or expired token", env.Message)
}

func TestRegisterValidation(t *testing.T) {
	api := newTestAPI(t, "development")

	code, env := api.do(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "A", "email": "not-an-email", "password": "123",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)
	assert.Equal(t, "Name must be at least 2 characters, Please provide a valid email, Password must be at least 6 characters", env.Message)
}

func TestNotesRequireAuth(t *testing.T) {
	api := newTestAPI(t, "development")

	code, env := api.do(http.MethodGet, "/api/notes", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Not authorized - no token provided", env.Message)
	assert.NotEmpty(t, env.Stack)
}

func TestProductionHidesStack(t *testing.T) {
	api := newTestAPI(t, config.EnvProduction)

	code, env := api.do(http.MethodGet, "/api/notes", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Empty(t, env.Stack)
}

func TestNotesCRUD(t *testing.T) {
	api := newTestAPI(t, "development")
	api.login()

	for _, body := range []map[string]any{
		{"title": "Standup", "content": "daily", "tags": []string{"Work"}, "isFavorite": true},
		{"title": "Groceries", "content": "milk", "tags": []string{"home"}},
		{"title": "Budget", "content": "numbers", "tags": []string{"work", "home"}},
	} {
		code, env := api.do(http.MethodPost, "/api/notes", body)
		require.Equal(t, http.StatusCreated, code, env.Message)
	}

	code, env := api.do(http.MethodGet, "/api/notes", nil)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, env.Count)
	assert.Equal(t, 3, *env.Count)
	all := decodeData[[]note](t, env)
	assert.Equal(t, "Budget", all[0].Title, "newest first")

	code, env = api.do(http.MethodGet, "/api/notes?tags=work&favorite=true", nil)
	require.Equal(t, http.StatusOK, code)
	filtered := decodeData[[]note](t, env)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Standup", filtered[0].Title)
	assert.Equal(t, []string{"work"}, filtered[0].Tags)

	code, env = api.do(http.MethodGet, "/api/notes?q=nothing-matches", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, *env.Count)
	assert.JSONEq(t, `[]`, string(env.Data))

	id := all[0].ID
	code, env = api.do(http.MethodPut, "/api/notes/"+id, map[string]any{"title": "Budget v2"})
	require.Equal(t, http.StatusOK, code)
	updated := decodeData[note](t, env)
	assert.Equal(t, "Budget v2", updated.Title)
	assert.Equal(t, "numbers", updated.Content)
	assert.Equal(t, []string{"work", "home"}, updated.Tags)

	code, env = api.do(http.MethodPut, "/api/notes/"+id, `{"isFavorite":"yes"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = api.do(http.MethodDelete, "/api/notes/"+id, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Note deleted successfully", env.Message)

	code, env = api.do(http.MethodDelete, "/api/notes/"+id, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Note not found", env.Message)

	code, env = api.do(http.MethodGet, "/api/notes/"+id, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCreateNoteValidation(t *testing.T) {
	api := newTestAPI(t, "development")
	api.login()

	code, env := api.do(http.MethodPost, "/api/notes", map[string]any{"content": "no title"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Title is required", env.Message)

	code, env = api.do(http.MethodPost, "/api/notes", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid JSON body", env.Message)
}

func TestBookmarksResolveTitle(t *testing.T) {
	api := newTestAPI(t, "development")
	api.login()

	code, env := api.do(http.MethodPost, "/api/bookmarks", map[string]any{"url": api.pagesURL + "/page"})
	require.Equal(t, http.StatusCreated, code, env.Message)
	resolved := decodeData[bookmark](t, env)
	assert.Equal(t, "Fetched Title", resolved.Title)
	assert.Equal(t, "", resolved.Description)
	assert.Equal(t, []string{}, resolved.Tags)

	missing := api.pagesURL + "/missing"
	code, env = api.do(http.MethodPost, "/api/bookmarks", map[string]any{"url": missing, "description": "gone"})
	require.Equal(t, http.StatusCreated, code, env.Message)
	assert.Equal(t, missing, decodeData[bookmark](t, env).Title)

	code, env = api.do(http.MethodGet, "/api/bookmarks?q=GONE", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, *env.Count)

	code, env = api.do(http.MethodPost, "/api/bookmarks", map[string]any{"url": "not a url"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Please provide a valid URL", env.Message)

	code, env = api.do(http.MethodDelete, "/api/bookmarks/"+resolved.ID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Bookmark deleted successfully", env.Message)
}

func TestIndexAndHealth(t *testing.T) {
	api := newTestAPI(t, "development")

	code, env := api.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	code, env = api.do(http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	code, env = api.do(http.MethodGet, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Route not found", env.Message)
}
