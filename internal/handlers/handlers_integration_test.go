package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"coursehub/internal/handlers"
	"coursehub/internal/models"
	"coursehub/internal/repositories"
	"coursehub/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp sets up a Fiber app for testing with the given store.
func setupApp(repo repositories.UserRepository) *fiber.App {
	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	authService := services.NewAuthService(repo, viper.GetString("JWT_SECRET"))

	app := fiber.New()
	handlers.NewAuthHandler(authService, nil).RegisterRoutes(app.Group("/api"))
	return app
}

func sqliteRepo(t *testing.T) repositories.UserRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return repositories.NewGORMUserRepository(db)
}

func post(t *testing.T, app *fiber.App, path string, body interface{}) (int, models.AuthResponse) {
	t.Helper()
	jsonBody, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out models.AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestAuthRegisterAndLogin(t *testing.T) {
	stores := map[string]repositories.UserRepository{
		"json":   repositories.NewUserJSONRepository(filepath.Join(t.TempDir(), "users.json")),
		"sqlite": sqliteRepo(t),
	}
	for name, repo := range stores {
		t.Run(name, func(t *testing.T) {
			app := setupApp(repo)

			status, body := post(t, app, "/api/auth/register", map[string]string{
				"name": "Ann", "email": "ann@x.com", "password": "secret",
			})
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, "registered", body.Message)

			users, err := repo.List()
			require.NoError(t, err)
			assert.Len(t, users, 1)

			status, body = post(t, app, "/api/auth/register", map[string]string{
				"name": "Ann again", "email": " ANN@x.com ", "password": "other",
			})
			assert.Equal(t, http.StatusConflict, status)
			assert.Equal(t, "email already registered", body.Message)
			users, _ = repo.List()
			assert.Len(t, users, 1)

			status, body = post(t, app, "/api/auth/login", map[string]string{"email": "ann@x.com", "password": "secret"})
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, "Ann", body.Name)
			assert.NotEmpty(t, body.Token)

			status, body = post(t, app, "/api/auth/login", map[string]string{"email": "ann@x.com", "password": "wrong"})
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, "invalid email or password", body.Message)
		})
	}
}

func TestAuthMissingFields(t *testing.T) {
	app := setupApp(repositories.NewMockUserRepository())
	cases := []struct {
		path string
		body map[string]string
	}{
		{"/api/auth/register", map[string]string{"email": "a@b.c", "password": "x"}},
		{"/api/auth/register", map[string]string{"name": "A", "password": "x"}},
		{"/api/auth/login", map[string]string{"email": "a@b.c"}},
		{"/api/auth/login", map[string]string{"password": "x"}},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			status, body := post(t, app, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, "missing required fields", body.Message)
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBackendStyleBodies(t *testing.T) {
	app := setupApp(repositories.NewMockUserRepository())

	status, _ := post(t, app, "/api/auth/register/", map[string]string{
		"username": "bob@x.com", "email": "", "nickname": "Bob", "password": "pw1234",
	})
	assert.Equal(t, http.StatusOK, status)

	status, body := post(t, app, "/api/auth/login/", map[string]string{"username": "bob@x.com", "password": "pw1234"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Bob", body.Name)
}

func TestMeRequiresToken(t *testing.T) {
	app := setupApp(repositories.NewMockUserRepository())
	post(t, app, "/api/auth/register", map[string]string{"name": "Ann", "email": "ann@x.com", "password": "secret"})
	_, login := post(t, app, "/api/auth/login", map[string]string{"email": "ann@x.com", "password": "secret"})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me models.Me
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.Equal(t, "ann@x.com", me.Username)
	assert.Equal(t, "Ann", me.NicknameValue())
}
