package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"somabooks_backend/internals/configs"
	"somabooks_backend/internals/features/users/user/dto"
	userModel "somabooks_backend/internals/features/users/user/model"
	authMiddleware "somabooks_backend/internals/middlewares/auth"
)

type authEnvelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    dto.AuthResponse `json:"data"`
}

func newAuthTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	configs.JWTSecret = "test-secret"

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&userModel.UserModel{}))

	app := fiber.New()
	ctl := NewAuthController(db)
	app.Post("/api/auth/register", ctl.Register)
	app.Post("/api/auth/login", ctl.Login)

	private := app.Group("/api", authMiddleware.AuthMiddleware(db))
	private.Get("/auth/me", ctl.Me)

	return app, db
}

func postAuthJSON(t *testing.T, app *fiber.App, path string, body any) (*http.Response, authEnvelope) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env authEnvelope
	_ = json.NewDecoder(resp.Body).Decode(&env)
	return resp, env
}

func TestRegisterLoginMeFlow(t *testing.T) {
	app, _ := newAuthTestApp(t)

	resp, env := postAuthJSON(t, app, "/api/auth/register", fiber.Map{
		"first_name":  "Wanjiku",
		"second_name": "Kamau",
		"email":       "Wanjiku@Example.com",
		"password":    "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, env.Data.Token)
	assert.Equal(t, "wanjiku@example.com", env.Data.User.Email, "email stored lower-cased")
	assert.Equal(t, "user", env.Data.User.Role)

	// duplicate registration is rejected regardless of case
	resp, _ = postAuthJSON(t, app, "/api/auth/register", fiber.Map{
		"first_name":  "Other",
		"second_name": "Person",
		"email":       "WANJIKU@example.com",
		"password":    "another-pass",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, env = postAuthJSON(t, app, "/api/auth/login", fiber.Map{
		"email":    "wanjiku@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, env.Data.Token)

	// bearer token opens the private surface
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+env.Data.Token)
	meResp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, meResp.StatusCode)

	// no token, no entry
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	meResp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, meResp.StatusCode)
}

func TestLoginFailures(t *testing.T) {
	app, db := newAuthTestApp(t)

	resp, _ := postAuthJSON(t, app, "/api/auth/register", fiber.Map{
		"first_name":  "Baraka",
		"second_name": "Mwangi",
		"email":       "baraka@example.com",
		"password":    "correct-horse",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// unknown email and wrong password share one message
	resp, env := postAuthJSON(t, app, "/api/auth/login", fiber.Map{
		"email": "nobody@example.com", "password": "whatever-123",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Incorrect email or password", env.Message)

	resp, env = postAuthJSON(t, app, "/api/auth/login", fiber.Map{
		"email": "baraka@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Incorrect email or password", env.Message)

	// deactivated accounts cannot log in
	require.NoError(t, db.Model(&userModel.UserModel{}).
		Where("user_email = ?", "baraka@example.com").
		Update("user_is_active", false).Error)
	resp, _ = postAuthJSON(t, app, "/api/auth/login", fiber.Map{
		"email": "baraka@example.com", "password": "correct-horse",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRegisterValidation(t *testing.T) {
	app, _ := newAuthTestApp(t)

	// short password
	resp, _ := postAuthJSON(t, app, "/api/auth/register", fiber.Map{
		"first_name":  "A",
		"second_name": "B",
		"email":       "ab@example.com",
		"password":    "short",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// bad email
	resp, _ = postAuthJSON(t, app, "/api/auth/register", fiber.Map{
		"first_name":  "A",
		"second_name": "B",
		"email":       "not-an-email",
		"password":    "long-enough-pass",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
