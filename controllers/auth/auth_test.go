package authController_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"lms/config"
	"lms/database"
	"lms/models"
	"lms/routers/authRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthApp(t *testing.T) (*fiber.App, *gorm.DB) {
	config.LoadConfig()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, map[string]interface{}) {
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	payload := map[string]interface{}{}
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &payload))

	return resp.StatusCode, payload
}

func TestSignupAndLogin(t *testing.T) {
	app, db := setupAuthApp(t)

	status, payload := postJSON(t, app, "/auth/signup", map[string]string{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "strongpassword",
	})
	require.Equal(t, 201, status)
	assert.Equal(t, true, payload["status"])

	var user models.User
	require.NoError(t, db.Where("email = ?", "ada@example.com").First(&user).Error)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "strongpassword", user.Password)

	// Duplicate email is rejected
	status, _ = postJSON(t, app, "/auth/signup", map[string]string{
		"name":     "Ada Again",
		"email":    "ada@example.com",
		"password": "strongpassword",
	})
	require.Equal(t, 409, status)

	status, payload = postJSON(t, app, "/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "strongpassword",
	})
	require.Equal(t, 200, status)
	data := payload["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])

	// Wrong password
	status, _ = postJSON(t, app, "/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "wrongpassword",
	})
	require.Equal(t, 401, status)
}

func TestSignupValidation(t *testing.T) {
	app, _ := setupAuthApp(t)

	status, payload := postJSON(t, app, "/auth/signup", map[string]string{
		"name":     "",
		"email":    "not-an-email",
		"password": "short",
	})
	require.Equal(t, 422, status)

	fields := payload["data"].(map[string]interface{})
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestLoginBannedUser(t *testing.T) {
	app, db := setupAuthApp(t)

	status, _ := postJSON(t, app, "/auth/signup", map[string]string{
		"name":     "Banned",
		"email":    "banned@example.com",
		"password": "strongpassword",
	})
	require.Equal(t, 201, status)

	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "banned@example.com").Update("is_banned", true).Error)

	status, _ = postJSON(t, app, "/auth/login", map[string]string{
		"email":    "banned@example.com",
		"password": "strongpassword",
	})
	require.Equal(t, 403, status)
}
