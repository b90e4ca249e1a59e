package main

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func TestLoadConfig_DevFallbackSecret(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")

	cfg, err := loadConfig()
	assert.NoError(t, err)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
}

func TestLoadConfig_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := loadConfig()
	assert.ErrorIs(t, err, errMissingJWTSecret)

	t.Setenv("JWT_SECRET", "prod-secret")
	cfg, err := loadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "prod-secret", cfg.JWTSecret)
}

func TestNewApp_HealthAndAuthGuard(t *testing.T) {
	cfg := appConfig{
		Port:        ":8081",
		DatabaseDSN: "file:maintest?mode=memory&cache=shared",
		JWTSecret:   "test_jwt_secret",
		Env:         "development",
	}

	app, err := newApp(cfg, nil) // nil RabbitMQ client: events disabled
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "\"status\":\"healthy\"")
	resp.Body.Close()

	// Story mutations are guarded
	req = httptest.NewRequest(http.MethodPost, "/create", nil)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Story reads are public
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err = app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
