package service

import (
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/clarawendel/artisan-market/storage"
)

// setupTestService creates a service instance with an in-memory database
func setupTestService(t *testing.T) *Service {
	t.Helper()

	database, _, cleanup, err := storage.NewTestDB()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(cleanup)

	config := &Config{
		Environment: "test",
		Port:        "8080",
		BaseURL:     "http://localhost:8080",
	}
	config.Session.Secret = "test-secret"
	config.Upload.Dir = t.TempDir()
	config.Upload.MaxSize = 10 << 20

	return New(storage.NewFromDB(database), config)
}

// setupTestEcho creates an Echo instance with routes registered
func setupTestEcho(t *testing.T) (*echo.Echo, *Service) {
	t.Helper()

	e := echo.New()
	// Just set the status code, don't write response bodies for errors
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if he, ok := err.(*echo.HTTPError); ok {
			c.Response().WriteHeader(he.Code)
		} else {
			c.Response().WriteHeader(500)
		}
	}

	svc := setupTestService(t)
	svc.RegisterRoutes(e)

	return e, svc
}
