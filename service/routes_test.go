package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// TestTier1_CriticalRoutes tests that the core API routes exist and respond
func TestTier1_CriticalRoutes(t *testing.T) {
	e, _ := setupTestEcho(t)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"Health check", "GET", "/health", http.StatusOK},

		// Catalog
		{"List products", "GET", "/api/products", http.StatusOK},
		{"List categories", "GET", "/api/categories", http.StatusOK},
		{"Unknown product", "GET", "/api/products/nope", http.StatusNotFound},

		// Publish flow
		{"Resume with nothing staged", "GET", "/api/publish/resume", http.StatusOK},

		// OAuth entry without provider credentials configured
		{"Facebook auth unconfigured", "GET", "/api/facebook/auth", http.StatusServiceUnavailable},
		{"Instagram auth unconfigured", "GET", "/api/instagram/auth", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code,
				"Route %s %s should return %d, got %d",
				tt.method, tt.path, tt.wantStatus, rec.Code)
		})
	}
}

// TestTier2_ValidationRejections tests that malformed requests are rejected
// before anything is staged or any platform is touched
func TestTier2_ValidationRejections(t *testing.T) {
	e, _ := setupTestEcho(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"Create product without name", "POST", "/api/products", `{"price":"10.00"}`, http.StatusBadRequest},
		{"Create product with bad price", "POST", "/api/products", `{"name":"Bowl","category":"pottery","price":"free"}`, http.StatusBadRequest},
		{"Generate description without name", "POST", "/api/generate-description", `{}`, http.StatusBadRequest},
		{"Enhance image without name", "POST", "/api/enhance-image", `{"imageData":"data:image/jpeg;base64,abc"}`, http.StatusBadRequest},
		{"Facebook post without fields", "POST", "/api/facebook/post", `{}`, http.StatusBadRequest},
		{"Instagram post without name", "POST", "/api/instagram/post", `{}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code,
				"Route %s %s should return %d, got %d",
				tt.method, tt.path, tt.wantStatus, rec.Code)
		})
	}
}

// TestCreateProductWithoutPlatforms exercises the full stack through the
// router: a draft with no cross-posting checked is saved on the spot.
func TestCreateProductWithoutPlatforms(t *testing.T) {
	e, svc := setupTestEcho(t)

	body := `{"name":"Ceramic Bowl","description":"Hand-thrown stoneware bowl","category":"pottery","price":"32.50"}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	products, err := svc.storage.Queries.ListProducts(req.Context())
	assert.NoError(t, err)
	if assert.Len(t, products, 1) {
		assert.Equal(t, "Ceramic Bowl", products[0].Name)
	}
}

// TestNonExistentRoute verifies that truly non-existent routes return 404
func TestNonExistentRoute(t *testing.T) {
	e, _ := setupTestEcho(t)

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"Random path", "GET", "/this-route-does-not-exist"},
		{"Random API path", "GET", "/api/nonexistent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusNotFound, rec.Code,
				"Route %s %s should return 404, got %d",
				tt.method, tt.path, rec.Code)
		})
	}
}
