package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarawendel/artisan-market/internal/content"
	"github.com/clarawendel/artisan-market/internal/market"
	"github.com/clarawendel/artisan-market/internal/publish"
	"github.com/clarawendel/artisan-market/internal/store"
	"github.com/clarawendel/artisan-market/storage"
)

type recordingComposer struct {
	calls int
}

func (r *recordingComposer) Publish(_ context.Context, _ market.PlatformCredential, draft market.ProductDraft, gen market.GeneratedContent) (*publish.Publication, error) {
	r.calls++
	return &publish.Publication{Ref: "post-1"}, nil
}

type staticAuthorizer struct {
	url string
}

func (s *staticAuthorizer) Configured() bool { return true }

func (s *staticAuthorizer) AuthorizationURL(string) (string, error) { return s.url, nil }

func newTestProductsHandler(t *testing.T) (*ProductsHandler, *store.SQLStore, *recordingComposer) {
	t.Helper()
	database, queries, cleanup, err := storage.NewTestDB()
	require.NoError(t, err)
	t.Cleanup(cleanup)

	sqlStore := store.NewSQLStore(queries)
	composer := &recordingComposer{}
	orch := publish.NewOrchestrator(sqlStore, sqlStore, sqlStore, content.NewGenerator(nil),
		map[market.Platform]publish.Composer{
			market.PlatformFacebook:  composer,
			market.PlatformInstagram: composer,
		},
		map[market.Platform]publish.Authorizer{
			market.PlatformFacebook:  &staticAuthorizer{url: "https://provider.test/facebook/auth"},
			market.PlatformInstagram: &staticAuthorizer{url: "https://provider.test/instagram/auth"},
		},
	)

	return NewProductsHandler(storage.NewFromDB(database), orch), sqlStore, composer
}

func TestHandleCreateProductSavesWithoutPlatforms(t *testing.T) {
	h, _, composer := newTestProductsHandler(t)

	c, rec := NewTestContext(http.MethodPost, "/api/products", map[string]any{
		"name":     "Ceramic Vase",
		"category": "pottery",
		"price":    "30",
		"material": "stoneware clay",
	})
	require.NoError(t, h.HandleCreateProduct(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body, err := AssertJSONResponse(rec)
	require.NoError(t, err)
	assert.Equal(t, "completed", body["status"])
	assert.NotEmpty(t, body["productId"])
	assert.Zero(t, composer.calls)
}

func TestHandleCreateProductValidation(t *testing.T) {
	h, _, _ := newTestProductsHandler(t)

	c, _ := NewTestContext(http.MethodPost, "/api/products", map[string]any{
		"name":  "",
		"price": "10",
	})
	err := h.HandleCreateProduct(c)
	require.Error(t, err)

	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestHandleCreateProductRedirectsToAuthorization(t *testing.T) {
	h, _, _ := newTestProductsHandler(t)

	form := "name=Handmade+Silver+Ring&category=jewelry&price=45.99&material=sterling+silver&postToFacebook=true"
	c, rec := NewFormTestContext(http.MethodPost, "/api/products", form)
	require.NoError(t, h.HandleCreateProduct(c))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "https://provider.test/facebook/auth", rec.Header().Get("Location"))
}

func TestHandleCreateProductJSONClientGetsRedirectURL(t *testing.T) {
	h, _, _ := newTestProductsHandler(t)

	c, rec := NewTestContext(http.MethodPost, "/api/products", map[string]any{
		"name":           "Handmade Silver Ring",
		"category":       "jewelry",
		"price":          "45.99",
		"postToFacebook": true,
	})
	c.Request().Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	require.NoError(t, h.HandleCreateProduct(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body, err := AssertJSONResponse(rec)
	require.NoError(t, err)
	assert.Equal(t, "authorization_required", body["status"])
	assert.Equal(t, "https://provider.test/facebook/auth", body["redirectUrl"])
}

func TestHandleCreateProductPublishesWithStoredCredential(t *testing.T) {
	h, sqlStore, composer := newTestProductsHandler(t)

	require.NoError(t, sqlStore.SaveCredential(context.Background(), "session-abc", market.PlatformCredential{
		Platform:    market.PlatformFacebook,
		AccessToken: "fb-token",
	}))

	c, rec := NewTestContext(http.MethodPost, "/api/products", map[string]any{
		"name":           "Handmade Silver Ring",
		"category":       "jewelry",
		"price":          "45.99",
		"postToFacebook": true,
	})
	c.Request().AddCookie(&http.Cookie{Name: "session_id", Value: "session-abc"})
	require.NoError(t, h.HandleCreateProduct(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body, err := AssertJSONResponse(rec)
	require.NoError(t, err)
	assert.Equal(t, "completed", body["status"])
	assert.Equal(t, 1, composer.calls)
}

func TestHandleListProductsAndCategories(t *testing.T) {
	h, sqlStore, _ := newTestProductsHandler(t)

	_, err := sqlStore.SaveProduct(context.Background(), market.ProductDraft{
		Name:     "Woven Wall Hanging",
		Category: market.CategoryTextiles,
		Price:    "80",
		Images:   []string{"https://img.test/hanging.jpg"},
	})
	require.NoError(t, err)

	c, rec := NewTestContext(http.MethodGet, "/api/products", nil)
	require.NoError(t, h.HandleListProducts(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Woven Wall Hanging")
	assert.Contains(t, rec.Body.String(), "textiles")

	c, rec = NewTestContext(http.MethodGet, "/api/categories", nil)
	require.NoError(t, h.HandleListCategories(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "jewelry")
	assert.Contains(t, rec.Body.String(), "home-decor")
}

func TestHandleGetProductNotFound(t *testing.T) {
	h, _, _ := newTestProductsHandler(t)

	c, _ := NewTestContext(http.MethodGet, "/api/products/:id", nil)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := h.HandleGetProduct(c)
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}
