package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarawendel/artisan-market/internal/content"
	"github.com/clarawendel/artisan-market/internal/market"
	"github.com/clarawendel/artisan-market/internal/publish"
	"github.com/clarawendel/artisan-market/internal/store"
)

func newResumeFixture(t *testing.T) (*ResumeHandler, *store.MemStore, *recordingComposer) {
	t.Helper()
	mem := store.NewMemStore()
	composer := &recordingComposer{}
	orch := publish.NewOrchestrator(mem, mem, mem, content.NewGenerator(nil),
		map[market.Platform]publish.Composer{
			market.PlatformFacebook:  composer,
			market.PlatformInstagram: composer,
		},
		map[market.Platform]publish.Authorizer{
			market.PlatformFacebook:  &staticAuthorizer{url: "https://provider.test/facebook/auth"},
			market.PlatformInstagram: &staticAuthorizer{url: "https://provider.test/instagram/auth"},
		},
	)
	return NewResumeHandler(orch), mem, composer
}

func TestHandleResumeNothingStaged(t *testing.T) {
	h, _, composer := newResumeFixture(t)

	c, rec := NewTestContext(http.MethodGet, "/api/publish/resume", nil)
	require.NoError(t, h.HandleResume(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body, err := AssertJSONResponse(rec)
	require.NoError(t, err)
	assert.Equal(t, "no_op", body["status"])
	assert.Zero(t, composer.calls)
}

func TestHandleResumeCompletesStagedFlow(t *testing.T) {
	h, mem, composer := newResumeFixture(t)
	ctx := context.Background()

	require.NoError(t, mem.Stage(ctx, "session-abc", market.ProductDraft{
		Name:           "Handmade Silver Ring",
		Category:       market.CategoryJewelry,
		Price:          "45.99",
		PostToFacebook: true,
	}))
	require.NoError(t, mem.SaveCredential(ctx, "session-abc", market.PlatformCredential{
		Platform:    market.PlatformFacebook,
		AccessToken: "fb-token",
	}))

	c, rec := NewTestContext(http.MethodGet, "/api/publish/resume", nil)
	c.Request().AddCookie(&http.Cookie{Name: "session_id", Value: "session-abc"})
	require.NoError(t, h.HandleResume(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body, err := AssertJSONResponse(rec)
	require.NoError(t, err)
	assert.Equal(t, "completed", body["status"])
	assert.Equal(t, 1, composer.calls)

	staged, err := mem.LoadStaged(ctx, "session-abc")
	require.NoError(t, err)
	assert.Nil(t, staged)
}
