package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/clarawendel/artisan-market/internal/market"
	"github.com/clarawendel/artisan-market/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLStore {
	t.Helper()
	_, queries, cleanup, err := storage.NewTestDB()
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return NewSQLStore(queries)
}

func ringDraft() market.ProductDraft {
	return market.ProductDraft{
		Name:            "Handmade Silver Ring",
		Category:        market.CategoryJewelry,
		Price:           "45.99",
		Material:        "sterling silver",
		Dimensions:      &market.Dimensions{Length: 2, Width: 2},
		Description:     "A delicate hand-forged band.",
		Images:          []string{"https://img.test/ring.jpg", "https://img.test/ring-2.jpg"},
		PostToFacebook:  true,
		PostToInstagram: true,
	}
}

func TestStageRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	staged, err := s.LoadStaged(ctx, "session-1")
	require.NoError(t, err)
	assert.Nil(t, staged)

	draft := ringDraft()
	require.NoError(t, s.Stage(ctx, "session-1", draft))

	staged, err = s.LoadStaged(ctx, "session-1")
	require.NoError(t, err)
	require.NotNil(t, staged)
	assert.Equal(t, draft, *staged)
}

func TestStageLastWriteWins(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := ringDraft()
	require.NoError(t, s.Stage(ctx, "session-1", first))

	second := ringDraft()
	second.Name = "Ceramic Vase"
	second.Category = market.CategoryPottery
	require.NoError(t, s.Stage(ctx, "session-1", second))

	staged, err := s.LoadStaged(ctx, "session-1")
	require.NoError(t, err)
	require.NotNil(t, staged)
	assert.Equal(t, "Ceramic Vase", staged.Name)
}

func TestStageIsSessionScoped(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Stage(ctx, "session-1", ringDraft()))

	staged, err := s.LoadStaged(ctx, "session-2")
	require.NoError(t, err)
	assert.Nil(t, staged)
}

func TestClearStaged(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Stage(ctx, "session-1", ringDraft()))
	require.NoError(t, s.ClearStaged(ctx, "session-1"))

	staged, err := s.LoadStaged(ctx, "session-1")
	require.NoError(t, err)
	assert.Nil(t, staged)

	// Clearing an already-empty session is fine.
	require.NoError(t, s.ClearStaged(ctx, "session-1"))
}

func TestCredentialRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	missing, err := s.LoadCredential(ctx, "session-1", market.PlatformFacebook)
	require.NoError(t, err)
	assert.Nil(t, missing)

	expiresAt := time.Now().Add(60 * 24 * time.Hour).UTC().Truncate(time.Second)
	cred := market.PlatformCredential{
		Platform:    market.PlatformFacebook,
		AccessToken: "fb-long-token",
		TokenKind:   market.TokenLongLived,
		ExpiresAt:   &expiresAt,
		OwnerID:     "100001",
	}
	require.NoError(t, s.SaveCredential(ctx, "session-1", cred))

	loaded, err := s.LoadCredential(ctx, "session-1", market.PlatformFacebook)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, cred.AccessToken, loaded.AccessToken)
	assert.Equal(t, cred.TokenKind, loaded.TokenKind)
	assert.Equal(t, cred.OwnerID, loaded.OwnerID)
	require.NotNil(t, loaded.ExpiresAt)
	assert.True(t, expiresAt.Equal(loaded.ExpiresAt.UTC()))
}

func TestCredentialReplacedPerPlatform(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveCredential(ctx, "session-1", market.PlatformCredential{
		Platform:    market.PlatformFacebook,
		AccessToken: "short",
		TokenKind:   market.TokenShortLived,
	}))
	require.NoError(t, s.SaveCredential(ctx, "session-1", market.PlatformCredential{
		Platform:    market.PlatformFacebook,
		AccessToken: "long",
		TokenKind:   market.TokenLongLived,
	}))
	require.NoError(t, s.SaveCredential(ctx, "session-1", market.PlatformCredential{
		Platform:    market.PlatformInstagram,
		AccessToken: "ig",
		TokenKind:   market.TokenShortLived,
	}))

	fb, err := s.LoadCredential(ctx, "session-1", market.PlatformFacebook)
	require.NoError(t, err)
	require.NotNil(t, fb)
	assert.Equal(t, "long", fb.AccessToken)

	ig, err := s.LoadCredential(ctx, "session-1", market.PlatformInstagram)
	require.NoError(t, err)
	require.NotNil(t, ig)
	assert.Equal(t, "ig", ig.AccessToken)
}

func TestOutcomesKeepLatestPerPlatform(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.RecordOutcome(ctx, "session-1", Outcome{
		Platform:  market.PlatformInstagram,
		State:     market.AttemptFailed,
		ErrorKind: "publish_total_failure",
		ErrorMsg:  "media not ready",
	}))
	require.NoError(t, s.RecordOutcome(ctx, "session-1", Outcome{
		Platform:  market.PlatformInstagram,
		State:     market.AttemptCompleted,
		ResultRef: "ig-post-1",
	}))
	require.NoError(t, s.RecordOutcome(ctx, "session-1", Outcome{
		Platform:  market.PlatformFacebook,
		State:     market.AttemptCompleted,
		ResultRef: "clipboard",
	}))

	outcomes, err := s.ListOutcomes(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	byPlatform := make(map[market.Platform]Outcome)
	for _, o := range outcomes {
		byPlatform[o.Platform] = o
	}
	assert.Equal(t, market.AttemptCompleted, byPlatform[market.PlatformInstagram].State)
	assert.Equal(t, "ig-post-1", byPlatform[market.PlatformInstagram].ResultRef)
	assert.Equal(t, "clipboard", byPlatform[market.PlatformFacebook].ResultRef)

	require.NoError(t, s.ClearOutcomes(ctx, "session-1"))
	outcomes, err = s.ListOutcomes(ctx, "session-1")
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}

func TestOutcomesSameSecondKeepsLastRecorded(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// created_at has second granularity, so rapid retries share a
	// timestamp; ordering falls back to the monotonic ulid id.
	for i := 0; i < 10; i++ {
		require.NoError(t, s.RecordOutcome(ctx, "session-1", Outcome{
			Platform:  market.PlatformInstagram,
			State:     market.AttemptFailed,
			ErrorKind: "publish_total_failure",
			ErrorMsg:  fmt.Sprintf("attempt %d", i),
		}))
	}
	require.NoError(t, s.RecordOutcome(ctx, "session-1", Outcome{
		Platform:  market.PlatformInstagram,
		State:     market.AttemptCompleted,
		ResultRef: "ig-post-final",
	}))

	outcomes, err := s.ListOutcomes(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, market.AttemptCompleted, outcomes[0].State)
	assert.Equal(t, "ig-post-final", outcomes[0].ResultRef)
}

func TestSaveProductPersistsImagesInOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	productID, err := s.SaveProduct(ctx, ringDraft())
	require.NoError(t, err)
	require.NotEmpty(t, productID)

	product, err := s.queries.GetProduct(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, "Handmade Silver Ring", product.Name)
	assert.Equal(t, int64(4599), product.PriceCents)
	assert.Equal(t, "sterling silver", product.Material.String)
	require.True(t, product.CategoryID.Valid, "seeded jewelry category resolves")

	images, err := s.queries.GetProductImages(ctx, productID)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "https://img.test/ring.jpg", images[0].ImageUrl)
	assert.Equal(t, "https://img.test/ring-2.jpg", images[1].ImageUrl)
}

func TestSaveProductWithUnknownCategory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	draft := ringDraft()
	draft.Category = ""
	draft.Images = nil

	productID, err := s.SaveProduct(ctx, draft)
	require.NoError(t, err)

	product, err := s.queries.GetProduct(ctx, productID)
	require.NoError(t, err)
	assert.False(t, product.CategoryID.Valid)
}

func TestMemStoreMatchesSQLStoreSemantics(t *testing.T) {
	ctx := context.Background()
	mem := NewMemStore()

	staged, err := mem.LoadStaged(ctx, "session-1")
	require.NoError(t, err)
	assert.Nil(t, staged)

	draft := ringDraft()
	require.NoError(t, mem.Stage(ctx, "session-1", draft))
	staged, err = mem.LoadStaged(ctx, "session-1")
	require.NoError(t, err)
	require.NotNil(t, staged)
	assert.Equal(t, draft, *staged)

	cred, err := mem.LoadCredential(ctx, "session-1", market.PlatformFacebook)
	require.NoError(t, err)
	assert.Nil(t, cred)

	require.NoError(t, mem.SaveCredential(ctx, "session-1", market.PlatformCredential{
		Platform:    market.PlatformFacebook,
		AccessToken: "token",
	}))
	cred, err = mem.LoadCredential(ctx, "session-1", market.PlatformFacebook)
	require.NoError(t, err)
	require.NotNil(t, cred)
	assert.Equal(t, "token", cred.AccessToken)
}
