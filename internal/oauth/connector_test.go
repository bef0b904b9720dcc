package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/clarawendel/artisan-market/internal/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEndpoint(platform market.Platform, tokenURL, upgradeURL string) Endpoint {
	return Endpoint{
		Platform:     platform,
		AuthURL:      "https://provider.test/oauth/authorize",
		TokenURL:     tokenURL,
		UpgradeURL:   upgradeURL,
		UpgradeGrant: "fb_exchange_token",
		Scopes:       []string{"public_profile", "email"},
		ClientID:     "app-id",
		ClientSecret: "app-secret",
		RedirectURI:  "https://market.test/api/facebook/auth",
	}
}

func TestAuthorizationURLCarriesSignedState(t *testing.T) {
	signer := NewStateSigner("test-secret")
	c := NewConnector(testEndpoint(market.PlatformFacebook, "https://provider.test/token", "https://provider.test/token"), signer)

	authURL, err := c.AuthorizationURL("session-123")
	require.NoError(t, err)

	parsed, err := url.Parse(authURL)
	require.NoError(t, err)
	q := parsed.Query()
	assert.Equal(t, "app-id", q.Get("client_id"))
	assert.Equal(t, "https://market.test/api/facebook/auth", q.Get("redirect_uri"))
	assert.Equal(t, "public_profile,email", q.Get("scope"))
	assert.Equal(t, "code", q.Get("response_type"))

	sessionID, err := c.VerifyState(q.Get("state"))
	require.NoError(t, err)
	assert.Equal(t, "session-123", sessionID)
}

func TestAuthorizationURLRequiresConfiguration(t *testing.T) {
	signer := NewStateSigner("test-secret")
	endpoint := testEndpoint(market.PlatformFacebook, "https://provider.test/token", "https://provider.test/token")
	endpoint.ClientSecret = ""
	c := NewConnector(endpoint, signer)

	_, err := c.AuthorizationURL("session-123")
	assert.Error(t, err)
}

func TestStateRejectsWrongPlatform(t *testing.T) {
	signer := NewStateSigner("test-secret")
	fb := NewConnector(testEndpoint(market.PlatformFacebook, "https://provider.test/token", "https://provider.test/token"), signer)
	ig := NewConnector(testEndpoint(market.PlatformInstagram, "https://provider.test/token", "https://provider.test/token"), signer)

	authURL, err := fb.AuthorizationURL("session-123")
	require.NoError(t, err)
	state := mustQueryParam(t, authURL, "state")

	_, err = ig.VerifyState(state)
	assert.Error(t, err)
}

func TestCompleteAuthorizationDeniedSkipsExchange(t *testing.T) {
	exchanged := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		exchanged = true
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewConnector(testEndpoint(market.PlatformFacebook, srv.URL, srv.URL), NewStateSigner("test-secret"))
	result := c.CompleteAuthorization(context.Background(), CallbackParams{
		Error:        "access_denied",
		ErrorCode:    "200",
		ErrorMessage: "Permissions error",
	})

	assert.Equal(t, StatusDenied, result.Status)
	assert.Equal(t, "Permissions error", result.Message)
	assert.Nil(t, result.Credential)
	assert.False(t, exchanged, "denied callback must not hit the token endpoint")
}

func TestCompleteAuthorizationUpgradesToLongLived(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case "POST":
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "auth-code", r.PostForm.Get("code"))
			assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "short-token",
				"user_id":      17841400000000,
			})
		case "GET":
			assert.Equal(t, "fb_exchange_token", r.URL.Query().Get("grant_type"))
			assert.Equal(t, "short-token", r.URL.Query().Get("fb_exchange_token"))
			json.NewEncoder(w).Encode(map[string]any{
				"access_token": "long-token",
				"expires_in":   5183944,
			})
		}
	}))
	defer srv.Close()

	c := NewConnector(testEndpoint(market.PlatformFacebook, srv.URL, srv.URL), NewStateSigner("test-secret"))
	result := c.CompleteAuthorization(context.Background(), CallbackParams{Code: "auth-code"})

	require.Equal(t, StatusConnected, result.Status)
	require.NotNil(t, result.Credential)
	assert.Equal(t, "long-token", result.Credential.AccessToken)
	assert.Equal(t, market.TokenLongLived, result.Credential.TokenKind)
	assert.Equal(t, "17841400000000", result.Credential.OwnerID)
	require.NotNil(t, result.Credential.ExpiresAt)
}

func TestCompleteAuthorizationKeepsShortLivedOnUpgradeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "POST" {
			json.NewEncoder(w).Encode(map[string]any{"access_token": "short-token"})
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "token exchange unavailable", "code": 190},
		})
	}))
	defer srv.Close()

	c := NewConnector(testEndpoint(market.PlatformFacebook, srv.URL, srv.URL), NewStateSigner("test-secret"))
	result := c.CompleteAuthorization(context.Background(), CallbackParams{Code: "auth-code"})

	require.Equal(t, StatusConnected, result.Status)
	require.NotNil(t, result.Credential)
	assert.Equal(t, "short-token", result.Credential.AccessToken)
	assert.Equal(t, market.TokenShortLived, result.Credential.TokenKind)
}

func TestCompleteAuthorizationExchangeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error_type":    "OAuthException",
			"error_message": "Invalid authorization code",
		})
	}))
	defer srv.Close()

	c := NewConnector(testEndpoint(market.PlatformInstagram, srv.URL, srv.URL), NewStateSigner("test-secret"))
	result := c.CompleteAuthorization(context.Background(), CallbackParams{Code: "stale-code"})

	assert.Equal(t, StatusFailed, result.Status)
	assert.Nil(t, result.Credential)
	assert.Contains(t, result.Message, "Invalid authorization code")
}

func TestCompleteAuthorizationEmptyCallback(t *testing.T) {
	c := NewConnector(testEndpoint(market.PlatformFacebook, "https://provider.test/token", "https://provider.test/token"), NewStateSigner("test-secret"))
	result := c.CompleteAuthorization(context.Background(), CallbackParams{})
	assert.Equal(t, StatusFailed, result.Status)
}

func mustQueryParam(t *testing.T, rawURL, key string) string {
	t.Helper()
	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)
	return parsed.Query().Get(key)
}
