package handlers

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/clarawendel/artisan-market/internal/market"
	"github.com/clarawendel/artisan-market/internal/oauth"
	"github.com/clarawendel/artisan-market/internal/session"
	"github.com/clarawendel/artisan-market/internal/store"
)

// OAuthHandler serves one route per platform that doubles as flow
// entry and provider callback: without query parameters it redirects
// the browser to the provider, with code or error parameters it
// finishes the authorization.
type OAuthHandler struct {
	connectors map[market.Platform]*oauth.Connector
	creds      store.CredentialStore
}

func NewOAuthHandler(connectors map[market.Platform]*oauth.Connector, creds store.CredentialStore) *OAuthHandler {
	return &OAuthHandler{connectors: connectors, creds: creds}
}

func (h *OAuthHandler) HandleAuth(platform market.Platform) echo.HandlerFunc {
	return func(c echo.Context) error {
		connector, ok := h.connectors[platform]
		if !ok {
			return echo.NewHTTPError(http.StatusNotFound, "Unknown platform")
		}

		params := oauth.CallbackParams{
			Code:         c.QueryParam("code"),
			State:        c.QueryParam("state"),
			Error:        c.QueryParam("error"),
			ErrorCode:    c.QueryParam("error_code"),
			ErrorMessage: c.QueryParam("error_message"),
		}

		// No callback parameters: this is the flow entry.
		if params.Code == "" && params.Error == "" && params.ErrorCode == "" {
			if !connector.Configured() {
				return echo.NewHTTPError(http.StatusServiceUnavailable, string(platform)+" app credentials not configured")
			}
			authURL, err := connector.AuthorizationURL(session.ID(c))
			if err != nil {
				slog.Error("failed to build authorization URL", "platform", platform, "error", err)
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to start authorization")
			}
			return c.Redirect(http.StatusSeeOther, authURL)
		}

		// A provider denial carries no credential to store, so report
		// it as such even when the state is missing or stale.
		if params.Error != "" || params.ErrorCode != "" {
			result := connector.CompleteAuthorization(c.Request().Context(), params)
			return redirectWithError(c, "access_denied", result.Message)
		}

		// The state ties the callback to the session that started the
		// flow; a code with an unverifiable state is not exchanged.
		sessionID, err := connector.VerifyState(params.State)
		if err != nil {
			slog.Warn("oauth callback with invalid state", "platform", platform, "error", err)
			return redirectWithError(c, "invalid_state", "authorization state did not verify")
		}

		result := connector.CompleteAuthorization(c.Request().Context(), params)
		if result.Status == oauth.StatusFailed {
			return redirectWithError(c, "token_exchange_failed", result.Message)
		}

		if err := h.creds.SaveCredential(c.Request().Context(), sessionID, *result.Credential); err != nil {
			slog.Error("failed to save credential", "platform", platform, "error", err)
			return redirectWithError(c, "server_error", "could not store the connection")
		}

		// The page at the root consumes these params and calls
		// /api/publish/resume to pick the flow back up.
		q := url.Values{}
		q.Set("access_token", result.Credential.AccessToken)
		q.Set(string(platform)+"_connected", "true")
		q.Set("product_published", "true")
		return c.Redirect(http.StatusSeeOther, "/?"+q.Encode())
	}
}

func redirectWithError(c echo.Context, code, message string) error {
	q := url.Values{}
	q.Set("error", code)
	if message != "" {
		q.Set("message", message)
	}
	return c.Redirect(http.StatusSeeOther, "/?"+q.Encode())
}
