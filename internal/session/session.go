// Package session identifies the browser across the publish flow. The
// whole flow is keyed by an anonymous session cookie; there are no user
// accounts.
package session

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CookieName = "session_id"
	maxAge     = 86400 * 30 // 30 days
)

// ID returns the browser's session ID, minting and setting a new one
// when the cookie is absent. The cookie survives the full-page redirect
// to the OAuth provider and back, which is what ties the callback to
// the staged product.
func ID(c echo.Context) string {
	cookie, err := c.Cookie(CookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	sessionID := uuid.New().String()
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sessionID
}
