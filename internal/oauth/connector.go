// Package oauth drives the authorization-code exchange for the social
// platforms. Each platform gets one Connector; the flow is
// Idle -> AwaitingProviderRedirect -> ExchangingCode -> Upgrading ->
// Connected | Denied | Failed, suspended in the middle by a full-page
// redirect to the provider.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/clarawendel/artisan-market/internal/market"
)

const requestTimeout = 15 * time.Second

type Status string

const (
	StatusConnected Status = "connected"
	StatusDenied    Status = "denied"
	StatusFailed    Status = "failed"
)

// Endpoint describes one platform's OAuth surface. Client secrets stay
// server-side; they are only ever sent to the provider's token
// endpoint, never to the browser.
type Endpoint struct {
	Platform     market.Platform
	AuthURL      string
	TokenURL     string
	UpgradeURL   string
	UpgradeGrant string
	Scopes       []string
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

type Connector struct {
	endpoint Endpoint
	signer   *StateSigner
	client   *http.Client
}

func NewConnector(endpoint Endpoint, signer *StateSigner) *Connector {
	return &Connector{
		endpoint: endpoint,
		signer:   signer,
		client:   &http.Client{Timeout: requestTimeout},
	}
}

func (c *Connector) Platform() market.Platform {
	return c.endpoint.Platform
}

// Configured reports whether the platform app credentials are present.
func (c *Connector) Configured() bool {
	return c.endpoint.ClientID != "" && c.endpoint.ClientSecret != ""
}

// CallbackParams are the query parameters the provider redirects back
// with.
type CallbackParams struct {
	Code         string
	State        string
	Error        string
	ErrorCode    string
	ErrorMessage string
}

// Result is the terminal outcome of a completed authorization.
type Result struct {
	Status     Status
	Credential *market.PlatformCredential
	Message    string
}

// AuthorizationURL builds the provider authorization URL for a fresh
// flow. It works regardless of any stranded prior state, so an
// abandoned flow can always be restarted cleanly.
func (c *Connector) AuthorizationURL(sessionID string) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("%s app credentials not configured", c.endpoint.Platform)
	}

	state, err := c.signer.Sign(sessionID, c.endpoint.Platform)
	if err != nil {
		return "", err
	}

	authURL, err := url.Parse(c.endpoint.AuthURL)
	if err != nil {
		return "", fmt.Errorf("parse auth URL: %w", err)
	}

	q := authURL.Query()
	q.Set("client_id", c.endpoint.ClientID)
	q.Set("redirect_uri", c.endpoint.RedirectURI)
	q.Set("scope", strings.Join(c.endpoint.Scopes, ","))
	q.Set("response_type", "code")
	q.Set("state", state)
	authURL.RawQuery = q.Encode()

	return authURL.String(), nil
}

// VerifyState returns the session the callback state was issued for.
func (c *Connector) VerifyState(state string) (string, error) {
	return c.signer.Verify(state, c.endpoint.Platform)
}

// CompleteAuthorization finishes the flow when the provider redirects
// back. A denied authorization is terminal and never retried here; a
// failed long-lived upgrade degrades to the short-lived token rather
// than failing the whole flow.
func (c *Connector) CompleteAuthorization(ctx context.Context, params CallbackParams) Result {
	if params.Error != "" || params.ErrorCode != "" {
		message := params.ErrorMessage
		if message == "" {
			message = params.Error
		}
		slog.Info("authorization denied by provider",
			"platform", c.endpoint.Platform,
			"error", params.Error,
			"error_code", params.ErrorCode,
		)
		return Result{Status: StatusDenied, Message: message}
	}

	if params.Code == "" {
		return Result{Status: StatusFailed, Message: "callback carried neither code nor error"}
	}

	token, err := c.exchangeCode(ctx, params.Code)
	if err != nil {
		slog.Error("token exchange failed", "platform", c.endpoint.Platform, "error", err)
		return Result{Status: StatusFailed, Message: err.Error()}
	}

	cred := market.PlatformCredential{
		Platform:    c.endpoint.Platform,
		AccessToken: token.AccessToken,
		TokenKind:   market.TokenShortLived,
		OwnerID:     token.UserID,
	}
	if token.ExpiresIn > 0 {
		expiresAt := time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
		cred.ExpiresAt = &expiresAt
	}

	upgraded, err := c.upgradeToken(ctx, token.AccessToken)
	if err != nil {
		// Prefer a usable degraded credential over no credential.
		slog.Warn("long-lived token upgrade failed, keeping short-lived token",
			"platform", c.endpoint.Platform,
			"error", err,
		)
		return Result{Status: StatusConnected, Credential: &cred}
	}

	cred.AccessToken = upgraded.AccessToken
	cred.TokenKind = market.TokenLongLived
	if upgraded.ExpiresIn > 0 {
		expiresAt := time.Now().Add(time.Duration(upgraded.ExpiresIn) * time.Second)
		cred.ExpiresAt = &expiresAt
	}
	return Result{Status: StatusConnected, Credential: &cred}
}

type tokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int64       `json:"expires_in"`
	RawUserID   json.Number `json:"user_id"`
	UserID      string      `json:"-"`
	Error       *apiError   `json:"error"`
	ErrorType   string      `json:"error_type"`
	ErrorMsg    string      `json:"error_message"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}

func (c *Connector) exchangeCode(ctx context.Context, code string) (*tokenResponse, error) {
	form := url.Values{
		"client_id":     {c.endpoint.ClientID},
		"client_secret": {c.endpoint.ClientSecret},
		"redirect_uri":  {c.endpoint.RedirectURI},
		"grant_type":    {"authorization_code"},
		"code":          {code},
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.doTokenRequest(req)
}

// upgradeToken exchanges a short-lived token for a long-lived one,
// using the platform's exchange grant (fb_exchange_token for Facebook,
// ig_exchange_token for Instagram).
func (c *Connector) upgradeToken(ctx context.Context, accessToken string) (*tokenResponse, error) {
	upgradeURL, err := url.Parse(c.endpoint.UpgradeURL)
	if err != nil {
		return nil, fmt.Errorf("parse upgrade URL: %w", err)
	}

	q := upgradeURL.Query()
	q.Set("grant_type", c.endpoint.UpgradeGrant)
	q.Set("client_id", c.endpoint.ClientID)
	q.Set("client_secret", c.endpoint.ClientSecret)
	q.Set(c.endpoint.UpgradeGrant, accessToken)
	upgradeURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", upgradeURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create upgrade request: %w", err)
	}

	return c.doTokenRequest(req)
}

func (c *Connector) doTokenRequest(req *http.Request) (*tokenResponse, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s token endpoint: %w", c.endpoint.Platform, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read token response: %w", err)
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}

	// Surface the provider's own message, not a generic failure.
	if token.Error != nil {
		return nil, fmt.Errorf("%s: %s", c.endpoint.Platform, token.Error.Message)
	}
	if token.ErrorType != "" {
		return nil, fmt.Errorf("%s: %s", c.endpoint.Platform, token.ErrorMsg)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s token endpoint returned status %d", c.endpoint.Platform, resp.StatusCode)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("%s token response carried no access token", c.endpoint.Platform)
	}

	token.UserID = token.RawUserID.String()
	return &token, nil
}
