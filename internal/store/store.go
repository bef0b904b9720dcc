// Package store persists the publish flow's state across the OAuth
// redirect round-trip: the staged product draft, per-platform access
// credentials, and per-platform publish outcomes. Everything is keyed
// by the browser session cookie.
package store

import (
	"context"

	"github.com/clarawendel/artisan-market/internal/market"
)

// CredentialStore stages and loads the session-scoped publish state.
// Staging is last-write-wins: overwriting a staged draft discards the
// prior value. Load methods return (nil, nil) when nothing is stored.
type CredentialStore interface {
	Stage(ctx context.Context, sessionID string, draft market.ProductDraft) error
	LoadStaged(ctx context.Context, sessionID string) (*market.ProductDraft, error)
	ClearStaged(ctx context.Context, sessionID string) error

	SaveCredential(ctx context.Context, sessionID string, cred market.PlatformCredential) error
	LoadCredential(ctx context.Context, sessionID string, platform market.Platform) (*market.PlatformCredential, error)
}

// Outcome is one platform's recorded publish result.
type Outcome struct {
	Platform  market.Platform
	State     market.AttemptState
	ResultRef string
	ErrorKind string
	ErrorMsg  string
}

// ResultLog records per-platform publish outcomes so partial success
// can be reported per platform, not as a single pass/fail.
type ResultLog interface {
	RecordOutcome(ctx context.Context, sessionID string, outcome Outcome) error
	ListOutcomes(ctx context.Context, sessionID string) ([]Outcome, error)
	ClearOutcomes(ctx context.Context, sessionID string) error
}

// Catalog persists finished products.
type Catalog interface {
	SaveProduct(ctx context.Context, draft market.ProductDraft) (string, error)
}
