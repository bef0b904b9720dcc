package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/clarawendel/artisan-market/internal/market"
	"github.com/clarawendel/artisan-market/storage/db"
	"github.com/oklog/ulid/v2"
)

// SQLStore backs the publish state with the application database so a
// staged draft survives the full-page redirect to the OAuth provider
// and back.
type SQLStore struct {
	queries *db.Queries
}

func NewSQLStore(queries *db.Queries) *SQLStore {
	return &SQLStore{queries: queries}
}

func (s *SQLStore) Stage(ctx context.Context, sessionID string, draft market.ProductDraft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode staged product: %w", err)
	}

	err = s.queries.UpsertStagedProduct(ctx, db.UpsertStagedProductParams{
		SessionID: sessionID,
		Payload:   string(payload),
	})
	if err != nil {
		return fmt.Errorf("stage product: %w", err)
	}
	return nil
}

func (s *SQLStore) LoadStaged(ctx context.Context, sessionID string) (*market.ProductDraft, error) {
	row, err := s.queries.GetStagedProduct(ctx, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load staged product: %w", err)
	}

	var draft market.ProductDraft
	if err := json.Unmarshal([]byte(row.Payload), &draft); err != nil {
		return nil, fmt.Errorf("decode staged product: %w", err)
	}
	return &draft, nil
}

func (s *SQLStore) ClearStaged(ctx context.Context, sessionID string) error {
	return s.queries.ClearStagedProduct(ctx, sessionID)
}

func (s *SQLStore) SaveCredential(ctx context.Context, sessionID string, cred market.PlatformCredential) error {
	expiresAt := sql.NullTime{}
	if cred.ExpiresAt != nil {
		expiresAt = sql.NullTime{Time: *cred.ExpiresAt, Valid: true}
	}

	err := s.queries.UpsertPlatformCredential(ctx, db.UpsertPlatformCredentialParams{
		SessionID:   sessionID,
		Platform:    string(cred.Platform),
		AccessToken: cred.AccessToken,
		TokenKind:   string(cred.TokenKind),
		ExpiresAt:   expiresAt,
		OwnerID:     sql.NullString{String: cred.OwnerID, Valid: cred.OwnerID != ""},
	})
	if err != nil {
		return fmt.Errorf("save %s credential: %w", cred.Platform, err)
	}
	return nil
}

func (s *SQLStore) LoadCredential(ctx context.Context, sessionID string, platform market.Platform) (*market.PlatformCredential, error) {
	row, err := s.queries.GetPlatformCredential(ctx, db.GetPlatformCredentialParams{
		SessionID: sessionID,
		Platform:  string(platform),
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s credential: %w", platform, err)
	}

	cred := market.PlatformCredential{
		Platform:    market.Platform(row.Platform),
		AccessToken: row.AccessToken,
		TokenKind:   market.TokenKind(row.TokenKind),
		OwnerID:     row.OwnerID.String,
	}
	if row.ExpiresAt.Valid {
		t := row.ExpiresAt.Time
		cred.ExpiresAt = &t
	}
	return &cred, nil
}

func (s *SQLStore) RecordOutcome(ctx context.Context, sessionID string, outcome Outcome) error {
	err := s.queries.CreatePublishResult(ctx, db.CreatePublishResultParams{
		ID:           ulid.Make().String(),
		SessionID:    sessionID,
		Platform:     string(outcome.Platform),
		State:        string(outcome.State),
		ResultRef:    sql.NullString{String: outcome.ResultRef, Valid: outcome.ResultRef != ""},
		ErrorKind:    sql.NullString{String: outcome.ErrorKind, Valid: outcome.ErrorKind != ""},
		ErrorMessage: sql.NullString{String: outcome.ErrorMsg, Valid: outcome.ErrorMsg != ""},
	})
	if err != nil {
		return fmt.Errorf("record %s outcome: %w", outcome.Platform, err)
	}
	return nil
}

func (s *SQLStore) ListOutcomes(ctx context.Context, sessionID string) ([]Outcome, error) {
	rows, err := s.queries.ListPublishResults(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list outcomes: %w", err)
	}

	// Keep the latest outcome per platform; earlier rows are history
	// from retried attempts.
	latest := make(map[string]Outcome)
	var order []string
	for _, row := range rows {
		if _, seen := latest[row.Platform]; !seen {
			order = append(order, row.Platform)
		}
		latest[row.Platform] = Outcome{
			Platform:  market.Platform(row.Platform),
			State:     market.AttemptState(row.State),
			ResultRef: row.ResultRef.String,
			ErrorKind: row.ErrorKind.String,
			ErrorMsg:  row.ErrorMessage.String,
		}
	}

	outcomes := make([]Outcome, 0, len(order))
	for _, platform := range order {
		outcomes = append(outcomes, latest[platform])
	}
	return outcomes, nil
}

func (s *SQLStore) ClearOutcomes(ctx context.Context, sessionID string) error {
	return s.queries.ClearPublishResults(ctx, sessionID)
}

func (s *SQLStore) SaveProduct(ctx context.Context, draft market.ProductDraft) (string, error) {
	categoryID := sql.NullString{}
	if draft.Category != "" {
		category, err := s.queries.GetCategoryBySlug(ctx, string(draft.Category))
		if err == nil {
			categoryID = sql.NullString{String: category.ID, Valid: true}
		}
	}

	var length, width sql.NullFloat64
	if draft.Dimensions != nil {
		length = sql.NullFloat64{Float64: draft.Dimensions.Length, Valid: true}
		width = sql.NullFloat64{Float64: draft.Dimensions.Width, Valid: true}
	}

	product, err := s.queries.CreateProduct(ctx, db.CreateProductParams{
		ID:          ulid.Make().String(),
		Name:        draft.Name,
		CategoryID:  categoryID,
		PriceCents:  draft.PriceCents(),
		Material:    sql.NullString{String: draft.Material, Valid: draft.Material != ""},
		LengthCm:    length,
		WidthCm:     width,
		Description: sql.NullString{String: draft.Description, Valid: draft.Description != ""},
	})
	if err != nil {
		return "", fmt.Errorf("save product: %w", err)
	}

	for i, imageURL := range draft.Images {
		err := s.queries.CreateProductImage(ctx, db.CreateProductImageParams{
			ID:        ulid.Make().String(),
			ProductID: product.ID,
			ImageUrl:  imageURL,
			Position:  int64(i),
		})
		if err != nil {
			return "", fmt.Errorf("save product image: %w", err)
		}
	}

	return product.ID, nil
}
