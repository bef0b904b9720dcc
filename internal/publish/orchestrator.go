// Package publish coordinates the cross-platform publish flow: stage
// the draft, collect platform authorizations across browser redirects,
// generate content, fan posts out to the platforms, and record
// per-platform outcomes.
package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/clarawendel/artisan-market/internal/content"
	"github.com/clarawendel/artisan-market/internal/market"
	"github.com/clarawendel/artisan-market/internal/social"
	"github.com/clarawendel/artisan-market/internal/store"
)

// Publication is one platform's successful post.
type Publication struct {
	Ref       string                `json:"ref,omitempty"`
	URL       string                `json:"url,omitempty"`
	Clipboard *social.ClipboardPost `json:"clipboard,omitempty"`
}

// Composer delivers a composed post to one platform.
type Composer interface {
	Publish(ctx context.Context, cred market.PlatformCredential, draft market.ProductDraft, gen market.GeneratedContent) (*Publication, error)
}

// Authorizer starts an OAuth flow for one platform.
type Authorizer interface {
	Configured() bool
	AuthorizationURL(sessionID string) (string, error)
}

type Status string

const (
	// StatusAuthorizationRequired suspends the flow; the browser must
	// follow RedirectURL through the provider and come back.
	StatusAuthorizationRequired Status = "authorization_required"
	StatusCompleted             Status = "completed"
	StatusPartialFailure        Status = "partial_failure"
	StatusFailed                Status = "failed"
	// StatusNoOp means there was nothing staged to resume.
	StatusNoOp Status = "no_op"
)

// FlowResult reports where a submit or resume call left the flow.
type FlowResult struct {
	Status      Status                           `json:"status"`
	Platform    market.Platform                  `json:"platform,omitempty"`
	RedirectURL string                           `json:"redirectUrl,omitempty"`
	ProductID   string                           `json:"productId,omitempty"`
	Outcomes    []store.Outcome                  `json:"-"`
	Posts       map[market.Platform]*Publication `json:"posts,omitempty"`
}

type Orchestrator struct {
	creds       store.CredentialStore
	results     store.ResultLog
	catalog     store.Catalog
	generator   *content.Generator
	composers   map[market.Platform]Composer
	authorizers map[market.Platform]Authorizer
}

func NewOrchestrator(
	creds store.CredentialStore,
	results store.ResultLog,
	catalog store.Catalog,
	generator *content.Generator,
	composers map[market.Platform]Composer,
	authorizers map[market.Platform]Authorizer,
) *Orchestrator {
	return &Orchestrator{
		creds:       creds,
		results:     results,
		catalog:     catalog,
		generator:   generator,
		composers:   composers,
		authorizers: authorizers,
	}
}

// Submit validates and stages a draft, then drives it as far as the
// stored credentials allow. Validation happens before anything is
// staged or any network is touched.
func (o *Orchestrator) Submit(ctx context.Context, sessionID string, draft market.ProductDraft) (*FlowResult, error) {
	if err := draft.Validate(); err != nil {
		return nil, newError(KindValidation, "", err)
	}

	platforms := draft.RequestedPlatforms()
	if len(platforms) == 0 {
		productID, err := o.catalog.SaveProduct(ctx, draft)
		if err != nil {
			return nil, fmt.Errorf("save product: %w", err)
		}
		slog.Info("product saved without cross-posting", "product_id", productID, "name", draft.Name)
		return &FlowResult{Status: StatusCompleted, ProductID: productID}, nil
	}

	if err := o.creds.Stage(ctx, sessionID, draft); err != nil {
		return nil, fmt.Errorf("stage draft: %w", err)
	}
	// A fresh submit starts a fresh flow; stale outcomes from a prior
	// product must not count toward this one.
	if err := o.results.ClearOutcomes(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("clear outcomes: %w", err)
	}

	return o.advance(ctx, sessionID, draft)
}

// Resume continues a suspended flow, typically after an OAuth redirect
// round-trip. It is idempotent: with nothing staged it reports no-op
// success, so a page reload cannot re-trigger a publish.
func (o *Orchestrator) Resume(ctx context.Context, sessionID string) (*FlowResult, error) {
	draft, err := o.creds.LoadStaged(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load staged draft: %w", err)
	}
	if draft == nil {
		return &FlowResult{Status: StatusNoOp}, nil
	}
	return o.advance(ctx, sessionID, *draft)
}

// advance publishes every requested platform that has a credential and
// no terminal outcome yet, then either suspends on the first platform
// still needing authorization or finalizes the flow.
func (o *Orchestrator) advance(ctx context.Context, sessionID string, draft market.ProductDraft) (*FlowResult, error) {
	platforms := draft.RequestedPlatforms()

	prior, err := o.results.ListOutcomes(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list outcomes: %w", err)
	}
	done := make(map[market.Platform]store.Outcome, len(prior))
	for _, outcome := range prior {
		done[outcome.Platform] = outcome
	}

	var pending, awaiting []market.Platform
	creds := make(map[market.Platform]market.PlatformCredential)
	for _, platform := range platforms {
		if _, ok := done[platform]; ok {
			continue
		}
		cred, err := o.creds.LoadCredential(ctx, sessionID, platform)
		if err != nil {
			return nil, fmt.Errorf("load %s credential: %w", platform, err)
		}
		if cred == nil {
			awaiting = append(awaiting, platform)
			continue
		}
		creds[platform] = *cred
		pending = append(pending, platform)
	}

	// One goroutine per platform; a platform's failure is recorded,
	// never propagated to its siblings.
	outcomes := make([]store.Outcome, len(pending))
	posts := make([]*Publication, len(pending))
	var g errgroup.Group
	for i, platform := range pending {
		i, platform := i, platform
		g.Go(func() error {
			outcomes[i], posts[i] = o.publishOne(ctx, platform, creds[platform], draft)
			return nil
		})
	}
	g.Wait()

	result := &FlowResult{Posts: make(map[market.Platform]*Publication)}
	for i, platform := range pending {
		if err := o.results.RecordOutcome(ctx, sessionID, outcomes[i]); err != nil {
			return nil, fmt.Errorf("record %s outcome: %w", platform, err)
		}
		done[platform] = outcomes[i]
		if posts[i] != nil {
			result.Posts[platform] = posts[i]
		}
	}

	if len(awaiting) > 0 {
		next := awaiting[0]
		authorizer, ok := o.authorizers[next]
		if !ok || !authorizer.Configured() {
			return nil, &Error{
				Kind:     KindTokenExchangeFailed,
				Platform: next,
				Message:  fmt.Sprintf("%s is not configured for authorization", next),
			}
		}
		redirectURL, err := authorizer.AuthorizationURL(sessionID)
		if err != nil {
			return nil, newError(KindTokenExchangeFailed, next, err)
		}
		result.Status = StatusAuthorizationRequired
		result.Platform = next
		result.RedirectURL = redirectURL
		return result, nil
	}

	return o.finalize(ctx, sessionID, draft, platforms, done, result)
}

// finalize runs once every requested platform holds a terminal
// outcome. Full success persists the product and clears the staged
// draft; any failure keeps the draft staged for retry.
func (o *Orchestrator) finalize(
	ctx context.Context,
	sessionID string,
	draft market.ProductDraft,
	platforms []market.Platform,
	done map[market.Platform]store.Outcome,
	result *FlowResult,
) (*FlowResult, error) {
	var completed, failed int
	var firstFailure store.Outcome
	for _, platform := range platforms {
		outcome := done[platform]
		result.Outcomes = append(result.Outcomes, outcome)
		switch outcome.State {
		case market.AttemptCompleted:
			completed++
		case market.AttemptFailed:
			failed++
			if firstFailure.Platform == "" {
				firstFailure = outcome
			}
		}
	}

	if failed == 0 {
		productID, err := o.catalog.SaveProduct(ctx, draft)
		if err != nil {
			return nil, fmt.Errorf("save product: %w", err)
		}
		if err := o.creds.ClearStaged(ctx, sessionID); err != nil {
			return nil, fmt.Errorf("clear staged draft: %w", err)
		}
		slog.Info("publish flow completed", "product_id", productID, "platforms", len(platforms))
		result.Status = StatusCompleted
		result.ProductID = productID
		return result, nil
	}

	kind := KindTotalFailure
	result.Status = StatusFailed
	if completed > 0 {
		kind = KindPartialFailure
		result.Status = StatusPartialFailure
	}
	return result, &Error{
		Kind:     kind,
		Platform: firstFailure.Platform,
		Message:  firstFailure.ErrorMsg,
	}
}

func (o *Orchestrator) publishOne(ctx context.Context, platform market.Platform, cred market.PlatformCredential, draft market.ProductDraft) (store.Outcome, *Publication) {
	composer, ok := o.composers[platform]
	if !ok {
		return store.Outcome{
			Platform:  platform,
			State:     market.AttemptFailed,
			ErrorKind: string(KindTotalFailure),
			ErrorMsg:  fmt.Sprintf("no composer for %s", platform),
		}, nil
	}

	gen := o.generateContent(ctx, draft, platform)
	post, err := composer.Publish(ctx, cred, draft, gen)
	if err != nil {
		kind := KindTotalFailure
		var partial *social.PartialPublishError
		if errors.As(err, &partial) {
			kind = KindPartialFailure
		}
		slog.Error("platform publish failed", "platform", platform, "error", err)
		return store.Outcome{
			Platform:  platform,
			State:     market.AttemptFailed,
			ErrorKind: string(kind),
			ErrorMsg:  err.Error(),
		}, nil
	}

	return store.Outcome{
		Platform:  platform,
		State:     market.AttemptCompleted,
		ResultRef: post.Ref,
	}, post
}

// generateContent fills in marketing copy. A user-written description
// wins over the model; hashtags are built either way.
func (o *Orchestrator) generateContent(ctx context.Context, draft market.ProductDraft, platform market.Platform) market.GeneratedContent {
	if draft.Description != "" {
		return market.GeneratedContent{
			Body:     draft.Description,
			Hashtags: content.Tags(string(draft.Category), draft.Material),
		}
	}
	return o.generator.Generate(ctx, content.Input{
		Name:      draft.Name,
		Category:  draft.Category,
		Material:  draft.Material,
		WithMusic: platform == market.PlatformInstagram,
	})
}
