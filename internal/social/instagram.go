package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/clarawendel/artisan-market/internal/market"
)

// PartialPublishError reports an Instagram publish that uploaded its
// media container but failed the final publish step. The orphaned
// container's creation id is kept so the caller can distinguish this
// from a publish that never started.
type PartialPublishError struct {
	CreationID string
	Err        error
}

func (e *PartialPublishError) Error() string {
	return fmt.Sprintf("media container %s created but publish failed: %v", e.CreationID, e.Err)
}

func (e *PartialPublishError) Unwrap() error {
	return e.Err
}

// InstagramPost is the outcome of a successful direct publish.
type InstagramPost struct {
	PostID  string `json:"postId"`
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

// InstagramPublisher publishes through the Instagram Graph API using
// the two-step media container flow: create the container, then
// publish it.
type InstagramPublisher struct {
	graphURL string
	client   *http.Client
}

func NewInstagramPublisher() *InstagramPublisher {
	return &InstagramPublisher{
		graphURL: "https://graph.instagram.com/v18.0",
		client:   &http.Client{Timeout: requestTimeout},
	}
}

// Publish uploads the image as a media container and publishes it.
func (p *InstagramPublisher) Publish(ctx context.Context, cred market.PlatformCredential, imageURL, caption string) (*InstagramPost, error) {
	if cred.OwnerID == "" || cred.AccessToken == "" {
		return nil, fmt.Errorf("instagram user id and access token are required")
	}
	if imageURL == "" {
		return nil, fmt.Errorf("instagram requires a publicly reachable image URL")
	}

	creationID, err := p.createMedia(ctx, cred, imageURL, caption)
	if err != nil {
		return nil, err
	}

	postID, err := p.publishMedia(ctx, cred, creationID)
	if err != nil {
		return nil, &PartialPublishError{CreationID: creationID, Err: err}
	}

	slog.Info("published to instagram", "user_id", cred.OwnerID, "post_id", postID)
	return &InstagramPost{
		PostID:  postID,
		URL:     "https://instagram.com/p/" + postID,
		Caption: caption,
	}, nil
}

func (p *InstagramPublisher) createMedia(ctx context.Context, cred market.PlatformCredential, imageURL, caption string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/media", p.graphURL, cred.OwnerID)
	id, err := p.post(ctx, endpoint, map[string]string{
		"image_url":    imageURL,
		"caption":      caption,
		"access_token": cred.AccessToken,
	})
	if err != nil {
		return "", fmt.Errorf("create media container: %w", err)
	}
	return id, nil
}

func (p *InstagramPublisher) publishMedia(ctx context.Context, cred market.PlatformCredential, creationID string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/media_publish", p.graphURL, cred.OwnerID)
	id, err := p.post(ctx, endpoint, map[string]string{
		"creation_id":  creationID,
		"access_token": cred.AccessToken,
	})
	if err != nil {
		return "", fmt.Errorf("publish media container: %w", err)
	}
	return id, nil
}

// post sends a JSON body and returns the id field of the response, the
// shape both Graph media endpoints share.
func (p *InstagramPublisher) post(ctx context.Context, endpoint string, payload map[string]string) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var result struct {
		ID    string `json:"id"`
		Error *struct {
			Message string `json:"message"`
			Code    int    `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if result.Error != nil {
		return "", fmt.Errorf("instagram: %s", result.Error.Message)
	}
	if result.ID == "" {
		return "", fmt.Errorf("instagram returned no id (status %d)", resp.StatusCode)
	}
	return result.ID, nil
}
