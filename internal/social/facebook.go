package social

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

// ClipboardPost is prepared post content for manual publication.
// Consumer Facebook accounts cannot be posted to through the API, so
// the caller copies the message and opens the composer URL instead.
type ClipboardPost struct {
	Message     string `json:"message"`
	ComposerURL string `json:"composerUrl"`
	ProductName string `json:"productName"`
	Category    string `json:"category,omitempty"`
	Price       string `json:"price"`
	Material    string `json:"material,omitempty"`
}

// FacebookComposer prepares copy-paste posts and, when a page token is
// available, publishes directly to a page feed.
type FacebookComposer struct {
	graphURL string
	client   *http.Client
}

func NewFacebookComposer() *FacebookComposer {
	return &FacebookComposer{
		graphURL: "https://graph.facebook.com/v18.0",
		client:   &http.Client{Timeout: requestTimeout},
	}
}

// Prepare formats the post and returns it as clipboard content. This
// never touches the network.
func (f *FacebookComposer) Prepare(draft market.ProductDraft, content market.GeneratedContent) ClipboardPost {
	message := ComposeMessage(draft, content)
	return ClipboardPost{
		Message:     message,
		ComposerURL: ComposerShareURL("", message),
		ProductName: draft.Name,
		Category:    string(draft.Category),
		Price:       draft.Price,
		Material:    draft.Material,
	}
}

// PublishToPage posts to a page feed. The page access token takes
// precedence over the user token when both are supplied.
func (f *FacebookComposer) PublishToPage(ctx context.Context, pageID, userToken, pageToken, message, imageURL string) (string, error) {
	token := pageToken
	if token == "" {
		token = userToken
	}
	if pageID == "" || token == "" || message == "" {
		return "", fmt.Errorf("page id, access token and message are required")
	}

	form := url.Values{
		"message":      {message},
		"access_token": {token},
	}
	if imageURL != "" {
		form.Set("picture", imageURL)
	}

	endpoint := fmt.Sprintf("%s/%s/feed", f.graphURL, pageID)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create feed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("facebook feed request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read feed response: %w", err)
	}

	var result struct {
		ID    string `json:"id"`
		Error *struct {
			Message string `json:"message"`
			Code    int    `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decode feed response: %w", err)
	}
	if result.Error != nil {
		return "", fmt.Errorf("facebook: %s", result.Error.Message)
	}
	if result.ID == "" {
		return "", fmt.Errorf("facebook feed returned no post id (status %d)", resp.StatusCode)
	}

	slog.Info("published to facebook page", "page_id", pageID, "post_id", result.ID)
	return result.ID, nil
}
