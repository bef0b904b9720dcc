package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const proxyTimeout = 15 * time.Second

// graphClient wraps the Meta Graph REST shape shared by the Facebook
// and Instagram proxies.
type graphClient struct {
	client *http.Client
}

func newGraphClient() *graphClient {
	return &graphClient{client: &http.Client{Timeout: proxyTimeout}}
}

func (g *graphClient) get(endpoint string) (map[string]any, error) {
	resp, err := g.client.Get(endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("graph returned status %d: %s", resp.StatusCode, body)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// list fetches a data-wrapped collection, degrading to empty on any
// failure. Pages and posts need app-review scopes, so a denied list
// must not fail the whole profile lookup.
func (g *graphClient) list(endpoint, what string) []any {
	result, err := g.get(endpoint)
	if err != nil {
		slog.Warn(what+" not available, may require app review", "error", err)
		return []any{}
	}
	data, ok := result["data"].([]any)
	if !ok {
		return []any{}
	}
	return data
}
