// Package ollama is a local-model alternative to the hosted Gemini
// backend. It talks to an Ollama server and satisfies the content
// generator's TextModel interface, so self-hosted deployments can
// generate marketing copy without an API key.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultOllamaURL = "http://localhost:11434"
	defaultModel     = "mistral:7b"
	defaultTimeout   = 120 * time.Second
)

type Client struct {
	baseURL    string
	model      string
	configured bool
	httpClient *http.Client
}

type GenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type GenerateResponse struct {
	Model     string `json:"model"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
	EvalCount int    `json:"eval_count"`
}

type TagsResponse struct {
	Models []ModelInfo `json:"models"`
}

type ModelInfo struct {
	Name       string `json:"name"`
	ModifiedAt string `json:"modified_at"`
	Size       int64  `json:"size"`
}

func NewClient() *Client {
	baseURL := os.Getenv("OLLAMA_URL")
	configured := baseURL != ""
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}

	model := os.Getenv("OLLAMA_MODEL")
	if model == "" {
		model = defaultModel
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		model:      model,
		configured: configured,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

func (c *Client) Model() string {
	return c.model
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Configured reports whether an Ollama server was explicitly pointed
// at via OLLAMA_URL. Without it the generator stays on its template
// fallback rather than probing localhost on every request.
func (c *Client) Configured() bool {
	return c.configured
}

// IsAvailable checks that the server is reachable and the configured
// model is actually pulled.
func (c *Client) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("ollama not available", "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}

	var tags TagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return false
	}

	for _, m := range tags.Models {
		if m.Name == c.model || strings.HasPrefix(m.Name, c.model+":") {
			return true
		}
	}

	slog.Warn("ollama available but model not found", "model", c.model, "available_models", len(tags.Models))
	return false
}

// GenerateText runs a single prompt and returns the model's text.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	req := GenerateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	}

	jsonBody, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/generate", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var genResp GenerateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if genResp.Response == "" {
		return "", fmt.Errorf("empty response from model")
	}

	generated := strings.TrimSpace(genResp.Response)

	slog.Debug("ollama text generated",
		"model", genResp.Model,
		"generated_length", len(generated),
		"eval_count", genResp.EvalCount,
	)

	return generated, nil
}
