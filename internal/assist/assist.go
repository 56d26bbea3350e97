// Package assist wraps the Gemini API for AI content actions. The core
// treats prompts and responses as opaque text: no prompt construction
// or output parsing happens here.
package assist

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// DefaultModel is used when the settings record carries no model.
const DefaultModel = "gemini-2.5-flash"

// Config holds client construction parameters.
type Config struct {
	// APIKey is required; authentication failures surface from the
	// first Generate call.
	APIKey string

	// Model identifies the generation model.
	Model string
}

// Client generates text content through the Gemini API.
type Client struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

// NewClient creates an assist client.
func NewClient(ctx context.Context, cfg Config, log *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("assist: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if log == nil {
		log = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("assist: create client: %w", err)
	}

	return &Client{client: client, model: cfg.Model, log: log}, nil
}

// Generate sends one prompt and returns the response text. The result
// is opaque to the caller - it is inserted into documents unparsed.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	c.log.Debug("assist request", zap.String("model", c.model), zap.Int("prompt_len", len(prompt)))

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("assist: generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("assist: empty response from model %s", c.model)
	}
	return text, nil
}
