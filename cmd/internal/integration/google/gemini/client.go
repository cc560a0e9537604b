package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-1.5-flash"

// Sampling overrides the model's default generation parameters.
// A nil *Sampling leaves every default in place.
type Sampling struct {
	Temperature     float32
	TopP            float32
	TopK            int32
	MaxOutputTokens int32
}

type Client struct {
	client  *genai.Client
	modelID string
}

func NewClient(ctx context.Context, apiKey, modelID string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini: api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = defaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}
	return &Client{client: client, modelID: modelID}, nil
}

// Generate sends one prompt and returns the concatenated text parts of
// the first candidate.
func (c *Client) Generate(ctx context.Context, prompt string, sampling *Sampling) (string, error) {
	model := c.client.GenerativeModel(c.modelID)
	if sampling != nil {
		model.SetTemperature(sampling.Temperature)
		model.SetTopP(sampling.TopP)
		model.SetTopK(sampling.TopK)
		model.SetMaxOutputTokens(sampling.MaxOutputTokens)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: generation failed: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", errors.New("gemini: no candidates returned")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("gemini: empty content returned")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
