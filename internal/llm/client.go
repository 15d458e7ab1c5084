// Package llm provides the model client abstraction and its Gemini
// implementation. Clients are stateless and safe to invoke concurrently;
// each call owns its own request and response buffers.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Request is one schema-constrained generation call. The schema is embedded
// in the outbound request so the backend is constrained to return
// criterion-shaped JSON.
type Request struct {
	Prompt      string
	Schema      *genai.Schema
	Model       string
	Temperature float32
}

// Client is an abstraction over LLM providers.
type Client interface {
	// GenerateJSON sends one synchronous, stateless request and returns the
	// raw JSON payload text. Failures are *EvalError values.
	GenerateJSON(ctx context.Context, req Request) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// NewClient creates a new LLM client. Gemini is the only provider today;
// the indirection keeps multi-provider support open.
func NewClient(ctx context.Context, apiKey string) (Client, error) {
	return NewGeminiClient(ctx, apiKey)
}

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client}, nil
}

// GenerateJSON generates a schema-constrained JSON response.
func (c *GeminiClient) GenerateJSON(ctx context.Context, req Request) (string, error) {
	if req.Model == "" {
		req.Model = DefaultModel
	}

	model := c.client.GenerativeModel(req.Model)
	model.SetTemperature(req.Temperature)
	model.ResponseMIMEType = "application/json"
	if req.Schema != nil {
		model.ResponseSchema = req.Schema
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", classifyTransportError(ctx, err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", &EvalError{Kind: KindMalformedJSON, Detail: "empty model response", Cause: err}
	}

	return CleanJSONBlock(text), nil
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
