// Package llm wraps the Gemini API for the two jobs this pipeline needs:
// free-text generation (LaTeX resumes, repairs) and JSON generation (form
// fill plans).
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	gc, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	return &Client{client: gc, model: model}, nil
}

func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Generate runs prompt against the configured model. Temperature stays low
// so resume output is reproducible enough to diff between runs.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, c.model, prompt, "")
}

// GenerateWith runs prompt against an explicit model, used for the cheaper
// repair model on LaTeX fix attempts.
func (c *Client) GenerateWith(ctx context.Context, model, prompt string) (string, error) {
	return c.generate(ctx, model, prompt, "")
}

// GenerateJSON asks for a JSON response and strips any markdown fencing
// the model wraps it in anyway.
func (c *Client) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	text, err := c.generate(ctx, c.model, prompt, "application/json")
	if err != nil {
		return "", err
	}
	return CleanFences(text), nil
}

func (c *Client) generate(ctx context.Context, modelName, prompt, mimeType string) (string, error) {
	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(0.1)
	if mimeType != "" {
		model.ResponseMIMEType = mimeType
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return textFromResponse(resp)
}

func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
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

// CleanFences removes markdown code-block wrappers (```latex, ```json,
// bare ```) that models add around otherwise clean output.
func CleanFences(text string) string {
	text = strings.TrimSpace(text)
	for _, prefix := range []string{"```latex", "```json", "```"} {
		if strings.HasPrefix(text, prefix) {
			text = strings.TrimPrefix(text, prefix)
			break
		}
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	// fences left mid-text break the LaTeX compile outright
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
