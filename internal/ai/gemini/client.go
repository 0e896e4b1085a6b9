package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"upkeep/internal/ai"
	"upkeep/internal/config"
	"upkeep/internal/port"
)

// Client implements port.AIClient using the Gemini SDK. The underlying
// genai client is created on first use.
type Client struct {
	apiKey      string
	model       string
	temperature float64
	opts        []option.ClientOption

	mu     sync.Mutex
	client *genai.Client
}

// NewClient creates a Gemini-backed client from a provider config.
func NewClient(cfg *config.AIProviderConfig, opts ...option.ClientOption) *Client {
	model := cfg.DefaultModel
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &Client{
		apiKey:      cfg.APIKey,
		model:       model,
		temperature: cfg.Temperature,
		opts:        opts,
	}
}

// IsAvailable reports whether an API key is configured.
func (c *Client) IsAvailable() bool {
	return c.apiKey != ""
}

func (c *Client) genaiClient(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		return c.client, nil
	}
	opts := append([]option.ClientOption{option.WithAPIKey(c.apiKey)}, c.opts...)
	cl, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	c.client = cl
	return cl, nil
}

// Close releases the underlying SDK client, if one was created.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}

func (c *Client) Complete(ctx context.Context, req port.CompletionRequest) (*port.CompletionResponse, error) {
	cl, err := c.genaiClient(ctx)
	if err != nil {
		return nil, err
	}

	m := cl.GenerativeModel(c.model)
	temperature := req.Temperature
	if temperature == 0 {
		temperature = c.temperature
	}
	m.SetTemperature(float32(temperature))
	m.SetMaxOutputTokens(8192)

	parts := make([]genai.Part, 0, len(req.Images)+1)
	for _, img := range req.Images {
		parts = append(parts, genai.Blob{MIMEType: img.ContentType, Data: img.Bytes})
	}
	parts = append(parts, genai.Text(req.Prompt))

	resp, err := m.GenerateContent(ctx, parts...)
	if err != nil {
		if isRateLimited(err) {
			return nil, ai.NewRateLimitError("gemini", fmt.Errorf("gemini generate: %w", err), 0)
		}
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty response from API")
	}

	cand := resp.Candidates[0]
	if cand.FinishReason == genai.FinishReasonMaxTokens {
		return nil, fmt.Errorf("output truncated (finishReason: MAX_TOKENS): response exceeded output token limit")
	}

	var b strings.Builder
	for _, p := range cand.Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}

	return &port.CompletionResponse{
		Text:      b.String(),
		ModelUsed: c.model,
	}, nil
}

func isRateLimited(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests
	}
	msg := err.Error()
	return strings.Contains(msg, "RESOURCE_EXHAUSTED") || strings.Contains(msg, "429")
}
