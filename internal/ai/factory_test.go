package ai_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upkeep/internal/ai"
	"upkeep/internal/config"
	"upkeep/internal/port"
)

// stubClient is a minimal AIClient for exercising the factory.
type stubClient struct {
	model string
	key   string
}

func (s *stubClient) IsAvailable() bool { return s.key != "" }

func (s *stubClient) Complete(_ context.Context, _ port.CompletionRequest) (*port.CompletionResponse, error) {
	return &port.CompletionResponse{Text: "ok", ModelUsed: s.model}, nil
}

func init() {
	ai.RegisterProvider("stub", func(cfg *config.AIProviderConfig) (port.AIClient, error) {
		return &stubClient{model: cfg.DefaultModel, key: cfg.APIKey}, nil
	})
}

func TestFactory_RegisterAndCreate(t *testing.T) {
	c, err := ai.NewProvider(&config.AIProviderConfig{Provider: "stub", DefaultModel: "m1", APIKey: "k"})

	require.NoError(t, err)
	assert.True(t, c.IsAvailable())
}

func TestFactory_UnknownProvider(t *testing.T) {
	c, err := ai.NewProvider(&config.AIProviderConfig{Provider: "nonexistent-provider-xyz"})

	assert.Nil(t, c)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown AI provider")
}

func TestNewClient_BuildsChainFromSlots(t *testing.T) {
	cfg := &config.AIConfig{
		Primary:   config.AIProviderConfig{Provider: "stub", DefaultModel: "first"},
		Secondary: config.AIProviderConfig{Provider: "stub", DefaultModel: "second", APIKey: "k"},
	}

	fc, err := ai.NewClient(cfg)
	require.NoError(t, err)
	assert.True(t, fc.IsAvailable())

	resp, err := fc.Complete(context.Background(), port.CompletionRequest{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "second", resp.ModelUsed)
}

func TestNewClient_NoKeysIsUnavailable(t *testing.T) {
	fc, err := ai.NewClient(&config.AIConfig{Primary: config.AIProviderConfig{Provider: "stub"}})

	require.NoError(t, err)
	assert.False(t, fc.IsAvailable())
}
