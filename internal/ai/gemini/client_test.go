package gemini_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"upkeep/internal/ai/gemini"
	"upkeep/internal/config"
)

func TestGeminiClient_IsAvailable(t *testing.T) {
	assert.True(t, gemini.NewClient(&config.AIProviderConfig{Provider: "gemini", APIKey: "k"}).IsAvailable())
	assert.False(t, gemini.NewClient(&config.AIProviderConfig{Provider: "gemini"}).IsAvailable())
}

func TestGeminiClient_CloseWithoutUse(t *testing.T) {
	c := gemini.NewClient(&config.AIProviderConfig{Provider: "gemini", APIKey: "k"})

	assert.NoError(t, c.Close())
}
