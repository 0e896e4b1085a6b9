package ai_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"upkeep/internal/ai"
)

func TestRateLimitError_ErrorString(t *testing.T) {
	rlErr := ai.NewRateLimitError("claude", fmt.Errorf("too many requests"), 30)

	assert.Contains(t, rlErr.Error(), "claude")
	assert.Contains(t, rlErr.Error(), "too many requests")
	assert.Contains(t, rlErr.Error(), "30s")
}

func TestRateLimitError_ErrorsAsThroughWrap(t *testing.T) {
	underlying := fmt.Errorf("underlying")
	wrapped := fmt.Errorf("complete failed: %w", ai.NewRateLimitError("gemini", underlying, 30))

	var target *ai.RateLimitError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "gemini", target.Provider)
	assert.Equal(t, 30*time.Second, target.RetryAfter)
	assert.ErrorIs(t, wrapped, underlying)
}

func TestNewRateLimitError_DefaultRetryAfter(t *testing.T) {
	rlErr := ai.NewRateLimitError("openai", fmt.Errorf("err"), 0)

	assert.Equal(t, 60*time.Second, rlErr.RetryAfter)
}

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 0, ai.ParseRetryAfterHeader(""))
	assert.Equal(t, 30, ai.ParseRetryAfterHeader("30"))
	assert.Equal(t, 12, ai.ParseRetryAfterHeader(" 12 "))
	assert.Equal(t, 0, ai.ParseRetryAfterHeader("-5"))
	assert.Equal(t, 0, ai.ParseRetryAfterHeader("invalid"))
}
