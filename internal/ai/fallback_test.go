package ai_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"upkeep/internal/ai"
	"upkeep/internal/domain"
	"upkeep/internal/port"
	"upkeep/mocks"
)

var testReq = port.CompletionRequest{Prompt: "extract"}

func completion(model string) *port.CompletionResponse {
	return &port.CompletionResponse{Text: "{}", ModelUsed: model}
}

func availableClient() *mocks.MockAIClient {
	c := new(mocks.MockAIClient)
	c.On("IsAvailable").Return(true)
	return c
}

func TestFallbackClient_FirstSucceeds(t *testing.T) {
	c1, c2 := availableClient(), availableClient()
	c1.On("Complete", mock.Anything, testReq).Return(completion("openai"), nil)

	fc := ai.NewFallbackClient([]port.AIClient{c1, c2}, []string{"openai", "claude"})

	resp, err := fc.Complete(context.Background(), testReq)

	require.NoError(t, err)
	assert.Equal(t, "openai", resp.ModelUsed)
	c2.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestFallbackClient_FirstFails_SecondSucceeds(t *testing.T) {
	c1, c2 := availableClient(), availableClient()
	c1.On("Complete", mock.Anything, testReq).Return(nil, errors.New("boom"))
	c2.On("Complete", mock.Anything, testReq).Return(completion("claude"), nil)

	fc := ai.NewFallbackClient([]port.AIClient{c1, c2}, []string{"openai", "claude"})

	resp, err := fc.Complete(context.Background(), testReq)

	require.NoError(t, err)
	assert.Equal(t, "claude", resp.ModelUsed)
}

func TestFallbackClient_SkipsUnavailable(t *testing.T) {
	c1 := new(mocks.MockAIClient)
	c1.On("IsAvailable").Return(false)
	c2 := availableClient()
	c2.On("Complete", mock.Anything, testReq).Return(completion("gemini"), nil)

	fc := ai.NewFallbackClient([]port.AIClient{c1, c2}, []string{"openai", "gemini"})

	resp, err := fc.Complete(context.Background(), testReq)

	require.NoError(t, err)
	assert.Equal(t, "gemini", resp.ModelUsed)
	c1.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestFallbackClient_NoneAvailable(t *testing.T) {
	c1 := new(mocks.MockAIClient)
	c1.On("IsAvailable").Return(false)

	fc := ai.NewFallbackClient([]port.AIClient{c1}, []string{"openai"})

	assert.False(t, fc.IsAvailable())
	_, err := fc.Complete(context.Background(), testReq)
	assert.ErrorIs(t, err, domain.ErrAIUnavailable)
	c1.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestFallbackClient_AllRateLimited(t *testing.T) {
	c1, c2 := availableClient(), availableClient()
	c1.On("Complete", mock.Anything, testReq).Return(nil, ai.NewRateLimitError("openai", errors.New("429"), 60))
	c2.On("Complete", mock.Anything, testReq).Return(nil, ai.NewRateLimitError("claude", errors.New("429"), 30))

	fc := ai.NewFallbackClient([]port.AIClient{c1, c2}, []string{"openai", "claude"})

	_, err := fc.Complete(context.Background(), testReq)

	var rlErr *ai.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "all", rlErr.Provider)
}

func TestFallbackClient_AllFail_NonRateLimit(t *testing.T) {
	c1, c2 := availableClient(), availableClient()
	c1.On("Complete", mock.Anything, testReq).Return(nil, errors.New("error 1"))
	c2.On("Complete", mock.Anything, testReq).Return(nil, errors.New("error 2"))

	fc := ai.NewFallbackClient([]port.AIClient{c1, c2}, []string{"openai", "claude"})

	_, err := fc.Complete(context.Background(), testReq)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "all providers failed")
	var rlErr *ai.RateLimitError
	assert.False(t, errors.As(err, &rlErr))
}

func TestFallbackClient_SkipsOpenCircuit(t *testing.T) {
	c1, c2 := availableClient(), availableClient()
	c1.On("Complete", mock.Anything, testReq).Return(nil, ai.NewRateLimitError("openai", errors.New("429"), 60)).Once()
	c2.On("Complete", mock.Anything, testReq).Return(completion("claude"), nil)

	fc := ai.NewFallbackClient([]port.AIClient{c1, c2}, []string{"openai", "claude"})

	_, err := fc.Complete(context.Background(), testReq)
	require.NoError(t, err)
	resp, err := fc.Complete(context.Background(), testReq)
	require.NoError(t, err)

	assert.Equal(t, "claude", resp.ModelUsed)
	c1.AssertNumberOfCalls(t, "Complete", 1)
}

func TestFallbackClient_CircuitAutoCloses(t *testing.T) {
	c1, c2 := availableClient(), availableClient()
	c1.On("Complete", mock.Anything, testReq).Return(nil, ai.NewRateLimitError("openai", errors.New("429"), 1)).Once()
	c2.On("Complete", mock.Anything, testReq).Return(completion("claude"), nil).Once()

	fc := ai.NewFallbackClient([]port.AIClient{c1, c2}, []string{"openai", "claude"})

	resp, err := fc.Complete(context.Background(), testReq)
	require.NoError(t, err)
	assert.Equal(t, "claude", resp.ModelUsed)

	time.Sleep(1100 * time.Millisecond)

	c1.On("Complete", mock.Anything, testReq).Return(completion("openai"), nil).Once()
	resp, err = fc.Complete(context.Background(), testReq)
	require.NoError(t, err)
	assert.Equal(t, "openai", resp.ModelUsed)
}

func TestFallbackClient_ContextCanceledStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c1, c2 := availableClient(), availableClient()
	c1.On("Complete", mock.Anything, testReq).Return(nil, context.Canceled)

	fc := ai.NewFallbackClient([]port.AIClient{c1, c2}, []string{"openai", "claude"})

	_, err := fc.Complete(ctx, testReq)

	assert.ErrorIs(t, err, context.Canceled)
	c2.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestFallbackClient_ConcurrentSafety(t *testing.T) {
	c1, c2 := availableClient(), availableClient()
	c1.On("Complete", mock.Anything, testReq).Return(nil, ai.NewRateLimitError("openai", errors.New("429"), 5)).Maybe()
	c2.On("Complete", mock.Anything, testReq).Return(completion("claude"), nil).Maybe()

	fc := ai.NewFallbackClient([]port.AIClient{c1, c2}, []string{"openai", "claude"})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := fc.Complete(context.Background(), testReq)
			assert.NoError(t, err)
			assert.NotNil(t, resp)
		}()
	}
	wg.Wait()
}
