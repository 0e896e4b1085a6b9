package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"upkeep/internal/port"
)

// MockAIClient is a mock implementation of port.AIClient.
type MockAIClient struct {
	mock.Mock
}

func (m *MockAIClient) IsAvailable() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockAIClient) Complete(ctx context.Context, req port.CompletionRequest) (*port.CompletionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.CompletionResponse), args.Error(1)
}
