package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockRasterizer is a mock implementation of port.Rasterizer.
type MockRasterizer struct {
	mock.Mock
}

func (m *MockRasterizer) PageCount(ctx context.Context, pdf []byte) (int, error) {
	args := m.Called(ctx, pdf)
	return args.Int(0), args.Error(1)
}

func (m *MockRasterizer) Rasterize(ctx context.Context, pdf []byte, zoom float64, maxPages int) ([][]byte, error) {
	args := m.Called(ctx, pdf, zoom, maxPages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]byte), args.Error(1)
}
