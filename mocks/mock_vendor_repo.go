package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"upkeep/internal/domain"
)

// MockVendorRepo is a mock implementation of port.VendorRepository.
type MockVendorRepo struct {
	mock.Mock
}

func (m *MockVendorRepo) CreateVendor(ctx context.Context, record *domain.ParsedVendorRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockVendorRepo) List(ctx context.Context, offset, limit int) ([]domain.Vendor, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Vendor), args.Int(1), args.Error(2)
}

func (m *MockVendorRepo) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
