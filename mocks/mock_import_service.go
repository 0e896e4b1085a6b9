package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"upkeep/internal/domain"
	"upkeep/internal/service"
)

// MockImportService is a mock implementation of service.ImportService.
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) Classify(fileName string) (domain.FileClass, domain.Format, error) {
	args := m.Called(fileName)
	return args.Get(0).(domain.FileClass), args.Get(1).(domain.Format), args.Error(2)
}

func (m *MockImportService) Preview(ctx context.Context, input service.PreviewInput) (*service.Preview, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Preview), args.Error(1)
}

func (m *MockImportService) Dedupe(records []domain.ParsedVendorRecord) []domain.ParsedVendorRecord {
	args := m.Called(records)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.ParsedVendorRecord)
}

func (m *MockImportService) Import(ctx context.Context, records []domain.ParsedVendorRecord) domain.ImportResult {
	args := m.Called(ctx, records)
	return args.Get(0).(domain.ImportResult)
}

func (m *MockImportService) PreviewAndImport(ctx context.Context, input service.PreviewInput) (*service.Preview, domain.ImportResult, error) {
	args := m.Called(ctx, input)
	var preview *service.Preview
	if args.Get(0) != nil {
		preview = args.Get(0).(*service.Preview)
	}
	return preview, args.Get(1).(domain.ImportResult), args.Error(2)
}
