package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"entregas/internal/domain"
)

// MockImportService is a mock implementation of service.ImportService.
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) ImportArchive(ctx context.Context, archive []byte) (*domain.ImportResult, error) {
	args := m.Called(ctx, archive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportResult), args.Error(1)
}
