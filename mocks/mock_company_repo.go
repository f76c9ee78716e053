package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"entregas/internal/domain"
)

// MockCompanyRepo is a mock implementation of port.CompanyRepository.
type MockCompanyRepo struct {
	mock.Mock
}

func (m *MockCompanyRepo) Create(ctx context.Context, co *domain.Company) error {
	args := m.Called(ctx, co)
	return args.Error(0)
}

func (m *MockCompanyRepo) List(ctx context.Context) ([]domain.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyRepo) Update(ctx context.Context, id int64, fields map[string]any) (*domain.Company, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}
