package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"entregas/internal/domain"
)

// MockDriverRepo is a mock implementation of port.DriverRepository.
type MockDriverRepo struct {
	mock.Mock
}

func (m *MockDriverRepo) Create(ctx context.Context, dr *domain.Driver) error {
	args := m.Called(ctx, dr)
	return args.Error(0)
}

func (m *MockDriverRepo) List(ctx context.Context) ([]domain.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Driver), args.Error(1)
}
