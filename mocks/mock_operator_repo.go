package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"entregas/internal/domain"
)

// MockOperatorRepo is a mock implementation of port.OperatorRepository.
type MockOperatorRepo struct {
	mock.Mock
}

func (m *MockOperatorRepo) Create(ctx context.Context, op *domain.Operator) error {
	args := m.Called(ctx, op)
	return args.Error(0)
}

func (m *MockOperatorRepo) GetByID(ctx context.Context, id int64) (*domain.Operator, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operator), args.Error(1)
}

func (m *MockOperatorRepo) GetByUsername(ctx context.Context, username string) (*domain.Operator, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operator), args.Error(1)
}

func (m *MockOperatorRepo) List(ctx context.Context) ([]domain.Operator, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Operator), args.Error(1)
}

func (m *MockOperatorRepo) Update(ctx context.Context, id int64, fields map[string]any) (*domain.Operator, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operator), args.Error(1)
}
