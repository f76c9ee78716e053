package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"entregas/internal/domain"
)

// MockDeliveryRepo is a mock implementation of port.DeliveryRepository.
type MockDeliveryRepo struct {
	mock.Mock
}

func (m *MockDeliveryRepo) ExistsByKey(ctx context.Context, invoiceKey string) (bool, error) {
	args := m.Called(ctx, invoiceKey)
	return args.Bool(0), args.Error(1)
}

func (m *MockDeliveryRepo) CreateFromInvoice(ctx context.Context, d *domain.Delivery, items []domain.DeliveryItem) (int64, error) {
	args := m.Called(ctx, d, items)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDeliveryRepo) Create(ctx context.Context, d *domain.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepo) List(ctx context.Context) ([]domain.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Delivery), args.Error(1)
}

func (m *MockDeliveryRepo) ListItems(ctx context.Context, deliveryID int64) ([]domain.DeliveryItem, error) {
	args := m.Called(ctx, deliveryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeliveryItem), args.Error(1)
}
