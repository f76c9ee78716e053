package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockArchiveStore is a mock implementation of port.ArchiveStore.
type MockArchiveStore struct {
	mock.Mock
}

func (m *MockArchiveStore) Store(ctx context.Context, key string, data []byte) error {
	args := m.Called(ctx, key, data)
	return args.Error(0)
}
