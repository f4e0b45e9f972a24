package testing

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockKeyUpdater is a mock implementation of the gate's KeyUpdater.
type MockKeyUpdater struct {
	mock.Mock
}

// UpdateKey records the uploaded key.
func (m *MockKeyUpdater) UpdateKey(ctx context.Context, publicKey string) (string, error) {
	args := m.Called(ctx, publicKey)
	return args.String(0), args.Error(1)
}
