package mocks

import (
	"context"

	"github.com/kevin07696/ufc-gateway/internal/adapters/ports"
	"github.com/stretchr/testify/mock"
)

// MockSecretManager is a testify mock of ports.SecretManagerAdapter
type MockSecretManager struct {
	mock.Mock
}

var _ ports.SecretManagerAdapter = (*MockSecretManager)(nil)

func (m *MockSecretManager) GetSecret(ctx context.Context, path string) (*ports.Secret, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.Secret), args.Error(1)
}
