package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/recipebox/backend/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockIdentityProvider is a mock implementation of the IdentityProvider interface
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) SignUp(ctx context.Context, email, password string) (*types.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *MockIdentityProvider) SignInWithPassword(ctx context.Context, email, password string) (*types.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Session), args.Error(1)
}

func (m *MockIdentityProvider) GetUser(ctx context.Context, token string) (*types.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

// MockProfileStore is a mock implementation of the ProfileStore interface
type MockProfileStore struct {
	mock.Mock
}

func (m *MockProfileStore) UpdateUsername(ctx context.Context, userID uuid.UUID, username string) error {
	args := m.Called(ctx, userID, username)
	return args.Error(0)
}
