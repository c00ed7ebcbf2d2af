package mocks

import (
	"context"

	"github.com/cookmate/cookmate/backend/internal/model"
	"github.com/cookmate/cookmate/backend/internal/types"
	"github.com/cookmate/cookmate/backend/pkg/ctxutil"
	"github.com/stretchr/testify/mock"
)

// MockIdentityProvider is a mock implementation of service.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) SignUp(ctx context.Context, email, password, displayName string) (string, error) {
	args := m.Called(ctx, email, password, displayName)
	return args.String(0), args.Error(1)
}

func (m *MockIdentityProvider) SignIn(ctx context.Context, email, password string) (string, string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockIdentityProvider) SignOut(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// CurrentUserID reads the context like the real provider does.
func (m *MockIdentityProvider) CurrentUserID(ctx context.Context) (string, bool) {
	return ctxutil.UserIDFromCtx(ctx)
}

func (m *MockIdentityProvider) ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

func (m *MockIdentityProvider) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdentityProvider) GetUser(ctx context.Context, userID string) (model.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.User), args.Error(1)
}
