package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"seguimiento-noticias/internal/domain"
)

type AuthService struct {
	mock.Mock
}

func (m *AuthService) Login(ctx context.Context, input domain.LoginInput) (*domain.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *AuthService) Logout(ctx context.Context, actor domain.Actor) error {
	args := m.Called(ctx, actor)
	return args.Error(0)
}

func (m *AuthService) Authenticate(ctx context.Context, token string) (*domain.Actor, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Actor), args.Error(1)
}

func (m *AuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
