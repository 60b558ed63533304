package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"seguimiento-noticias/internal/domain"
)

type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) Store(ctx context.Context, reporteroID int64, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, reporteroID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *SessionRepository) GetByTokenHash(ctx context.Context, tokenHash string, now time.Time) (*domain.Reportero, error) {
	args := m.Called(ctx, tokenHash, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reportero), args.Error(1)
}

func (m *SessionRepository) Revoke(ctx context.Context, reporteroID int64) error {
	args := m.Called(ctx, reporteroID)
	return args.Error(0)
}

func (m *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
