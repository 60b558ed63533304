package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"seguimiento-noticias/internal/domain"
)

type AvisoRepository struct {
	mock.Mock
}

func (m *AvisoRepository) Create(ctx context.Context, aviso *domain.Aviso) error {
	args := m.Called(ctx, aviso)
	return args.Error(0)
}

func (m *AvisoRepository) ListActive(ctx context.Context, now time.Time) ([]domain.Aviso, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.Aviso), args.Error(1)
}

func (m *AvisoRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
