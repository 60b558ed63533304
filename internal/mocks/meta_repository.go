package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"seguimiento-noticias/internal/domain"
)

type MetaRepository struct {
	mock.Mock
}

func (m *MetaRepository) GetMinimo(ctx context.Context, anio, mes int) (*domain.MetaMensual, error) {
	args := m.Called(ctx, anio, mes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MetaMensual), args.Error(1)
}

func (m *MetaRepository) UpsertMinimo(ctx context.Context, meta *domain.MetaMensual) error {
	args := m.Called(ctx, meta)
	return args.Error(0)
}

func (m *MetaRepository) RankReporteros(ctx context.Context, from, to time.Time) ([]domain.ReporteroTotal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.ReporteroTotal), args.Error(1)
}
