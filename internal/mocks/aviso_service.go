package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"seguimiento-noticias/internal/domain"
)

type AvisoService struct {
	mock.Mock
}

func (m *AvisoService) Create(ctx context.Context, input domain.CreateAvisoInput) (*domain.Aviso, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Aviso), args.Error(1)
}

func (m *AvisoService) ListActive(ctx context.Context) ([]domain.Aviso, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Aviso), args.Error(1)
}
