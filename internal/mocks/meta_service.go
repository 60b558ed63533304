package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"seguimiento-noticias/internal/domain"
)

type MetaService struct {
	mock.Mock
}

func (m *MetaService) EmpleadoDestacado(ctx context.Context, anio, mes int) (*domain.EmpleadoDestacado, error) {
	args := m.Called(ctx, anio, mes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmpleadoDestacado), args.Error(1)
}

func (m *MetaService) SetMinimo(ctx context.Context, actor domain.Actor, input domain.SetMinimoInput) (*domain.MetaMensual, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MetaMensual), args.Error(1)
}

func (m *MetaService) Export(ctx context.Context, anio, mes int) (*domain.ReportExport, error) {
	args := m.Called(ctx, anio, mes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportExport), args.Error(1)
}
