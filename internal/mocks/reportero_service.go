package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"seguimiento-noticias/internal/domain"
)

type ReporteroService struct {
	mock.Mock
}

func (m *ReporteroService) reportero(args mock.Arguments) (*domain.Reportero, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reportero), args.Error(1)
}

func (m *ReporteroService) Create(ctx context.Context, input domain.CreateReporteroInput) (*domain.Reportero, error) {
	return m.reportero(m.Called(ctx, input))
}

func (m *ReporteroService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ReporteroService) Search(ctx context.Context, query string) ([]domain.ReporteroSummary, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]domain.ReporteroSummary), args.Error(1)
}

func (m *ReporteroService) GetPerfil(ctx context.Context, actor domain.Actor) (*domain.Reportero, error) {
	return m.reportero(m.Called(ctx, actor))
}

func (m *ReporteroService) UpdatePerfil(ctx context.Context, actor domain.Actor, input domain.UpdatePerfilInput) (*domain.Reportero, error) {
	return m.reportero(m.Called(ctx, actor, input))
}

func (m *ReporteroService) RegisterDevice(ctx context.Context, actor domain.Actor, input domain.RegisterDeviceInput) ([]string, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
