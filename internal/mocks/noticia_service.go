package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"seguimiento-noticias/internal/domain"
)

type NoticiaService struct {
	mock.Mock
}

func (m *NoticiaService) noticia(args mock.Arguments) (*domain.Noticia, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Noticia), args.Error(1)
}

func (m *NoticiaService) list(args mock.Arguments) ([]domain.Noticia, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Noticia), args.Error(1)
}

func (m *NoticiaService) editResult(args mock.Arguments) (*domain.EditResult, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EditResult), args.Error(1)
}

func (m *NoticiaService) Create(ctx context.Context, actor domain.Actor, input domain.CreateNoticiaInput) (*domain.Noticia, error) {
	return m.noticia(m.Called(ctx, actor, input))
}

func (m *NoticiaService) Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Noticia, error) {
	return m.noticia(m.Called(ctx, actor, id))
}

func (m *NoticiaService) List(ctx context.Context, filter domain.NoticiaFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Noticia], error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Noticia]), args.Error(1)
}

func (m *NoticiaService) ListByReportero(ctx context.Context, actor domain.Actor, reporteroID int64) ([]domain.Noticia, error) {
	return m.list(m.Called(ctx, actor, reporteroID))
}

func (m *NoticiaService) ListDisponibles(ctx context.Context) ([]domain.Noticia, error) {
	return m.list(m.Called(ctx))
}

func (m *NoticiaService) ListByCliente(ctx context.Context, clienteID int64) ([]domain.Noticia, error) {
	return m.list(m.Called(ctx, clienteID))
}

func (m *NoticiaService) Claim(ctx context.Context, actor domain.Actor, id int64, input domain.ClaimInput) (*domain.Noticia, error) {
	return m.noticia(m.Called(ctx, actor, id, input))
}

func (m *NoticiaService) Edit(ctx context.Context, actor domain.Actor, id int64, input domain.UpdateNoticiaInput) (*domain.EditResult, error) {
	return m.editResult(m.Called(ctx, actor, id, input))
}

func (m *NoticiaService) StartRoute(ctx context.Context, actor domain.Actor, id int64) (*domain.EditResult, error) {
	return m.editResult(m.Called(ctx, actor, id))
}

func (m *NoticiaService) RecordArrival(ctx context.Context, actor domain.Actor, id int64, input domain.ArrivalInput) (*domain.Noticia, error) {
	return m.noticia(m.Called(ctx, actor, id, input))
}

func (m *NoticiaService) UpdateLocation(ctx context.Context, actor domain.Actor, id int64, input domain.LocationInput) (*domain.Noticia, error) {
	return m.noticia(m.Called(ctx, actor, id, input))
}

func (m *NoticiaService) Close(ctx context.Context, actor domain.Actor, id int64) (*domain.Noticia, error) {
	return m.noticia(m.Called(ctx, actor, id))
}

func (m *NoticiaService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *NoticiaService) Reassign(ctx context.Context, input domain.ReassignInput) (int64, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(int64), args.Error(1)
}
