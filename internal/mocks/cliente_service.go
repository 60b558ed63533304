package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"seguimiento-noticias/internal/domain"
)

type ClienteService struct {
	mock.Mock
}

func (m *ClienteService) cliente(args mock.Arguments) (*domain.Cliente, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cliente), args.Error(1)
}

func (m *ClienteService) Create(ctx context.Context, input domain.CreateClienteInput) (*domain.Cliente, error) {
	return m.cliente(m.Called(ctx, input))
}

func (m *ClienteService) Get(ctx context.Context, id int64) (*domain.Cliente, error) {
	return m.cliente(m.Called(ctx, id))
}

func (m *ClienteService) Update(ctx context.Context, id int64, input domain.UpdateClienteInput) (*domain.Cliente, error) {
	return m.cliente(m.Called(ctx, id, input))
}

func (m *ClienteService) Search(ctx context.Context, query string) ([]domain.Cliente, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]domain.Cliente), args.Error(1)
}
