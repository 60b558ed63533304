package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"seguimiento-noticias/internal/domain"
)

type ClienteRepository struct {
	mock.Mock
}

func (m *ClienteRepository) Create(ctx context.Context, cliente *domain.Cliente) error {
	args := m.Called(ctx, cliente)
	return args.Error(0)
}

func (m *ClienteRepository) GetByID(ctx context.Context, id int64) (*domain.Cliente, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cliente), args.Error(1)
}

func (m *ClienteRepository) Update(ctx context.Context, cliente *domain.Cliente) (bool, error) {
	args := m.Called(ctx, cliente)
	return args.Bool(0), args.Error(1)
}

func (m *ClienteRepository) Search(ctx context.Context, query string, limit int) ([]domain.Cliente, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]domain.Cliente), args.Error(1)
}
