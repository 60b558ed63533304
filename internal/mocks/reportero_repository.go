package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"seguimiento-noticias/internal/domain"
)

type ReporteroRepository struct {
	mock.Mock
}

func (m *ReporteroRepository) Create(ctx context.Context, reportero *domain.Reportero) error {
	args := m.Called(ctx, reportero)
	return args.Error(0)
}

func (m *ReporteroRepository) GetByID(ctx context.Context, id int64) (*domain.Reportero, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reportero), args.Error(1)
}

func (m *ReporteroRepository) GetByNombre(ctx context.Context, nombre string) (*domain.Reportero, error) {
	args := m.Called(ctx, nombre)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reportero), args.Error(1)
}

func (m *ReporteroRepository) ExistsByNombre(ctx context.Context, nombre string, excludeID int64) (bool, error) {
	args := m.Called(ctx, nombre, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *ReporteroRepository) UpdatePerfil(ctx context.Context, id int64, nombre string, passwordHash *string) error {
	args := m.Called(ctx, id, nombre, passwordHash)
	return args.Error(0)
}

func (m *ReporteroRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *ReporteroRepository) SetFCMToken(ctx context.Context, id int64, token *string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}

func (m *ReporteroRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *ReporteroRepository) Search(ctx context.Context, query string, role domain.Role, limit int) ([]domain.ReporteroSummary, error) {
	args := m.Called(ctx, query, role, limit)
	return args.Get(0).([]domain.ReporteroSummary), args.Error(1)
}
