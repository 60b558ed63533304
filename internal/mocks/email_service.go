package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"seguimiento-noticias/internal/domain"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendAviso(ctx context.Context, aviso *domain.Aviso) error {
	args := m.Called(ctx, aviso)
	return args.Error(0)
}
