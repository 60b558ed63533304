package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"seguimiento-noticias/internal/domain"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) NoticiaCreated(ctx context.Context, noticia *domain.Noticia) {
	m.Called(ctx, noticia)
}

func (m *NotificationService) RouteStarted(ctx context.Context, noticia *domain.Noticia, reportero string) {
	m.Called(ctx, noticia, reportero)
}

func (m *NotificationService) Arrived(ctx context.Context, noticia *domain.Noticia, reportero string) {
	m.Called(ctx, noticia, reportero)
}

func (m *NotificationService) AvisoCreated(ctx context.Context, aviso *domain.Aviso) {
	m.Called(ctx, aviso)
}

func (m *NotificationService) AppointmentReminder(ctx context.Context, candidate domain.ReminderCandidate) int {
	args := m.Called(ctx, candidate)
	return args.Int(0)
}
