package aviso

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"seguimiento-noticias/internal/domain"
	"seguimiento-noticias/internal/pkg/logger"
	"seguimiento-noticias/internal/pkg/validation"
	"seguimiento-noticias/internal/repository"
	"seguimiento-noticias/internal/service/email"
	"seguimiento-noticias/internal/service/notification"
)

var ErrVigenciaInvalid = domain.NewRuleError("aviso.vigencia_invalid")

type Service interface {
	Create(ctx context.Context, input domain.CreateAvisoInput) (*domain.Aviso, error)
	// ListActive purges expired avisos before listing the ones still in force.
	ListActive(ctx context.Context) ([]domain.Aviso, error)
}

type service struct {
	avisoRepo repository.AvisoRepository
	notifier  notification.Service
	mailer    email.Service
	loc       *time.Location
	now       func() time.Time
	log       *logrus.Entry
}

func NewService(avisoRepo repository.AvisoRepository, notifier notification.Service, mailer email.Service, loc *time.Location) Service {
	return &service{
		avisoRepo: avisoRepo,
		notifier:  notifier,
		mailer:    mailer,
		loc:       loc,
		now:       time.Now,
		log:       logger.WithComponent("aviso"),
	}
}

func (s *service) Create(ctx context.Context, input domain.CreateAvisoInput) (*domain.Aviso, error) {
	input.Titulo = strings.TrimSpace(input.Titulo)
	input.Descripcion = strings.TrimSpace(input.Descripcion)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	vigencia, err := domain.EndOfDay(input.Vigencia, s.loc)
	if err != nil {
		return nil, ErrVigenciaInvalid
	}

	aviso := &domain.Aviso{
		Titulo:      input.Titulo,
		Descripcion: input.Descripcion,
		Vigencia:    vigencia,
	}
	if err := s.avisoRepo.Create(ctx, aviso); err != nil {
		return nil, err
	}

	s.notifier.AvisoCreated(ctx, aviso)

	if s.mailer != nil {
		go func(a domain.Aviso) {
			if err := s.mailer.SendAviso(context.Background(), &a); err != nil {
				s.log.WithError(err).WithField("aviso_id", a.ID).Warn("aviso email failed")
			}
		}(*aviso)
	}

	return aviso, nil
}

func (s *service) ListActive(ctx context.Context) ([]domain.Aviso, error) {
	now := s.now()
	purged, err := s.avisoRepo.DeleteExpired(ctx, now)
	if err != nil {
		return nil, err
	}
	if purged > 0 {
		s.log.WithField("purged", purged).Debug("expired avisos removed")
	}
	return s.avisoRepo.ListActive(ctx, now)
}
