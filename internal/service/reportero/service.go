package reportero

import (
	"context"
	"errors"
	"strings"

	"firebase.google.com/go/v4/messaging"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"seguimiento-noticias/internal/domain"
	"seguimiento-noticias/internal/pkg/logger"
	"seguimiento-noticias/internal/pkg/validation"
	"seguimiento-noticias/internal/repository"
)

const searchLimit = 20

var (
	ErrNotFound      = domain.NewRuleError("reportero.not_found")
	ErrNameTaken     = domain.NewRuleError("reportero.name_taken")
	ErrLastAdmin     = domain.NewRuleError("reportero.last_admin")
	ErrNothingToSave = domain.NewRuleError("reportero.nothing_to_save")
)

// TopicSubscriber manages device topic subscriptions. *messaging.Client
// satisfies it.
type TopicSubscriber interface {
	SubscribeToTopic(ctx context.Context, tokens []string, topic string) (*messaging.TopicManagementResponse, error)
	UnsubscribeFromTopic(ctx context.Context, tokens []string, topic string) (*messaging.TopicManagementResponse, error)
}

type Service interface {
	Create(ctx context.Context, input domain.CreateReporteroInput) (*domain.Reportero, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string) ([]domain.ReporteroSummary, error)
	GetPerfil(ctx context.Context, actor domain.Actor) (*domain.Reportero, error)
	UpdatePerfil(ctx context.Context, actor domain.Actor, input domain.UpdatePerfilInput) (*domain.Reportero, error)
	// RegisterDevice stores the device token and subscribes it to the role
	// topic and the personal topic. It returns the topics subscribed.
	RegisterDevice(ctx context.Context, actor domain.Actor, input domain.RegisterDeviceInput) ([]string, error)
}

type service struct {
	reporteroRepo repository.ReporteroRepository
	subscriber    TopicSubscriber
	log           *logrus.Entry
}

// NewService accepts a nil subscriber, in which case device tokens are only
// stored.
func NewService(reporteroRepo repository.ReporteroRepository, subscriber TopicSubscriber) Service {
	return &service{
		reporteroRepo: reporteroRepo,
		subscriber:    subscriber,
		log:           logger.WithComponent("reportero"),
	}
}

func (s *service) Create(ctx context.Context, input domain.CreateReporteroInput) (*domain.Reportero, error) {
	input.Nombre = strings.TrimSpace(input.Nombre)
	input.Password = strings.TrimSpace(input.Password)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	exists, err := s.reporteroRepo.ExistsByNombre(ctx, input.Nombre, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrNameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	reportero := &domain.Reportero{
		Nombre:             input.Nombre,
		PasswordHash:       string(hashed),
		Role:               domain.RoleReportero,
		PuedeCrearNoticias: input.PuedeCrearNoticias,
	}
	if err := s.reporteroRepo.Create(ctx, reportero); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return reportero, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	deleted, err := s.reporteroRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted {
		return nil
	}

	reportero, err := s.reporteroRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if reportero == nil {
		return ErrNotFound
	}
	return ErrLastAdmin
}

func (s *service) Search(ctx context.Context, query string) ([]domain.ReporteroSummary, error) {
	return s.reporteroRepo.Search(ctx, strings.TrimSpace(query), domain.RoleReportero, searchLimit)
}

func (s *service) GetPerfil(ctx context.Context, actor domain.Actor) (*domain.Reportero, error) {
	reportero, err := s.reporteroRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if reportero == nil {
		return nil, ErrNotFound
	}
	return reportero, nil
}

func (s *service) UpdatePerfil(ctx context.Context, actor domain.Actor, input domain.UpdatePerfilInput) (*domain.Reportero, error) {
	current, err := s.GetPerfil(ctx, actor)
	if err != nil {
		return nil, err
	}

	nombre := current.Nombre
	if input.Nombre != nil && strings.TrimSpace(*input.Nombre) != "" {
		nombre = strings.TrimSpace(*input.Nombre)
	}

	var passwordHash *string
	if input.Password != nil && strings.TrimSpace(*input.Password) != "" {
		password := strings.TrimSpace(*input.Password)
		if len(password) < 6 {
			return nil, domain.NewRuleError("validation.out_of_range", "password")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		h := string(hashed)
		passwordHash = &h
	}

	if nombre == current.Nombre && passwordHash == nil {
		return nil, ErrNothingToSave
	}

	if nombre != current.Nombre {
		exists, err := s.reporteroRepo.ExistsByNombre(ctx, nombre, current.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrNameTaken
		}
	}

	if err := s.reporteroRepo.UpdatePerfil(ctx, current.ID, nombre, passwordHash); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return s.GetPerfil(ctx, actor)
}

func (s *service) RegisterDevice(ctx context.Context, actor domain.Actor, input domain.RegisterDeviceInput) ([]string, error) {
	input.Token = strings.TrimSpace(input.Token)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	current, err := s.GetPerfil(ctx, actor)
	if err != nil {
		return nil, err
	}

	topics := []string{domain.TopicForRole(current.Role), domain.TopicForReportero(current.ID)}

	if s.subscriber != nil {
		if current.FCMToken != nil && *current.FCMToken != "" && *current.FCMToken != input.Token {
			s.changeSubscription(ctx, s.subscriber.UnsubscribeFromTopic, *current.FCMToken, topics, current.ID)
		}
		s.changeSubscription(ctx, s.subscriber.SubscribeToTopic, input.Token, topics, current.ID)
	}

	if err := s.reporteroRepo.SetFCMToken(ctx, current.ID, &input.Token); err != nil {
		return nil, err
	}
	return topics, nil
}

type topicOp func(ctx context.Context, tokens []string, topic string) (*messaging.TopicManagementResponse, error)

// changeSubscription is best effort: a failed topic call is logged and the
// device stays registered.
func (s *service) changeSubscription(ctx context.Context, op topicOp, token string, topics []string, reporteroID int64) {
	for _, topic := range topics {
		resp, err := op(ctx, []string{token}, topic)
		entry := s.log.WithFields(logrus.Fields{"reportero_id": reporteroID, "topic": topic})
		if err != nil {
			entry.WithError(err).Warn("topic subscription failed")
			continue
		}
		if resp != nil && resp.FailureCount > 0 {
			for _, e := range resp.Errors {
				entry.WithField("reason", e.Reason).Warn("topic subscription rejected")
			}
		}
	}
}
