package service

import (
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"seguimiento-noticias/internal/config"
	"seguimiento-noticias/internal/repository"
	"seguimiento-noticias/internal/service/auth"
	"seguimiento-noticias/internal/service/aviso"
	"seguimiento-noticias/internal/service/cliente"
	"seguimiento-noticias/internal/service/email"
	"seguimiento-noticias/internal/service/meta"
	"seguimiento-noticias/internal/service/noticia"
	"seguimiento-noticias/internal/service/notification"
	"seguimiento-noticias/internal/service/reminder"
	"seguimiento-noticias/internal/service/reportero"
)

type Services struct {
	Auth         auth.Service
	Noticia      noticia.Service
	Reportero    reportero.Service
	Cliente      cliente.Service
	Aviso        aviso.Service
	Meta         meta.Service
	Reminder     reminder.Service
	Email        email.Service
	Notification notification.Service
}

// Clients holds the optional infrastructure. Any nil client disables the
// feature that depends on it.
type Clients struct {
	Redis     *redis.Client
	MinIO     *minio.Client
	Messaging *messaging.Client
	Queue     notification.Queue
}

func NewServices(repos *repository.Repositories, clients Clients, cfg *config.Config, loc *time.Location) *Services {
	notificationService := notification.NewService(clients.Queue)
	emailService := email.NewService(cfg)

	var subscriber reportero.TopicSubscriber
	if clients.Messaging != nil {
		subscriber = clients.Messaging
	}

	var store meta.ObjectStore
	if clients.MinIO != nil {
		store = clients.MinIO
	}

	var locker reminder.Locker
	if clients.Redis != nil {
		locker = reminder.NewRedisLocker(clients.Redis)
	}

	return &Services{
		Auth:         auth.NewService(repos.Reportero, repos.Session, cfg),
		Noticia:      noticia.NewService(repos.Noticia, repos.Reportero, repos.Cliente, notificationService, loc),
		Reportero:    reportero.NewService(repos.Reportero, subscriber),
		Cliente:      cliente.NewService(repos.Cliente),
		Aviso:        aviso.NewService(repos.Aviso, notificationService, emailService, loc),
		Meta:         meta.NewService(repos.Meta, store, cfg.MinIOBucket, loc),
		Reminder:     reminder.NewService(repos.Noticia, notificationService, locker),
		Email:        emailService,
		Notification: notificationService,
	}
}
