package notification

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"seguimiento-noticias/internal/domain"
	"seguimiento-noticias/internal/pkg/logger"
)

const (
	TipoNoticiaSinAsignar = "noticia_sin_asignar"
	TipoNuevaNoticia      = "nueva_noticia"
	TipoInicioTrayecto    = "inicio_trayecto"
	TipoLlegadaDestino    = "llegada_destino"
	TipoAviso             = "aviso"
	TipoCitaProxima       = "cita_proxima"

	ReminderTitle = "Cita próxima"
	ReminderBody  = "Tu cita está próxima ¡Prepara tu equipo!"
)

// Service turns domain events into push messages and queues them. Failures
// are logged and never propagate to the operation that raised the event.
type Service interface {
	NoticiaCreated(ctx context.Context, noticia *domain.Noticia)
	RouteStarted(ctx context.Context, noticia *domain.Noticia, reportero string)
	Arrived(ctx context.Context, noticia *domain.Noticia, reportero string)
	AvisoCreated(ctx context.Context, aviso *domain.Aviso)
	// AppointmentReminder returns how many messages were queued.
	AppointmentReminder(ctx context.Context, candidate domain.ReminderCandidate) int
}

type service struct {
	queue Queue
	log   *logrus.Entry
}

func NewService(queue Queue) Service {
	return &service{
		queue: queue,
		log:   logger.WithComponent("notification"),
	}
}

func (s *service) NoticiaCreated(ctx context.Context, n *domain.Noticia) {
	id := strconv.FormatInt(n.ID, 10)

	if n.ReporteroID == nil {
		s.enqueue(ctx, domain.PushMessage{
			Topic: domain.TopicReportero,
			Title: "Nueva noticia disponible",
			Body:  n.Titulo,
			Data:  map[string]string{"tipo": TipoNoticiaSinAsignar, "noticia_id": id},
		})
		return
	}

	s.enqueue(ctx, domain.PushMessage{
		Topic: domain.TopicForReportero(*n.ReporteroID),
		Title: "Nueva noticia",
		Body:  n.Titulo,
		Data:  map[string]string{"tipo": TipoNuevaNoticia, "noticia_id": id},
	})
}

func (s *service) RouteStarted(ctx context.Context, n *domain.Noticia, reportero string) {
	s.enqueue(ctx, domain.PushMessage{
		Topic: domain.TopicAdmin,
		Title: "Reporte de trayecto",
		Body:  fmt.Sprintf("El reportero %s está en camino al destino. (%s)", reportero, n.Titulo),
		Data:  s.trayectoData(TipoInicioTrayecto, n, reportero),
	})
}

func (s *service) Arrived(ctx context.Context, n *domain.Noticia, reportero string) {
	s.enqueue(ctx, domain.PushMessage{
		Topic: domain.TopicAdmin,
		Title: "Reporte de trayecto",
		Body:  fmt.Sprintf("El reportero %s se encuentra en el destino. (%s)", reportero, n.Titulo),
		Data:  s.trayectoData(TipoLlegadaDestino, n, reportero),
	})
}

func (s *service) trayectoData(tipo string, n *domain.Noticia, reportero string) map[string]string {
	data := map[string]string{
		"tipo":       tipo,
		"noticia_id": strconv.FormatInt(n.ID, 10),
		"reportero":  reportero,
	}
	if n.ReporteroID != nil {
		data["reportero_id"] = strconv.FormatInt(*n.ReporteroID, 10)
	}
	return data
}

func (s *service) AvisoCreated(ctx context.Context, a *domain.Aviso) {
	data := map[string]string{
		"tipo":     TipoAviso,
		"aviso_id": strconv.FormatInt(a.ID, 10),
		"vigencia": a.Vigencia.Format("2006-01-02 15:04:05"),
	}

	for _, topic := range []string{domain.TopicReportero, domain.TopicAdmin} {
		s.enqueue(ctx, domain.PushMessage{
			Topic: topic,
			Title: "Nuevo aviso",
			Body:  a.Titulo,
			Data:  data,
		})
	}
}

func (s *service) AppointmentReminder(ctx context.Context, c domain.ReminderCandidate) int {
	data := map[string]string{
		"tipo":       TipoCitaProxima,
		"noticia_id": strconv.FormatInt(c.ID, 10),
	}

	topics := []string{domain.TopicAdmin}
	if c.ReporteroID != nil {
		topics = append(topics, domain.TopicForReportero(*c.ReporteroID))
	}

	queued := 0
	for _, topic := range topics {
		ok := s.enqueue(ctx, domain.PushMessage{
			Topic:   topic,
			Title:   ReminderTitle,
			Body:    ReminderBody,
			Data:    data,
			Channel: domain.ChannelCitas,
		})
		if ok {
			queued++
		}
	}
	return queued
}

func (s *service) enqueue(ctx context.Context, msg domain.PushMessage) bool {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Channel == "" {
		msg.Channel = domain.ChannelNoticias
	}

	if err := s.queue.Enqueue(ctx, msg); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"push_id": msg.ID,
			"target":  msg.Target(),
			"tipo":    msg.Data["tipo"],
		}).Error("failed to queue push message")
		return false
	}
	return true
}
