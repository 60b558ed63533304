package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"seguimiento-noticias/internal/pkg/logger"
	"seguimiento-noticias/internal/service/reminder"
)

// ReminderWorker runs the appointment reminder sweep on a fixed interval.
type ReminderWorker struct {
	reminders reminder.Service
	interval  time.Duration
	log       *logrus.Entry
}

func NewReminderWorker(reminders reminder.Service, interval time.Duration) *ReminderWorker {
	if interval < 10*time.Second {
		interval = time.Minute
	}
	return &ReminderWorker{
		reminders: reminders,
		interval:  interval,
		log:       logger.WithComponent("reminder_worker"),
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.WithField("interval", w.interval.String()).Info("reminder worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info("reminder worker stopped")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *ReminderWorker) tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			w.log.WithField("panic", r).Error("reminder sweep panicked, retrying next tick")
		}
	}()

	if _, err := w.reminders.Sweep(ctx); err != nil {
		w.log.WithError(err).Error("reminder sweep failed")
	}
}
