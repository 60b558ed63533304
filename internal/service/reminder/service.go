package reminder

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"seguimiento-noticias/internal/domain"
	"seguimiento-noticias/internal/pkg/logger"
	"seguimiento-noticias/internal/service/notification"
)

const (
	windowStart = 29 * time.Minute
	windowEnd   = 31 * time.Minute
	batchLimit  = 200
	lockTTL     = 55 * time.Second
)

// Store is the slice of the noticia repository the sweep needs.
type Store interface {
	ListDueReminders(ctx context.Context, from, to time.Time, limit int) ([]domain.ReminderCandidate, error)
	MarkReminderSent(ctx context.Context, id int64, at time.Time) (bool, error)
}

type Result struct {
	Checked int  `json:"checked"`
	Sent    int  `json:"sent"`
	Skipped bool `json:"skipped,omitempty"`
}

type Service interface {
	// Sweep sends one reminder per noticia whose appointment is about 30
	// minutes away. Running it again inside the same window sends nothing.
	Sweep(ctx context.Context) (*Result, error)
}

type service struct {
	store    Store
	notifier notification.Service
	locker   Locker
	now      func() time.Time
	log      *logrus.Entry
}

// NewService accepts a nil locker. The per-row flag keeps the sweep
// idempotent on its own; the lock only avoids duplicate work.
func NewService(store Store, notifier notification.Service, locker Locker) Service {
	return &service{
		store:    store,
		notifier: notifier,
		locker:   locker,
		now:      time.Now,
		log:      logger.WithComponent("reminder"),
	}
}

func (s *service) Sweep(ctx context.Context) (*Result, error) {
	if s.locker != nil {
		release, ok, err := s.locker.Acquire(ctx, LockKey, lockTTL)
		if err != nil {
			s.log.WithError(err).Warn("sweep lock unavailable, relying on row guard")
		} else if !ok {
			return &Result{Skipped: true}, nil
		} else {
			defer release()
		}
	}

	now := s.now()
	candidates, err := s.store.ListDueReminders(ctx, now.Add(windowStart), now.Add(windowEnd), batchLimit)
	if err != nil {
		return nil, err
	}

	result := &Result{Checked: len(candidates)}
	for _, c := range candidates {
		won, err := s.store.MarkReminderSent(ctx, c.ID, now)
		if err != nil {
			s.log.WithError(err).WithField("noticia_id", c.ID).Error("failed to mark reminder")
			continue
		}
		if !won {
			continue
		}

		if queued := s.notifier.AppointmentReminder(ctx, c); queued > 0 {
			result.Sent++
		} else {
			s.log.WithField("noticia_id", c.ID).Warn("reminder marked but nothing queued")
		}
	}

	if result.Checked > 0 {
		s.log.WithFields(logrus.Fields{"checked": result.Checked, "sent": result.Sent}).Info("reminder sweep finished")
	}
	return result, nil
}
