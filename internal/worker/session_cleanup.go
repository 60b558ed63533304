package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"seguimiento-noticias/internal/pkg/logger"
)

// SessionPurger clears expired session tokens. auth.Service satisfies it.
type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// SessionCleanupWorker periodically clears expired session tokens so stale
// hashes do not linger on reportero rows.
type SessionCleanupWorker struct {
	sessions SessionPurger
	interval time.Duration
	log      *logrus.Entry
}

func NewSessionCleanupWorker(sessions SessionPurger, interval time.Duration) *SessionCleanupWorker {
	if interval < time.Minute {
		interval = time.Hour
	}
	return &SessionCleanupWorker{
		sessions: sessions,
		interval: interval,
		log:      logger.WithComponent("session_cleanup"),
	}
}

func (w *SessionCleanupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *SessionCleanupWorker) tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			w.log.WithField("panic", r).Error("session cleanup panicked")
		}
	}()

	purged, err := w.sessions.PurgeExpiredSessions(ctx)
	if err != nil {
		w.log.WithError(err).Error("failed to purge expired sessions")
		return
	}
	if purged > 0 {
		w.log.WithField("purged", purged).Info("expired sessions purged")
	}
}
