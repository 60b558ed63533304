package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"seguimiento-noticias/internal/pkg/logger"
	"seguimiento-noticias/internal/service/notification"
	"seguimiento-noticias/internal/service/push"
)

// PushWorker drains the push queue through the gateway. Throttled, server
// side and transport failures are retried up to maxAttempts; anything else
// is dropped.
type PushWorker struct {
	queue       notification.Queue
	gateway     push.Gateway
	workers     int
	maxAttempts int
	backoff     func(attempt int) time.Duration
	log         *logrus.Entry
}

func NewPushWorker(queue notification.Queue, gateway push.Gateway, workers, maxAttempts int) *PushWorker {
	if workers < 1 {
		workers = 1
	}
	if maxAttempts < 1 {
		maxAttempts = 3
	}
	return &PushWorker{
		queue:       queue,
		gateway:     gateway,
		workers:     workers,
		maxAttempts: maxAttempts,
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt) * 500 * time.Millisecond
		},
		log: logger.WithComponent("push_worker"),
	}
}

// Start blocks until ctx is cancelled and every consumer has returned.
func (w *PushWorker) Start(ctx context.Context) {
	if recovered, err := w.queue.Recover(ctx); err != nil {
		w.log.WithError(err).Warn("failed to recover in-flight pushes")
	} else if recovered > 0 {
		w.log.WithField("recovered", recovered).Info("requeued in-flight pushes")
	}

	w.log.WithFields(logrus.Fields{"workers": w.workers, "max_attempts": w.maxAttempts}).Info("push worker started")

	var wg sync.WaitGroup
	for i := 0; i < w.workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			w.consume(ctx, id)
		}(i)
	}
	wg.Wait()

	w.log.Info("push worker stopped")
}

// Drain runs a single consumer until no message arrives for idle and
// returns how many deliveries it handled. Retries stay in the loop.
func (w *PushWorker) Drain(ctx context.Context, idle time.Duration) int {
	handled := 0
	for {
		waitCtx, cancel := context.WithTimeout(ctx, idle)
		d, err := w.queue.Dequeue(waitCtx)
		cancel()
		if err != nil {
			return handled
		}
		w.handle(ctx, d)
		handled++
	}
}

func (w *PushWorker) consume(ctx context.Context, id int) {
	for {
		d, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return
			}
			w.log.WithError(err).WithField("consumer", id).Error("dequeue failed")
			if !sleep(ctx, time.Second) {
				return
			}
			continue
		}
		w.handle(ctx, d)
	}
}

func (w *PushWorker) handle(ctx context.Context, d *notification.Delivery) {
	// Ack and retry must land even while shutting down, otherwise the
	// delivery waits in processing until the next Recover.
	settleCtx := context.WithoutCancel(ctx)

	defer func() {
		if r := recover(); r != nil {
			w.log.WithField("panic", r).Error("push handler panicked")
			_ = w.queue.Ack(settleCtx, d)
		}
	}()

	msg := d.Message
	attempt := msg.Attempts + 1
	result := w.gateway.Send(ctx, msg)

	entry := w.log.WithFields(logrus.Fields{
		"id":      msg.ID,
		"target":  msg.Target(),
		"attempt": attempt,
		"code":    result.StatusCode,
	})
	if result.Err != "" {
		entry = entry.WithField("err", result.Err)
	}

	switch {
	case result.OK():
		entry.Info("push delivered")
		w.settle(w.queue.Ack(settleCtx, d), msg.ID)
	case result.Retryable() && attempt < w.maxAttempts:
		entry.Warn("push failed, retrying")
		sleep(ctx, w.backoff(attempt))
		w.settle(w.queue.Retry(settleCtx, d), msg.ID)
	default:
		entry.WithField("resp", result.Body).Error("push dropped")
		w.settle(w.queue.Ack(settleCtx, d), msg.ID)
	}
}

func (w *PushWorker) settle(err error, id string) {
	if err != nil {
		w.log.WithError(err).WithField("id", id).Error("failed to settle push delivery")
	}
}

// sleep waits for d or until ctx is done, reporting whether the full wait
// elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
