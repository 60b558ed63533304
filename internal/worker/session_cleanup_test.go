package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type purger struct {
	calls atomic.Int32
}

func (p *purger) PurgeExpiredSessions(context.Context) (int64, error) {
	p.calls.Add(1)
	return 1, nil
}

func TestSessionCleanupWorker_Ticks(t *testing.T) {
	p := &purger{}
	w := NewSessionCleanupWorker(p, 0)
	assert.Equal(t, time.Hour, w.interval)
	w.interval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return p.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
