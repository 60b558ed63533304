package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"seguimiento-noticias/internal/domain"
	"seguimiento-noticias/internal/mocks"
)

type row struct {
	candidate domain.ReminderCandidate
	sent      bool
}

// memoryStore keeps the reminder flag per noticia. When stale is set it
// ignores the flag on reads, like a replica that lags behind the writer.
type memoryStore struct {
	mu    sync.Mutex
	rows  []*row
	stale bool
	from  time.Time
	to    time.Time
	limit int
}

func (m *memoryStore) ListDueReminders(_ context.Context, from, to time.Time, limit int) ([]domain.ReminderCandidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.from, m.to, m.limit = from, to, limit

	var out []domain.ReminderCandidate
	for _, r := range m.rows {
		if r.sent && !m.stale {
			continue
		}
		if !r.candidate.FechaCita.Before(from) && r.candidate.FechaCita.Before(to) {
			out = append(out, r.candidate)
		}
	}
	return out, nil
}

func (m *memoryStore) MarkReminderSent(_ context.Context, id int64, _ time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.candidate.ID == id {
			if r.sent {
				return false, nil
			}
			r.sent = true
			return true, nil
		}
	}
	return false, nil
}

type fakeLocker struct {
	held     bool
	err      error
	released int
}

func (l *fakeLocker) Acquire(context.Context, string, time.Duration) (func(), bool, error) {
	if l.err != nil {
		return func() {}, false, l.err
	}
	if l.held {
		return func() {}, false, nil
	}
	l.held = true
	return func() { l.held = false; l.released++ }, true, nil
}

var now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newStore() *memoryStore {
	reportero := int64(4)
	return &memoryStore{rows: []*row{
		{candidate: domain.ReminderCandidate{ID: 1, Titulo: "Entrevista", ReporteroID: &reportero, FechaCita: now.Add(30 * time.Minute)}},
		{candidate: domain.ReminderCandidate{ID: 2, Titulo: "Nota", FechaCita: now.Add(29*time.Minute + 30*time.Second)}},
		{candidate: domain.ReminderCandidate{ID: 3, Titulo: "Lejana", FechaCita: now.Add(2 * time.Hour)}},
	}}
}

func newTestService(store Store, notifier *mocks.NotificationService, locker Locker) *service {
	svc := NewService(store, notifier, locker).(*service)
	svc.now = func() time.Time { return now }
	return svc
}

func TestSweep_SendsOncePerWindow(t *testing.T) {
	store := newStore()
	notifier := new(mocks.NotificationService)
	notifier.On("AppointmentReminder", mock.Anything, mock.Anything).Return(2)
	svc := newTestService(store, notifier, nil)

	first, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Result{Checked: 2, Sent: 2}, first)
	assert.True(t, store.from.Equal(now.Add(29*time.Minute)))
	assert.True(t, store.to.Equal(now.Add(31*time.Minute)))
	assert.Equal(t, 200, store.limit)

	second, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Sent)
	notifier.AssertNumberOfCalls(t, "AppointmentReminder", 2)
}

func TestSweep_RowGuardWinsOverStaleRead(t *testing.T) {
	store := newStore()
	store.stale = true
	notifier := new(mocks.NotificationService)
	notifier.On("AppointmentReminder", mock.Anything, mock.Anything).Return(1)
	svc := newTestService(store, notifier, nil)

	_, err := svc.Sweep(context.Background())
	require.NoError(t, err)

	again, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, again.Checked)
	assert.Equal(t, 0, again.Sent)
	notifier.AssertNumberOfCalls(t, "AppointmentReminder", 2)
}

func TestSweep_LockHeldSkips(t *testing.T) {
	store := newStore()
	notifier := new(mocks.NotificationService)
	locker := &fakeLocker{held: true}
	svc := newTestService(store, notifier, locker)

	result, err := svc.Sweep(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	notifier.AssertNotCalled(t, "AppointmentReminder", mock.Anything, mock.Anything)
}

func TestSweep_ReleasesLockAndToleratesLockErrors(t *testing.T) {
	notifier := new(mocks.NotificationService)
	notifier.On("AppointmentReminder", mock.Anything, mock.Anything).Return(1)

	locker := &fakeLocker{}
	_, err := newTestService(newStore(), notifier, locker).Sweep(context.Background())
	require.NoError(t, err)
	assert.False(t, locker.held)
	assert.Equal(t, 1, locker.released)

	broken := &fakeLocker{err: errors.New("redis down")}
	result, err := newTestService(newStore(), notifier, broken).Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Sent)
}

func TestSweep_NothingQueuedIsNotCounted(t *testing.T) {
	notifier := new(mocks.NotificationService)
	notifier.On("AppointmentReminder", mock.Anything, mock.Anything).Return(0)

	result, err := newTestService(newStore(), notifier, nil).Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Checked)
	assert.Equal(t, 0, result.Sent)
}
