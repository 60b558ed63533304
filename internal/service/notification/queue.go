package notification

import (
	"context"
	"encoding/json"
	"errors"

	"seguimiento-noticias/internal/domain"
)

var ErrQueueFull = errors.New("push queue is full")

// Delivery is a message taken from a queue. It stays owned by the consumer
// until it is acknowledged or handed back for retry.
type Delivery struct {
	Message domain.PushMessage
	raw     string
}

// Queue is an at-least-once push message queue.
type Queue interface {
	Enqueue(ctx context.Context, msg domain.PushMessage) error
	// Dequeue blocks until a message is available or ctx is done.
	Dequeue(ctx context.Context) (*Delivery, error)
	Ack(ctx context.Context, d *Delivery) error
	// Retry returns the message to the queue with its attempt counter bumped.
	Retry(ctx context.Context, d *Delivery) error
	// Recover requeues deliveries left in flight by a consumer that died.
	Recover(ctx context.Context) (int, error)
}

func encode(msg domain.PushMessage) (string, error) {
	raw, err := json.Marshal(msg)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decode(raw string) (*Delivery, error) {
	var msg domain.PushMessage
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		return nil, err
	}
	return &Delivery{Message: msg, raw: raw}, nil
}

type memoryQueue struct {
	ch chan domain.PushMessage
}

// NewMemoryQueue is used when Redis is not configured. Messages in it are
// lost on restart.
func NewMemoryQueue(size int) Queue {
	if size <= 0 {
		size = 1024
	}
	return &memoryQueue{ch: make(chan domain.PushMessage, size)}
}

func (q *memoryQueue) Enqueue(ctx context.Context, msg domain.PushMessage) error {
	select {
	case q.ch <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

func (q *memoryQueue) Dequeue(ctx context.Context) (*Delivery, error) {
	select {
	case msg := <-q.ch:
		return &Delivery{Message: msg}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (q *memoryQueue) Ack(context.Context, *Delivery) error {
	return nil
}

func (q *memoryQueue) Retry(ctx context.Context, d *Delivery) error {
	msg := d.Message
	msg.Attempts++
	return q.Enqueue(ctx, msg)
}

func (q *memoryQueue) Recover(context.Context) (int, error) {
	return 0, nil
}
