package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"seguimiento-noticias/internal/domain"
)

const (
	QueueKey      = "push:queue"
	ProcessingKey = "push:processing"

	blockTimeout = 5 * time.Second
)

type redisQueue struct {
	client *redis.Client
}

// NewRedisQueue keeps pending messages in a list and moves each one to a
// processing list while a consumer works on it.
func NewRedisQueue(client *redis.Client) Queue {
	return &redisQueue{client: client}
}

func (q *redisQueue) Enqueue(ctx context.Context, msg domain.PushMessage) error {
	raw, err := encode(msg)
	if err != nil {
		return fmt.Errorf("failed to encode push message: %w", err)
	}
	return q.client.LPush(ctx, QueueKey, raw).Err()
}

func (q *redisQueue) Dequeue(ctx context.Context) (*Delivery, error) {
	for {
		raw, err := q.client.BLMove(ctx, QueueKey, ProcessingKey, "RIGHT", "LEFT", blockTimeout).Result()
		if errors.Is(err, redis.Nil) {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, err
		}

		d, err := decode(raw)
		if err != nil {
			// Unreadable entries are dropped so they cannot wedge the queue.
			q.client.LRem(ctx, ProcessingKey, 1, raw)
			return nil, fmt.Errorf("failed to decode push message: %w", err)
		}
		return d, nil
	}
}

func (q *redisQueue) Ack(ctx context.Context, d *Delivery) error {
	return q.client.LRem(ctx, ProcessingKey, 1, d.raw).Err()
}

func (q *redisQueue) Retry(ctx context.Context, d *Delivery) error {
	msg := d.Message
	msg.Attempts++
	raw, err := encode(msg)
	if err != nil {
		return err
	}

	_, err = q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LRem(ctx, ProcessingKey, 1, d.raw)
		pipe.LPush(ctx, QueueKey, raw)
		return nil
	})
	return err
}

func (q *redisQueue) Recover(ctx context.Context) (int, error) {
	moved := 0
	for {
		err := q.client.RPopLPush(ctx, ProcessingKey, QueueKey).Err()
		if errors.Is(err, redis.Nil) {
			return moved, nil
		}
		if err != nil {
			return moved, err
		}
		moved++
	}
}
