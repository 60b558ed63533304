package reminder

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const LockKey = "reminder:sweep:lock"

// Locker grants a short-lived exclusive lease. release is safe to call when
// the lease already expired.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

type redisLocker struct {
	client *redis.Client
}

func NewRedisLocker(client *redis.Client) Locker {
	return &redisLocker{client: client}
}

func (l *redisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	owner := uuid.New().String()
	ok, err := l.client.SetNX(ctx, key, owner, ttl).Result()
	if err != nil || !ok {
		return func() {}, false, err
	}

	release := func() {
		// Only the owner deletes; a lease that expired and was taken over
		// by another instance stays with it.
		_ = releaseScript.Run(context.Background(), l.client, []string{key}, owner).Err()
	}
	return release, true, nil
}
