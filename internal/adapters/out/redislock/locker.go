// Package redislock provides a lease-based mutual exclusion lock on a single Redis key.
// It keeps periodic jobs from running concurrently across service replicas.
package redislock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotAcquired is returned by Acquire when another holder owns the key.
var ErrNotAcquired = errors.New("lock is held by another owner")

// releaseScript deletes the key only while it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Client is satisfied by *redis.Client and *redis.ClusterClient.
type Client interface {
	redis.Scripter
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
}

type Locker struct {
	client Client
}

func NewLocker(client Client) *Locker {
	return &Locker{client: client}
}

// Lease is a held lock. It expires on its own after the ttl passed to Acquire.
type Lease struct {
	client Client
	key    string
	token  string
}

// Acquire sets key with a fresh token if it does not exist yet.
func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (*Lease, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("lock ttl must be positive, got %s", ttl)
	}

	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %q: %w", key, err)
	}
	if !ok {
		return nil, ErrNotAcquired
	}

	return &Lease{client: l.client, key: key, token: token}, nil
}

// Do runs fn while holding key. It returns ErrNotAcquired without calling fn when the
// lock is held elsewhere. fn should finish well within ttl.
func (l *Locker) Do(ctx context.Context, key string, ttl time.Duration, fn func(context.Context) error) error {
	lease, err := l.Acquire(ctx, key, ttl)
	if err != nil {
		return err
	}

	fnErr := fn(ctx)
	// Release on a fresh context so a cancelled run still frees the key.
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
	defer cancel()

	return errors.Join(fnErr, lease.Release(releaseCtx))
}

// Release frees the lock if this lease still owns it. Releasing an expired or
// already released lease is not an error.
func (l *Lease) Release(ctx context.Context) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release lock %q: %w", l.key, err)
	}
	return nil
}

func (l *Lease) Key() string { return l.key }
