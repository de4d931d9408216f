package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrLockNotAcquired = errors.New("admission lock not acquired")

// AdmissionLocker serialises admissions that share a NIK, so two concurrent
// submissions of the same person cannot both reach the store.
type AdmissionLocker interface {
	WithNIKLock(ctx context.Context, nik string, fn func(ctx context.Context) error) error
}

const lockKeyPrefix = "lock:admission:nik:"

type redisAdmissionLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisAdmissionLocker creates a locker that uses a per NIK Redis key,
// shared by every instance connected to the same Redis.
func NewRedisAdmissionLocker(client *redis.Client, ttl time.Duration) AdmissionLocker {
	return &redisAdmissionLocker{
		client: client,
		ttl:    ttl,
	}
}

func (l *redisAdmissionLocker) WithNIKLock(ctx context.Context, nik string, fn func(ctx context.Context) error) error {
	key := lockKeyPrefix + nik
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire admission lock: %w", err)
	}
	if !ok {
		return ErrLockNotAcquired
	}

	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()
		_ = l.release(releaseCtx, key, token)
	}()

	return fn(ctx)
}

// unlockScript deletes the key only while it still holds our token.
var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *redisAdmissionLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release admission lock: %w", err)
	}
	return nil
}

type localAdmissionLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewLocalAdmissionLocker guards NIKs within this process only.
func NewLocalAdmissionLocker() AdmissionLocker {
	return &localAdmissionLocker{held: make(map[string]struct{})}
}

func (l *localAdmissionLocker) WithNIKLock(ctx context.Context, nik string, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	if _, busy := l.held[nik]; busy {
		l.mu.Unlock()
		return ErrLockNotAcquired
	}
	l.held[nik] = struct{}{}
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		delete(l.held, nik)
		l.mu.Unlock()
	}()

	return fn(ctx)
}
