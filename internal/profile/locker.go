package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/healthstats/pkg"
)

const (
	lockKeyPrefix          = "profile-lock::"
	defaultLockRetryPeriod = 50 * time.Millisecond
)

// releaseLockScript deletes the key only if we still own it.
const releaseLockScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0`

// RedisLocker serializes read-modify-write of a single user's profile
// across all service instances.
type RedisLocker struct {
	rdb            *redis.Client
	ttl            time.Duration
	retryPeriod    time.Duration
	RandStringFunc func(n int) (string, error)
}

func NewRedisLocker(rdb *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		rdb:            rdb,
		ttl:            ttl,
		retryPeriod:    defaultLockRetryPeriod,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

// Lock blocks until the user's lock is acquired or ctx is done.
// The returned func releases the lock.
func (l *RedisLocker) Lock(ctx context.Context, userID string) (func(), error) {
	token, err := l.RandStringFunc(16)
	if err != nil {
		return nil, fmt.Errorf("generate lock token: %w", err)
	}

	key := lockKeyPrefix + userID
	for {
		acquired, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire profile lock: %w", err)
		}
		if acquired {
			break
		}

		log.Tracef("profile lock for %s busy, retrying", userID)
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("wait for profile lock: %w", ctx.Err())
		case <-time.After(l.retryPeriod):
		}
	}

	return func() {
		// released even when the request context is already gone
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := l.rdb.Eval(releaseCtx, releaseLockScript, []string{key}, token).Err(); err != nil {
			log.Errorf("release profile lock for %s: %s", userID, err)
		}
	}, nil
}
