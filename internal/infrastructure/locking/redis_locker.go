package locking

import (
	"context"
	"fmt"
	"time"

	appclaims "github.com/claimdesk/backend/internal/application/claims"
	"github.com/claimdesk/backend/internal/domain/claims"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	lockKeyPrefix = "claim:export:lock:"

	// defaultLockTTL bounds how long a crashed instance can hold a claim
	// lock before Redis expires it.
	defaultLockTTL = 10 * time.Minute
)

// releaseScript deletes the lock only when the caller still owns it
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a distributed claim locker backed by Redis. It is suitable
// for deployments where multiple instances share the claim store.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisLocker creates a Redis-backed claim locker and verifies the
// connection
func NewRedisLocker(client *redis.Client, logger *zap.Logger) (*RedisLocker, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisLocker{
		client: client,
		ttl:    defaultLockTTL,
		logger: logger,
	}, nil
}

// TryLock acquires the per-claim lock via SETNX. The lock value is a random
// token so release never removes another holder's lock.
func (l *RedisLocker) TryLock(ctx context.Context, claimID uuid.UUID) (func(), error) {
	key := lockKeyPrefix + claimID.String()
	token := uuid.NewString()

	acquired, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire claim lock: %w", err)
	}
	if !acquired {
		return nil, claims.ErrExportInProgress
	}

	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			l.logger.Warn("failed to release claim lock",
				zap.String("claim_id", claimID.String()),
				zap.Error(err))
		}
	}
	return release, nil
}

var _ appclaims.ClaimLocker = (*RedisLocker)(nil)
