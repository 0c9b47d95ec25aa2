// Package lease provides the exclusive per-tender evaluation lock. The Redis
// locker is the production path; the memory locker covers tests and
// single-process deployments without Redis.
package lease

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/zoeccivil/licitaciones-engine/internal/domain/lease"
	"github.com/zoeccivil/licitaciones-engine/pkg/id"
)

const keyPrefix = "tender:lease:"

// releaseScript deletes the lease only when the caller still owns it, so an
// expired holder cannot drop a successor's lease.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

type RedisLocker struct{ rdb *redis.Client }

func NewRedisLocker(rdb *redis.Client) *RedisLocker { return &RedisLocker{rdb: rdb} }

func (l *RedisLocker) Acquire(ctx context.Context, tenderID string, ttl time.Duration) (domain.Token, error) {
	token := domain.Token(id.NewID32())
	ok, err := l.rdb.SetNX(ctx, keyPrefix+tenderID, string(token), ttl).Result()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ErrLeaseHeld
	}
	return token, nil
}

func (l *RedisLocker) Release(ctx context.Context, tenderID string, token domain.Token) error {
	return releaseScript.Run(ctx, l.rdb, []string{keyPrefix + tenderID}, string(token)).Err()
}
