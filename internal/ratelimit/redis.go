package ratelimit

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/examgen/examgen-backend/internal/config"
)

// acquireScript increments KEYS[1] only while it is below ARGV[1] and sets
// a TTL of ARGV[2] seconds on first use.
var acquireScript = redis.NewScript(`
local n = tonumber(redis.call('GET', KEYS[1]) or '0')
if n >= tonumber(ARGV[1]) then
  return 0
end
n = redis.call('INCR', KEYS[1])
if n == 1 then
  redis.call('EXPIRE', KEYS[1], ARGV[2])
end
return 1
`)

// RedisStore shares counters across instances.
type RedisStore struct {
	rdb redis.Scripter
}

func NewRedisStore(rdb redis.Scripter) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Acquire(ctx context.Context, userID int, day string, limit int) (bool, error) {
	key := config.CacheKey.AIDailyUsageKey(userID, day)
	n, err := acquireScript.Run(ctx, s.rdb, []string{key}, limit, int(retention.Seconds())).Int()
	if err != nil {
		return false, fmt.Errorf("redis acquire %s: %w", key, err)
	}
	return n == 1, nil
}
