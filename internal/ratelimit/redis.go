package ratelimit

import (
	"context"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// RedisLimiter counts requests with INCR and lets the key expire at the end of the window.
type RedisLimiter struct {
	client *redis.Client
	prefix string
}

func NewRedisLimiter(client *redis.Client, prefix string) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: prefix}
}

// Allow returns the Redis error alongside true so callers can fail open.
func (l *RedisLimiter) Allow(ctx context.Context, key string, max int, window time.Duration) (bool, error) {
	redisKey := l.prefix + key + ":" + strconv.FormatInt(int64(window.Seconds()), 10)

	val, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return true, err
	}
	if val == 1 {
		if err := l.client.Expire(ctx, redisKey, window).Err(); err != nil {
			return true, err
		}
	}

	return val <= int64(max), nil
}
