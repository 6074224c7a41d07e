package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const pingTimeout = 5 * time.Second

// OpenRedis connects and pings once so a bad address fails at startup.
func OpenRedis(ctx context.Context, addr string, db int, log *zap.Logger) (*redis.Client, error) {
	r := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, err
	}
	log.Info("redis: connected", zap.String("addr", addr), zap.Int("db", db))
	return r, nil
}
