package redisconn

import (
	"context"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/notaventa/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// New builds the shared Redis client used by the record store, the artifact
// store and the pub/sub topic. The client is a stateless connection wrapper;
// one instance is shared process-wide.
func New(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if lc != nil {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := client.Ping(ctx).Err(); err != nil {
					log.Warn("redis ping failed", zap.String("addr", cfg.RedisAddr), zap.Error(err))
				}
				return nil
			},
			OnStop: func(ctx context.Context) error {
				_ = ctx
				return client.Close()
			},
		})
	}

	return client
}

var Module = fx.Module("redisconn",
	fx.Provide(New),
)
