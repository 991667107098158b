package pubsub

import (
	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/notaventa/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("pubsub",
	fx.Provide(ProvidePublisher),
)

func ProvidePublisher(cfg config.Config, client *redis.Client, log *zap.Logger) Publisher {
	if cfg.OrderTopic == "" {
		log.Named("pubsub").Info("no order topic configured, notifications disabled")
		return NoopPublisher{}
	}
	return NewRedisPublisher(client, cfg.OrderTopic)
}
