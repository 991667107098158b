package kvstore

import (
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var Module = fx.Module("kvstore",
	fx.Provide(Provide),
)

func Provide(client *redis.Client) Store {
	return NewRedisStore(client)
}
