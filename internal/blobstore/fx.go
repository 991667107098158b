package blobstore

import (
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var Module = fx.Module("blobstore",
	fx.Provide(Provide),
)

func Provide(client *redis.Client) ObjectStore {
	return NewRedisStore(client)
}
