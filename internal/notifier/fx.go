package notifier

import (
	"context"
	"errors"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/notaventa/internal/config"
	"github.com/smallbiznis/notaventa/internal/pubsub"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("notifier",
	fx.Provide(NewService),
	fx.Provide(ProvideSubscriber),
	fx.Invoke(Run),
)

func ProvideSubscriber(cfg config.Config, client *redis.Client, log *zap.Logger) (pubsub.Subscriber, error) {
	if cfg.OrderTopic == "" {
		return nil, errors.New("ORDER_TOPIC must be set for the notifier")
	}
	return pubsub.NewRedisSubscriber(client, cfg.OrderTopic, log), nil
}

// Run ties the subscription loop to the fx lifecycle: started on app start,
// canceled on shutdown.
func Run(lc fx.Lifecycle, sub pubsub.Subscriber, svc *Service, log *zap.Logger) {
	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer close(done)
				if err := sub.Subscribe(runCtx, svc.Handle); err != nil && !errors.Is(err, context.Canceled) {
					log.Error("subscription terminated", zap.Error(err))
				}
			}()
			log.Info("notifier subscribed to order topic")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-ctx.Done():
			}
			return nil
		},
	})
}
