package pubsub

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisPublisher publishes envelopes to one Redis channel.
type RedisPublisher struct {
	client *redis.Client
	topic  string
}

func NewRedisPublisher(client *redis.Client, topic string) *RedisPublisher {
	return &RedisPublisher{client: client, topic: topic}
}

func (p *RedisPublisher) Publish(ctx context.Context, message []byte, subject string) error {
	payload, err := json.Marshal(Envelope{Subject: subject, Message: message})
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.topic, payload).Err()
}

// RedisSubscriber consumes envelopes from one Redis channel.
type RedisSubscriber struct {
	client *redis.Client
	topic  string
	log    *zap.Logger
}

func NewRedisSubscriber(client *redis.Client, topic string, log *zap.Logger) *RedisSubscriber {
	return &RedisSubscriber{client: client, topic: topic, log: log.Named("pubsub.subscriber")}
}

// Subscribe blocks delivering messages to handler until ctx is canceled.
// Handler errors are logged, never fatal to the subscription.
func (s *RedisSubscriber) Subscribe(ctx context.Context, handler Handler) error {
	sub := s.client.Subscribe(ctx, s.topic)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var env Envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				s.log.Warn("discarding malformed envelope", zap.Error(err))
				continue
			}
			if err := handler(ctx, env); err != nil {
				s.log.Error("handler failed", zap.String("subject", env.Subject), zap.Error(err))
			}
		}
	}
}
