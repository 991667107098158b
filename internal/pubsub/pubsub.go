package pubsub

import (
	"context"
	"encoding/json"
)

// Envelope is the wire frame published to a topic: a display subject plus the
// JSON-encoded message body.
type Envelope struct {
	Subject string          `json:"subject"`
	Message json.RawMessage `json:"message"`
}

// Publisher emits messages to a topic. Implementations must treat publishing
// as fire-and-forget from the consumer's point of view; delivery is at-most-once.
type Publisher interface {
	Publish(ctx context.Context, message []byte, subject string) error
}

// Handler consumes one envelope. Returning an error only logs it; the
// subscription keeps running.
type Handler func(ctx context.Context, env Envelope) error

// Subscriber delivers topic envelopes to a handler until ctx is done.
type Subscriber interface {
	Subscribe(ctx context.Context, handler Handler) error
}

// NoopPublisher is used when no topic is configured. Publishing is a
// documented no-op, not an error.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, message []byte, subject string) error {
	_ = ctx
	_ = message
	_ = subject
	return nil
}
