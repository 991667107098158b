// Package notifier relays order notifications from the pub/sub topic to email.
package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/smallbiznis/notaventa/internal/observability/metrics"
	"github.com/smallbiznis/notaventa/internal/providers/email"
	"github.com/smallbiznis/notaventa/internal/pubsub"
	"github.com/smallbiznis/notaventa/internal/salesnote/domain"
	"go.uber.org/zap"
)

// ErrIncompleteMessage means a notification was missing one of the fields an
// email cannot be built without.
var ErrIncompleteMessage = errors.New("incomplete_notification_message")

type Service struct {
	log     *zap.Logger
	email   email.Provider
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(log *zap.Logger, provider email.Provider, m *metrics.Metrics) *Service {
	return &Service{
		log:     log.Named("notifier"),
		email:   provider,
		metrics: m,
		now:     time.Now,
	}
}

// Handle processes one envelope from the order topic. Unknown message types
// are skipped, not failed, so unrelated producers on the topic are harmless.
func (s *Service) Handle(ctx context.Context, env pubsub.Envelope) error {
	var message domain.OrderCreatedMessage
	if err := json.Unmarshal(env.Message, &message); err != nil {
		return fmt.Errorf("decode notification message: %w", err)
	}

	if message.Type != domain.MessageTypeOrderCreated {
		s.log.Info("skipping unsupported message type", zap.String("type", message.Type))
		return nil
	}

	if err := s.process(ctx, message); err != nil {
		s.metrics.RecordEmailFailure(ctx, classifyFailure(err))
		return err
	}
	return nil
}

func (s *Service) process(ctx context.Context, message domain.OrderCreatedMessage) error {
	if strings.TrimSpace(message.CustomerEmail) == "" ||
		strings.TrimSpace(message.Folio) == "" ||
		strings.TrimSpace(message.DownloadURL) == "" {
		return ErrIncompleteMessage
	}

	name := strings.TrimSpace(message.CustomerName)
	if name == "" {
		name = "Cliente"
	}

	now := s.now()
	subject := fmt.Sprintf("Nota de Venta %s - Descarga disponible", message.Folio)
	htmlBody, err := renderHTML(name, message.Folio, message.Total, message.DownloadURL, now)
	if err != nil {
		return fmt.Errorf("render notification email: %w", err)
	}
	textBody := renderText(name, message.Folio, message.Total, message.DownloadURL, now)

	if err := s.email.Send(ctx, []string{message.CustomerEmail}, subject, htmlBody, textBody); err != nil {
		s.log.Error("email send failed",
			zap.String("folio", message.Folio),
			zap.Error(err),
		)
		return fmt.Errorf("send notification email: %w", err)
	}

	s.metrics.RecordEmailSent(ctx)
	s.log.Info("notification email sent",
		zap.String("folio", message.Folio),
		zap.String("recipient", message.CustomerEmail),
	)
	return nil
}

func classifyFailure(err error) string {
	switch {
	case errors.Is(err, ErrIncompleteMessage):
		return "incomplete_message"
	default:
		return "send_error"
	}
}
