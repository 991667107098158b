package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/smallbiznis/notaventa/internal/pubsub"
	"github.com/smallbiznis/notaventa/internal/salesnote/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type capturingEmailProvider struct {
	to       []string
	subject  string
	htmlBody string
	textBody string
	calls    int
	err      error
}

func (p *capturingEmailProvider) Send(ctx context.Context, to []string, subject, htmlBody, textBody string) error {
	p.calls++
	if p.err != nil {
		return p.err
	}
	p.to = to
	p.subject = subject
	p.htmlBody = htmlBody
	p.textBody = textBody
	return nil
}

func newTestNotifier(t *testing.T) (*Service, *capturingEmailProvider) {
	t.Helper()
	provider := &capturingEmailProvider{}
	svc := NewService(zap.NewNop(), provider, nil)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc, provider
}

func orderCreatedEnvelope(t *testing.T, message domain.OrderCreatedMessage) pubsub.Envelope {
	t.Helper()
	payload, err := json.Marshal(message)
	require.NoError(t, err)
	return pubsub.Envelope{Subject: "Nueva Nota de Venta - " + message.Folio, Message: payload}
}

func validMessage() domain.OrderCreatedMessage {
	return domain.OrderCreatedMessage{
		Type:          domain.MessageTypeOrderCreated,
		CustomerEmail: "compras@norte.example",
		CustomerName:  "Comercial del Norte SA de CV",
		Folio:         "NV-20260315120000-ABCD",
		TaxID:         "CNO120315AB1",
		Total:         1250.5,
		DownloadURL:   "http://localhost:8080/orders/n-1/pdf",
	}
}

func TestHandle_SendsEmail(t *testing.T) {
	svc, provider := newTestNotifier(t)

	err := svc.Handle(context.Background(), orderCreatedEnvelope(t, validMessage()))
	require.NoError(t, err)

	assert.Equal(t, []string{"compras@norte.example"}, provider.to)
	assert.Equal(t, "Nota de Venta NV-20260315120000-ABCD - Descarga disponible", provider.subject)

	assert.Contains(t, provider.htmlBody, "Comercial del Norte SA de CV")
	assert.Contains(t, provider.htmlBody, "NV-20260315120000-ABCD")
	assert.Contains(t, provider.htmlBody, "$1,250.50 MXN")
	assert.Contains(t, provider.htmlBody, "http://localhost:8080/orders/n-1/pdf")

	assert.Contains(t, provider.textBody, "NOTA DE VENTA GENERADA")
	assert.Contains(t, provider.textBody, "Folio: NV-20260315120000-ABCD")
	assert.Contains(t, provider.textBody, "$1,250.50 MXN")
	assert.Contains(t, provider.textBody, "15/03/2026 12:00:00 UTC")
}

func TestHandle_DefaultsCustomerName(t *testing.T) {
	svc, provider := newTestNotifier(t)

	message := validMessage()
	message.CustomerName = "  "
	require.NoError(t, svc.Handle(context.Background(), orderCreatedEnvelope(t, message)))

	assert.Contains(t, provider.textBody, "Estimado/a Cliente,")
}

func TestHandle_SkipsUnknownMessageTypes(t *testing.T) {
	svc, provider := newTestNotifier(t)

	message := validMessage()
	message.Type = "SOMETHING_ELSE"
	err := svc.Handle(context.Background(), orderCreatedEnvelope(t, message))

	require.NoError(t, err)
	assert.Zero(t, provider.calls)
}

func TestHandle_RejectsIncompleteMessages(t *testing.T) {
	svc, provider := newTestNotifier(t)
	ctx := context.Background()

	for _, mutate := range []func(*domain.OrderCreatedMessage){
		func(m *domain.OrderCreatedMessage) { m.CustomerEmail = "" },
		func(m *domain.OrderCreatedMessage) { m.Folio = "  " },
		func(m *domain.OrderCreatedMessage) { m.DownloadURL = "" },
	} {
		message := validMessage()
		mutate(&message)
		err := svc.Handle(ctx, orderCreatedEnvelope(t, message))
		assert.ErrorIs(t, err, ErrIncompleteMessage)
	}
	assert.Zero(t, provider.calls)
}

func TestHandle_MalformedPayload(t *testing.T) {
	svc, _ := newTestNotifier(t)

	err := svc.Handle(context.Background(), pubsub.Envelope{Message: json.RawMessage(`{`)})
	assert.Error(t, err)
}

func TestHandle_SendFailurePropagates(t *testing.T) {
	svc, provider := newTestNotifier(t)
	provider.err = errors.New("smtp refused")

	err := svc.Handle(context.Background(), orderCreatedEnvelope(t, validMessage()))
	assert.Error(t, err)
}
