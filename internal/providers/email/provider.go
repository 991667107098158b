package email

import "context"

// Provider delivers one message to its recipients. Both an HTML body and a
// plain-text alternative are sent so clients without HTML rendering still get
// the content.
type Provider interface {
	Send(ctx context.Context, to []string, subject, htmlBody, textBody string) error
}

type NoOpProvider struct{}

func (p *NoOpProvider) Send(ctx context.Context, to []string, subject, htmlBody, textBody string) error {
	return nil
}
