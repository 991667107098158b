package pdf

import "context"

// Provider renders a note document to PDF bytes.
type Provider interface {
	GenerateNote(ctx context.Context, doc NoteDocument) ([]byte, error)
}

type NoOpProvider struct{}

func (p *NoOpProvider) GenerateNote(ctx context.Context, doc NoteDocument) ([]byte, error) {
	return nil, nil
}
