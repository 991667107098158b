package domain

import "context"

type Service interface {
	// Create runs the full note workflow: validate references, compute line
	// amounts, persist, render the PDF, store it and publish a notification.
	Create(ctx context.Context, req CreateNoteRequest) (EnrichedNote, error)
	List(ctx context.Context) ([]Note, error)
	GetByID(ctx context.Context, id string) (EnrichedNote, error)
	// DownloadPDF fetches the stored document and flips its downloaded flag.
	DownloadPDF(ctx context.Context, id string) (PDFDownload, error)
	// Resend bumps the artifact's send count and republishes the notification.
	Resend(ctx context.Context, id string) error
}
