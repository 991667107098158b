package domain

import "context"

type Repository interface {
	InsertNote(ctx context.Context, note *Note) error
	FindNoteByID(ctx context.Context, id string) (*Note, error)
	ListNotes(ctx context.Context) ([]Note, error)
	InsertLine(ctx context.Context, line *NoteLine) error
	// LinesByNote scans the line collection; there is no index on note id.
	LinesByNote(ctx context.Context, noteID string) ([]NoteLine, error)
}
