package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no object exists under a key.
var ErrNotFound = errors.New("object not found")

// Metadata is the side-channel attribute map attached to an object.
type Metadata map[string]string

// Clone returns a shallow copy so callers can mutate safely.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ObjectStore is a flat byte store with per-object metadata. Metadata writes
// replace the whole attribute map, mirroring a copy-with-replaced-metadata
// call on a managed object store.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string, meta Metadata) error
	Get(ctx context.Context, key string) ([]byte, error)
	Head(ctx context.Context, key string) (Metadata, error)
	CopyWithMetadata(ctx context.Context, key string, meta Metadata) error
}
