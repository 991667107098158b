package kvstore

import (
	"context"
	"errors"
)

// Collection names used across the services.
const (
	CollectionCustomers = "customers"
	CollectionAddresses = "addresses"
	CollectionProducts  = "products"
	CollectionNotes     = "sales_notes"
	CollectionNoteLines = "sales_note_lines"
)

// ErrNotFound is returned when a record id does not exist in a collection.
var ErrNotFound = errors.New("record not found")

// Record is a flat attribute map persisted to one collection. Every record
// carries its key under the "id" attribute.
type Record map[string]string

// ID returns the record key.
func (r Record) ID() string {
	return r["id"]
}

// Clone returns a shallow copy so callers can mutate safely.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Store is a key-value record store scoped by named collections. Scan is a
// linear filter; there are no secondary indexes.
type Store interface {
	Get(ctx context.Context, collection, id string) (Record, error)
	Put(ctx context.Context, collection string, rec Record) error
	Update(ctx context.Context, collection, id string, changes map[string]string) (Record, error)
	Delete(ctx context.Context, collection, id string) error
	Scan(ctx context.Context, collection string, pred func(Record) bool) ([]Record, error)
}
