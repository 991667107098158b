package repository

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/notaventa/internal/kvstore"
	"github.com/smallbiznis/notaventa/internal/salesnote/domain"
)

type repo struct {
	store kvstore.Store
}

func Provide(store kvstore.Store) domain.Repository {
	return &repo{store: store}
}

func (r *repo) InsertNote(ctx context.Context, note *domain.Note) error {
	return r.store.Put(ctx, kvstore.CollectionNotes, encodeNote(note))
}

func (r *repo) FindNoteByID(ctx context.Context, id string) (*domain.Note, error) {
	rec, err := r.store.Get(ctx, kvstore.CollectionNotes, id)
	if err == kvstore.ErrNotFound {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeNote(rec), nil
}

func (r *repo) ListNotes(ctx context.Context) ([]domain.Note, error) {
	recs, err := r.store.Scan(ctx, kvstore.CollectionNotes, nil)
	if err != nil {
		return nil, err
	}

	notes := make([]domain.Note, 0, len(recs))
	for _, rec := range recs {
		notes = append(notes, *decodeNote(rec))
	}
	return notes, nil
}

func (r *repo) InsertLine(ctx context.Context, line *domain.NoteLine) error {
	return r.store.Put(ctx, kvstore.CollectionNoteLines, encodeLine(line))
}

func (r *repo) LinesByNote(ctx context.Context, noteID string) ([]domain.NoteLine, error) {
	recs, err := r.store.Scan(ctx, kvstore.CollectionNoteLines, func(rec kvstore.Record) bool {
		return rec["note_id"] == noteID
	})
	if err != nil {
		return nil, err
	}

	lines := make([]domain.NoteLine, 0, len(recs))
	for _, rec := range recs {
		lines = append(lines, *decodeLine(rec))
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Position < lines[j].Position })
	return lines, nil
}

func encodeNote(n *domain.Note) kvstore.Record {
	return kvstore.Record{
		"id":                  n.ID,
		"folio":               n.Folio,
		"customer_id":         n.CustomerID,
		"billing_address_id":  n.BillingAddressID,
		"shipping_address_id": n.ShippingAddressID,
		"total":               n.Total.String(),
		"created_at":          n.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func decodeNote(rec kvstore.Record) *domain.Note {
	total, _ := decimal.NewFromString(rec["total"])
	createdAt, _ := time.Parse(time.RFC3339Nano, rec["created_at"])
	return &domain.Note{
		ID:                rec["id"],
		Folio:             rec["folio"],
		CustomerID:        rec["customer_id"],
		BillingAddressID:  rec["billing_address_id"],
		ShippingAddressID: rec["shipping_address_id"],
		Total:             total,
		CreatedAt:         createdAt,
	}
}

func encodeLine(l *domain.NoteLine) kvstore.Record {
	return kvstore.Record{
		"id":           l.ID,
		"note_id":      l.NoteID,
		"product_id":   l.ProductID,
		"product_name": l.ProductName,
		"position":     strconv.Itoa(l.Position),
		"quantity":     strconv.FormatInt(l.Quantity, 10),
		"unit_price":   l.UnitPrice.String(),
		"amount":       l.Amount.String(),
	}
}

func decodeLine(rec kvstore.Record) *domain.NoteLine {
	position, _ := strconv.Atoi(rec["position"])
	quantity, _ := strconv.ParseInt(rec["quantity"], 10, 64)
	unitPrice, _ := decimal.NewFromString(rec["unit_price"])
	amount, _ := decimal.NewFromString(rec["amount"])
	return &domain.NoteLine{
		ID:          rec["id"],
		NoteID:      rec["note_id"],
		ProductID:   rec["product_id"],
		ProductName: rec["product_name"],
		Position:    position,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      amount,
	}
}
