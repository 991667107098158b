package repository

import (
	"context"
	"time"

	"github.com/smallbiznis/notaventa/internal/address/domain"
	"github.com/smallbiznis/notaventa/internal/kvstore"
)

type repo struct {
	store kvstore.Store
}

func Provide(store kvstore.Store) domain.Repository {
	return &repo{store: store}
}

func (r *repo) Insert(ctx context.Context, address *domain.Address) error {
	return r.store.Put(ctx, kvstore.CollectionAddresses, encode(address))
}

func (r *repo) FindByID(ctx context.Context, id string) (*domain.Address, error) {
	rec, err := r.store.Get(ctx, kvstore.CollectionAddresses, id)
	if err == kvstore.ErrNotFound {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decode(rec), nil
}

func (r *repo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Address, error) {
	recs, err := r.store.Scan(ctx, kvstore.CollectionAddresses, func(rec kvstore.Record) bool {
		return rec["customer_id"] == customerID
	})
	if err != nil {
		return nil, err
	}

	addresses := make([]domain.Address, 0, len(recs))
	for _, rec := range recs {
		addresses = append(addresses, *decode(rec))
	}
	return addresses, nil
}

func (r *repo) Update(ctx context.Context, id string, changes map[string]string) (*domain.Address, error) {
	rec, err := r.store.Update(ctx, kvstore.CollectionAddresses, id, changes)
	if err == kvstore.ErrNotFound {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decode(rec), nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, kvstore.CollectionAddresses, id)
}

func encode(a *domain.Address) kvstore.Record {
	return kvstore.Record{
		"id":           a.ID,
		"customer_id":  a.CustomerID,
		"street":       a.Street,
		"neighborhood": a.Neighborhood,
		"municipality": a.Municipality,
		"state":        a.State,
		"kind":         string(a.Kind),
		"created_at":   a.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at":   a.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func decode(rec kvstore.Record) *domain.Address {
	createdAt, _ := time.Parse(time.RFC3339Nano, rec["created_at"])
	updatedAt, _ := time.Parse(time.RFC3339Nano, rec["updated_at"])
	return &domain.Address{
		ID:           rec["id"],
		CustomerID:   rec["customer_id"],
		Street:       rec["street"],
		Neighborhood: rec["neighborhood"],
		Municipality: rec["municipality"],
		State:        rec["state"],
		Kind:         domain.Kind(rec["kind"]),
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}
