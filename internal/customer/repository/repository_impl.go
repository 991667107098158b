package repository

import (
	"context"
	"time"

	"github.com/smallbiznis/notaventa/internal/customer/domain"
	"github.com/smallbiznis/notaventa/internal/kvstore"
)

type repo struct {
	store kvstore.Store
}

func Provide(store kvstore.Store) domain.Repository {
	return &repo{store: store}
}

func (r *repo) Insert(ctx context.Context, customer *domain.Customer) error {
	return r.store.Put(ctx, kvstore.CollectionCustomers, encode(customer))
}

func (r *repo) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	rec, err := r.store.Get(ctx, kvstore.CollectionCustomers, id)
	if err == kvstore.ErrNotFound {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decode(rec), nil
}

func (r *repo) FindByTaxID(ctx context.Context, taxID string) (*domain.Customer, error) {
	recs, err := r.store.Scan(ctx, kvstore.CollectionCustomers, func(rec kvstore.Record) bool {
		return rec["tax_id"] == taxID
	})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, domain.ErrNotFound
	}
	return decode(recs[0]), nil
}

func (r *repo) List(ctx context.Context) ([]domain.Customer, error) {
	recs, err := r.store.Scan(ctx, kvstore.CollectionCustomers, nil)
	if err != nil {
		return nil, err
	}

	customers := make([]domain.Customer, 0, len(recs))
	for _, rec := range recs {
		customers = append(customers, *decode(rec))
	}
	return customers, nil
}

func (r *repo) Update(ctx context.Context, id string, changes map[string]string) (*domain.Customer, error) {
	rec, err := r.store.Update(ctx, kvstore.CollectionCustomers, id, changes)
	if err == kvstore.ErrNotFound {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decode(rec), nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, kvstore.CollectionCustomers, id)
}

func encode(c *domain.Customer) kvstore.Record {
	return kvstore.Record{
		"id":         c.ID,
		"legal_name": c.LegalName,
		"trade_name": c.TradeName,
		"tax_id":     c.TaxID,
		"email":      c.Email,
		"phone":      c.Phone,
		"created_at": c.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at": c.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func decode(rec kvstore.Record) *domain.Customer {
	createdAt, _ := time.Parse(time.RFC3339Nano, rec["created_at"])
	updatedAt, _ := time.Parse(time.RFC3339Nano, rec["updated_at"])
	return &domain.Customer{
		ID:        rec["id"],
		LegalName: rec["legal_name"],
		TradeName: rec["trade_name"],
		TaxID:     rec["tax_id"],
		Email:     rec["email"],
		Phone:     rec["phone"],
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}
