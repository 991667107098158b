package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/notaventa/internal/kvstore"
	"github.com/smallbiznis/notaventa/internal/product/domain"
)

type repo struct {
	store kvstore.Store
}

func Provide(store kvstore.Store) domain.Repository {
	return &repo{store: store}
}

func (r *repo) Insert(ctx context.Context, product *domain.Product) error {
	return r.store.Put(ctx, kvstore.CollectionProducts, encode(product))
}

func (r *repo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	rec, err := r.store.Get(ctx, kvstore.CollectionProducts, id)
	if err == kvstore.ErrNotFound {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decode(rec), nil
}

func (r *repo) List(ctx context.Context) ([]domain.Product, error) {
	recs, err := r.store.Scan(ctx, kvstore.CollectionProducts, nil)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(recs))
	for _, rec := range recs {
		products = append(products, *decode(rec))
	}
	return products, nil
}

func (r *repo) Update(ctx context.Context, id string, changes map[string]string) (*domain.Product, error) {
	rec, err := r.store.Update(ctx, kvstore.CollectionProducts, id, changes)
	if err == kvstore.ErrNotFound {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decode(rec), nil
}

func (r *repo) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, kvstore.CollectionProducts, id)
}

func encode(p *domain.Product) kvstore.Record {
	return kvstore.Record{
		"id":              p.ID,
		"name":            p.Name,
		"unit_of_measure": p.UnitOfMeasure,
		"base_price":      p.BasePrice.String(),
		"created_at":      p.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at":      p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func decode(rec kvstore.Record) *domain.Product {
	basePrice, _ := decimal.NewFromString(rec["base_price"])
	createdAt, _ := time.Parse(time.RFC3339Nano, rec["created_at"])
	updatedAt, _ := time.Parse(time.RFC3339Nano, rec["updated_at"])
	return &domain.Product{
		ID:            rec["id"],
		Name:          rec["name"],
		UnitOfMeasure: rec["unit_of_measure"],
		BasePrice:     basePrice,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}
