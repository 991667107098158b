package domain

import "context"

type Repository interface {
	Insert(ctx context.Context, customer *Customer) error
	FindByID(ctx context.Context, id string) (*Customer, error)
	// FindByTaxID scans the collection; there is no index on tax id.
	FindByTaxID(ctx context.Context, taxID string) (*Customer, error)
	List(ctx context.Context) ([]Customer, error)
	Update(ctx context.Context, id string, changes map[string]string) (*Customer, error)
	Delete(ctx context.Context, id string) error
}
