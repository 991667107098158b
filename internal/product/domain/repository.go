package domain

import "context"

type Repository interface {
	Insert(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, id string, changes map[string]string) (*Product, error)
	Delete(ctx context.Context, id string) error
}
