package domain

import "context"

type Repository interface {
	Insert(ctx context.Context, address *Address) error
	FindByID(ctx context.Context, id string) (*Address, error)
	// ListByCustomer scans the collection; there is no index on customer id.
	ListByCustomer(ctx context.Context, customerID string) ([]Address, error)
	Update(ctx context.Context, id string, changes map[string]string) (*Address, error)
	Delete(ctx context.Context, id string) error
}
