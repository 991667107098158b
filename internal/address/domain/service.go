package domain

import "context"

type Service interface {
	Create(ctx context.Context, req CreateAddressRequest) (Address, error)
	ListByCustomer(ctx context.Context, customerID string) ([]Address, error)
	GetByID(ctx context.Context, id string) (Address, error)
	Update(ctx context.Context, id string, req UpdateAddressRequest) (Address, error)
	Delete(ctx context.Context, id string) error
}
