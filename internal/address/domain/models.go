package domain

import (
	"errors"
	"time"
)

// Kind tags an address as the billing or the shipping location.
type Kind string

const (
	KindBilling  Kind = "BILLING"
	KindShipping Kind = "SHIPPING"
)

func (k Kind) Valid() bool {
	return k == KindBilling || k == KindShipping
}

// Address belongs to exactly one customer and is deleted with it.
type Address struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customer_id"`
	Street       string    `json:"street"`
	Neighborhood string    `json:"neighborhood"`
	Municipality string    `json:"municipality"`
	State        string    `json:"state"`
	Kind         Kind      `json:"kind"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

var (
	ErrNotFound            = errors.New("address_not_found")
	ErrInvalidStreet       = errors.New("invalid_street")
	ErrInvalidNeighborhood = errors.New("invalid_neighborhood")
	ErrInvalidMunicipality = errors.New("invalid_municipality")
	ErrInvalidState        = errors.New("invalid_state")
	ErrInvalidKind         = errors.New("invalid_kind")
)

type CreateAddressRequest struct {
	CustomerID   string
	Street       string
	Neighborhood string
	Municipality string
	State        string
	Kind         Kind
}

// UpdateAddressRequest carries partial updates; nil fields are untouched.
type UpdateAddressRequest struct {
	Street       *string
	Neighborhood *string
	Municipality *string
	State        *string
	Kind         *Kind
}
