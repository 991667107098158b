package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable catalog item. BasePrice is the current list price;
// sale lines snapshot their own unit price and never point back here.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	BasePrice     decimal.Decimal `json:"base_price"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

var (
	ErrNotFound             = errors.New("product_not_found")
	ErrInvalidName          = errors.New("invalid_name")
	ErrInvalidUnitOfMeasure = errors.New("invalid_unit_of_measure")
	ErrInvalidBasePrice     = errors.New("invalid_base_price")
)

type CreateProductRequest struct {
	Name          string
	UnitOfMeasure string
	BasePrice     decimal.Decimal
}

// UpdateProductRequest carries partial updates; nil fields are untouched.
type UpdateProductRequest struct {
	Name          *string
	UnitOfMeasure *string
	BasePrice     *decimal.Decimal
}
