package domain

import (
	"errors"
	"time"
)

// Customer is a catalog customer. TaxID is unique across all customers.
type Customer struct {
	ID        string    `json:"id"`
	LegalName string    `json:"legal_name"`
	TradeName string    `json:"trade_name"`
	TaxID     string    `json:"tax_id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrNotFound         = errors.New("customer_not_found")
	ErrTaxIDTaken       = errors.New("tax_id_taken")
	ErrInvalidLegalName = errors.New("invalid_legal_name")
	ErrInvalidTradeName = errors.New("invalid_trade_name")
	ErrInvalidTaxID     = errors.New("invalid_tax_id")
	ErrInvalidEmail     = errors.New("invalid_email")
	ErrInvalidPhone     = errors.New("invalid_phone")
)

type CreateCustomerRequest struct {
	LegalName string
	TradeName string
	TaxID     string
	Email     string
	Phone     string
}

// UpdateCustomerRequest carries partial updates; nil fields are untouched.
type UpdateCustomerRequest struct {
	LegalName *string
	TradeName *string
	TaxID     *string
	Email     *string
	Phone     *string
}
