package server

import (
	"time"

	addressdomain "github.com/smallbiznis/notaventa/internal/address/domain"
	customerdomain "github.com/smallbiznis/notaventa/internal/customer/domain"
	productdomain "github.com/smallbiznis/notaventa/internal/product/domain"
	salesnotedomain "github.com/smallbiznis/notaventa/internal/salesnote/domain"
)

// Monetary values are exact decimals inside the services; they become plain
// JSON numbers only here, at the response boundary.

type productResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	UnitOfMeasure string    `json:"unit_of_measure"`
	BasePrice     float64   `json:"base_price"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toProductResponse(p productdomain.Product) productResponse {
	basePrice, _ := p.BasePrice.Float64()
	return productResponse{
		ID:            p.ID,
		Name:          p.Name,
		UnitOfMeasure: p.UnitOfMeasure,
		BasePrice:     basePrice,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toProductResponses(products []productdomain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

type noteLineResponse struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int64   `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
}

func toNoteLineResponses(lines []salesnotedomain.NoteLine) []noteLineResponse {
	out := make([]noteLineResponse, 0, len(lines))
	for _, line := range lines {
		unitPrice, _ := line.UnitPrice.Float64()
		amount, _ := line.Amount.Float64()
		out = append(out, noteLineResponse{
			ID:          line.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   unitPrice,
			Amount:      amount,
		})
	}
	return out
}

type noteResponse struct {
	ID                string    `json:"id"`
	Folio             string    `json:"folio"`
	CustomerID        string    `json:"customer_id"`
	BillingAddressID  string    `json:"billing_address_id"`
	ShippingAddressID string    `json:"shipping_address_id"`
	Total             float64   `json:"total"`
	CreatedAt         time.Time `json:"created_at"`
}

func toNoteResponse(n salesnotedomain.Note) noteResponse {
	total, _ := n.Total.Float64()
	return noteResponse{
		ID:                n.ID,
		Folio:             n.Folio,
		CustomerID:        n.CustomerID,
		BillingAddressID:  n.BillingAddressID,
		ShippingAddressID: n.ShippingAddressID,
		Total:             total,
		CreatedAt:         n.CreatedAt,
	}
}

func toNoteResponses(notes []salesnotedomain.Note) []noteResponse {
	out := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteResponse(n))
	}
	return out
}

type enrichedNoteResponse struct {
	noteResponse
	Customer        *customerdomain.Customer `json:"customer"`
	BillingAddress  *addressdomain.Address   `json:"billing_address"`
	ShippingAddress *addressdomain.Address   `json:"shipping_address"`
	Lines           []noteLineResponse       `json:"lines"`
	PDFURL          string                   `json:"pdf_url"`
}

func toEnrichedNoteResponse(n salesnotedomain.EnrichedNote) enrichedNoteResponse {
	return enrichedNoteResponse{
		noteResponse:    toNoteResponse(n.Note),
		Customer:        n.Customer,
		BillingAddress:  n.BillingAddress,
		ShippingAddress: n.ShippingAddress,
		Lines:           toNoteLineResponses(n.Lines),
		PDFURL:          n.PDFURL,
	}
}
