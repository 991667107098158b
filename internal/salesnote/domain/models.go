package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	addressdomain "github.com/smallbiznis/notaventa/internal/address/domain"
	customerdomain "github.com/smallbiznis/notaventa/internal/customer/domain"
)

// Note is an immutable sales note header. There is no update or delete
// operation once a note is created.
type Note struct {
	ID                string
	Folio             string
	CustomerID        string
	BillingAddressID  string
	ShippingAddressID string
	Total             decimal.Decimal
	CreatedAt         time.Time
}

// NoteLine is one product line within a note. UnitPrice is the price quoted
// at the time of sale, a snapshot independent of the product's base price.
type NoteLine struct {
	ID          string
	NoteID      string
	ProductID   string
	ProductName string
	// Position is the zero-based request order of the line; reads sort on it
	// because the store scan has no ordering of its own.
	Position  int
	Quantity  int64
	UnitPrice decimal.Decimal
	Amount    decimal.Decimal
}

// EnrichedNote is a note joined with the entities it references, as returned
// by the HTTP surface.
type EnrichedNote struct {
	Note
	Customer        *customerdomain.Customer
	BillingAddress  *addressdomain.Address
	ShippingAddress *addressdomain.Address
	Lines           []NoteLine
	PDFURL          string
}

// PDFDownload carries the stored document for one note.
type PDFDownload struct {
	Folio   string
	Content []byte
}

var (
	ErrNotFound         = errors.New("note_not_found")
	ErrArtifactNotFound = errors.New("artifact_not_found")
	ErrEmptyLines       = errors.New("invalid_lines")
	ErrInvalidQuantity  = errors.New("invalid_quantity")
	ErrInvalidUnitPrice = errors.New("invalid_unit_price")
)

type CreateNoteLineRequest struct {
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
}

type CreateNoteRequest struct {
	CustomerID        string
	BillingAddressID  string
	ShippingAddressID string
	Lines             []CreateNoteLineRequest
}

// NewFolio builds a human-readable note reference: NV-<utc timestamp>-<4
// uppercase alphanumerics>. Uniqueness relies on the timestamp plus random
// suffix; there is no uniqueness check against the store.
func NewFolio(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:4])
	return fmt.Sprintf("NV-%s-%s", now.UTC().Format("20060102150405"), suffix)
}

// MessageTypeOrderCreated tags notification messages for created notes.
const MessageTypeOrderCreated = "ORDER_CREATED"

// OrderCreatedMessage is the notification payload published when a note is
// created or resent. Total is converted to floating point here, at the wire
// boundary.
type OrderCreatedMessage struct {
	Type          string  `json:"type"`
	CustomerEmail string  `json:"customer_email"`
	CustomerName  string  `json:"customer_name"`
	Folio         string  `json:"folio"`
	TaxID         string  `json:"tax_id"`
	Total         float64 `json:"total"`
	DownloadURL   string  `json:"download_url"`
	Timestamp     string  `json:"timestamp"`
}
