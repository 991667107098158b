package pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	customerdomain "github.com/smallbiznis/notaventa/internal/customer/domain"
	salesnotedomain "github.com/smallbiznis/notaventa/internal/salesnote/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildNoteDocument_FormatsContent(t *testing.T) {
	note := salesnotedomain.Note{
		Folio:     "NV-20260315120000-ABCD",
		Total:     decimal.RequireFromString("1250.50"),
		CreatedAt: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
	}
	customer := customerdomain.Customer{
		LegalName: "Comercial del Norte SA de CV",
		TradeName: "Comercial del Norte",
		TaxID:     "CNO120315AB1",
		Email:     "compras@norte.example",
		Phone:     "5512345678",
	}
	lines := []salesnotedomain.NoteLine{
		{ProductName: "Tornillo 1/4", Quantity: 100, UnitPrice: decimal.RequireFromString("2.505"), Amount: decimal.RequireFromString("250.50")},
		{ProductName: "Martillo", Quantity: 2, UnitPrice: decimal.NewFromInt(500), Amount: decimal.NewFromInt(1000)},
	}

	doc := BuildNoteDocument(note, customer, lines)

	assert.Equal(t, "NOTA DE VENTA", doc.Title)
	assert.Equal(t, "NV-20260315120000-ABCD", doc.Folio)
	assert.Equal(t, "2026-03-15T12:00:00Z", doc.CreatedAt)
	assert.Equal(t, "Comercial del Norte SA de CV", doc.LegalName)
	assert.Equal(t, "CNO120315AB1", doc.TaxID)
	assert.Equal(t, "$1,250.50", doc.Total)

	require.Len(t, doc.Rows, 2)
	assert.Equal(t, NoteRow{Quantity: "100", Product: "Tornillo 1/4", UnitPrice: "$2.51", Amount: "$250.50"}, doc.Rows[0])
	assert.Equal(t, NoteRow{Quantity: "2", Product: "Martillo", UnitPrice: "$500.00", Amount: "$1,000.00"}, doc.Rows[1])
}

func TestBuildNoteDocument_PlaceholdersForMissingFields(t *testing.T) {
	doc := BuildNoteDocument(salesnotedomain.Note{}, customerdomain.Customer{}, nil)

	assert.Equal(t, Placeholder, doc.LegalName)
	assert.Equal(t, Placeholder, doc.TradeName)
	assert.Equal(t, Placeholder, doc.TaxID)
	assert.Equal(t, Placeholder, doc.Email)
	assert.Equal(t, Placeholder, doc.Phone)
	assert.Empty(t, doc.Rows)
	assert.Equal(t, "$0.00", doc.Total)
}

func TestBuildNoteDocument_FallbackProductName(t *testing.T) {
	lines := []salesnotedomain.NoteLine{
		{ProductName: "   ", Quantity: 1, UnitPrice: decimal.NewFromInt(10), Amount: decimal.NewFromInt(10)},
	}

	doc := BuildNoteDocument(salesnotedomain.Note{}, customerdomain.Customer{}, lines)

	require.Len(t, doc.Rows, 1)
	assert.Equal(t, "Producto", doc.Rows[0].Product)
}
