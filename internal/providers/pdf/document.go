package pdf

import (
	"strconv"
	"strings"
	"time"

	customerdomain "github.com/smallbiznis/notaventa/internal/customer/domain"
	"github.com/smallbiznis/notaventa/internal/money"
	salesnotedomain "github.com/smallbiznis/notaventa/internal/salesnote/domain"
)

// Placeholder substitutes absent customer fields on the printed note.
const Placeholder = "N/A"

// NoteDocument is the fully formatted content of a note PDF. Building it is
// pure and deterministic, so the text that must appear on the document can be
// asserted without parsing PDF output.
type NoteDocument struct {
	Title     string
	Folio     string
	CreatedAt string

	LegalName string
	TradeName string
	TaxID     string
	Email     string
	Phone     string

	Rows  []NoteRow
	Total string
}

// NoteRow is one formatted line-item table row.
type NoteRow struct {
	Quantity  string
	Product   string
	UnitPrice string
	Amount    string
}

// BuildNoteDocument formats a note, its customer and its resolved lines into
// the document content, in line order.
func BuildNoteDocument(note salesnotedomain.Note, customer customerdomain.Customer, lines []salesnotedomain.NoteLine) NoteDocument {
	doc := NoteDocument{
		Title:     "NOTA DE VENTA",
		Folio:     note.Folio,
		CreatedAt: note.CreatedAt.UTC().Format(time.RFC3339),
		LegalName: orPlaceholder(customer.LegalName),
		TradeName: orPlaceholder(customer.TradeName),
		TaxID:     orPlaceholder(customer.TaxID),
		Email:     orPlaceholder(customer.Email),
		Phone:     orPlaceholder(customer.Phone),
		Total:     money.FormatCurrency(note.Total),
	}

	doc.Rows = make([]NoteRow, 0, len(lines))
	for _, line := range lines {
		product := line.ProductName
		if strings.TrimSpace(product) == "" {
			product = "Producto"
		}
		doc.Rows = append(doc.Rows, NoteRow{
			Quantity:  strconv.FormatInt(line.Quantity, 10),
			Product:   product,
			UnitPrice: money.FormatCurrency(line.UnitPrice),
			Amount:    money.FormatCurrency(line.Amount),
		})
	}

	return doc
}

func orPlaceholder(value string) string {
	if strings.TrimSpace(value) == "" {
		return Placeholder
	}
	return value
}
