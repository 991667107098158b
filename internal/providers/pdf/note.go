package pdf

import (
	"context"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateNote(ctx context.Context, note NoteDocument) ([]byte, error) {
	_ = ctx

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(15,
		text.NewCol(12, note.Title, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)

	// Note meta
	m.AddRow(15,
		col.New(12).Add(
			text.New("Folio: "+note.Folio, props.Text{Top: 0}),
			text.New("Fecha: "+note.CreatedAt, props.Text{Top: 5}),
		),
	)

	// Customer block
	m.AddRow(10,
		text.NewCol(12, "DATOS DEL CLIENTE", props.Text{
			Size:  12,
			Style: fontstyle.Bold,
		}),
	)
	m.AddRow(30,
		col.New(12).Add(
			text.New("Razon Social: "+note.LegalName, props.Text{Top: 0}),
			text.New("Nombre Comercial: "+note.TradeName, props.Text{Top: 5}),
			text.New("RFC: "+note.TaxID, props.Text{Top: 10}),
			text.New("Correo: "+note.Email, props.Text{Top: 15}),
			text.New("Telefono: "+note.Phone, props.Text{Top: 20}),
		),
	)

	// Line-item table
	m.AddRow(10,
		text.NewCol(12, "DETALLE DE LA NOTA", props.Text{
			Size:  12,
			Style: fontstyle.Bold,
		}),
	)
	m.AddRow(10,
		text.NewCol(2, "Cantidad", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(6, "Producto", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Precio Unitario", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Importe", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, row := range note.Rows {
		m.AddRow(8,
			text.NewCol(2, row.Quantity, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(6, row.Product, props.Text{Size: 9}),
			text.NewCol(2, row.UnitPrice, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, row.Amount, props.Text{Size: 9, Align: align.Right}),
		)
	}

	// Total row
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "TOTAL:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, note.Total, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return doc.GetBytes(), nil
}
