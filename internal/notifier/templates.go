package notifier

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/notaventa/internal/money"
)

// mailData is what the templates render. Total arrives pre-formatted so the
// templates stay free of number handling.
type mailData struct {
	CustomerName string
	Folio        string
	Total        string
	Date         string
	DownloadURL  string
	Year         int
}

var htmlTemplate = template.Must(template.New("order_created").Parse(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #2c3e50; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border: 1px solid #ddd; }
		.info-box { background-color: #fff; padding: 15px; border-left: 4px solid #3498db; margin: 20px 0; }
		.button { display: inline-block; background-color: #27ae60; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; margin: 20px 0; }
		.footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
		.total { font-size: 24px; color: #27ae60; font-weight: bold; }
	</style>
</head>
<body>
	<div class="header">
		<h1>Nota de Venta Generada</h1>
	</div>
	<div class="content">
		<p>Estimado/a <strong>{{.CustomerName}}</strong>,</p>
		<p>Le informamos que se ha generado una nueva nota de venta a su nombre.</p>
		<div class="info-box">
			<p><strong>Folio:</strong> {{.Folio}}</p>
			<p><strong>Total:</strong> <span class="total">{{.Total}} MXN</span></p>
			<p><strong>Fecha:</strong> {{.Date}} UTC</p>
		</div>
		<p>Puede descargar su nota de venta en formato PDF haciendo clic en el siguiente enlace:</p>
		<center>
			<a href="{{.DownloadURL}}" class="button">Descargar Nota de Venta</a>
		</center>
		<p><small>Si el bot&oacute;n no funciona, copie y pegue el siguiente enlace en su navegador:</small></p>
		<p><small><a href="{{.DownloadURL}}">{{.DownloadURL}}</a></small></p>
	</div>
	<div class="footer">
		<p>Este es un correo autom&aacute;tico, por favor no responda a este mensaje.</p>
		<p>&copy; {{.Year}} Sistema de Notas de Venta</p>
	</div>
</body>
</html>
`))

func renderHTML(customerName, folio string, total float64, downloadURL string, now time.Time) (string, error) {
	var buf bytes.Buffer
	err := htmlTemplate.Execute(&buf, mailData{
		CustomerName: customerName,
		Folio:        folio,
		Total:        money.FormatCurrency(decimal.NewFromFloat(total)),
		Date:         now.UTC().Format("02/01/2006 15:04:05"),
		DownloadURL:  downloadURL,
		Year:         now.UTC().Year(),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderText(customerName, folio string, total float64, downloadURL string, now time.Time) string {
	return fmt.Sprintf(`NOTA DE VENTA GENERADA
======================

Estimado/a %s,

Le informamos que se ha generado una nueva nota de venta a su nombre.

Detalles:
- Folio: %s
- Total: %s MXN
- Fecha: %s UTC

Para descargar su nota de venta en formato PDF, visite:
%s

Este es un correo automatico, por favor no responda a este mensaje.
`,
		customerName,
		folio,
		money.FormatCurrency(decimal.NewFromFloat(total)),
		now.UTC().Format("02/01/2006 15:04:05"),
		downloadURL,
	)
}
