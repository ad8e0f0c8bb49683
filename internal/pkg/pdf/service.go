// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/order"
)

// Service renders order invoices as PDF
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// InvoiceData is the template input for one invoice
type InvoiceData struct {
	InvoiceNumber string
	InvoiceDate   string
	StoreName     string
	StoreEmail    string
	Currency      string
	Order         *order.Order
}

// GenerateInvoice renders a PDF invoice for an order
func (s *Service) GenerateInvoice(ord *order.Order) (*bytes.Buffer, error) {
	data := InvoiceData{
		InvoiceNumber: fmt.Sprintf("INV-%s", ord.OrderNumber),
		InvoiceDate:   time.Now().Format("January 2, 2006"),
		StoreName:     s.config.App.StoreName,
		StoreEmail:    s.config.App.StoreEmail,
		Currency:      ord.Currency,
		Order:         ord,
	}

	var html bytes.Buffer
	if err := invoiceTemplate.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to render invoice template: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(html.Bytes()))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfg.Buffer(), nil
}

var invoiceTemplate = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money": func(minor int64) string {
		return fmt.Sprintf("%.2f", float64(minor)/100)
	},
}).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><style>
body { font-family: sans-serif; color: #222; }
h1 { color: #C1121F; }
table { width: 100%; border-collapse: collapse; margin-top: 24px; }
th, td { text-align: left; padding: 8px; border-bottom: 1px solid #ddd; }
.total { font-weight: bold; }
</style></head>
<body>
<h1>{{.StoreName}}</h1>
<p>{{.StoreEmail}}</p>
<h2>Invoice {{.InvoiceNumber}}</h2>
<p>Date: {{.InvoiceDate}}<br>Order: {{.Order.OrderNumber}}</p>
<table>
<tr><th>Item</th><th>Qty</th><th>Unit price</th><th>Total</th></tr>
{{range .Order.Items}}
<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{$.Currency}} {{money .UnitPrice}}</td><td>{{$.Currency}} {{money .LineTotal}}</td></tr>
{{end}}
<tr class="total"><td colspan="3">Total</td><td>{{.Currency}} {{money .Order.Total}}</td></tr>
</table>
</body>
</html>`))
