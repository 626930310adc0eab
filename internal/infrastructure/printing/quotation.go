package printing

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/kioskcrm/backend/internal/domain/workflow"
	"github.com/shopspring/decimal"
)

//go:embed templates/quotation.html
var templateFS embed.FS

// DefaultTaxRate is the consumption tax applied to quotations.
var DefaultTaxRate = decimal.NewFromFloat(0.10)

// QuotationValidity is how long a quotation stays valid after issue.
const QuotationValidity = 30 * 24 * time.Hour

// QuotationLine is one priced row of a quotation.
type QuotationLine struct {
	ItemName  string
	Quantity  int
	UnitPrice decimal.Decimal
	Amount    decimal.Decimal
}

// QuotationData is everything the quotation template renders.
type QuotationData struct {
	OrderNumber     string
	CustomerName    string
	CustomerAddress string
	IssuerName      string
	IssuedAt        time.Time
	ValidUntil      time.Time
	Lines           []QuotationLine
	Subtotal        decimal.Decimal
	Tax             decimal.Decimal
	Total           decimal.Decimal
	TaxRatePercent  string
	Notes           string
}

// NewQuotationData builds the quotation for an order. Tax is rounded down
// to the yen.
func NewQuotationData(order *workflow.Order, customerName, customerAddress, issuer string, issuedAt time.Time) QuotationData {
	subtotal := order.TotalAmount
	tax := subtotal.Mul(DefaultTaxRate).Floor()
	return QuotationData{
		OrderNumber:     order.OrderNumber,
		CustomerName:    customerName,
		CustomerAddress: customerAddress,
		IssuerName:      issuer,
		IssuedAt:        issuedAt,
		ValidUntil:      issuedAt.Add(QuotationValidity),
		Lines: []QuotationLine{{
			ItemName:  order.ItemName,
			Quantity:  order.Quantity,
			UnitPrice: order.UnitPrice,
			Amount:    order.TotalAmount,
		}},
		Subtotal:       subtotal,
		Tax:            tax,
		Total:          subtotal.Add(tax),
		TaxRatePercent: DefaultTaxRate.Mul(decimal.NewFromInt(100)).String(),
		Notes:          order.Notes,
	}
}

var quotationTemplate = template.Must(
	template.New("quotation.html").
		Funcs(template.FuncMap{"yen": FormatYen}).
		ParseFS(templateFS, "templates/quotation.html"),
)

// RenderQuotationHTML executes the quotation template.
func RenderQuotationHTML(data QuotationData) (string, error) {
	var buf bytes.Buffer
	if err := quotationTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render quotation template: %w", err)
	}
	return buf.String(), nil
}

// FormatYen formats an amount as "¥1,234,567", rounding to whole yen.
func FormatYen(d decimal.Decimal) string {
	s := d.Round(0).String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-¥" + b.String()
	}
	return "¥" + b.String()
}

// QuotationPrinter turns quotation data into a PDF.
type QuotationPrinter struct {
	renderer PDFRenderer
}

// NewQuotationPrinter creates a printer on top of renderer.
func NewQuotationPrinter(renderer PDFRenderer) *QuotationPrinter {
	return &QuotationPrinter{renderer: renderer}
}

// Print renders data as an A4 portrait PDF.
func (p *QuotationPrinter) Print(ctx context.Context, data QuotationData) ([]byte, error) {
	html, err := RenderQuotationHTML(data)
	if err != nil {
		return nil, err
	}
	result, err := p.renderer.Render(ctx, &RenderRequest{
		HTML:    html,
		Title:   "Quotation " + data.OrderNumber,
		Margins: DefaultMargins,
	})
	if err != nil {
		return nil, err
	}
	return result.PDFData, nil
}
