package billing

import (
	"strings"

	"github.com/shopspring/decimal"

	"billbook/internal/domain"
	"billbook/internal/gst"
)

// MoneyPlaces is the number of decimal places amounts are persisted with.
const MoneyPlaces = 2

// QuantityPlaces is the number of decimal places quantities are persisted with.
const QuantityPlaces = 3

// fitsPlaces reports whether v survives storage at the given scale unchanged.
func fitsPlaces(v decimal.Decimal, places int32) bool {
	return v.Equal(v.Truncate(places))
}

// Computation is the result of aggregating a draft's line items.
type Computation struct {
	Items         []domain.InvoiceItem
	Subtotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	TotalCGST     decimal.Decimal
	TotalSGST     decimal.Decimal
	TotalIGST     decimal.Decimal
	GrandTotal    decimal.Decimal
}

// Build computes per-item taxable amounts and tax splits and rolls them up to
// invoice totals. Items must already have passed Validate.
//
// Every amount is accumulated exactly and rounded to MoneyPlaces only once, on
// output. Totals are therefore the rounded exact sums, and the sum of the
// rounded item amounts can differ from a rounded total by a cent.
func Build(items []DraftItem, businessState, customerState string) (*Computation, error) {
	if len(items) == 0 {
		return nil, domain.ValidationErrors{{Field: "items", Message: "at least one item is required"}}
	}

	var subtotal, discount, cgst, sgst, igst decimal.Decimal
	out := make([]domain.InvoiceItem, 0, len(items))

	for i := range items {
		in := &items[i]
		gross := in.Quantity.Decimal.Mul(in.Rate.Decimal)
		taxable := gross.Sub(in.Discount)
		tax := gst.Split(taxable, in.GSTRate.Decimal, businessState, customerState)

		subtotal = subtotal.Add(gross)
		discount = discount.Add(in.Discount)
		cgst = cgst.Add(tax.CGST)
		sgst = sgst.Add(tax.SGST)
		igst = igst.Add(tax.IGST)

		out = append(out, domain.InvoiceItem{
			Position:      i + 1,
			ProductName:   strings.TrimSpace(in.ProductName),
			Description:   in.Description,
			HSNCode:       strings.TrimSpace(in.HSNCode),
			Unit:          in.Unit,
			Quantity:      in.Quantity.Decimal,
			Rate:          in.Rate.Decimal,
			Discount:      in.Discount,
			GSTRate:       in.GSTRate.Decimal,
			TaxableAmount: round(taxable),
			CGST:          round(tax.CGST),
			SGST:          round(tax.SGST),
			IGST:          round(tax.IGST),
			TotalAmount:   round(taxable.Add(tax.Total())),
		})
	}

	grand := subtotal.Sub(discount).Add(cgst).Add(sgst).Add(igst)
	return &Computation{
		Items:         out,
		Subtotal:      round(subtotal),
		TotalDiscount: round(discount),
		TotalCGST:     round(cgst),
		TotalSGST:     round(sgst),
		TotalIGST:     round(igst),
		GrandTotal:    round(grand),
	}, nil
}

// ApplyTo copies the computed items and totals onto inv and settles its
// payment fields against the new grand total.
func (c *Computation) ApplyTo(inv *domain.Invoice) {
	inv.Items = c.Items
	inv.Subtotal = c.Subtotal
	inv.TotalDiscount = c.TotalDiscount
	inv.TotalCGST = c.TotalCGST
	inv.TotalSGST = c.TotalSGST
	inv.TotalIGST = c.TotalIGST
	inv.GrandTotal = c.GrandTotal
	Settle(inv)
}

func round(v decimal.Decimal) decimal.Decimal {
	return v.Round(MoneyPlaces)
}
