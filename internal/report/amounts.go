package report

import (
	"slices"

	"github.com/shopspring/decimal"

	"billbook/internal/domain"
)

// Amounts is the tax breakdown carried by every aggregate row.
type Amounts struct {
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	IGST          decimal.Decimal `json:"igst"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

func (a *Amounts) addItem(it *domain.InvoiceItem) {
	a.TaxableAmount = a.TaxableAmount.Add(it.TaxableAmount)
	a.CGST = a.CGST.Add(it.CGST)
	a.SGST = a.SGST.Add(it.SGST)
	a.IGST = a.IGST.Add(it.IGST)
	a.TotalAmount = a.TotalAmount.Add(it.TotalAmount)
}

func (a *Amounts) add(o Amounts) {
	a.TaxableAmount = a.TaxableAmount.Add(o.TaxableAmount)
	a.CGST = a.CGST.Add(o.CGST)
	a.SGST = a.SGST.Add(o.SGST)
	a.IGST = a.IGST.Add(o.IGST)
	a.TotalAmount = a.TotalAmount.Add(o.TotalAmount)
}

// RateRow aggregates line items sharing one GST rate. Count is the number of
// contributing line items.
type RateRow struct {
	GSTRate decimal.Decimal `json:"gst_rate"`
	Amounts
	Count int `json:"count"`
}

// Total sums a set of rate rows. Count is the number of line items.
type Total struct {
	Amounts
	Count int `json:"count"`
}

// rateBuckets groups line items by rate.
type rateBuckets map[string]*RateRow

func (b rateBuckets) add(it *domain.InvoiceItem) {
	key := it.GSTRate.String()
	row, ok := b[key]
	if !ok {
		row = &RateRow{GSTRate: it.GSTRate}
		b[key] = row
	}
	row.addItem(it)
	row.Count++
}

// rows returns the buckets ascending by rate.
func (b rateBuckets) rows() []RateRow {
	out := make([]RateRow, 0, len(b))
	for _, row := range b {
		out = append(out, *row)
	}
	slices.SortFunc(out, func(x, y RateRow) int { return x.GSTRate.Cmp(y.GSTRate) })
	return out
}

func totalOf(rows []RateRow) Total {
	var t Total
	for i := range rows {
		t.add(rows[i].Amounts)
		t.Count += rows[i].Count
	}
	return t
}
