package report

import "billbook/internal/domain"

// TaxSummary breaks down tax collected in a range by GST rate.
type TaxSummary struct {
	Range Range     `json:"range"`
	Rows  []RateRow `json:"rows"`
	Total Total     `json:"total"`
}

// BuildTaxSummary groups every line item in r by rate, ascending. Row and
// total counts are line items.
func BuildTaxSummary(r Range, invoices []domain.Invoice) *TaxSummary {
	buckets := rateBuckets{}
	for i := range invoices {
		inv := &invoices[i]
		if !r.Contains(inv.InvoiceDate) {
			continue
		}
		for j := range inv.Items {
			buckets.add(&inv.Items[j])
		}
	}
	rows := buckets.rows()
	return &TaxSummary{Range: r, Rows: rows, Total: totalOf(rows)}
}
