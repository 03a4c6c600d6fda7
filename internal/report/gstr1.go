package report

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"billbook/internal/domain"
)

// B2BRow is one GST rate of one invoice to a registered recipient.
type B2BRow struct {
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	CustomerGSTIN string          `json:"customer_gstin"`
	CustomerName  string          `json:"customer_name"`
	PlaceOfSupply string          `json:"place_of_supply"`
	InvoiceValue  decimal.Decimal `json:"invoice_value"`
	GSTRate       decimal.Decimal `json:"gst_rate"`
	Amounts
}

// GSTR1 is the three-bucket outward supplies return.
//
// B2B keeps recipient detail: one row per invoice and rate. B2CS and B2CL are
// aggregated per rate across every qualifying invoice and count line items.
type GSTR1 struct {
	Range           Range     `json:"range"`
	B2B             []B2BRow  `json:"b2b"`
	B2BInvoiceCount int       `json:"b2b_invoice_count"`
	B2CS            []RateRow `json:"b2cs"`
	B2CL            []RateRow `json:"b2cl"`
	Total           Amounts   `json:"total"`
}

// BuildGSTR1 partitions the invoices in r by their persisted type.
func BuildGSTR1(r Range, invoices []domain.Invoice) *GSTR1 {
	out := &GSTR1{Range: r, B2B: []B2BRow{}}
	b2cs, b2cl := rateBuckets{}, rateBuckets{}

	for i := range invoices {
		inv := &invoices[i]
		if !r.Contains(inv.InvoiceDate) {
			continue
		}
		switch inv.InvoiceType {
		case domain.InvoiceTypeB2B:
			out.B2B = append(out.B2B, b2bRows(inv)...)
			out.B2BInvoiceCount++
		case domain.InvoiceTypeB2CL:
			for j := range inv.Items {
				b2cl.add(&inv.Items[j])
			}
		default:
			for j := range inv.Items {
				b2cs.add(&inv.Items[j])
			}
		}
	}

	slices.SortStableFunc(out.B2B, func(a, b B2BRow) int {
		if c := a.InvoiceDate.Compare(b.InvoiceDate); c != 0 {
			return c
		}
		if c := strings.Compare(a.InvoiceNumber, b.InvoiceNumber); c != 0 {
			return c
		}
		return a.GSTRate.Cmp(b.GSTRate)
	})
	out.B2CS = b2cs.rows()
	out.B2CL = b2cl.rows()

	for i := range out.B2B {
		out.Total.add(out.B2B[i].Amounts)
	}
	out.Total.add(totalOf(out.B2CS).Amounts)
	out.Total.add(totalOf(out.B2CL).Amounts)
	return out
}

func b2bRows(inv *domain.Invoice) []B2BRow {
	buckets := rateBuckets{}
	for j := range inv.Items {
		buckets.add(&inv.Items[j])
	}
	rates := buckets.rows()
	rows := make([]B2BRow, 0, len(rates))
	for _, rr := range rates {
		rows = append(rows, B2BRow{
			InvoiceID:     inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			InvoiceDate:   inv.InvoiceDate,
			CustomerGSTIN: inv.CustomerGSTIN,
			CustomerName:  inv.CustomerName,
			PlaceOfSupply: inv.CustomerState,
			InvoiceValue:  inv.GrandTotal,
			GSTRate:       rr.GSTRate,
			Amounts:       rr.Amounts,
		})
	}
	return rows
}
