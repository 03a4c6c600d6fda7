package report

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"billbook/internal/domain"
)

// RegisterRow is one invoice in the sales register.
type RegisterRow struct {
	InvoiceID     uuid.UUID            `json:"invoice_id"`
	InvoiceNumber string               `json:"invoice_number"`
	InvoiceDate   time.Time            `json:"invoice_date"`
	CustomerName  string               `json:"customer_name"`
	CustomerGSTIN string               `json:"customer_gstin"`
	CustomerState string               `json:"customer_state"`
	InvoiceType   domain.InvoiceType   `json:"invoice_type"`
	TaxableAmount decimal.Decimal      `json:"taxable_amount"`
	CGST          decimal.Decimal      `json:"cgst"`
	SGST          decimal.Decimal      `json:"sgst"`
	IGST          decimal.Decimal      `json:"igst"`
	GrandTotal    decimal.Decimal      `json:"grand_total"`
	AmountPaid    decimal.Decimal      `json:"amount_paid"`
	AmountDue     decimal.Decimal      `json:"amount_due"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
}

// RegisterTotals sums the register. InvoiceCount counts invoices.
type RegisterTotals struct {
	InvoiceCount  int             `json:"invoice_count"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	IGST          decimal.Decimal `json:"igst"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	AmountDue     decimal.Decimal `json:"amount_due"`
}

// SalesRegister lists invoices in a range, oldest first.
type SalesRegister struct {
	Range  Range          `json:"range"`
	Rows   []RegisterRow  `json:"rows"`
	Totals RegisterTotals `json:"totals"`
}

// BuildSalesRegister produces one row per invoice in r, ordered by invoice
// date and then invoice number.
func BuildSalesRegister(r Range, invoices []domain.Invoice) *SalesRegister {
	rows := make([]RegisterRow, 0, len(invoices))
	var totals RegisterTotals

	for i := range invoices {
		inv := &invoices[i]
		if !r.Contains(inv.InvoiceDate) {
			continue
		}
		row := RegisterRow{
			InvoiceID:     inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			InvoiceDate:   inv.InvoiceDate,
			CustomerName:  inv.CustomerName,
			CustomerGSTIN: inv.CustomerGSTIN,
			CustomerState: inv.CustomerState,
			InvoiceType:   inv.InvoiceType,
			TaxableAmount: inv.TaxableAmount(),
			CGST:          inv.TotalCGST,
			SGST:          inv.TotalSGST,
			IGST:          inv.TotalIGST,
			GrandTotal:    inv.GrandTotal,
			AmountPaid:    inv.AmountPaid,
			AmountDue:     inv.AmountDue,
			PaymentStatus: inv.PaymentStatus,
		}
		rows = append(rows, row)

		totals.InvoiceCount++
		totals.TaxableAmount = totals.TaxableAmount.Add(row.TaxableAmount)
		totals.CGST = totals.CGST.Add(row.CGST)
		totals.SGST = totals.SGST.Add(row.SGST)
		totals.IGST = totals.IGST.Add(row.IGST)
		totals.GrandTotal = totals.GrandTotal.Add(row.GrandTotal)
		totals.AmountPaid = totals.AmountPaid.Add(row.AmountPaid)
		totals.AmountDue = totals.AmountDue.Add(row.AmountDue)
	}

	slices.SortStableFunc(rows, func(a, b RegisterRow) int {
		if c := a.InvoiceDate.Compare(b.InvoiceDate); c != 0 {
			return c
		}
		return strings.Compare(a.InvoiceNumber, b.InvoiceNumber)
	})

	return &SalesRegister{Range: r, Rows: rows, Totals: totals}
}
