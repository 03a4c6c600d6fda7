package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"billbook/internal/report"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// registerColumns defines the sales register header row.
var registerColumns = []string{
	"Invoice Number",
	"Invoice Date",
	"Customer Name",
	"Customer GSTIN",
	"Place of Supply",
	"Invoice Type",
	"Taxable Amount",
	"CGST",
	"SGST",
	"IGST",
	"Grand Total",
	"Amount Paid",
	"Amount Due",
	"Payment Status",
}

// taxSummaryColumns defines the tax summary header row.
var taxSummaryColumns = []string{
	"GST Rate",
	"Taxable Amount",
	"CGST",
	"SGST",
	"IGST",
	"Total",
	"Line Items",
}

// Writer wraps csv.Writer for exporting reports as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteSalesRegister writes the header, one row per invoice and a totals row.
func (w *Writer) WriteSalesRegister(reg *report.SalesRegister) error {
	if err := w.csv.Write(registerColumns); err != nil {
		return err
	}
	for i := range reg.Rows {
		if err := w.csv.Write(registerRow(&reg.Rows[i])); err != nil {
			return err
		}
	}

	t := reg.Totals
	totals := make([]string, len(registerColumns))
	totals[0] = "Total"
	totals[1] = strconv.Itoa(t.InvoiceCount) + " invoices"
	totals[6] = formatMoney(t.TaxableAmount)
	totals[7] = formatMoney(t.CGST)
	totals[8] = formatMoney(t.SGST)
	totals[9] = formatMoney(t.IGST)
	totals[10] = formatMoney(t.GrandTotal)
	totals[11] = formatMoney(t.AmountPaid)
	totals[12] = formatMoney(t.AmountDue)
	return w.csv.Write(totals)
}

// WriteTaxSummary writes the header, one row per rate and a totals row.
func (w *Writer) WriteTaxSummary(s *report.TaxSummary) error {
	if err := w.csv.Write(taxSummaryColumns); err != nil {
		return err
	}
	for _, row := range s.Rows {
		if err := w.csv.Write(amountsRow(row.GSTRate.String()+"%", row.Amounts, row.Count)); err != nil {
			return err
		}
	}
	return w.csv.Write(amountsRow("Total", s.Total.Amounts, s.Total.Count))
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func registerRow(r *report.RegisterRow) []string {
	return []string{
		r.InvoiceNumber,
		r.InvoiceDate.Format("2006-01-02"),
		r.CustomerName,
		r.CustomerGSTIN,
		r.CustomerState,
		string(r.InvoiceType),
		formatMoney(r.TaxableAmount),
		formatMoney(r.CGST),
		formatMoney(r.SGST),
		formatMoney(r.IGST),
		formatMoney(r.GrandTotal),
		formatMoney(r.AmountPaid),
		formatMoney(r.AmountDue),
		string(r.PaymentStatus),
	}
}

func amountsRow(label string, a report.Amounts, count int) []string {
	return []string{
		label,
		formatMoney(a.TaxableAmount),
		formatMoney(a.CGST),
		formatMoney(a.SGST),
		formatMoney(a.IGST),
		formatMoney(a.TotalAmount),
		strconv.Itoa(count),
	}
}

func formatMoney(v decimal.Decimal) string {
	return v.StringFixed(2)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename replaces characters outside [A-Za-z0-9_-] with _,
// collapses runs of underscores and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {name}_{from}_{to}.csv for a report range.
func BuildFilename(name string, r report.Range) string {
	return fmt.Sprintf("%s_%s_%s.csv",
		SanitizeFilename(name), r.From.Format(report.DateLayout), r.To.Format(report.DateLayout))
}
