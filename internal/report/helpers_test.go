package report_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"billbook/internal/billing"
	"billbook/internal/domain"
	"billbook/internal/gst"
	"billbook/internal/report"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(s string) time.Time {
	t, err := time.Parse(report.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t.Add(10 * time.Hour)
}

type line struct {
	qty, rate, gstRate string
}

// invoice builds a settled invoice the way the invoice service does.
func invoice(t *testing.T, number, date, gstin, bState, cState string, lines ...line) domain.Invoice {
	t.Helper()
	items := make([]billing.DraftItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, billing.DraftItem{
			ProductName: "Item",
			HSNCode:     "8471",
			Unit:        "pcs",
			Quantity:    decimal.NewNullDecimal(d(l.qty)),
			Rate:        decimal.NewNullDecimal(d(l.rate)),
			GSTRate:     decimal.NewNullDecimal(d(l.gstRate)),
		})
	}
	comp, err := billing.Build(items, bState, cState)
	require.NoError(t, err)

	inv := domain.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: number,
		InvoiceDate:   day(date),
		BusinessState: bState,
		CustomerName:  "Customer " + number,
		CustomerGSTIN: gstin,
		CustomerState: cState,
	}
	comp.ApplyTo(&inv)
	inv.InvoiceType = gst.Classify(gstin, bState, cState, inv.GrandTotal)
	return inv
}

func fullRange(t *testing.T) report.Range {
	t.Helper()
	r, err := report.ParseRange("2026-01-01", "2026-12-31")
	require.NoError(t, err)
	return r
}
