package billing_test

import (
	"github.com/shopspring/decimal"

	"billbook/internal/billing"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func nd(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(d(s))
}

// item returns a valid draft line: qty x rate at gstRate with no discount.
func item(qty, rate, gstRate string) billing.DraftItem {
	return billing.DraftItem{
		ProductName: "Widget",
		HSNCode:     "8471",
		Unit:        "pcs",
		Quantity:    nd(qty),
		Rate:        nd(rate),
		GSTRate:     nd(gstRate),
	}
}
