package service_test

import (
	"github.com/shopspring/decimal"

	"billbook/internal/billing"
	"billbook/internal/config"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func nd(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(d(s))
}

func draftItem(qty, rate, gstRate string) billing.DraftItem {
	return billing.DraftItem{
		ProductName: "Widget",
		HSNCode:     "8471",
		Unit:        "pcs",
		Quantity:    nd(qty),
		Rate:        nd(rate),
		GSTRate:     nd(gstRate),
	}
}

func invoiceConfig() config.InvoiceConfig {
	return config.InvoiceConfig{
		MaxIssueAttempts: 3,
		DefaultPrefix:    "INV",
		DefaultTemplate:  "classic",
	}
}
