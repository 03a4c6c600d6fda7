// Package billing computes invoice line items and totals, validates invoice
// drafts, and keeps the payment fields of an invoice consistent.
package billing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"billbook/internal/domain"
	"billbook/internal/gst"
)

// DraftItem is a raw line item as submitted by a client.
// Quantity, Rate and GSTRate are nullable so that missing values can be told
// apart from explicit zeros.
type DraftItem struct {
	ProductName string              `json:"product_name"`
	Description string              `json:"description"`
	HSNCode     string              `json:"hsn_code"`
	Unit        string              `json:"unit"`
	Quantity    decimal.NullDecimal `json:"quantity"`
	Rate        decimal.NullDecimal `json:"rate"`
	Discount    decimal.Decimal     `json:"discount"`
	GSTRate     decimal.NullDecimal `json:"gst_rate"`
}

// Draft is the party and item data an invoice is built from.
type Draft struct {
	CustomerName  string
	CustomerGSTIN string
	Items         []DraftItem
}

// Validate checks the structural shape of a draft. It returns nil or a
// domain.ValidationErrors listing every offending field.
func Validate(d *Draft) error {
	var errs domain.ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, domain.FieldError{Field: field, Message: msg})
	}

	if strings.TrimSpace(d.CustomerName) == "" {
		add("customer.name", "customer name is required")
	}
	if g := strings.TrimSpace(d.CustomerGSTIN); g != "" && !gst.ValidGSTIN(g) {
		add("customer.gstin", "GSTIN format is invalid")
	}
	if len(d.Items) == 0 {
		add("items", "at least one item is required")
	}

	for i := range d.Items {
		item := &d.Items[i]
		fp := func(name string) string { return fmt.Sprintf("items[%d].%s", i, name) }

		if strings.TrimSpace(item.ProductName) == "" {
			add(fp("product_name"), "product name is required")
		}
		switch hsn := strings.TrimSpace(item.HSNCode); {
		case hsn == "":
			add(fp("hsn_code"), "HSN/SAC code is required")
		case !gst.ValidHSN(hsn):
			add(fp("hsn_code"), "HSN/SAC code must be 4 to 8 digits")
		}
		if !item.Quantity.Valid {
			add(fp("quantity"), "quantity is required")
		} else if item.Quantity.Decimal.IsNegative() {
			add(fp("quantity"), "quantity must not be negative")
		} else if !fitsPlaces(item.Quantity.Decimal, QuantityPlaces) {
			add(fp("quantity"), "quantity must have at most 3 decimal places")
		}
		if !item.Rate.Valid {
			add(fp("rate"), "rate is required")
		} else if item.Rate.Decimal.IsNegative() {
			add(fp("rate"), "rate must not be negative")
		} else if !fitsPlaces(item.Rate.Decimal, MoneyPlaces) {
			add(fp("rate"), "rate must have at most 2 decimal places")
		}
		if !item.GSTRate.Valid {
			add(fp("gst_rate"), "GST rate is required")
		} else if !gst.IsStandardRate(item.GSTRate.Decimal) {
			add(fp("gst_rate"), "GST rate must be one of 0, 5, 12, 18, 28")
		}
		if item.Discount.IsNegative() {
			add(fp("discount"), "discount must not be negative")
		} else if !fitsPlaces(item.Discount, MoneyPlaces) {
			add(fp("discount"), "discount must have at most 2 decimal places")
		} else if grossKnown(item) && item.Discount.GreaterThan(item.Quantity.Decimal.Mul(item.Rate.Decimal)) {
			add(fp("discount"), "discount must not exceed quantity x rate")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func grossKnown(item *DraftItem) bool {
	return item.Quantity.Valid && item.Rate.Valid &&
		!item.Quantity.Decimal.IsNegative() && !item.Rate.Decimal.IsNegative()
}
