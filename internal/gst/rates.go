// Package gst holds the Goods & Services Tax rules: the permitted rate table,
// the CGST/SGST/IGST split, invoice classification for GSTR-1, and the
// HSN master lookup.
package gst

import "github.com/shopspring/decimal"

// StandardRates are the GST slabs (in percent) accepted on a line item.
var StandardRates = []decimal.Decimal{
	decimal.NewFromInt(0),
	decimal.NewFromInt(5),
	decimal.NewFromInt(12),
	decimal.NewFromInt(18),
	decimal.NewFromInt(28),
}

// IsStandardRate reports whether rate is one of the permitted slabs.
func IsStandardRate(rate decimal.Decimal) bool {
	for _, r := range StandardRates {
		if r.Equal(rate) {
			return true
		}
	}
	return false
}
