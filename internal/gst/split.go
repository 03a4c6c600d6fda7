package gst

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// TaxSplit is the tax on one taxable amount.
// Either CGST and SGST are set (intrastate) or IGST is (interstate).
type TaxSplit struct {
	CGST decimal.Decimal
	SGST decimal.Decimal
	IGST decimal.Decimal
}

// Total returns CGST + SGST + IGST.
func (t TaxSplit) Total() decimal.Decimal {
	return t.CGST.Add(t.SGST).Add(t.IGST)
}

// Split computes the tax on taxable at rate percent. Identical business and
// customer states (exact, case-sensitive) make the supply intrastate and the
// tax is halved into CGST and SGST; otherwise it is charged as IGST.
//
// No rounding is applied. taxable and rate are expected to be non-negative;
// callers validate that before splitting.
func Split(taxable, rate decimal.Decimal, businessState, customerState string) TaxSplit {
	tax := taxable.Mul(rate).Div(hundred)
	if IsIntrastate(businessState, customerState) {
		half := tax.Div(two)
		return TaxSplit{CGST: half, SGST: half, IGST: decimal.Zero}
	}
	return TaxSplit{CGST: decimal.Zero, SGST: decimal.Zero, IGST: tax}
}

// IsIntrastate reports whether a supply between the two states is intrastate.
func IsIntrastate(businessState, customerState string) bool {
	return businessState == customerState
}
