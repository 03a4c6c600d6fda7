package gst

import (
	"strings"

	"github.com/shopspring/decimal"

	"billbook/internal/domain"
)

// B2CLThreshold is the invoice value above which an unregistered interstate
// supply is reported as B2C Large.
var B2CLThreshold = decimal.NewFromInt(250000)

// Classify assigns the GSTR-1 bucket for an invoice.
//
// A customer GSTIN makes the invoice B2B regardless of states or amount.
// Without one, an interstate invoice strictly above B2CLThreshold is B2CL and
// everything else is B2CS.
func Classify(gstin, businessState, customerState string, amount decimal.Decimal) domain.InvoiceType {
	if strings.TrimSpace(gstin) != "" {
		return domain.InvoiceTypeB2B
	}
	if !IsIntrastate(businessState, customerState) && amount.GreaterThan(B2CLThreshold) {
		return domain.InvoiceTypeB2CL
	}
	return domain.InvoiceTypeB2CS
}
