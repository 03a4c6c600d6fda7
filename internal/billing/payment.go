package billing

import (
	"github.com/shopspring/decimal"

	"billbook/internal/domain"
)

// StatusFor derives the payment status from the amount paid and the grand total.
func StatusFor(amountPaid, grandTotal decimal.Decimal) domain.PaymentStatus {
	switch {
	case amountPaid.IsZero():
		return domain.PaymentStatusUnpaid
	case amountPaid.GreaterThanOrEqual(grandTotal):
		return domain.PaymentStatusPaid
	default:
		return domain.PaymentStatusPartial
	}
}

// Settle recomputes AmountDue and PaymentStatus from GrandTotal and AmountPaid.
// It must run after every change to either of them.
func Settle(inv *domain.Invoice) {
	inv.AmountDue = inv.GrandTotal.Sub(inv.AmountPaid)
	inv.PaymentStatus = StatusFor(inv.AmountPaid, inv.GrandTotal)
}

// EnsureEditable rejects changes to an invoice that has been fully paid.
func EnsureEditable(inv *domain.Invoice) error {
	if inv.PaymentStatus == domain.PaymentStatusPaid {
		return domain.ErrInvoiceLocked
	}
	return nil
}

// CheckPaymentAmount rejects amounts that are not positive or that carry
// more precision than a stored amount can hold.
func CheckPaymentAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidPaymentAmount
	}
	if !fitsPlaces(amount, MoneyPlaces) {
		return domain.ErrPaymentPrecision
	}
	return nil
}

// ApplyPayment records amount against inv. The amount must be positive and
// may not exceed what is still due, so AmountPaid never passes GrandTotal.
func ApplyPayment(inv *domain.Invoice, amount decimal.Decimal) error {
	if err := EnsureEditable(inv); err != nil {
		return err
	}
	if err := CheckPaymentAmount(amount); err != nil {
		return err
	}
	if amount.GreaterThan(inv.GrandTotal.Sub(inv.AmountPaid)) {
		return domain.ErrPaymentExceedsDue
	}
	inv.AmountPaid = inv.AmountPaid.Add(amount)
	Settle(inv)
	return nil
}
