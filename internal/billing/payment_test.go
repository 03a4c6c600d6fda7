package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billbook/internal/billing"
	"billbook/internal/domain"
)

func TestStatusFor(t *testing.T) {
	total := d("1180")
	assert.Equal(t, domain.PaymentStatusUnpaid, billing.StatusFor(d("0"), total))
	assert.Equal(t, domain.PaymentStatusPartial, billing.StatusFor(d("0.01"), total))
	assert.Equal(t, domain.PaymentStatusPartial, billing.StatusFor(d("1179.99"), total))
	assert.Equal(t, domain.PaymentStatusPaid, billing.StatusFor(d("1180"), total))
	assert.Equal(t, domain.PaymentStatusPaid, billing.StatusFor(d("1200"), total))
}

func newInvoice(total string) *domain.Invoice {
	inv := &domain.Invoice{GrandTotal: d(total)}
	billing.Settle(inv)
	return inv
}

func TestApplyPayment_SequenceKeepsDueConsistent(t *testing.T) {
	inv := newInvoice("1180")
	assert.Equal(t, domain.PaymentStatusUnpaid, inv.PaymentStatus)

	for _, amt := range []string{"100", "80", "1000"} {
		require.NoError(t, billing.ApplyPayment(inv, d(amt)))
		assert.True(t, inv.AmountDue.Equal(inv.GrandTotal.Sub(inv.AmountPaid)))
	}
	assert.Equal(t, "1180", inv.AmountPaid.String())
	assert.True(t, inv.AmountDue.IsZero())
	assert.Equal(t, domain.PaymentStatusPaid, inv.PaymentStatus)
}

func TestApplyPayment_Partial(t *testing.T) {
	inv := newInvoice("1180")
	require.NoError(t, billing.ApplyPayment(inv, d("500")))
	assert.Equal(t, domain.PaymentStatusPartial, inv.PaymentStatus)
	assert.Equal(t, "680", inv.AmountDue.String())
}

func TestApplyPayment_RejectsExcess(t *testing.T) {
	inv := newInvoice("1180")
	require.NoError(t, billing.ApplyPayment(inv, d("1000")))

	err := billing.ApplyPayment(inv, d("180.01"))
	assert.ErrorIs(t, err, domain.ErrPaymentExceedsDue)
	assert.Equal(t, "1000", inv.AmountPaid.String())
}

func TestApplyPayment_RejectsNonPositive(t *testing.T) {
	inv := newInvoice("1180")
	assert.ErrorIs(t, billing.ApplyPayment(inv, d("0")), domain.ErrInvalidPaymentAmount)
	assert.ErrorIs(t, billing.ApplyPayment(inv, d("-5")), domain.ErrInvalidPaymentAmount)
}

func TestApplyPayment_PaidInvoiceIsLocked(t *testing.T) {
	inv := newInvoice("100")
	require.NoError(t, billing.ApplyPayment(inv, d("100")))
	assert.ErrorIs(t, billing.ApplyPayment(inv, d("1")), domain.ErrInvoiceLocked)
	assert.ErrorIs(t, billing.EnsureEditable(inv), domain.ErrInvoiceLocked)
}

func TestApplyPayment_IgnoresStaleAmountDue(t *testing.T) {
	inv := &domain.Invoice{GrandTotal: d("500"), AmountPaid: d("200"), AmountDue: d("999")}
	billing.Settle(inv)
	assert.ErrorIs(t, billing.ApplyPayment(inv, d("300.01")), domain.ErrPaymentExceedsDue)
	require.NoError(t, billing.ApplyPayment(inv, d("300")))
	assert.Equal(t, domain.PaymentStatusPaid, inv.PaymentStatus)
}

// Stored amounts have two decimal places. A finer amount would be rounded on
// write and leave the status out of step with paid and grand total.
func TestApplyPayment_RejectsSubCentAmounts(t *testing.T) {
	inv := newInvoice("100")

	assert.ErrorIs(t, billing.ApplyPayment(inv, d("99.999")), domain.ErrPaymentPrecision)
	assert.ErrorIs(t, billing.ApplyPayment(inv, d("0.004")), domain.ErrPaymentPrecision)
	assert.True(t, inv.AmountPaid.IsZero())
	assert.Equal(t, domain.PaymentStatusUnpaid, inv.PaymentStatus)

	require.NoError(t, billing.ApplyPayment(inv, d("99.99")))
	require.NoError(t, billing.ApplyPayment(inv, d("0.010")))
	assert.True(t, inv.AmountDue.IsZero())
	assert.Equal(t, domain.PaymentStatusPaid, inv.PaymentStatus)
}

func TestCheckPaymentAmount(t *testing.T) {
	assert.NoError(t, billing.CheckPaymentAmount(d("0.01")))
	assert.NoError(t, billing.CheckPaymentAmount(d("1500.50")))
	assert.ErrorIs(t, billing.CheckPaymentAmount(d("0")), domain.ErrInvalidPaymentAmount)
	assert.ErrorIs(t, billing.CheckPaymentAmount(d("10.001")), domain.ErrPaymentPrecision)
}
