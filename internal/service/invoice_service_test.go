package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billbook/internal/billing"
	"billbook/internal/domain"
	"billbook/internal/gst"
	"billbook/internal/port"
	"billbook/internal/service"
	"billbook/mocks"
)

type invoiceFixture struct {
	invoices  *mocks.MockInvoiceRepo
	business  *mocks.MockBusinessRepo
	customers *mocks.MockCustomerRepo
	email     *mocks.MockEmailSender
	svc       service.InvoiceService
	biz       *domain.Business
}

func newInvoiceFixture() *invoiceFixture {
	f := &invoiceFixture{
		invoices:  new(mocks.MockInvoiceRepo),
		business:  new(mocks.MockBusinessRepo),
		customers: new(mocks.MockCustomerRepo),
		email:     new(mocks.MockEmailSender),
		biz: &domain.Business{
			ID:              uuid.New(),
			Name:            "Sharma Traders",
			State:           "Delhi",
			InvoicePrefix:   "INV",
			DefaultTemplate: domain.TemplateModern,
		},
	}
	hsn := service.NewHSNService(gst.NewHSNLookup([]gst.HSNEntry{{Code: "8471", GSTRate: d("18")}}))
	f.svc = service.NewInvoiceService(f.invoices, f.business, f.customers, hsn, f.email, invoiceConfig(), "https://app.example.com/")
	f.business.On("GetByID", mock.Anything, f.biz.ID).Return(f.biz, nil)
	return f
}

// issueAs makes the repository assign number to the invoice it is given.
func issueAs(number string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		inv := args.Get(1).(*domain.Invoice)
		inv.ID = uuid.New()
		inv.InvoiceNumber = number
	}
}

func TestInvoiceService_Create_IntrastateInline(t *testing.T) {
	f := newInvoiceFixture()
	f.invoices.On("Issue", mock.Anything, mock.AnythingOfType("*domain.Invoice"), 3).
		Run(issueAs("INV-2026-0001")).Return(nil)

	inv, err := f.svc.Create(context.Background(), f.biz.ID, service.CreateInvoiceInput{
		Customer: &service.PartyDetails{Name: "Walk-in"},
		Items:    []billing.DraftItem{draftItem("2", "500", "18")},
	})

	require.NoError(t, err)
	assert.Equal(t, "INV-2026-0001", inv.InvoiceNumber)
	assert.Equal(t, "Delhi", inv.CustomerState)
	assert.True(t, inv.Subtotal.Equal(d("1000")))
	assert.True(t, inv.TotalCGST.Equal(d("90")))
	assert.True(t, inv.TotalSGST.Equal(d("90")))
	assert.True(t, inv.TotalIGST.IsZero())
	assert.True(t, inv.GrandTotal.Equal(d("1180")))
	assert.True(t, inv.AmountDue.Equal(d("1180")))
	assert.Equal(t, domain.PaymentStatusUnpaid, inv.PaymentStatus)
	assert.Equal(t, domain.InvoiceTypeB2CS, inv.InvoiceType)
	assert.Equal(t, domain.TemplateModern, inv.Template)
	f.email.AssertNotCalled(t, "SendInvoiceIssued", mock.Anything, mock.Anything)
}

func TestInvoiceService_Create_SavedCustomerIsB2B(t *testing.T) {
	f := newInvoiceFixture()
	customerID := uuid.New()
	f.customers.On("GetByID", mock.Anything, f.biz.ID, customerID).Return(&domain.Customer{
		ID: customerID, Name: "Acme", GSTIN: "06AAAAA0000A1Z5", State: "Haryana",
	}, nil)
	f.invoices.On("Issue", mock.Anything, mock.Anything, 3).Run(issueAs("INV-2026-0002")).Return(nil)

	inv, err := f.svc.Create(context.Background(), f.biz.ID, service.CreateInvoiceInput{
		CustomerID: &customerID,
		Items:      []billing.DraftItem{draftItem("2", "500", "18")},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceTypeB2B, inv.InvoiceType)
	assert.True(t, inv.TotalIGST.Equal(d("180")))
	assert.True(t, inv.TotalCGST.IsZero())
	assert.Equal(t, &customerID, inv.CustomerID)
	assert.Equal(t, "06AAAAA0000A1Z5", inv.CustomerGSTIN)
}

func TestInvoiceService_Create_LargeInterstateIsB2CL(t *testing.T) {
	f := newInvoiceFixture()
	f.invoices.On("Issue", mock.Anything, mock.Anything, 3).Run(issueAs("INV-2026-0003")).Return(nil)

	inv, err := f.svc.Create(context.Background(), f.biz.ID, service.CreateInvoiceInput{
		Customer: &service.PartyDetails{Name: "Big Buyer", State: "Punjab"},
		Items:    []billing.DraftItem{draftItem("1", "250000", "18")},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceTypeB2CL, inv.InvoiceType)
}

func TestInvoiceService_Create_ValidationError(t *testing.T) {
	f := newInvoiceFixture()

	_, err := f.svc.Create(context.Background(), f.biz.ID, service.CreateInvoiceInput{
		Customer: &service.PartyDetails{Name: ""},
	})

	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.GreaterOrEqual(t, len(verrs), 2)
	f.invoices.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_Create_InvalidTemplate(t *testing.T) {
	f := newInvoiceFixture()

	_, err := f.svc.Create(context.Background(), f.biz.ID, service.CreateInvoiceInput{
		Customer: &service.PartyDetails{Name: "Walk-in"},
		Items:    []billing.DraftItem{draftItem("1", "100", "5")},
		Template: "neon",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTemplate)
}

func TestInvoiceService_Create_DueDateBeforeInvoiceDate(t *testing.T) {
	f := newInvoiceFixture()
	due := time.Now().UTC().AddDate(0, 0, -3)

	_, err := f.svc.Create(context.Background(), f.biz.ID, service.CreateInvoiceInput{
		Customer: &service.PartyDetails{Name: "Walk-in"},
		Items:    []billing.DraftItem{draftItem("1", "100", "5")},
		DueDate:  &due,
	})

	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "due_date", verrs[0].Field)
}

func TestInvoiceService_Create_UnknownCustomer(t *testing.T) {
	f := newInvoiceFixture()
	customerID := uuid.New()
	f.customers.On("GetByID", mock.Anything, f.biz.ID, customerID).Return(nil, domain.ErrCustomerNotFound)

	_, err := f.svc.Create(context.Background(), f.biz.ID, service.CreateInvoiceInput{
		CustomerID: &customerID,
		Items:      []billing.DraftItem{draftItem("1", "100", "5")},
	})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestInvoiceService_Create_RetriesOnConflict(t *testing.T) {
	f := newInvoiceFixture()
	conflict := fmt.Errorf("invoiceRepo.Issue: %w", domain.ErrInvoiceNumberConflict)
	f.invoices.On("Issue", mock.Anything, mock.Anything, 3).Return(conflict).Once()
	f.invoices.On("Issue", mock.Anything, mock.Anything, 3).Return(domain.ErrCounterNotSaved).Once()
	f.invoices.On("Issue", mock.Anything, mock.Anything, 3).Run(issueAs("INV-2026-0007")).Return(nil).Once()

	inv, err := f.svc.Create(context.Background(), f.biz.ID, service.CreateInvoiceInput{
		Customer: &service.PartyDetails{Name: "Walk-in"},
		Items:    []billing.DraftItem{draftItem("1", "100", "5")},
	})

	require.NoError(t, err)
	assert.Equal(t, "INV-2026-0007", inv.InvoiceNumber)
	f.invoices.AssertNumberOfCalls(t, "Issue", 3)
}

func TestInvoiceService_Create_ExhaustsAttempts(t *testing.T) {
	f := newInvoiceFixture()
	f.invoices.On("Issue", mock.Anything, mock.Anything, 3).Return(domain.ErrInvoiceNumberConflict)

	inv, err := f.svc.Create(context.Background(), f.biz.ID, service.CreateInvoiceInput{
		Customer: &service.PartyDetails{Name: "Walk-in"},
		Items:    []billing.DraftItem{draftItem("1", "100", "5")},
	})

	assert.Nil(t, inv)
	assert.ErrorIs(t, err, domain.ErrNumberAllocationExhausted)
	f.invoices.AssertNumberOfCalls(t, "Issue", 3)
}

func TestInvoiceService_Create_NonRetryableError(t *testing.T) {
	f := newInvoiceFixture()
	boom := errors.New("connection reset")
	f.invoices.On("Issue", mock.Anything, mock.Anything, 3).Return(boom)

	_, err := f.svc.Create(context.Background(), f.biz.ID, service.CreateInvoiceInput{
		Customer: &service.PartyDetails{Name: "Walk-in"},
		Items:    []billing.DraftItem{draftItem("1", "100", "5")},
	})

	assert.ErrorIs(t, err, boom)
	f.invoices.AssertNumberOfCalls(t, "Issue", 1)
}

func TestInvoiceService_Create_SendsEmail(t *testing.T) {
	f := newInvoiceFixture()
	f.invoices.On("Issue", mock.Anything, mock.Anything, 3).Run(issueAs("INV-2026-0010")).Return(nil)

	var sent port.InvoiceNotice
	f.email.On("SendInvoiceIssued", mock.Anything, mock.AnythingOfType("port.InvoiceNotice")).
		Run(func(args mock.Arguments) { sent = args.Get(1).(port.InvoiceNotice) }).
		Return(nil)

	inv, err := f.svc.Create(context.Background(), f.biz.ID, service.CreateInvoiceInput{
		Customer: &service.PartyDetails{Name: "Walk-in", Email: " buyer@example.com "},
		Items:    []billing.DraftItem{draftItem("2", "500", "18")},
	})

	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", sent.ToEmail)
	assert.Equal(t, "Sharma Traders", sent.BusinessName)
	assert.Equal(t, "INV-2026-0010", sent.InvoiceNumber)
	assert.True(t, sent.GrandTotal.Equal(d("1180")))
	assert.Equal(t, "https://app.example.com/invoices/"+inv.ID.String(), sent.ViewURL)
}

func TestInvoiceService_Create_EmailFailureIsIgnored(t *testing.T) {
	f := newInvoiceFixture()
	f.invoices.On("Issue", mock.Anything, mock.Anything, 3).Run(issueAs("INV-2026-0011")).Return(nil)
	f.email.On("SendInvoiceIssued", mock.Anything, mock.Anything).Return(errors.New("ses throttled"))

	inv, err := f.svc.Create(context.Background(), f.biz.ID, service.CreateInvoiceInput{
		Customer: &service.PartyDetails{Name: "Walk-in", Email: "buyer@example.com"},
		Items:    []billing.DraftItem{draftItem("1", "100", "5")},
	})

	require.NoError(t, err)
	assert.Equal(t, "INV-2026-0011", inv.InvoiceNumber)
	f.email.AssertExpectations(t)
}

func TestInvoiceService_Update_Locked(t *testing.T) {
	f := newInvoiceFixture()
	invoiceID := uuid.New()
	f.invoices.On("GetByID", mock.Anything, f.biz.ID, invoiceID).Return(&domain.Invoice{
		ID: invoiceID, PaymentStatus: domain.PaymentStatusPaid,
	}, nil)

	notes := "late"
	_, err := f.svc.Update(context.Background(), f.biz.ID, invoiceID, service.UpdateInvoiceInput{Notes: &notes})

	assert.ErrorIs(t, err, domain.ErrInvoiceLocked)
	f.invoices.AssertNotCalled(t, "UpdateDetails", mock.Anything, mock.Anything)
}

func TestInvoiceService_Update_Notes(t *testing.T) {
	f := newInvoiceFixture()
	invoiceID := uuid.New()
	existing := &domain.Invoice{
		ID: invoiceID, InvoiceDate: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		PaymentStatus: domain.PaymentStatusPartial,
	}
	f.invoices.On("GetByID", mock.Anything, f.biz.ID, invoiceID).Return(existing, nil)
	f.invoices.On("UpdateDetails", mock.Anything, existing).Return(nil)

	notes := "deliver by Friday"
	due := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	inv, err := f.svc.Update(context.Background(), f.biz.ID, invoiceID, service.UpdateInvoiceInput{Notes: &notes, DueDate: &due})

	require.NoError(t, err)
	assert.Equal(t, "deliver by Friday", inv.Notes)
	assert.Equal(t, &due, inv.DueDate)
}

func TestInvoiceService_RecordPayment_InvalidMode(t *testing.T) {
	f := newInvoiceFixture()

	_, _, err := f.svc.RecordPayment(context.Background(), f.biz.ID, uuid.New(), service.RecordPaymentInput{
		Amount: d("100"), Mode: "barter",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentMode)
}

func TestInvoiceService_RecordPayment_NonPositiveAmount(t *testing.T) {
	f := newInvoiceFixture()

	_, _, err := f.svc.RecordPayment(context.Background(), f.biz.ID, uuid.New(), service.RecordPaymentInput{
		Amount: d("0"), Mode: domain.PaymentModeUPI,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentAmount)
	f.invoices.AssertNotCalled(t, "RecordPayment", mock.Anything, mock.Anything)
}

func TestInvoiceService_RecordPayment_SubCentAmount(t *testing.T) {
	f := newInvoiceFixture()

	_, _, err := f.svc.RecordPayment(context.Background(), f.biz.ID, uuid.New(), service.RecordPaymentInput{
		Amount: d("99.999"), Mode: domain.PaymentModeUPI,
	})
	assert.ErrorIs(t, err, domain.ErrPaymentPrecision)
	f.invoices.AssertNotCalled(t, "RecordPayment", mock.Anything, mock.Anything)
}

func TestInvoiceService_RecordPayment_Success(t *testing.T) {
	f := newInvoiceFixture()
	invoiceID := uuid.New()
	updated := &domain.Invoice{
		ID: invoiceID, InvoiceNumber: "INV-2026-0001",
		GrandTotal: d("1180"), AmountPaid: d("500"), AmountDue: d("680"),
		PaymentStatus: domain.PaymentStatusPartial,
	}
	f.invoices.On("RecordPayment", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.InvoiceID == invoiceID && p.BusinessID == f.biz.ID && p.Reference == "UTR123"
	})).Return(updated, nil)

	p, inv, err := f.svc.RecordPayment(context.Background(), f.biz.ID, invoiceID, service.RecordPaymentInput{
		Amount: d("500"), Mode: domain.PaymentModeUPI, Reference: " UTR123 ",
	})

	require.NoError(t, err)
	assert.True(t, p.Amount.Equal(d("500")))
	assert.False(t, p.PaidOn.IsZero())
	assert.Equal(t, domain.PaymentStatusPartial, inv.PaymentStatus)
}

func TestInvoiceService_RecordPayment_ExceedsDue(t *testing.T) {
	f := newInvoiceFixture()
	f.invoices.On("RecordPayment", mock.Anything, mock.Anything).Return(nil, domain.ErrPaymentExceedsDue)

	_, _, err := f.svc.RecordPayment(context.Background(), f.biz.ID, uuid.New(), service.RecordPaymentInput{
		Amount: d("99999"), Mode: domain.PaymentModeCash,
	})
	assert.ErrorIs(t, err, domain.ErrPaymentExceedsDue)
}

func TestInvoiceService_ListPayments_UnknownInvoice(t *testing.T) {
	f := newInvoiceFixture()
	invoiceID := uuid.New()
	f.invoices.On("GetByID", mock.Anything, f.biz.ID, invoiceID).Return(nil, domain.ErrInvoiceNotFound)

	_, err := f.svc.ListPayments(context.Background(), f.biz.ID, invoiceID)
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
	f.invoices.AssertNotCalled(t, "ListPayments", mock.Anything, mock.Anything, mock.Anything)
}
