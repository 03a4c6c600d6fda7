package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"billbook/internal/domain"
)

// BusinessRepository defines the contract for business persistence.
type BusinessRepository interface {
	Create(ctx context.Context, business *domain.Business) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error)
	// Update writes profile fields. The invoice counter is owned by
	// InvoiceRepository.Issue and is never written here.
	Update(ctx context.Context, business *domain.Business) error
}

// CustomerRepository defines the contract for customer persistence.
// All query methods include businessID to scope rows to their owner.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, businessID, customerID uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, businessID uuid.UUID, offset, limit int) ([]domain.Customer, int, error)
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, businessID, customerID uuid.UUID) error
}

// InvoiceRepository defines the contract for invoice and payment persistence.
type InvoiceRepository interface {
	// Issue allocates the next invoice number for the invoice's business and
	// inserts the invoice with its items in one transaction. On success the
	// invoice carries its number, IDs and timestamps.
	//
	// A number collision surfaces as domain.ErrInvoiceNumberConflict and a
	// failed counter write as domain.ErrCounterNotSaved; both are safe to retry.
	Issue(ctx context.Context, invoice *domain.Invoice, maxAttempts int) error
	GetByID(ctx context.Context, businessID, invoiceID uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, businessID uuid.UUID, filters domain.ListFilters) ([]domain.Invoice, int, error)
	// UpdateDetails writes notes and due date. Fully paid invoices are
	// rejected with domain.ErrInvoiceLocked.
	UpdateDetails(ctx context.Context, invoice *domain.Invoice) error
	// RecordPayment locks the invoice, applies the payment to it and stores
	// both. It returns the invoice as updated.
	RecordPayment(ctx context.Context, payment *domain.Payment) (*domain.Invoice, error)
	ListPayments(ctx context.Context, businessID, invoiceID uuid.UUID) ([]domain.Payment, error)
	// ListForReport loads invoices with items dated within [from, to].
	ListForReport(ctx context.Context, businessID uuid.UUID, from, to time.Time) ([]domain.Invoice, error)
}
