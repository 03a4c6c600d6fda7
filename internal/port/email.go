package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceNotice is the content of an invoice-issued email.
type InvoiceNotice struct {
	ToEmail       string
	ToName        string
	BusinessName  string
	InvoiceNumber string
	GrandTotal    decimal.Decimal
	DueDate       *time.Time
	ViewURL       string
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendInvoiceIssued(ctx context.Context, notice InvoiceNotice) error
}
