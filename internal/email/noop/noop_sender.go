package noop

import (
	"context"

	"github.com/rs/zerolog/log"

	"billbook/internal/port"
)

type noopSender struct{}

// NewNoopSender creates an EmailSender that only logs what it would send.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendInvoiceIssued(ctx context.Context, n port.InvoiceNotice) error {
	log.Ctx(ctx).Info().
		Str("to", n.ToEmail).
		Str("invoice_number", n.InvoiceNumber).
		Str("grand_total", n.GrandTotal.StringFixed(2)).
		Str("view_url", n.ViewURL).
		Msg("noop email: invoice issued")
	return nil
}
