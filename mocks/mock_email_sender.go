package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billbook/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendInvoiceIssued(ctx context.Context, notice port.InvoiceNotice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}
