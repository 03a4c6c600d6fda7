package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billbook/internal/domain"
	"billbook/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ValidationErrors{{Field: "name", Message: "required"}}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{domain.ErrInvoiceNotFound, http.StatusNotFound, "INVOICE_NOT_FOUND"},
		{fmt.Errorf("customerRepo.GetByID: %w", domain.ErrCustomerNotFound), http.StatusNotFound, "CUSTOMER_NOT_FOUND"},
		{domain.ErrDuplicateBusiness, http.StatusConflict, "DUPLICATE_BUSINESS"},
		{domain.ErrInvoiceLocked, http.StatusConflict, "INVOICE_LOCKED"},
		{domain.ErrPaymentExceedsDue, http.StatusBadRequest, "PAYMENT_EXCEEDS_DUE"},
		{domain.ErrPaymentPrecision, http.StatusBadRequest, "INVALID_PAYMENT_AMOUNT"},
		{domain.ErrMissingDateRange, http.StatusBadRequest, "MISSING_DATE_RANGE"},
		{domain.ErrInvalidDateRange, http.StatusBadRequest, "INVALID_DATE_RANGE"},
		{fmt.Errorf("%w after 5 attempts", domain.ErrNumberAllocationExhausted), http.StatusInternalServerError, "NUMBER_ALLOCATION_FAILED"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, code, _ := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestHandleError_IncludesFields(t *testing.T) {
	c, w := newContext(http.MethodPost, "/api/v1/invoices", nil)

	handler.HandleError(c, domain.ValidationErrors{
		{Field: "items[0].hsn_code", Message: "HSN/SAC code is required"},
		{Field: "customer.name", Message: "customer name is required"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	require.Len(t, resp.Error.Fields, 2)
	assert.Equal(t, "items[0].hsn_code", resp.Error.Fields[0].Field)
}
