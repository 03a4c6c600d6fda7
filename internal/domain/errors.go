package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrBusinessNotFound     = errors.New("business not found")
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrDuplicateBusiness    = errors.New("business with this GSTIN already exists")
	ErrInvalidTemplate      = errors.New("invalid invoice template")
	ErrInvalidGSTIN         = errors.New("invalid GSTIN format")
	ErrInvalidState         = errors.New("state is required")
	ErrInvalidPrefix        = errors.New("invalid invoice prefix")
	ErrInvoiceLocked        = errors.New("invoice is fully paid and can no longer be modified")
	ErrInvalidPaymentAmount = errors.New("payment amount must be greater than zero")
	ErrPaymentExceedsDue    = errors.New("payment amount exceeds amount due")
	ErrPaymentPrecision     = errors.New("payment amount must have at most 2 decimal places")
	ErrInvalidPaymentMode   = errors.New("invalid payment mode")
	ErrMissingDateRange     = errors.New("both start and end dates are required")
	ErrInvalidDateRange     = errors.New("start date must not be after end date")

	// ErrInvoiceNumberConflict signals a transient collision on the invoice
	// number (existence check or unique constraint); the issue is retried.
	ErrInvoiceNumberConflict = errors.New("invoice number conflict")
	// ErrCounterNotSaved signals that the incremented counter could not be
	// persisted; the issue is retried from a fresh read.
	ErrCounterNotSaved = errors.New("invoice counter could not be saved")
	// ErrNumberAllocationExhausted is returned once the retry ceiling is hit.
	ErrNumberAllocationExhausted = errors.New("invoice number allocation exhausted")
)
