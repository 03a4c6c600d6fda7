package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"billbook/internal/domain"
	"billbook/internal/logger"
	"billbook/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response. Fields lists the offending
// inputs when the request failed validation.
type APIError struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var verrs domain.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return http.StatusBadRequest, "VALIDATION_ERROR", "request failed validation"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrBusinessNotFound):
		return http.StatusNotFound, "BUSINESS_NOT_FOUND", "business not found"
	case errors.Is(err, domain.ErrCustomerNotFound):
		return http.StatusNotFound, "CUSTOMER_NOT_FOUND", "customer not found"
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return http.StatusNotFound, "INVOICE_NOT_FOUND", "invoice not found"
	case errors.Is(err, domain.ErrDuplicateBusiness):
		return http.StatusConflict, "DUPLICATE_BUSINESS", "a business with this GSTIN already exists"
	case errors.Is(err, domain.ErrInvalidTemplate):
		return http.StatusBadRequest, "INVALID_TEMPLATE", "invalid template; allowed: classic, modern, minimal"
	case errors.Is(err, domain.ErrInvalidGSTIN):
		return http.StatusBadRequest, "INVALID_GSTIN", "GSTIN format is invalid"
	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusBadRequest, "INVALID_STATE", "state is required"
	case errors.Is(err, domain.ErrInvalidPrefix):
		return http.StatusBadRequest, "INVALID_PREFIX", "invoice prefix is invalid"
	case errors.Is(err, domain.ErrInvoiceLocked):
		return http.StatusConflict, "INVOICE_LOCKED", "invoice is fully paid and can no longer be modified"
	case errors.Is(err, domain.ErrInvalidPaymentAmount):
		return http.StatusBadRequest, "INVALID_PAYMENT_AMOUNT", "payment amount must be greater than zero"
	case errors.Is(err, domain.ErrPaymentPrecision):
		return http.StatusBadRequest, "INVALID_PAYMENT_AMOUNT", "payment amount must have at most 2 decimal places"
	case errors.Is(err, domain.ErrPaymentExceedsDue):
		return http.StatusBadRequest, "PAYMENT_EXCEEDS_DUE", "payment amount exceeds amount due"
	case errors.Is(err, domain.ErrInvalidPaymentMode):
		return http.StatusBadRequest, "INVALID_PAYMENT_MODE", "invalid payment mode; allowed: cash, upi, card, bank_transfer, cheque"
	case errors.Is(err, domain.ErrMissingDateRange):
		return http.StatusBadRequest, "MISSING_DATE_RANGE", "both from and to dates are required"
	case errors.Is(err, domain.ErrInvalidDateRange):
		return http.StatusBadRequest, "INVALID_DATE_RANGE", "from date must not be after to date"
	case errors.Is(err, domain.ErrNumberAllocationExhausted):
		return http.StatusInternalServerError, "NUMBER_ALLOCATION_FAILED", "could not allocate an invoice number; please retry"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		logger.FromContext(c.Request.Context()).Error().Err(err).
			Str("path", c.Request.URL.Path).
			Msg("internal error")
	}

	apiErr := &APIError{Code: code, Message: msg}
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		apiErr.Fields = verrs
	}
	c.JSON(status, APIResponse{Success: false, Error: apiErr})
}

// businessFromContext extracts the acting business. Returns false if the auth
// context is missing (error response already written).
func businessFromContext(c *gin.Context) (uuid.UUID, bool) {
	businessID, err := middleware.GetBusinessID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing business context")
		return uuid.Nil, false
	}
	return businessID, true
}

// parseIDParam parses a UUID path parameter, responding 400 on failure.
func parseIDParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// parsePagination extracts offset and limit from query params with defaults.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
