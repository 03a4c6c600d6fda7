package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"billbook/internal/domain"
	"billbook/internal/service"
)

// InvoiceHandler handles invoice and payment endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// PaymentResponse is returned after recording a payment.
type PaymentResponse struct {
	Payment *domain.Payment `json:"payment"`
	Invoice *domain.Invoice `json:"invoice"`
}

var validPaymentStatuses = map[domain.PaymentStatus]bool{
	domain.PaymentStatusUnpaid:  true,
	domain.PaymentStatusPartial: true,
	domain.PaymentStatusPaid:    true,
}

var validInvoiceTypes = map[domain.InvoiceType]bool{
	domain.InvoiceTypeB2B:  true,
	domain.InvoiceTypeB2CS: true,
	domain.InvoiceTypeB2CL: true,
}

// Create issues a new invoice.
// @Summary      Create invoice
// @Description  Computes GST, classifies the invoice and allocates the next invoice number
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body body service.CreateInvoiceInput true "Invoice draft"
// @Success      201 {object} APIResponse{data=domain.Invoice}
// @Failure      400 {object} APIResponse
// @Failure      401 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Failure      500 {object} APIResponse
// @Security     BearerAuth
// @Router       /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	businessID, ok := businessFromContext(c)
	if !ok {
		return
	}

	var input service.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	if input.CustomerID == nil && input.Customer == nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "customer_id or customer is required")
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), businessID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, invoice)
}

// List returns invoices for the business, newest first.
// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Param        payment_status query string false "unpaid, partial or paid"
// @Param        invoice_type query string false "B2B, B2CS or B2CL"
// @Param        customer_id query string false "Customer UUID"
// @Param        offset query int false "Pagination offset" default(0)
// @Param        limit query int false "Pagination limit" default(20)
// @Success      200 {object} APIResponse{data=[]domain.Invoice,meta=PagMeta}
// @Failure      400 {object} APIResponse
// @Security     BearerAuth
// @Router       /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	businessID, ok := businessFromContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)
	filters := domain.ListFilters{Offset: offset, Limit: limit}

	if s := c.Query("payment_status"); s != "" {
		filters.PaymentStatus = domain.PaymentStatus(s)
		if !validPaymentStatuses[filters.PaymentStatus] {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'payment_status': must be one of unpaid, partial, paid")
			return
		}
	}
	if s := c.Query("invoice_type"); s != "" {
		filters.InvoiceType = domain.InvoiceType(s)
		if !validInvoiceTypes[filters.InvoiceType] {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'invoice_type': must be one of B2B, B2CS, B2CL")
			return
		}
	}
	if s := c.Query("customer_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid 'customer_id': must be a valid UUID")
			return
		}
		filters.CustomerID = &id
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), businessID, filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/invoices/:id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	businessID, ok := businessFromContext(c)
	if !ok {
		return
	}
	invoiceID, ok := parseIDParam(c, "id", "invoice")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), businessID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, invoice)
}

// Update handles PATCH /api/v1/invoices/:id
// Only notes and due date may change; paid invoices are locked.
func (h *InvoiceHandler) Update(c *gin.Context) {
	businessID, ok := businessFromContext(c)
	if !ok {
		return
	}
	invoiceID, ok := parseIDParam(c, "id", "invoice")
	if !ok {
		return
	}

	var input service.UpdateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), businessID, invoiceID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, invoice)
}

// RecordPayment records a payment against an invoice.
// @Summary      Record payment
// @Description  Adds a payment and recomputes amount due and payment status
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id path string true "Invoice ID"
// @Param        body body service.RecordPaymentInput true "Payment"
// @Success      201 {object} APIResponse{data=PaymentResponse}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Security     BearerAuth
// @Router       /invoices/{id}/payments [post]
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	businessID, ok := businessFromContext(c)
	if !ok {
		return
	}
	invoiceID, ok := parseIDParam(c, "id", "invoice")
	if !ok {
		return
	}

	var input service.RecordPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "amount and mode are required")
		return
	}

	payment, invoice, err := h.invoiceService.RecordPayment(c.Request.Context(), businessID, invoiceID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, PaymentResponse{Payment: payment, Invoice: invoice})
}

// ListPayments handles GET /api/v1/invoices/:id/payments
func (h *InvoiceHandler) ListPayments(c *gin.Context) {
	businessID, ok := businessFromContext(c)
	if !ok {
		return
	}
	invoiceID, ok := parseIDParam(c, "id", "invoice")
	if !ok {
		return
	}

	payments, err := h.invoiceService.ListPayments(c.Request.Context(), businessID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, payments)
}
