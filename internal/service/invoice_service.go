package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"billbook/internal/billing"
	"billbook/internal/config"
	"billbook/internal/domain"
	"billbook/internal/gst"
	"billbook/internal/numbering"
	"billbook/internal/port"
)

// PartyDetails is a customer given inline on an invoice.
type PartyDetails struct {
	Name    string `json:"name"`
	GSTIN   string `json:"gstin"`
	State   string `json:"state"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// CreateInvoiceInput is the DTO for creating an invoice. The customer is
// either a saved customer (CustomerID) or given inline (Customer).
type CreateInvoiceInput struct {
	CustomerID *uuid.UUID          `json:"customer_id"`
	Customer   *PartyDetails       `json:"customer"`
	Items      []billing.DraftItem `json:"items"`
	DueDate    *time.Time          `json:"due_date"`
	Notes      string              `json:"notes"`
	Template   string              `json:"template"`
}

// UpdateInvoiceInput is the DTO for editing an issued invoice.
// Amounts, parties and items are immutable once issued.
type UpdateInvoiceInput struct {
	Notes   *string    `json:"notes"`
	DueDate *time.Time `json:"due_date"`
}

// RecordPaymentInput is the DTO for recording a payment.
type RecordPaymentInput struct {
	Amount    decimal.Decimal    `json:"amount"`
	Mode      domain.PaymentMode `json:"mode" binding:"required"`
	PaidOn    *time.Time         `json:"paid_on"`
	Reference string             `json:"reference"`
	Notes     string             `json:"notes"`
}

// InvoiceService defines the invoicing contract.
type InvoiceService interface {
	Create(ctx context.Context, businessID uuid.UUID, input CreateInvoiceInput) (*domain.Invoice, error)
	GetByID(ctx context.Context, businessID, invoiceID uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, businessID uuid.UUID, filters domain.ListFilters) ([]domain.Invoice, int, error)
	Update(ctx context.Context, businessID, invoiceID uuid.UUID, input UpdateInvoiceInput) (*domain.Invoice, error)
	RecordPayment(ctx context.Context, businessID, invoiceID uuid.UUID, input RecordPaymentInput) (*domain.Payment, *domain.Invoice, error)
	ListPayments(ctx context.Context, businessID, invoiceID uuid.UUID) ([]domain.Payment, error)
}

type invoiceService struct {
	invoiceRepo  port.InvoiceRepository
	businessRepo port.BusinessRepository
	customerRepo port.CustomerRepository
	hsn          HSNService
	email        port.EmailSender
	cfg          config.InvoiceConfig
	frontendURL  string
	locks        *numbering.KeyedMutex
	now          func() time.Time
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	invoiceRepo port.InvoiceRepository,
	businessRepo port.BusinessRepository,
	customerRepo port.CustomerRepository,
	hsn HSNService,
	email port.EmailSender,
	cfg config.InvoiceConfig,
	frontendURL string,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		businessRepo: businessRepo,
		customerRepo: customerRepo,
		hsn:          hsn,
		email:        email,
		cfg:          cfg,
		frontendURL:  strings.TrimRight(frontendURL, "/"),
		locks:        numbering.NewKeyedMutex(),
		now:          time.Now,
	}
}

func (s *invoiceService) Create(ctx context.Context, businessID uuid.UUID, input CreateInvoiceInput) (*domain.Invoice, error) {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	party, err := s.resolveParty(ctx, businessID, &input)
	if err != nil {
		return nil, err
	}

	draft := billing.Draft{
		CustomerName:  party.Name,
		CustomerGSTIN: party.GSTIN,
		Items:         input.Items,
	}
	if err := billing.Validate(&draft); err != nil {
		return nil, err
	}

	template := domain.InvoiceTemplate(input.Template)
	if template == "" {
		template = business.DefaultTemplate
	}
	if !domain.ValidTemplates[template] {
		return nil, domain.ErrInvalidTemplate
	}

	invoiceDate := s.now().UTC()
	if input.DueDate != nil && input.DueDate.Before(startOfDay(invoiceDate)) {
		return nil, domain.ValidationErrors{{Field: "due_date", Message: "due date must not be before the invoice date"}}
	}

	customerState := gst.ResolveState(party.State, business.State)
	comp, err := billing.Build(draft.Items, business.State, customerState)
	if err != nil {
		return nil, err
	}

	inv := &domain.Invoice{
		BusinessID:    business.ID,
		CustomerID:    input.CustomerID,
		InvoiceDate:   invoiceDate,
		DueDate:       input.DueDate,
		BusinessState: business.State,
		CustomerName:  party.Name,
		CustomerGSTIN: party.GSTIN,
		CustomerState: customerState,
		CustomerEmail: party.Email,
		Template:      template,
		Notes:         input.Notes,
	}
	comp.ApplyTo(inv)
	inv.InvoiceType = gst.Classify(party.GSTIN, business.State, customerState, inv.GrandTotal)

	for _, m := range s.hsn.CheckRates(inv.Items) {
		log.Ctx(ctx).Warn().
			Int("position", m.Position).
			Str("hsn_code", m.HSNCode).
			Str("gst_rate", m.GSTRate.String()).
			Interface("master_rates", m.MasterRates).
			Msg("item GST rate differs from HSN master")
	}

	if err := s.issue(ctx, inv); err != nil {
		return nil, err
	}
	s.notify(ctx, business, inv)
	return inv, nil
}

// issue allocates a number and persists inv, retrying from a fresh read
// when another writer won the race for the number or the counter.
func (s *invoiceService) issue(ctx context.Context, inv *domain.Invoice) error {
	unlock := s.locks.Lock(inv.BusinessID)
	defer unlock()

	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxIssueAttempts; attempt++ {
		err := s.invoiceRepo.Issue(ctx, inv, s.cfg.MaxIssueAttempts)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrInvoiceNumberConflict) && !errors.Is(err, domain.ErrCounterNotSaved) {
			return err
		}
		lastErr = err
		log.Ctx(ctx).Warn().Err(err).
			Int("attempt", attempt).
			Str("business_id", inv.BusinessID.String()).
			Msg("invoice number conflict, retrying")
	}
	return fmt.Errorf("%w after %d attempts: %w", domain.ErrNumberAllocationExhausted, s.cfg.MaxIssueAttempts, lastErr)
}

func (s *invoiceService) notify(ctx context.Context, business *domain.Business, inv *domain.Invoice) {
	if inv.CustomerEmail == "" {
		return
	}
	notice := port.InvoiceNotice{
		ToEmail:       inv.CustomerEmail,
		ToName:        inv.CustomerName,
		BusinessName:  business.Name,
		InvoiceNumber: inv.InvoiceNumber,
		GrandTotal:    inv.GrandTotal,
		DueDate:       inv.DueDate,
	}
	if s.frontendURL != "" {
		notice.ViewURL = fmt.Sprintf("%s/invoices/%s", s.frontendURL, inv.ID)
	}
	if err := s.email.SendInvoiceIssued(ctx, notice); err != nil {
		log.Ctx(ctx).Error().Err(err).
			Str("invoice_number", inv.InvoiceNumber).
			Msg("failed to send invoice email")
	}
}

func (s *invoiceService) resolveParty(ctx context.Context, businessID uuid.UUID, input *CreateInvoiceInput) (PartyDetails, error) {
	var p PartyDetails
	switch {
	case input.CustomerID != nil:
		c, err := s.customerRepo.GetByID(ctx, businessID, *input.CustomerID)
		if err != nil {
			return p, err
		}
		p = PartyDetails{Name: c.Name, GSTIN: c.GSTIN, State: c.State, Email: c.Email, Address: c.Address}
	case input.Customer != nil:
		p = *input.Customer
	}
	p.Name = strings.TrimSpace(p.Name)
	p.GSTIN = strings.ToUpper(strings.TrimSpace(p.GSTIN))
	p.Email = strings.TrimSpace(p.Email)
	return p, nil
}

func (s *invoiceService) GetByID(ctx context.Context, businessID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, businessID, invoiceID)
}

func (s *invoiceService) List(ctx context.Context, businessID uuid.UUID, filters domain.ListFilters) ([]domain.Invoice, int, error) {
	return s.invoiceRepo.List(ctx, businessID, filters)
}

func (s *invoiceService) Update(ctx context.Context, businessID, invoiceID uuid.UUID, input UpdateInvoiceInput) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, businessID, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := billing.EnsureEditable(inv); err != nil {
		return nil, err
	}

	if input.Notes != nil {
		inv.Notes = *input.Notes
	}
	if input.DueDate != nil {
		if input.DueDate.Before(startOfDay(inv.InvoiceDate)) {
			return nil, domain.ValidationErrors{{Field: "due_date", Message: "due date must not be before the invoice date"}}
		}
		inv.DueDate = input.DueDate
	}

	if err := s.invoiceRepo.UpdateDetails(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invoiceService) RecordPayment(ctx context.Context, businessID, invoiceID uuid.UUID, input RecordPaymentInput) (*domain.Payment, *domain.Invoice, error) {
	if !domain.ValidPaymentModes[input.Mode] {
		return nil, nil, domain.ErrInvalidPaymentMode
	}
	if err := billing.CheckPaymentAmount(input.Amount); err != nil {
		return nil, nil, err
	}

	paidOn := s.now().UTC()
	if input.PaidOn != nil {
		paidOn = input.PaidOn.UTC()
	}
	p := &domain.Payment{
		InvoiceID:  invoiceID,
		BusinessID: businessID,
		Amount:     input.Amount,
		Mode:       input.Mode,
		PaidOn:     paidOn,
		Reference:  strings.TrimSpace(input.Reference),
		Notes:      input.Notes,
	}

	inv, err := s.invoiceRepo.RecordPayment(ctx, p)
	if err != nil {
		return nil, nil, err
	}
	log.Ctx(ctx).Info().
		Str("invoice_number", inv.InvoiceNumber).
		Str("amount", p.Amount.String()).
		Str("payment_status", string(inv.PaymentStatus)).
		Msg("payment recorded")
	return p, inv, nil
}

func (s *invoiceService) ListPayments(ctx context.Context, businessID, invoiceID uuid.UUID) ([]domain.Payment, error) {
	if _, err := s.invoiceRepo.GetByID(ctx, businessID, invoiceID); err != nil {
		return nil, err
	}
	return s.invoiceRepo.ListPayments(ctx, businessID, invoiceID)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
