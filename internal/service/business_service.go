package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"billbook/internal/config"
	"billbook/internal/domain"
	"billbook/internal/gst"
	"billbook/internal/numbering"
	"billbook/internal/port"
)

// RegisterBusinessInput is the DTO for registering a business.
type RegisterBusinessInput struct {
	Name            string `json:"name" binding:"required"`
	GSTIN           string `json:"gstin"`
	State           string `json:"state" binding:"required"`
	Address         string `json:"address"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	InvoicePrefix   string `json:"invoice_prefix"`
	DefaultTemplate string `json:"default_template"`
}

// UpdateBusinessInput is the DTO for updating a business profile.
// Changing the prefix starts a fresh number series without touching the counter.
type UpdateBusinessInput struct {
	Name            *string `json:"name"`
	GSTIN           *string `json:"gstin"`
	State           *string `json:"state"`
	Address         *string `json:"address"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	InvoicePrefix   *string `json:"invoice_prefix"`
	DefaultTemplate *string `json:"default_template"`
}

// BusinessService defines the business profile contract.
type BusinessService interface {
	Register(ctx context.Context, input RegisterBusinessInput) (*domain.Business, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Business, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateBusinessInput) (*domain.Business, error)
}

type businessService struct {
	repo port.BusinessRepository
	cfg  config.InvoiceConfig
}

// NewBusinessService creates a new BusinessService implementation.
func NewBusinessService(repo port.BusinessRepository, cfg config.InvoiceConfig) BusinessService {
	return &businessService{repo: repo, cfg: cfg}
}

func (s *businessService) Register(ctx context.Context, input RegisterBusinessInput) (*domain.Business, error) {
	b := &domain.Business{
		Name:            strings.TrimSpace(input.Name),
		GSTIN:           strings.ToUpper(strings.TrimSpace(input.GSTIN)),
		State:           strings.TrimSpace(input.State),
		Address:         input.Address,
		Email:           strings.TrimSpace(input.Email),
		Phone:           strings.TrimSpace(input.Phone),
		InvoicePrefix:   strings.TrimSpace(input.InvoicePrefix),
		DefaultTemplate: domain.InvoiceTemplate(input.DefaultTemplate),
	}
	if b.InvoicePrefix == "" {
		b.InvoicePrefix = s.cfg.DefaultPrefix
	}
	if b.DefaultTemplate == "" {
		b.DefaultTemplate = domain.InvoiceTemplate(s.cfg.DefaultTemplate)
	}
	if err := validateBusiness(b); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *businessService) Get(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *businessService) Update(ctx context.Context, id uuid.UUID, input UpdateBusinessInput) (*domain.Business, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		b.Name = strings.TrimSpace(*input.Name)
	}
	if input.GSTIN != nil {
		b.GSTIN = strings.ToUpper(strings.TrimSpace(*input.GSTIN))
	}
	if input.State != nil {
		b.State = strings.TrimSpace(*input.State)
	}
	if input.Address != nil {
		b.Address = *input.Address
	}
	if input.Email != nil {
		b.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		b.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.InvoicePrefix != nil {
		b.InvoicePrefix = strings.TrimSpace(*input.InvoicePrefix)
	}
	if input.DefaultTemplate != nil {
		b.DefaultTemplate = domain.InvoiceTemplate(*input.DefaultTemplate)
	}
	if err := validateBusiness(b); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func validateBusiness(b *domain.Business) error {
	var errs domain.ValidationErrors
	if b.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "name is required"})
	}
	if b.State == "" {
		errs = append(errs, domain.FieldError{Field: "state", Message: domain.ErrInvalidState.Error()})
	}
	if b.GSTIN != "" && !gst.ValidGSTIN(b.GSTIN) {
		errs = append(errs, domain.FieldError{Field: "gstin", Message: domain.ErrInvalidGSTIN.Error()})
	}
	if !numbering.ValidPrefix(b.InvoicePrefix) {
		errs = append(errs, domain.FieldError{Field: "invoice_prefix", Message: domain.ErrInvalidPrefix.Error()})
	}
	if !domain.ValidTemplates[b.DefaultTemplate] {
		errs = append(errs, domain.FieldError{Field: "default_template", Message: domain.ErrInvalidTemplate.Error()})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
