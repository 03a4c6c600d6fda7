package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"billbook/internal/domain"
	"billbook/internal/gst"
	"billbook/internal/port"
)

// CreateCustomerInput is the DTO for creating a customer.
type CreateCustomerInput struct {
	Name    string `json:"name" binding:"required"`
	GSTIN   string `json:"gstin"`
	State   string `json:"state"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateCustomerInput is the DTO for updating a customer.
type UpdateCustomerInput struct {
	Name    *string `json:"name"`
	GSTIN   *string `json:"gstin"`
	State   *string `json:"state"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// CustomerService defines the customer management contract.
type CustomerService interface {
	Create(ctx context.Context, businessID uuid.UUID, input CreateCustomerInput) (*domain.Customer, error)
	GetByID(ctx context.Context, businessID, customerID uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, businessID uuid.UUID, offset, limit int) ([]domain.Customer, int, error)
	Update(ctx context.Context, businessID, customerID uuid.UUID, input UpdateCustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, businessID, customerID uuid.UUID) error
}

type customerService struct {
	repo port.CustomerRepository
}

// NewCustomerService creates a new CustomerService implementation.
func NewCustomerService(repo port.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Create(ctx context.Context, businessID uuid.UUID, input CreateCustomerInput) (*domain.Customer, error) {
	c := &domain.Customer{
		BusinessID: businessID,
		Name:       strings.TrimSpace(input.Name),
		GSTIN:      strings.ToUpper(strings.TrimSpace(input.GSTIN)),
		State:      strings.TrimSpace(input.State),
		Email:      strings.TrimSpace(input.Email),
		Phone:      strings.TrimSpace(input.Phone),
		Address:    input.Address,
	}
	if err := validateCustomer(c); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) GetByID(ctx context.Context, businessID, customerID uuid.UUID) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, businessID, customerID)
}

func (s *customerService) List(ctx context.Context, businessID uuid.UUID, offset, limit int) ([]domain.Customer, int, error) {
	return s.repo.List(ctx, businessID, offset, limit)
}

func (s *customerService) Update(ctx context.Context, businessID, customerID uuid.UUID, input UpdateCustomerInput) (*domain.Customer, error) {
	c, err := s.repo.GetByID(ctx, businessID, customerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		c.Name = strings.TrimSpace(*input.Name)
	}
	if input.GSTIN != nil {
		c.GSTIN = strings.ToUpper(strings.TrimSpace(*input.GSTIN))
	}
	if input.State != nil {
		c.State = strings.TrimSpace(*input.State)
	}
	if input.Email != nil {
		c.Email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		c.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Address != nil {
		c.Address = *input.Address
	}
	if err := validateCustomer(c); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) Delete(ctx context.Context, businessID, customerID uuid.UUID) error {
	return s.repo.Delete(ctx, businessID, customerID)
}

func validateCustomer(c *domain.Customer) error {
	var errs domain.ValidationErrors
	if c.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "name is required"})
	}
	if c.GSTIN != "" && !gst.ValidGSTIN(c.GSTIN) {
		errs = append(errs, domain.FieldError{Field: "gstin", Message: domain.ErrInvalidGSTIN.Error()})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
