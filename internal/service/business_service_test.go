package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billbook/internal/domain"
	"billbook/internal/service"
	"billbook/mocks"
)

func TestBusinessService_Register_AppliesDefaults(t *testing.T) {
	repo := new(mocks.MockBusinessRepo)
	svc := service.NewBusinessService(repo, invoiceConfig())

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Business")).Return(nil)

	b, err := svc.Register(context.Background(), service.RegisterBusinessInput{
		Name:  "  Sharma Traders ",
		GSTIN: "07aaaaa0000a1z5",
		State: "Delhi",
	})

	require.NoError(t, err)
	assert.Equal(t, "Sharma Traders", b.Name)
	assert.Equal(t, "07AAAAA0000A1Z5", b.GSTIN)
	assert.Equal(t, "INV", b.InvoicePrefix)
	assert.Equal(t, domain.TemplateClassic, b.DefaultTemplate)
	assert.Zero(t, b.InvoiceCounter)
	repo.AssertExpectations(t)
}

func TestBusinessService_Register_ValidationErrors(t *testing.T) {
	repo := new(mocks.MockBusinessRepo)
	svc := service.NewBusinessService(repo, invoiceConfig())

	_, err := svc.Register(context.Background(), service.RegisterBusinessInput{
		GSTIN:           "BAD",
		InvoicePrefix:   "has space",
		DefaultTemplate: "fancy",
	})

	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"name", "state", "gstin", "invoice_prefix", "default_template"}, fields)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBusinessService_Register_Duplicate(t *testing.T) {
	repo := new(mocks.MockBusinessRepo)
	svc := service.NewBusinessService(repo, invoiceConfig())

	repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateBusiness)

	b, err := svc.Register(context.Background(), service.RegisterBusinessInput{Name: "A", State: "Delhi"})
	assert.Nil(t, b)
	assert.ErrorIs(t, err, domain.ErrDuplicateBusiness)
}

func TestBusinessService_Update_PrefixKeepsCounter(t *testing.T) {
	repo := new(mocks.MockBusinessRepo)
	svc := service.NewBusinessService(repo, invoiceConfig())

	id := uuid.New()
	existing := &domain.Business{
		ID: id, Name: "A", State: "Delhi",
		InvoicePrefix: "INV", InvoiceCounter: 41, DefaultTemplate: domain.TemplateClassic,
	}
	repo.On("GetByID", mock.Anything, id).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	prefix := "SB"
	b, err := svc.Update(context.Background(), id, service.UpdateBusinessInput{InvoicePrefix: &prefix})

	require.NoError(t, err)
	assert.Equal(t, "SB", b.InvoicePrefix)
	assert.Equal(t, 41, b.InvoiceCounter)
	repo.AssertExpectations(t)
}

func TestBusinessService_Update_NotFound(t *testing.T) {
	repo := new(mocks.MockBusinessRepo)
	svc := service.NewBusinessService(repo, invoiceConfig())

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrBusinessNotFound)

	_, err := svc.Update(context.Background(), id, service.UpdateBusinessInput{})
	assert.ErrorIs(t, err, domain.ErrBusinessNotFound)
}

func TestBusinessService_Update_InvalidTemplate(t *testing.T) {
	repo := new(mocks.MockBusinessRepo)
	svc := service.NewBusinessService(repo, invoiceConfig())

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&domain.Business{
		ID: id, Name: "A", State: "Delhi", InvoicePrefix: "INV", DefaultTemplate: domain.TemplateClassic,
	}, nil)

	tmpl := "glossy"
	_, err := svc.Update(context.Background(), id, service.UpdateBusinessInput{DefaultTemplate: &tmpl})

	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "default_template", verrs[0].Field)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
