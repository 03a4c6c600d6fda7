package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"billbook/internal/report"
	"billbook/internal/service"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) SalesRegister(ctx context.Context, businessID uuid.UUID, r report.Range) (*report.SalesRegister, error) {
	args := m.Called(ctx, businessID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.SalesRegister), args.Error(1)
}

func (m *MockReportService) GSTR1(ctx context.Context, businessID uuid.UUID, r report.Range) (*report.GSTR1, error) {
	args := m.Called(ctx, businessID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.GSTR1), args.Error(1)
}

func (m *MockReportService) TaxSummary(ctx context.Context, businessID uuid.UUID, r report.Range) (*report.TaxSummary, error) {
	args := m.Called(ctx, businessID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.TaxSummary), args.Error(1)
}

func (m *MockReportService) ExportSalesRegister(ctx context.Context, businessID uuid.UUID, r report.Range, w io.Writer) error {
	args := m.Called(ctx, businessID, r, w)
	return args.Error(0)
}

func (m *MockReportService) ExportTaxSummary(ctx context.Context, businessID uuid.UUID, r report.Range, w io.Writer) error {
	args := m.Called(ctx, businessID, r, w)
	return args.Error(0)
}

func (m *MockReportService) ArchiveSalesRegister(ctx context.Context, businessID uuid.UUID, r report.Range) (*service.ArchiveResult, error) {
	args := m.Called(ctx, businessID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArchiveResult), args.Error(1)
}
