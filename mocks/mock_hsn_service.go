package mocks

import (
	"github.com/stretchr/testify/mock"

	"billbook/internal/domain"
	"billbook/internal/gst"
	"billbook/internal/service"
)

// MockHSNService is a mock implementation of service.HSNService.
type MockHSNService struct {
	mock.Mock
}

func (m *MockHSNService) Lookup(code string) ([]gst.HSNEntry, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gst.HSNEntry), args.Error(1)
}

func (m *MockHSNService) CheckRates(items []domain.InvoiceItem) []service.RateMismatch {
	args := m.Called(items)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]service.RateMismatch)
}

func (m *MockHSNService) Size() int {
	args := m.Called()
	return args.Int(0)
}
