package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billbook/internal/gst"
)

// MockHSNRepo is a mock implementation of port.HSNRepository.
type MockHSNRepo struct {
	mock.Mock
}

func (m *MockHSNRepo) LoadAll(ctx context.Context) ([]gst.HSNEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gst.HSNEntry), args.Error(1)
}

func (m *MockHSNRepo) Import(ctx context.Context, entries []gst.HSNEntry) (int, error) {
	args := m.Called(ctx, entries)
	return args.Int(0), args.Error(1)
}
