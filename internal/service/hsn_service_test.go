package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billbook/internal/domain"
	"billbook/internal/gst"
	"billbook/internal/service"
	"billbook/mocks"
)

func hsnMaster() []gst.HSNEntry {
	return []gst.HSNEntry{
		{Code: "8471", Description: "Computers", GSTRate: d("18")},
		{Code: "1006", Description: "Rice", GSTRate: d("0")},
		{Code: "1006", Description: "Rice, branded", GSTRate: d("5")},
	}
}

func TestHSNService_Lookup(t *testing.T) {
	svc := service.NewHSNService(gst.NewHSNLookup(hsnMaster()))

	entries, err := svc.Lookup("1006")
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	_, err = svc.Lookup("9999")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Lookup("12")
	var verrs domain.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestHSNService_CheckRates(t *testing.T) {
	svc := service.NewHSNService(gst.NewHSNLookup(hsnMaster()))

	mismatches := svc.CheckRates([]domain.InvoiceItem{
		{Position: 1, HSNCode: "8471", GSTRate: d("18")},
		{Position: 2, HSNCode: "8471", GSTRate: d("12")},
		{Position: 3, HSNCode: "1006", GSTRate: d("5")},
		{Position: 4, HSNCode: "3004", GSTRate: d("12")},
	})

	require.Len(t, mismatches, 1)
	assert.Equal(t, 2, mismatches[0].Position)
	assert.Equal(t, "8471", mismatches[0].HSNCode)
	require.Len(t, mismatches[0].MasterRates, 1)
	assert.True(t, mismatches[0].MasterRates[0].Equal(d("18")))
}

func TestLoadHSNService(t *testing.T) {
	repo := new(mocks.MockHSNRepo)
	repo.On("LoadAll", mock.Anything).Return(hsnMaster(), nil)

	svc, err := service.LoadHSNService(context.Background(), repo)
	require.NoError(t, err)

	entries, err := svc.Lookup("8471")
	require.NoError(t, err)
	assert.Equal(t, "Computers", entries[0].Description)
	assert.Equal(t, 2, svc.Size())
}

func TestLoadHSNService_RepoError(t *testing.T) {
	repo := new(mocks.MockHSNRepo)
	repo.On("LoadAll", mock.Anything).Return(nil, errors.New("db down"))

	svc, err := service.LoadHSNService(context.Background(), repo)
	assert.Nil(t, svc)
	assert.Error(t, err)
}
