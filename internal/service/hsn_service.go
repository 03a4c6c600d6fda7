package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"billbook/internal/domain"
	"billbook/internal/gst"
	"billbook/internal/port"
)

// RateMismatch flags an item whose GST rate differs from the HSN master.
type RateMismatch struct {
	Position    int               `json:"position"`
	HSNCode     string            `json:"hsn_code"`
	GSTRate     decimal.Decimal   `json:"gst_rate"`
	MasterRates []decimal.Decimal `json:"master_rates"`
}

// HSNService answers HSN master lookups from memory.
type HSNService interface {
	Lookup(code string) ([]gst.HSNEntry, error)
	CheckRates(items []domain.InvoiceItem) []RateMismatch
	// Size is the number of distinct codes loaded.
	Size() int
}

type hsnService struct {
	lookup *gst.HSNLookup
}

// NewHSNService wraps an already loaded lookup.
func NewHSNService(lookup *gst.HSNLookup) HSNService {
	return &hsnService{lookup: lookup}
}

// LoadHSNService reads the HSN master once and serves it from memory.
func LoadHSNService(ctx context.Context, repo port.HSNRepository) (HSNService, error) {
	entries, err := repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading HSN master: %w", err)
	}
	return NewHSNService(gst.NewHSNLookup(entries)), nil
}

func (s *hsnService) Lookup(code string) ([]gst.HSNEntry, error) {
	code = strings.TrimSpace(code)
	if !gst.ValidHSN(code) {
		return nil, domain.ValidationErrors{{Field: "code", Message: "HSN/SAC code must be 4 to 8 digits"}}
	}
	entries := s.lookup.Entries(code)
	if len(entries) == 0 {
		return nil, domain.ErrNotFound
	}
	return entries, nil
}

func (s *hsnService) Size() int {
	return s.lookup.Len()
}

// CheckRates lists items whose code is in the master with different rates.
// Codes missing from the master are not reported.
func (s *hsnService) CheckRates(items []domain.InvoiceItem) []RateMismatch {
	var out []RateMismatch
	for i := range items {
		it := &items[i]
		matched, known := s.lookup.RateMatches(it.HSNCode, it.GSTRate)
		if matched || !known {
			continue
		}
		entries := s.lookup.Entries(it.HSNCode)
		rates := make([]decimal.Decimal, 0, len(entries))
		for _, e := range entries {
			rates = append(rates, e.GSTRate)
		}
		out = append(out, RateMismatch{
			Position:    it.Position,
			HSNCode:     it.HSNCode,
			GSTRate:     it.GSTRate,
			MasterRates: rates,
		})
	}
	return out
}
