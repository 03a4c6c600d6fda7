package gst

import (
	"github.com/shopspring/decimal"
)

// HSNEntry is one row of the HSN/SAC master with its GST rate.
type HSNEntry struct {
	Code          string          `db:"code" json:"code"`
	Description   string          `db:"description" json:"description"`
	GSTRate       decimal.Decimal `db:"gst_rate" json:"gst_rate"`
	ConditionDesc string          `db:"condition_desc" json:"condition_desc"`
}

// HSNLookup provides in-memory lookups over the HSN master.
// It is immutable after construction and safe for concurrent access.
type HSNLookup struct {
	byCode map[string][]HSNEntry
}

// NewHSNLookup indexes entries by code. A code may carry several rates.
func NewHSNLookup(entries []HSNEntry) *HSNLookup {
	m := make(map[string][]HSNEntry, len(entries))
	for i := range entries {
		e := entries[i]
		m[e.Code] = append(m[e.Code], e)
	}
	return &HSNLookup{byCode: m}
}

// Len returns the number of distinct codes loaded.
func (h *HSNLookup) Len() int {
	return len(h.byCode)
}

// Entries returns the master rows for code, falling back from the full code
// to its 6 and then 4 digit heading.
func (h *HSNLookup) Entries(code string) []HSNEntry {
	if len(h.byCode) == 0 || code == "" {
		return nil
	}
	if e, ok := h.byCode[code]; ok {
		return e
	}
	for _, prefixLen := range []int{6, 4} {
		if len(code) > prefixLen {
			if e, ok := h.byCode[code[:prefixLen]]; ok {
				return e
			}
		}
	}
	return nil
}

// RateMatches reports whether rate is one of the master rates for code.
// known is false when the code is absent from the master.
func (h *HSNLookup) RateMatches(code string, rate decimal.Decimal) (matched, known bool) {
	entries := h.Entries(code)
	if len(entries) == 0 {
		return false, false
	}
	for i := range entries {
		if entries[i].GSTRate.Equal(rate) {
			return true, true
		}
	}
	return false, true
}
