// Package report aggregates issued invoices into the sales register, the
// GSTR-1 buckets and the tax summary by rate.
//
// Aggregation is pure: callers load the invoices (with items) for a Range and
// pass them in. Invoices dated outside the range are ignored.
package report

import (
	"strings"
	"time"

	"billbook/internal/domain"
)

// DateLayout is the accepted format for range bounds.
const DateLayout = "2006-01-02"

// Range is an inclusive reporting period. To is the last instant of its day.
type Range struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// NewRange builds an inclusive range over whole days. Both bounds are
// required and From may not fall after To.
func NewRange(from, to time.Time) (Range, error) {
	if from.IsZero() || to.IsZero() {
		return Range{}, domain.ErrMissingDateRange
	}
	r := Range{
		From: time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location()),
		To:   time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 999999999, to.Location()),
	}
	if r.From.After(r.To) {
		return Range{}, domain.ErrInvalidDateRange
	}
	return r, nil
}

// ParseRange parses YYYY-MM-DD bounds in UTC.
func ParseRange(from, to string) (Range, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" || to == "" {
		return Range{}, domain.ErrMissingDateRange
	}

	var errs domain.ValidationErrors
	f, err := time.Parse(DateLayout, from)
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "from", Message: "date must be YYYY-MM-DD"})
	}
	t, err := time.Parse(DateLayout, to)
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "to", Message: "date must be YYYY-MM-DD"})
	}
	if len(errs) > 0 {
		return Range{}, errs
	}
	return NewRange(f, t)
}

// Contains reports whether t falls inside the range.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}
