// Package numbering allocates invoice numbers of the form
// {prefix}-{year}-{counter} from a per-business counter.
//
// Allocation runs against a Ledger, the caller's locked view of one
// business's counter and issued numbers. Serialising access to the ledger
// (a row lock in a database transaction, a KeyedMutex in process) is the
// caller's job; Allocate itself is deterministic given the ledger contents.
package numbering

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"billbook/internal/domain"
)

// State is a business's numbering configuration as stored.
type State struct {
	Prefix  string
	Counter int
}

// Ledger is the locked, per-business view Allocate works against.
type Ledger interface {
	// Counter returns the stored prefix and last used counter.
	Counter(ctx context.Context) (State, error)
	// IssuedNumbers returns invoice numbers already issued under prefix and year.
	IssuedNumbers(ctx context.Context, prefix string, year int) ([]string, error)
	// Exists reports whether number is already taken.
	Exists(ctx context.Context, number string) (bool, error)
	// SaveCounter persists the last used counter.
	SaveCounter(ctx context.Context, counter int) error
}

var prefixPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9/-]{0,15}$`)

// ValidPrefix reports whether p can head an invoice number: 1 to 16
// letters, digits, '-' or '/', starting with a letter or digit.
func ValidPrefix(p string) bool {
	return prefixPattern.MatchString(p)
}

// Format renders an invoice number. The counter is zero-padded to four
// digits and widens beyond 9999.
func Format(prefix string, year, counter int) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, counter)
}

// Parse extracts the counter from number if it was issued under prefix and year.
func Parse(number, prefix string, year int) (int, bool) {
	head := fmt.Sprintf("%s-%d-", prefix, year)
	if !strings.HasPrefix(number, head) {
		return 0, false
	}
	tail := number[len(head):]
	if tail == "" {
		return 0, false
	}
	for _, r := range tail {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(tail)
	if err != nil {
		return 0, false
	}
	return n, true
}

// MaxCounter returns the highest counter among numbers issued under prefix
// and year, or 0 when there are none.
func MaxCounter(numbers []string, prefix string, year int) int {
	maxN := 0
	for _, num := range numbers {
		if n, ok := Parse(num, prefix, year); ok && n > maxN {
			maxN = n
		}
	}
	return maxN
}

// Allocate issues the next free invoice number for year and saves the counter.
//
// A stored counter that lags behind the highest issued number is first
// advanced to it. Candidates that already exist are skipped; after
// maxAttempts skips domain.ErrNumberAllocationExhausted is returned. A failed
// counter write is reported as domain.ErrCounterNotSaved so the caller can
// retry from a fresh read.
func Allocate(ctx context.Context, l Ledger, year, maxAttempts int) (string, error) {
	st, err := l.Counter(ctx)
	if err != nil {
		return "", fmt.Errorf("numbering.Allocate counter: %w", err)
	}
	issued, err := l.IssuedNumbers(ctx, st.Prefix, year)
	if err != nil {
		return "", fmt.Errorf("numbering.Allocate issued: %w", err)
	}

	counter := st.Counter
	if observed := MaxCounter(issued, st.Prefix, year); observed > counter {
		counter = observed
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		counter++
		candidate := Format(st.Prefix, year, counter)

		taken, err := l.Exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("numbering.Allocate exists: %w", err)
		}
		if taken {
			continue
		}
		if err := l.SaveCounter(ctx, counter); err != nil {
			return "", fmt.Errorf("%w: %w", domain.ErrCounterNotSaved, err)
		}
		return candidate, nil
	}
	return "", domain.ErrNumberAllocationExhausted
}
