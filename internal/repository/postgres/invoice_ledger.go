package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"billbook/internal/domain"
	"billbook/internal/numbering"
)

// txLedger is the numbering view of one business inside an issuing
// transaction. Counter takes the row lock that the rest of the transaction
// holds until commit.
type txLedger struct {
	tx         *sqlx.Tx
	businessID uuid.UUID
}

var _ numbering.Ledger = (*txLedger)(nil)

func (l *txLedger) Counter(ctx context.Context) (numbering.State, error) {
	var st struct {
		Prefix  string `db:"invoice_prefix"`
		Counter int    `db:"invoice_counter"`
	}
	err := l.tx.GetContext(ctx, &st,
		"SELECT invoice_prefix, invoice_counter FROM businesses WHERE id = $1 FOR UPDATE", l.businessID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return numbering.State{}, domain.ErrBusinessNotFound
		}
		return numbering.State{}, err
	}
	return numbering.State{Prefix: st.Prefix, Counter: st.Counter}, nil
}

func (l *txLedger) IssuedNumbers(ctx context.Context, prefix string, year int) ([]string, error) {
	pattern := escapeLike(fmt.Sprintf("%s-%d-", prefix, year)) + "%"
	var numbers []string
	err := l.tx.SelectContext(ctx, &numbers,
		`SELECT invoice_number FROM invoices WHERE business_id = $1 AND invoice_number LIKE $2 ESCAPE '\'`,
		l.businessID, pattern)
	return numbers, err
}

func (l *txLedger) Exists(ctx context.Context, number string) (bool, error) {
	var exists bool
	err := l.tx.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM invoices WHERE business_id = $1 AND invoice_number = $2)",
		l.businessID, number)
	return exists, err
}

func (l *txLedger) SaveCounter(ctx context.Context, counter int) error {
	result, err := l.tx.ExecContext(ctx,
		"UPDATE businesses SET invoice_counter = $1, updated_at = NOW() WHERE id = $2",
		counter, l.businessID)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows != 1 {
		return fmt.Errorf("counter update touched %d rows", rows)
	}
	return nil
}
