package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"billbook/internal/gst"
	"billbook/internal/port"
)

// hsnImportBatch keeps each INSERT well under the 65535 bind parameter limit.
const hsnImportBatch = 500

type hsnRepo struct {
	db *sqlx.DB
}

// NewHSNRepo creates a new PostgreSQL-backed HSNRepository.
func NewHSNRepo(db *sqlx.DB) port.HSNRepository {
	return &hsnRepo{db: db}
}

func (r *hsnRepo) LoadAll(ctx context.Context) ([]gst.HSNEntry, error) {
	var entries []gst.HSNEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT code, description, gst_rate, condition_desc
		 FROM hsn_codes
		 WHERE effective_to IS NULL OR effective_to >= CURRENT_DATE
		 ORDER BY code, gst_rate`)
	if err != nil {
		return nil, fmt.Errorf("hsnRepo.LoadAll: %w", err)
	}
	return entries, nil
}

func (r *hsnRepo) Import(ctx context.Context, entries []gst.HSNEntry) (int, error) {
	var added int64
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for start := 0; start < len(entries); start += hsnImportBatch {
			end := min(start+hsnImportBatch, len(entries))
			query, args := buildHSNInsert(entries[start:end])
			res, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			added += n
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("hsnRepo.Import: %w", err)
	}
	return int(added), nil
}

// buildHSNInsert renders one multi-row insert that skips rows already present.
func buildHSNInsert(batch []gst.HSNEntry) (string, []interface{}) {
	var b strings.Builder
	b.WriteString("INSERT INTO hsn_codes (code, description, gst_rate, condition_desc) VALUES ")
	args := make([]interface{}, 0, len(batch)*4)
	for i := range batch {
		if i > 0 {
			b.WriteString(", ")
		}
		n := i * 4
		fmt.Fprintf(&b, "($%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4)
		e := &batch[i]
		args = append(args, e.Code, e.Description, e.GSTRate, e.ConditionDesc)
	}
	b.WriteString(" ON CONFLICT (code, gst_rate, condition_desc, effective_from) DO NOTHING")
	return b.String(), args
}
