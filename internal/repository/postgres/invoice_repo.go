package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"billbook/internal/billing"
	"billbook/internal/domain"
	"billbook/internal/numbering"
	"billbook/internal/port"
)

const invoiceNumberConstraint = "uq_invoices_business_number"

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

const insertInvoiceQuery = `INSERT INTO invoices (
	id, business_id, customer_id, invoice_number, invoice_date, due_date,
	business_state, customer_name, customer_gstin, customer_state, customer_email,
	invoice_type, template, subtotal, total_discount, total_cgst, total_sgst, total_igst,
	grand_total, amount_paid, amount_due, payment_status, notes, created_at, updated_at
) VALUES (
	:id, :business_id, :customer_id, :invoice_number, :invoice_date, :due_date,
	:business_state, :customer_name, :customer_gstin, :customer_state, :customer_email,
	:invoice_type, :template, :subtotal, :total_discount, :total_cgst, :total_sgst, :total_igst,
	:grand_total, :amount_paid, :amount_due, :payment_status, :notes, :created_at, :updated_at
)`

const insertItemQuery = `INSERT INTO invoice_items (
	id, invoice_id, position, product_name, description, hsn_code, unit,
	quantity, rate, discount, gst_rate, taxable_amount, cgst, sgst, igst, total_amount
) VALUES (
	:id, :invoice_id, :position, :product_name, :description, :hsn_code, :unit,
	:quantity, :rate, :discount, :gst_rate, :taxable_amount, :cgst, :sgst, :igst, :total_amount
)`

func (r *invoiceRepo) Issue(ctx context.Context, inv *domain.Invoice, maxAttempts int) error {
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		ledger := &txLedger{tx: tx, businessID: inv.BusinessID}
		number, err := numbering.Allocate(ctx, ledger, inv.InvoiceDate.Year(), maxAttempts)
		if err != nil {
			return err
		}

		inv.ID = uuid.New()
		inv.InvoiceNumber = number
		now := time.Now().UTC()
		inv.CreatedAt = now
		inv.UpdatedAt = now

		if _, err := tx.NamedExecContext(ctx, insertInvoiceQuery, inv); err != nil {
			return err
		}
		for i := range inv.Items {
			item := &inv.Items[i]
			item.ID = uuid.New()
			item.InvoiceID = inv.ID
			if _, err := tx.NamedExecContext(ctx, insertItemQuery, item); err != nil {
				return fmt.Errorf("item %d: %w", item.Position, err)
			}
		}
		return nil
	})
	if err != nil {
		inv.InvoiceNumber = ""
		if isUniqueViolation(err, invoiceNumberConstraint) || isRetryable(err) {
			return fmt.Errorf("invoiceRepo.Issue: %w: %w", domain.ErrInvoiceNumberConflict, err)
		}
		if errors.Is(err, domain.ErrBusinessNotFound) {
			return domain.ErrBusinessNotFound
		}
		return fmt.Errorf("invoiceRepo.Issue: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, businessID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv,
		"SELECT * FROM invoices WHERE business_id = $1 AND id = $2", businessID, invoiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	inv.Items = []domain.InvoiceItem{}
	if err := r.db.SelectContext(ctx, &inv.Items,
		"SELECT * FROM invoice_items WHERE invoice_id = $1 ORDER BY position", inv.ID); err != nil {
		return nil, fmt.Errorf("invoiceRepo.GetByID items: %w", err)
	}
	return &inv, nil
}

// buildListWhere returns the WHERE clause and args for an invoice listing.
func buildListWhere(businessID uuid.UUID, f domain.ListFilters) (string, []interface{}) {
	conditions := []string{"business_id = $1"}
	args := []interface{}{businessID}

	if f.PaymentStatus != "" {
		args = append(args, f.PaymentStatus)
		conditions = append(conditions, fmt.Sprintf("payment_status = $%d", len(args)))
	}
	if f.InvoiceType != "" {
		args = append(args, f.InvoiceType)
		conditions = append(conditions, fmt.Sprintf("invoice_type = $%d", len(args)))
	}
	if f.CustomerID != nil {
		args = append(args, *f.CustomerID)
		conditions = append(conditions, fmt.Sprintf("customer_id = $%d", len(args)))
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func (r *invoiceRepo) List(ctx context.Context, businessID uuid.UUID, f domain.ListFilters) ([]domain.Invoice, int, error) {
	where, args := buildListWhere(businessID, f)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoices "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf("SELECT * FROM invoices %s ORDER BY invoice_date DESC, invoice_number DESC LIMIT $%d OFFSET $%d",
		where, n+1, n+2)
	invoices := []domain.Invoice{}
	if err := r.db.SelectContext(ctx, &invoices, query, append(args, f.Limit, f.Offset)...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) UpdateDetails(ctx context.Context, inv *domain.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET notes = $1, due_date = $2, updated_at = $3
		 WHERE business_id = $4 AND id = $5 AND payment_status <> $6`,
		inv.Notes, inv.DueDate, inv.UpdatedAt, inv.BusinessID, inv.ID, domain.PaymentStatusPaid)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateDetails: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows > 0 {
		return nil
	}

	var status domain.PaymentStatus
	err = r.db.GetContext(ctx, &status,
		"SELECT payment_status FROM invoices WHERE business_id = $1 AND id = $2", inv.BusinessID, inv.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrInvoiceNotFound
		}
		return fmt.Errorf("invoiceRepo.UpdateDetails status: %w", err)
	}
	return domain.ErrInvoiceLocked
}

func (r *invoiceRepo) RecordPayment(ctx context.Context, p *domain.Payment) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &inv,
			"SELECT * FROM invoices WHERE business_id = $1 AND id = $2 FOR UPDATE", p.BusinessID, p.InvoiceID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrInvoiceNotFound
			}
			return err
		}

		if err := billing.ApplyPayment(&inv, p.Amount); err != nil {
			return err
		}
		inv.UpdatedAt = time.Now().UTC()
		_, err = tx.ExecContext(ctx,
			`UPDATE invoices SET amount_paid = $1, amount_due = $2, payment_status = $3, updated_at = $4
			 WHERE id = $5`,
			inv.AmountPaid, inv.AmountDue, inv.PaymentStatus, inv.UpdatedAt, inv.ID)
		if err != nil {
			return err
		}

		p.ID = uuid.New()
		p.CreatedAt = inv.UpdatedAt
		_, err = tx.NamedExecContext(ctx,
			`INSERT INTO payments (id, invoice_id, business_id, amount, mode, paid_on, reference, notes, created_at)
			 VALUES (:id, :invoice_id, :business_id, :amount, :mode, :paid_on, :reference, :notes, :created_at)`, p)
		if err != nil {
			return err
		}
		inv.Items = []domain.InvoiceItem{}
		return tx.SelectContext(ctx, &inv.Items,
			"SELECT * FROM invoice_items WHERE invoice_id = $1 ORDER BY position", inv.ID)
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvoiceNotFound),
			errors.Is(err, domain.ErrInvoiceLocked),
			errors.Is(err, domain.ErrInvalidPaymentAmount),
			errors.Is(err, domain.ErrPaymentPrecision),
			errors.Is(err, domain.ErrPaymentExceedsDue):
			return nil, err
		}
		return nil, fmt.Errorf("invoiceRepo.RecordPayment: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepo) ListPayments(ctx context.Context, businessID, invoiceID uuid.UUID) ([]domain.Payment, error) {
	payments := []domain.Payment{}
	err := r.db.SelectContext(ctx, &payments,
		"SELECT * FROM payments WHERE business_id = $1 AND invoice_id = $2 ORDER BY paid_on, created_at",
		businessID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListPayments: %w", err)
	}
	return payments, nil
}

func (r *invoiceRepo) ListForReport(ctx context.Context, businessID uuid.UUID, from, to time.Time) ([]domain.Invoice, error) {
	invoices := []domain.Invoice{}
	err := r.db.SelectContext(ctx, &invoices,
		`SELECT * FROM invoices
		 WHERE business_id = $1 AND invoice_date BETWEEN $2 AND $3
		 ORDER BY invoice_date, invoice_number`,
		businessID, from, to)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListForReport: %w", err)
	}
	if len(invoices) == 0 {
		return invoices, nil
	}

	ids := make([]uuid.UUID, len(invoices))
	index := make(map[uuid.UUID]int, len(invoices))
	for i := range invoices {
		ids[i] = invoices[i].ID
		index[invoices[i].ID] = i
	}
	query, args, err := sqlx.In(
		"SELECT * FROM invoice_items WHERE invoice_id IN (?) ORDER BY invoice_id, position", ids)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListForReport items query: %w", err)
	}
	var items []domain.InvoiceItem
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListForReport items: %w", err)
	}
	for _, it := range items {
		i := index[it.InvoiceID]
		invoices[i].Items = append(invoices[i].Items, it)
	}
	return invoices, nil
}
