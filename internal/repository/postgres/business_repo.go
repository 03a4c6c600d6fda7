package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"billbook/internal/domain"
	"billbook/internal/port"
)

const businessGSTINConstraint = "uq_businesses_gstin"

type businessRepo struct {
	db *sqlx.DB
}

// NewBusinessRepo creates a new PostgreSQL-backed BusinessRepository.
func NewBusinessRepo(db *sqlx.DB) port.BusinessRepository {
	return &businessRepo{db: db}
}

func (r *businessRepo) Create(ctx context.Context, b *domain.Business) error {
	b.ID = uuid.New()
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	query := `INSERT INTO businesses
		(id, name, gstin, state, address, email, phone, invoice_prefix, invoice_counter, default_template, created_at, updated_at)
		VALUES (:id, :name, :gstin, :state, :address, :email, :phone, :invoice_prefix, :invoice_counter, :default_template, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, b); err != nil {
		if isUniqueViolation(err, businessGSTINConstraint) {
			return domain.ErrDuplicateBusiness
		}
		return fmt.Errorf("businessRepo.Create: %w", err)
	}
	return nil
}

func (r *businessRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	var b domain.Business
	err := r.db.GetContext(ctx, &b, "SELECT * FROM businesses WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBusinessNotFound
		}
		return nil, fmt.Errorf("businessRepo.GetByID: %w", err)
	}
	return &b, nil
}

func (r *businessRepo) Update(ctx context.Context, b *domain.Business) error {
	b.UpdatedAt = time.Now().UTC()
	query := `UPDATE businesses SET name = $1, gstin = $2, state = $3, address = $4, email = $5,
		phone = $6, invoice_prefix = $7, default_template = $8, updated_at = $9
		WHERE id = $10`
	result, err := r.db.ExecContext(ctx, query,
		b.Name, b.GSTIN, b.State, b.Address, b.Email,
		b.Phone, b.InvoicePrefix, b.DefaultTemplate, b.UpdatedAt, b.ID)
	if err != nil {
		if isUniqueViolation(err, businessGSTINConstraint) {
			return domain.ErrDuplicateBusiness
		}
		return fmt.Errorf("businessRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrBusinessNotFound
	}
	return nil
}
