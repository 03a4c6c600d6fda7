package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Business is the invoicing party. Each authenticated session acts for one business.
type Business struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	Name            string          `db:"name" json:"name"`
	GSTIN           string          `db:"gstin" json:"gstin"`
	State           string          `db:"state" json:"state"`
	Address         string          `db:"address" json:"address"`
	Email           string          `db:"email" json:"email"`
	Phone           string          `db:"phone" json:"phone"`
	InvoicePrefix   string          `db:"invoice_prefix" json:"invoice_prefix"`
	InvoiceCounter  int             `db:"invoice_counter" json:"invoice_counter"`
	DefaultTemplate InvoiceTemplate `db:"default_template" json:"default_template"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// Customer is a billed party belonging to a business.
type Customer struct {
	ID         uuid.UUID `db:"id" json:"id"`
	BusinessID uuid.UUID `db:"business_id" json:"business_id"`
	Name       string    `db:"name" json:"name"`
	GSTIN      string    `db:"gstin" json:"gstin"`
	State      string    `db:"state" json:"state"`
	Email      string    `db:"email" json:"email"`
	Phone      string    `db:"phone" json:"phone"`
	Address    string    `db:"address" json:"address"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Invoice is an issued tax invoice. Customer and business state are
// snapshotted at creation so later edits to the parties do not alter it.
type Invoice struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	BusinessID    uuid.UUID       `db:"business_id" json:"business_id"`
	CustomerID    *uuid.UUID      `db:"customer_id" json:"customer_id"`
	InvoiceNumber string          `db:"invoice_number" json:"invoice_number"`
	InvoiceDate   time.Time       `db:"invoice_date" json:"invoice_date"`
	DueDate       *time.Time      `db:"due_date" json:"due_date"`
	BusinessState string          `db:"business_state" json:"business_state"`
	CustomerName  string          `db:"customer_name" json:"customer_name"`
	CustomerGSTIN string          `db:"customer_gstin" json:"customer_gstin"`
	CustomerState string          `db:"customer_state" json:"customer_state"`
	CustomerEmail string          `db:"customer_email" json:"customer_email"`
	InvoiceType   InvoiceType     `db:"invoice_type" json:"invoice_type"`
	Template      InvoiceTemplate `db:"template" json:"template"`
	Subtotal      decimal.Decimal `db:"subtotal" json:"subtotal"`
	TotalDiscount decimal.Decimal `db:"total_discount" json:"total_discount"`
	TotalCGST     decimal.Decimal `db:"total_cgst" json:"total_cgst"`
	TotalSGST     decimal.Decimal `db:"total_sgst" json:"total_sgst"`
	TotalIGST     decimal.Decimal `db:"total_igst" json:"total_igst"`
	GrandTotal    decimal.Decimal `db:"grand_total" json:"grand_total"`
	AmountPaid    decimal.Decimal `db:"amount_paid" json:"amount_paid"`
	AmountDue     decimal.Decimal `db:"amount_due" json:"amount_due"`
	PaymentStatus PaymentStatus   `db:"payment_status" json:"payment_status"`
	Notes         string          `db:"notes" json:"notes"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`

	Items []InvoiceItem `db:"-" json:"items"`
}

// TaxableAmount is the invoice value before tax.
func (inv *Invoice) TaxableAmount() decimal.Decimal {
	return inv.Subtotal.Sub(inv.TotalDiscount)
}

// InvoiceItem is a computed line of an invoice.
type InvoiceItem struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	InvoiceID     uuid.UUID       `db:"invoice_id" json:"invoice_id"`
	Position      int             `db:"position" json:"position"`
	ProductName   string          `db:"product_name" json:"product_name"`
	Description   string          `db:"description" json:"description"`
	HSNCode       string          `db:"hsn_code" json:"hsn_code"`
	Unit          string          `db:"unit" json:"unit"`
	Quantity      decimal.Decimal `db:"quantity" json:"quantity"`
	Rate          decimal.Decimal `db:"rate" json:"rate"`
	Discount      decimal.Decimal `db:"discount" json:"discount"`
	GSTRate       decimal.Decimal `db:"gst_rate" json:"gst_rate"`
	TaxableAmount decimal.Decimal `db:"taxable_amount" json:"taxable_amount"`
	CGST          decimal.Decimal `db:"cgst" json:"cgst"`
	SGST          decimal.Decimal `db:"sgst" json:"sgst"`
	IGST          decimal.Decimal `db:"igst" json:"igst"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"total_amount"`
}

// Payment is a single payment event recorded against an invoice.
type Payment struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	InvoiceID  uuid.UUID       `db:"invoice_id" json:"invoice_id"`
	BusinessID uuid.UUID       `db:"business_id" json:"business_id"`
	Amount     decimal.Decimal `db:"amount" json:"amount"`
	Mode       PaymentMode     `db:"mode" json:"mode"`
	PaidOn     time.Time       `db:"paid_on" json:"paid_on"`
	Reference  string          `db:"reference" json:"reference"`
	Notes      string          `db:"notes" json:"notes"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// ListFilters holds pagination and optional narrowing for invoice listings.
type ListFilters struct {
	Offset        int
	Limit         int
	PaymentStatus PaymentStatus
	InvoiceType   InvoiceType
	CustomerID    *uuid.UUID
}
