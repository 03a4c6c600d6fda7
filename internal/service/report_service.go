package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"billbook/internal/config"
	"billbook/internal/csvexport"
	"billbook/internal/port"
	"billbook/internal/report"
)

// ArchiveResult points at an archived report export.
type ArchiveResult struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ReportService builds statutory and management reports over issued invoices.
type ReportService interface {
	SalesRegister(ctx context.Context, businessID uuid.UUID, r report.Range) (*report.SalesRegister, error)
	GSTR1(ctx context.Context, businessID uuid.UUID, r report.Range) (*report.GSTR1, error)
	TaxSummary(ctx context.Context, businessID uuid.UUID, r report.Range) (*report.TaxSummary, error)
	ExportSalesRegister(ctx context.Context, businessID uuid.UUID, r report.Range, w io.Writer) error
	ExportTaxSummary(ctx context.Context, businessID uuid.UUID, r report.Range, w io.Writer) error
	ArchiveSalesRegister(ctx context.Context, businessID uuid.UUID, r report.Range) (*ArchiveResult, error)
}

type reportService struct {
	invoiceRepo port.InvoiceRepository
	storage     port.ObjectStorage
	bucket      string
	cfg         config.ReportConfig
	now         func() time.Time
}

// NewReportService creates a new ReportService implementation.
func NewReportService(invoiceRepo port.InvoiceRepository, storage port.ObjectStorage, bucket string, cfg config.ReportConfig) ReportService {
	return &reportService{
		invoiceRepo: invoiceRepo,
		storage:     storage,
		bucket:      bucket,
		cfg:         cfg,
		now:         time.Now,
	}
}

func (s *reportService) SalesRegister(ctx context.Context, businessID uuid.UUID, r report.Range) (*report.SalesRegister, error) {
	invoices, err := s.invoiceRepo.ListForReport(ctx, businessID, r.From, r.To)
	if err != nil {
		return nil, err
	}
	return report.BuildSalesRegister(r, invoices), nil
}

func (s *reportService) GSTR1(ctx context.Context, businessID uuid.UUID, r report.Range) (*report.GSTR1, error) {
	invoices, err := s.invoiceRepo.ListForReport(ctx, businessID, r.From, r.To)
	if err != nil {
		return nil, err
	}
	return report.BuildGSTR1(r, invoices), nil
}

func (s *reportService) TaxSummary(ctx context.Context, businessID uuid.UUID, r report.Range) (*report.TaxSummary, error) {
	invoices, err := s.invoiceRepo.ListForReport(ctx, businessID, r.From, r.To)
	if err != nil {
		return nil, err
	}
	return report.BuildTaxSummary(r, invoices), nil
}

func (s *reportService) ExportSalesRegister(ctx context.Context, businessID uuid.UUID, r report.Range, w io.Writer) error {
	reg, err := s.SalesRegister(ctx, businessID, r)
	if err != nil {
		return err
	}
	return writeRegisterCSV(w, reg)
}

func (s *reportService) ExportTaxSummary(ctx context.Context, businessID uuid.UUID, r report.Range, w io.Writer) error {
	sum, err := s.TaxSummary(ctx, businessID, r)
	if err != nil {
		return err
	}
	if _, err := w.Write(csvexport.BOM); err != nil {
		return err
	}
	cw := csvexport.NewWriter(w)
	if err := cw.WriteTaxSummary(sum); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func (s *reportService) ArchiveSalesRegister(ctx context.Context, businessID uuid.UUID, r report.Range) (*ArchiveResult, error) {
	reg, err := s.SalesRegister(ctx, businessID, r)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := writeRegisterCSV(&buf, reg); err != nil {
		return nil, err
	}

	filename := csvexport.BuildFilename("sales_register", r)
	key := fmt.Sprintf("%s/%s/%d-%s", s.cfg.ExportPrefix, businessID, s.now().Unix(), filename)
	size := int64(buf.Len())
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Filename:    filename,
		Body:        &buf,
		ContentType: "text/csv; charset=utf-8",
		Size:        size,
	}); err != nil {
		return nil, fmt.Errorf("archiving sales register: %w", err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.bucket, key, s.cfg.PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presigning sales register: %w", err)
	}
	log.Ctx(ctx).Info().
		Str("key", key).
		Int("invoices", reg.Totals.InvoiceCount).
		Int64("bytes", size).
		Msg("sales register archived")

	return &ArchiveResult{Key: key, URL: url, ExpiresAt: s.now().Add(s.cfg.PresignExpiry)}, nil
}

func writeRegisterCSV(w io.Writer, reg *report.SalesRegister) error {
	if _, err := w.Write(csvexport.BOM); err != nil {
		return err
	}
	cw := csvexport.NewWriter(w)
	if err := cw.WriteSalesRegister(reg); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
