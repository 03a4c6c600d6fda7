package service_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billbook/internal/config"
	"billbook/internal/domain"
	"billbook/internal/port"
	"billbook/internal/report"
	"billbook/internal/service"
	"billbook/mocks"
)

func reportConfig() config.ReportConfig {
	return config.ReportConfig{ExportPrefix: "reports", PresignExpiry: time.Hour}
}

func marchRange(t *testing.T) report.Range {
	t.Helper()
	r, err := report.ParseRange("2026-03-01", "2026-03-31")
	require.NoError(t, err)
	return r
}

func reportInvoices() []domain.Invoice {
	mk := func(number string, day int, taxable, cgst, igst string, typ domain.InvoiceType) domain.Invoice {
		total := d(taxable).Add(d(cgst).Mul(d("2"))).Add(d(igst))
		return domain.Invoice{
			ID:            uuid.New(),
			InvoiceNumber: number,
			InvoiceDate:   time.Date(2026, 3, day, 10, 0, 0, 0, time.UTC),
			CustomerName:  "Customer " + number,
			InvoiceType:   typ,
			Subtotal:      d(taxable),
			TotalCGST:     d(cgst),
			TotalSGST:     d(cgst),
			TotalIGST:     d(igst),
			GrandTotal:    total,
			AmountDue:     total,
			PaymentStatus: domain.PaymentStatusUnpaid,
			Items: []domain.InvoiceItem{{
				Position: 1, GSTRate: d("18"), TaxableAmount: d(taxable),
				CGST: d(cgst), SGST: d(cgst), IGST: d(igst), TotalAmount: total,
			}},
		}
	}
	return []domain.Invoice{
		mk("INV-2026-0002", 20, "200", "18", "0", domain.InvoiceTypeB2CS),
		mk("INV-2026-0001", 5, "100", "9", "0", domain.InvoiceTypeB2CS),
	}
}

func TestReportService_SalesRegister(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewReportService(repo, storage, "bucket", reportConfig())
	businessID := uuid.New()
	r := marchRange(t)

	repo.On("ListForReport", mock.Anything, businessID, r.From, r.To).Return(reportInvoices(), nil)

	reg, err := svc.SalesRegister(context.Background(), businessID, r)
	require.NoError(t, err)
	require.Len(t, reg.Rows, 2)
	assert.Equal(t, "INV-2026-0001", reg.Rows[0].InvoiceNumber)
	assert.Equal(t, 2, reg.Totals.InvoiceCount)
	assert.True(t, reg.Totals.TaxableAmount.Equal(d("300")))
	assert.True(t, reg.Totals.GrandTotal.Equal(d("354")))
}

func TestReportService_TaxSummary(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := service.NewReportService(repo, new(mocks.MockObjectStorage), "bucket", reportConfig())
	businessID := uuid.New()
	r := marchRange(t)

	repo.On("ListForReport", mock.Anything, businessID, r.From, r.To).Return(reportInvoices(), nil)

	sum, err := svc.TaxSummary(context.Background(), businessID, r)
	require.NoError(t, err)
	require.Len(t, sum.Rows, 1)
	assert.Equal(t, 2, sum.Rows[0].Count)
	assert.True(t, sum.Total.TaxableAmount.Equal(d("300")))
}

func TestReportService_GSTR1_RepoError(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := service.NewReportService(repo, new(mocks.MockObjectStorage), "bucket", reportConfig())
	r := marchRange(t)

	repo.On("ListForReport", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	out, err := svc.GSTR1(context.Background(), uuid.New(), r)
	assert.Nil(t, out)
	assert.Error(t, err)
}

func TestReportService_ExportSalesRegister(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := service.NewReportService(repo, new(mocks.MockObjectStorage), "bucket", reportConfig())
	r := marchRange(t)

	repo.On("ListForReport", mock.Anything, mock.Anything, r.From, r.To).Return(reportInvoices(), nil)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportSalesRegister(context.Background(), uuid.New(), r, &buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\xEF\xBB\xBF"))
	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(out, "\xEF\xBB\xBF")), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Invoice Number,"))
	assert.True(t, strings.HasPrefix(lines[1], "INV-2026-0001,"))
	assert.True(t, strings.HasPrefix(lines[3], "Total,"))
}

func TestReportService_ExportTaxSummary(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	svc := service.NewReportService(repo, new(mocks.MockObjectStorage), "bucket", reportConfig())
	r := marchRange(t)

	repo.On("ListForReport", mock.Anything, mock.Anything, r.From, r.To).Return(reportInvoices(), nil)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportTaxSummary(context.Background(), uuid.New(), r, &buf))
	assert.Contains(t, buf.String(), "18%")
}

func TestReportService_ArchiveSalesRegister(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewReportService(repo, storage, "bucket", reportConfig())
	businessID := uuid.New()
	r := marchRange(t)

	repo.On("ListForReport", mock.Anything, businessID, r.From, r.To).Return(reportInvoices(), nil)

	var uploaded port.UploadInput
	var body []byte
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Run(func(args mock.Arguments) {
			uploaded = args.Get(1).(port.UploadInput)
			body, _ = io.ReadAll(uploaded.Body)
		}).
		Return(&port.UploadOutput{}, nil)
	storage.On("GetPresignedURL", mock.Anything, "bucket", mock.AnythingOfType("string"), time.Hour).
		Return("https://s3.example.com/signed", nil)

	res, err := svc.ArchiveSalesRegister(context.Background(), businessID, r)

	require.NoError(t, err)
	assert.Equal(t, "https://s3.example.com/signed", res.URL)
	assert.Equal(t, uploaded.Key, res.Key)
	assert.True(t, strings.HasPrefix(res.Key, "reports/"+businessID.String()+"/"))
	assert.True(t, strings.HasSuffix(res.Key, "sales_register_2026-03-01_2026-03-31.csv"))
	assert.Equal(t, "bucket", uploaded.Bucket)
	assert.Equal(t, "sales_register_2026-03-01_2026-03-31.csv", uploaded.Filename)
	assert.Equal(t, int64(len(body)), uploaded.Size)
	assert.Contains(t, string(body), "INV-2026-0002")
	storage.AssertExpectations(t)
}

func TestReportService_ArchiveSalesRegister_UploadFails(t *testing.T) {
	repo := new(mocks.MockInvoiceRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewReportService(repo, storage, "bucket", reportConfig())
	r := marchRange(t)

	repo.On("ListForReport", mock.Anything, mock.Anything, r.From, r.To).Return([]domain.Invoice{}, nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	res, err := svc.ArchiveSalesRegister(context.Background(), uuid.New(), r)
	assert.Nil(t, res)
	assert.Error(t, err)
	storage.AssertNotCalled(t, "GetPresignedURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
