package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"billbook/internal/csvexport"
	"billbook/internal/logger"
	"billbook/internal/report"
	"billbook/internal/service"
)

// ReportHandler handles report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// parseRange reads the required from/to query parameters.
func parseRange(c *gin.Context) (report.Range, bool) {
	r, err := report.ParseRange(c.Query("from"), c.Query("to"))
	if err != nil {
		HandleError(c, err)
		return report.Range{}, false
	}
	return r, true
}

// SalesRegister lists every invoice in the range with totals.
// @Summary      Sales register
// @Tags         reports
// @Produce      json
// @Param        from query string true "Start date (YYYY-MM-DD)"
// @Param        to query string true "End date (YYYY-MM-DD), inclusive"
// @Success      200 {object} APIResponse{data=report.SalesRegister}
// @Failure      400 {object} APIResponse
// @Failure      401 {object} APIResponse
// @Security     BearerAuth
// @Router       /reports/sales-register [get]
func (h *ReportHandler) SalesRegister(c *gin.Context) {
	businessID, ok := businessFromContext(c)
	if !ok {
		return
	}
	r, ok := parseRange(c)
	if !ok {
		return
	}

	reg, err := h.reportService.SalesRegister(c.Request.Context(), businessID, r)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, reg)
}

// GSTR1 groups outward supplies into the B2B, B2CS and B2CL tables.
// @Summary      GSTR-1 outward supplies
// @Tags         reports
// @Produce      json
// @Param        from query string true "Start date (YYYY-MM-DD)"
// @Param        to query string true "End date (YYYY-MM-DD), inclusive"
// @Success      200 {object} APIResponse{data=report.GSTR1}
// @Failure      400 {object} APIResponse
// @Security     BearerAuth
// @Router       /reports/gstr1 [get]
func (h *ReportHandler) GSTR1(c *gin.Context) {
	businessID, ok := businessFromContext(c)
	if !ok {
		return
	}
	r, ok := parseRange(c)
	if !ok {
		return
	}

	out, err := h.reportService.GSTR1(c.Request.Context(), businessID, r)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, out)
}

// TaxSummary handles GET /api/v1/reports/tax-summary
func (h *ReportHandler) TaxSummary(c *gin.Context) {
	businessID, ok := businessFromContext(c)
	if !ok {
		return
	}
	r, ok := parseRange(c)
	if !ok {
		return
	}

	sum, err := h.reportService.TaxSummary(c.Request.Context(), businessID, r)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sum)
}

// ExportSalesRegister streams the sales register as a CSV download.
// @Summary      Export sales register as CSV
// @Tags         reports
// @Produce      text/csv
// @Param        from query string true "Start date (YYYY-MM-DD)"
// @Param        to query string true "End date (YYYY-MM-DD), inclusive"
// @Success      200 {file} file
// @Failure      400 {object} APIResponse
// @Security     BearerAuth
// @Router       /reports/sales-register/export [get]
func (h *ReportHandler) ExportSalesRegister(c *gin.Context) {
	businessID, ok := businessFromContext(c)
	if !ok {
		return
	}
	r, ok := parseRange(c)
	if !ok {
		return
	}

	setCSVHeaders(c, csvexport.BuildFilename("sales_register", r))
	if err := h.reportService.ExportSalesRegister(c.Request.Context(), businessID, r, c.Writer); err != nil {
		abortExport(c, err)
	}
}

// ExportTaxSummary handles GET /api/v1/reports/tax-summary/export
func (h *ReportHandler) ExportTaxSummary(c *gin.Context) {
	businessID, ok := businessFromContext(c)
	if !ok {
		return
	}
	r, ok := parseRange(c)
	if !ok {
		return
	}

	setCSVHeaders(c, csvexport.BuildFilename("tax_summary", r))
	if err := h.reportService.ExportTaxSummary(c.Request.Context(), businessID, r, c.Writer); err != nil {
		abortExport(c, err)
	}
}

// ArchiveSalesRegister stores the CSV in object storage and returns a
// time-limited download link.
// @Summary      Archive sales register
// @Tags         reports
// @Produce      json
// @Param        from query string true "Start date (YYYY-MM-DD)"
// @Param        to query string true "End date (YYYY-MM-DD), inclusive"
// @Success      201 {object} APIResponse{data=service.ArchiveResult}
// @Failure      400 {object} APIResponse
// @Failure      500 {object} APIResponse
// @Security     BearerAuth
// @Router       /reports/sales-register/archive [post]
func (h *ReportHandler) ArchiveSalesRegister(c *gin.Context) {
	businessID, ok := businessFromContext(c)
	if !ok {
		return
	}
	r, ok := parseRange(c)
	if !ok {
		return
	}

	res, err := h.reportService.ArchiveSalesRegister(c.Request.Context(), businessID, r)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, res)
}

func setCSVHeaders(c *gin.Context, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}

// abortExport reports a failure. Once bytes are on the wire the status can no
// longer change, so the error is only logged.
func abortExport(c *gin.Context, err error) {
	if c.Writer.Written() {
		logger.FromContext(c.Request.Context()).Error().Err(err).
			Str("path", c.Request.URL.Path).
			Msg("report export interrupted")
		return
	}
	c.Header("Content-Type", "application/json; charset=utf-8")
	c.Header("Content-Disposition", "")
	HandleError(c, err)
}
