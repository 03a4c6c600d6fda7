package router

import (
	"github.com/gin-gonic/gin"

	"billbook/internal/handler"
	"billbook/internal/middleware"
	"billbook/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	allowedOrigins []string,
	businessH *handler.BusinessHandler,
	customerH *handler.CustomerHandler,
	invoiceH *handler.InvoiceHandler,
	reportH *handler.ReportHandler,
	hsnH *handler.HSNHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public: registering a business returns its first access token
	v1.POST("/businesses", businessH.Register)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.GET("/business", businessH.Get)
	protected.PUT("/business", businessH.Update)

	customers := protected.Group("/customers")
	customers.POST("", customerH.Create)
	customers.GET("", customerH.List)
	customers.GET("/:id", customerH.GetByID)
	customers.PUT("/:id", customerH.Update)
	customers.DELETE("/:id", customerH.Delete)

	invoices := protected.Group("/invoices")
	invoices.POST("", invoiceH.Create)
	invoices.GET("", invoiceH.List)
	invoices.GET("/:id", invoiceH.GetByID)
	invoices.PATCH("/:id", invoiceH.Update)
	invoices.POST("/:id/payments", invoiceH.RecordPayment)
	invoices.GET("/:id/payments", invoiceH.ListPayments)

	reports := protected.Group("/reports")
	reports.GET("/sales-register", reportH.SalesRegister)
	reports.GET("/sales-register/export", reportH.ExportSalesRegister)
	reports.POST("/sales-register/archive", reportH.ArchiveSalesRegister)
	reports.GET("/gstr1", reportH.GSTR1)
	reports.GET("/tax-summary", reportH.TaxSummary)
	reports.GET("/tax-summary/export", reportH.ExportTaxSummary)

	protected.GET("/hsn/:code", hsnH.Lookup)

	return r
}
