package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"billbook/internal/config"
	"billbook/internal/email/noop"
	"billbook/internal/email/ses"
	"billbook/internal/handler"
	"billbook/internal/logger"
	"billbook/internal/port"
	"billbook/internal/repository/postgres"
	"billbook/internal/router"
	"billbook/internal/service"
	s3storage "billbook/internal/storage/s3"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Setup(logger.LogConfig{Level: cfg.Log.Level, Format: cfg.Log.Format}); err != nil {
		return err
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	startLog := logger.WithComponent("server")

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Initialize repositories
	businessRepo := postgres.NewBusinessRepo(db)
	customerRepo := postgres.NewCustomerRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	hsnRepo := postgres.NewHSNRepo(db)

	// Initialize storage and email
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}
	emailSender, err := newEmailSender(&cfg.Email)
	if err != nil {
		return err
	}

	// Initialize services
	ctx := context.Background()
	hsnSvc, err := service.LoadHSNService(ctx, hsnRepo)
	if err != nil {
		return err
	}
	startLog.Info().Int("hsn_codes", hsnSvc.Size()).Msg("HSN master loaded")

	authSvc := service.NewAuthService(cfg.JWT)
	businessSvc := service.NewBusinessService(businessRepo, cfg.Invoice)
	customerSvc := service.NewCustomerService(customerRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, businessRepo, customerRepo, hsnSvc, emailSender, cfg.Invoice, cfg.Email.FrontendURL)
	reportSvc := service.NewReportService(invoiceRepo, s3Client, cfg.S3.Bucket, cfg.Report)

	// Initialize handlers
	r := router.Setup(
		authSvc,
		cfg.CORS.AllowedOrigins,
		handler.NewBusinessHandler(businessSvc, authSvc),
		handler.NewCustomerHandler(customerSvc),
		handler.NewInvoiceHandler(invoiceSvc),
		handler.NewReportHandler(reportSvc),
		handler.NewHSNHandler(hsnSvc),
		handler.NewHealthHandler(db, hsnSvc.Size()),
	)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		startLog.Info().Str("addr", srv.Addr).Str("environment", cfg.Server.Environment).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		startLog.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	startLog.Info().Msg("server stopped")
	return nil
}

func newEmailSender(cfg *config.EmailConfig) (port.EmailSender, error) {
	switch cfg.Provider {
	case "ses":
		sender, err := ses.NewSESSender(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SES sender: %w", err)
		}
		return sender, nil
	case "", "noop":
		return noop.NewNoopSender(), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}
