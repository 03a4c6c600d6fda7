package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "BILLBOOK"

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	S3      S3Config
	Log     LogConfig
	CORS    CORSConfig
	Email   EmailConfig
	Invoice InvoiceConfig
	Report  ReportConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// S3Config holds object storage settings for report archives.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// InvoiceConfig holds invoice issuing settings.
type InvoiceConfig struct {
	// MaxIssueAttempts bounds both candidate numbers tried per allocation
	// and whole-transaction retries after a number conflict.
	MaxIssueAttempts int    `mapstructure:"max_issue_attempts"`
	DefaultPrefix    string `mapstructure:"default_prefix"`
	DefaultTemplate  string `mapstructure:"default_template"`
}

// ReportConfig holds report export settings.
type ReportConfig struct {
	ExportPrefix  string        `mapstructure:"export_prefix"`
	PresignExpiry time.Duration `mapstructure:"presign_expiry"`
}

// Load reads configuration from an optional .env file and environment
// variables with the BILLBOOK_ prefix.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "billbook")
	v.SetDefault("db.password", "billbook_secret")
	v.SetDefault("db.name", "billbook_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "24h")
	v.SetDefault("jwt.issuer", "billbook")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "billbook-reports")
	v.SetDefault("s3.endpoint", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "billing@billbook.local")
	v.SetDefault("email.from_name", "Billbook")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Invoice defaults
	v.SetDefault("invoice.max_issue_attempts", 5)
	v.SetDefault("invoice.default_prefix", "INV")
	v.SetDefault("invoice.default_template", "classic")

	// Report defaults
	v.SetDefault("report.export_prefix", "reports")
	v.SetDefault("report.presign_expiry", "1h")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                "BILLBOOK_SERVER_PORT",
		"server.read_timeout":        "BILLBOOK_SERVER_READ_TIMEOUT",
		"server.write_timeout":       "BILLBOOK_SERVER_WRITE_TIMEOUT",
		"server.environment":         "BILLBOOK_SERVER_ENVIRONMENT",
		"db.host":                    "BILLBOOK_DB_HOST",
		"db.port":                    "BILLBOOK_DB_PORT",
		"db.user":                    "BILLBOOK_DB_USER",
		"db.password":                "BILLBOOK_DB_PASSWORD",
		"db.name":                    "BILLBOOK_DB_NAME",
		"db.sslmode":                 "BILLBOOK_DB_SSLMODE",
		"db.max_open":                "BILLBOOK_DB_MAX_OPEN",
		"db.max_idle":                "BILLBOOK_DB_MAX_IDLE",
		"jwt.secret":                 "BILLBOOK_JWT_SECRET",
		"jwt.access_expiry":          "BILLBOOK_JWT_ACCESS_EXPIRY",
		"jwt.issuer":                 "BILLBOOK_JWT_ISSUER",
		"s3.region":                  "BILLBOOK_S3_REGION",
		"s3.bucket":                  "BILLBOOK_S3_BUCKET",
		"s3.endpoint":                "BILLBOOK_S3_ENDPOINT",
		"s3.access_key":              "BILLBOOK_S3_ACCESS_KEY",
		"s3.secret_key":              "BILLBOOK_S3_SECRET_KEY",
		"log.level":                  "BILLBOOK_LOG_LEVEL",
		"log.format":                 "BILLBOOK_LOG_FORMAT",
		"cors.allowed_origins":       "BILLBOOK_CORS_ALLOWED_ORIGINS",
		"email.provider":             "BILLBOOK_EMAIL_PROVIDER",
		"email.region":               "BILLBOOK_EMAIL_REGION",
		"email.from_address":         "BILLBOOK_EMAIL_FROM_ADDRESS",
		"email.from_name":            "BILLBOOK_EMAIL_FROM_NAME",
		"email.frontend_url":         "BILLBOOK_EMAIL_FRONTEND_URL",
		"invoice.max_issue_attempts": "BILLBOOK_INVOICE_MAX_ISSUE_ATTEMPTS",
		"invoice.default_prefix":     "BILLBOOK_INVOICE_DEFAULT_PREFIX",
		"invoice.default_template":   "BILLBOOK_INVOICE_DEFAULT_TEMPLATE",
		"report.export_prefix":       "BILLBOOK_REPORT_EXPORT_PREFIX",
		"report.presign_expiry":      "BILLBOOK_REPORT_PRESIGN_EXPIRY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// PaaS hosts set PORT; it wins unless BILLBOOK_SERVER_PORT is explicit.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BILLBOOK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:            v.GetString("jwt.secret"),
		AccessTokenExpiry: v.GetDuration("jwt.access_expiry"),
		Issuer:            v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}
	cfg.Invoice = InvoiceConfig{
		MaxIssueAttempts: v.GetInt("invoice.max_issue_attempts"),
		DefaultPrefix:    strings.TrimSpace(v.GetString("invoice.default_prefix")),
		DefaultTemplate:  v.GetString("invoice.default_template"),
	}
	cfg.Report = ReportConfig{
		ExportPrefix:  strings.Trim(v.GetString("report.export_prefix"), "/"),
		PresignExpiry: v.GetDuration("report.presign_expiry"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the services cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Invoice.MaxIssueAttempts < 1 {
		errs = append(errs, fmt.Errorf("invoice.max_issue_attempts must be at least 1, got %d", c.Invoice.MaxIssueAttempts))
	}
	if c.Invoice.DefaultPrefix == "" {
		errs = append(errs, errors.New("invoice.default_prefix must not be empty"))
	}
	switch c.Invoice.DefaultTemplate {
	case "classic", "modern", "minimal":
	default:
		errs = append(errs, fmt.Errorf("invoice.default_template %q is not a known template", c.Invoice.DefaultTemplate))
	}
	if c.Server.Environment == "production" && c.JWT.Secret == "change-me-in-production" {
		errs = append(errs, errors.New("jwt.secret must be set in production"))
	}
	if c.Report.PresignExpiry <= 0 {
		errs = append(errs, errors.New("report.presign_expiry must be positive"))
	}
	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
