package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string
	LogLevel    string

	// Database
	DatabaseURL string

	// JWT
	JWTSecret          string
	JWTExpirationHours int

	// Seeded administrator (the receipt form has a single operator account)
	AdminUsername string
	AdminPassword string

	// Login rate limit, attempts per minute per client IP
	LoginRatePerMinute int

	// Storage
	StoragePath string

	// Background Workers
	WorkerCount int

	// CORS
	AllowedOrigins []string

	// Amount in words
	AmountMaxWhole int64
	AmountStrict   bool
	CurrencySymbol string

	// Documents
	PDFEngine  string
	LogoPath   string
	IssuerName string

	// Cache for rendered documents; empty means in-memory
	RedisAddr string

	// Email (Resend)
	EnableEmailNotifications bool
	ResendAPIKey             string
	FromEmail                string

	// Sentry
	SentryDSN string
}

// PDF engines
const (
	PDFEngineGofpdf      = "gofpdf"
	PDFEngineWkhtmltopdf = "wkhtmltopdf"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRATION_HOURS", 24)
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("LOGIN_RATE_PER_MINUTE", 10)
	v.SetDefault("STORAGE_PATH", "./storage")
	v.SetDefault("WORKER_COUNT", 2)
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("AMOUNT_MAX_WHOLE", 200)
	v.SetDefault("AMOUNT_STRICT", false)
	v.SetDefault("CURRENCY_SYMBOL", "Q")
	v.SetDefault("PDF_ENGINE", PDFEngineGofpdf)
	v.SetDefault("LOGO_PATH", "")
	v.SetDefault("ISSUER_NAME", "Generador de Recibos")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("ENABLE_EMAIL_NOTIFICATIONS", false)
	v.SetDefault("RESEND_API_KEY", "")
	v.SetDefault("FROM_EMAIL", "recibos@example.com")
	v.SetDefault("SENTRY_DSN", "")
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Port:                     v.GetString("PORT"),
		Environment:              v.GetString("ENVIRONMENT"),
		LogLevel:                 v.GetString("LOG_LEVEL"),
		DatabaseURL:              v.GetString("DATABASE_URL"),
		JWTSecret:                v.GetString("JWT_SECRET"),
		JWTExpirationHours:       v.GetInt("JWT_EXPIRATION_HOURS"),
		AdminUsername:            v.GetString("ADMIN_USERNAME"),
		AdminPassword:            v.GetString("ADMIN_PASSWORD"),
		LoginRatePerMinute:       v.GetInt("LOGIN_RATE_PER_MINUTE"),
		StoragePath:              v.GetString("STORAGE_PATH"),
		WorkerCount:              v.GetInt("WORKER_COUNT"),
		AllowedOrigins:           splitList(v.GetString("ALLOWED_ORIGINS")),
		AmountMaxWhole:           v.GetInt64("AMOUNT_MAX_WHOLE"),
		AmountStrict:             v.GetBool("AMOUNT_STRICT"),
		CurrencySymbol:           v.GetString("CURRENCY_SYMBOL"),
		PDFEngine:                strings.ToLower(v.GetString("PDF_ENGINE")),
		LogoPath:                 v.GetString("LOGO_PATH"),
		IssuerName:               v.GetString("ISSUER_NAME"),
		RedisAddr:                v.GetString("REDIS_ADDR"),
		EnableEmailNotifications: v.GetBool("ENABLE_EMAIL_NOTIFICATIONS"),
		ResendAPIKey:             v.GetString("RESEND_API_KEY"),
		FromEmail:                v.GetString("FROM_EMAIL"),
		SentryDSN:                v.GetString("SENTRY_DSN"),
	}

	// Validate required configuration
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.IsProduction() {
		if cfg.JWTSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		if cfg.AdminPassword == "" {
			return nil, fmt.Errorf("ADMIN_PASSWORD is required in production")
		}
	}

	// Development defaults
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-in-production"
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "admin"
	}

	if cfg.PDFEngine != PDFEngineGofpdf && cfg.PDFEngine != PDFEngineWkhtmltopdf {
		return nil, fmt.Errorf("PDF_ENGINE must be %q or %q, got %q", PDFEngineGofpdf, PDFEngineWkhtmltopdf, cfg.PDFEngine)
	}

	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// splitList reads a comma-separated value, dropping blanks
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
