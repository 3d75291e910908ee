package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/recibos")
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, int64(200), cfg.AmountMaxWhole)
	assert.False(t, cfg.AmountStrict)
	assert.Equal(t, "Q", cfg.CurrencySymbol)
	assert.Equal(t, PDFEngineGofpdf, cfg.PDFEngine)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, "admin", cfg.AdminPassword)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/recibos")
	t.Setenv("AMOUNT_MAX_WHOLE", "999")
	t.Setenv("AMOUNT_STRICT", "true")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("PDF_ENGINE", "WKHTMLTOPDF")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(999), cfg.AmountMaxWhole)
	assert.True(t, cfg.AmountStrict)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, PDFEngineWkhtmltopdf, cfg.PDFEngine)
}

func TestLoad_Validation(t *testing.T) {
	t.Run("missing database url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		_, err := Load()
		assert.EqualError(t, err, "DATABASE_URL is required")
	})

	t.Run("production requires secrets", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/recibos")
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("JWT_SECRET", "")
		_, err := Load()
		assert.EqualError(t, err, "JWT_SECRET is required in production")

		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("ADMIN_PASSWORD", "")
		_, err = Load()
		assert.EqualError(t, err, "ADMIN_PASSWORD is required in production")
	})

	t.Run("unknown pdf engine", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/recibos")
		t.Setenv("ENVIRONMENT", "development")
		t.Setenv("PDF_ENGINE", "latex")
		_, err := Load()
		assert.Error(t, err)
	})
}
