package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/cache"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/config"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/models"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/services"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/storage"
	"github.com/Henry-Tercero-MH/Generador-Facturas/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Sends a sample receipt through Resend to check the email configuration.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Setup("development", "debug")

	if cfg.ResendAPIKey == "" || cfg.FromEmail == "" {
		log.Fatal("RESEND_API_KEY and FROM_EMAIL must be set")
	}

	toEmail := os.Getenv("TEST_EMAIL_TO")
	if toEmail == "" {
		log.Fatal("TEST_EMAIL_TO is not set")
	}

	amounts, err := services.NewAmountService(cfg)
	if err != nil {
		log.Fatalf("Failed to build amount converter: %v", err)
	}
	store, err := storage.NewLocalStorage(os.TempDir())
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	export := services.NewExportService(amounts, services.NewImageService(cfg.LogoPath), cache.NewMemoryCache(1), store, cfg)
	emailService := services.NewEmailService(cfg, export, amounts, nil, nil)

	amount := decimal.RequireFromString("150.25")
	words, err := amounts.Words(amount)
	if err != nil {
		log.Fatalf("Failed to convert amount: %v", err)
	}

	receipt := &models.Receipt{
		Number:        "PRUEBA-0001",
		Amount:        amount,
		AmountInWords: words.AmountInWords,
		ReceivedFrom:  "Cliente de prueba",
		Concept:       "Prueba de envío de recibo",
		Location:      "Guatemala",
		Date:          time.Now().Format(models.ReceiptDateLayout),
		ReceivedBy:    "Administrador",
		Status:        models.ReceiptStatusIssued,
		UpdatedAt:     time.Now(),
	}

	log.Printf("Sending receipt %s to %s...", receipt.Number, toEmail)
	if err := emailService.SendReceipt(context.Background(), receipt, toEmail, "Este es un envío de prueba."); err != nil {
		log.Fatalf("Failed to send receipt: %v", err)
	}
	log.Println("Receipt email sent successfully!")
}
