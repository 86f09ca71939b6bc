package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all process-wide settings. It is built once at startup and
// passed explicitly to every component; nothing reads the environment after
// LoadConfig returns.
type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string

	// PayHere hosted-checkout credentials and redirect URLs.
	MerchantID      string
	MerchantSecret  string
	ReturnURL       string
	CancelURL       string
	NotifyURL       string
	DefaultCurrency string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:          os.Getenv("DB_HOST"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		DBPort:          os.Getenv("DB_PORT"),
		AppPort:         os.Getenv("APP_PORT"),
		AppEnv:          os.Getenv("APP_ENV"),
		MerchantID:      os.Getenv("PAYHERE_MERCHANT_ID"),
		MerchantSecret:  os.Getenv("PAYHERE_MERCHANT_SECRET"),
		ReturnURL:       os.Getenv("PAYMENT_RETURN_URL"),
		CancelURL:       os.Getenv("PAYMENT_CANCEL_URL"),
		NotifyURL:       os.Getenv("PAYMENT_NOTIFY_URL"),
		DefaultCurrency: os.Getenv("PAYMENT_CURRENCY"),
	}

	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "LKR"
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}
	if cfg.MerchantSecret == "" {
		log.Fatal("PAYHERE_MERCHANT_SECRET must be set")
	}

	return cfg
}
