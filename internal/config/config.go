package config

import (
	"os"
	"strconv"
)

// Settings holds environment-driven application configuration.
// Load .env via godotenv in main before calling Load.
type Settings struct {
	// Company
	CompanyName string

	// Quote
	QuoteValidityDays int

	// Twilio
	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioWhatsAppFrom string

	// Admin API
	AdminEmail    string
	AdminPassword string
	JWTSecret     string

	// Runtime
	UseMemoryStore           bool
	Environment              string
	DisableWebhookValidation bool
	Port                     string
}

// Load reads settings from environment variables, applying defaults.
func Load() *Settings {
	return &Settings{
		CompanyName:              getEnv("COMPANY_NAME", "Minha Empresa"),
		QuoteValidityDays:        getEnvInt("QUOTE_VALIDITY_DAYS", 10),
		TwilioAccountSID:         os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:          os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioWhatsAppFrom:       getEnv("TWILIO_WHATSAPP_FROM", "whatsapp:+14155238886"),
		AdminEmail:               os.Getenv("ADMIN_EMAIL"),
		AdminPassword:            os.Getenv("ADMIN_PASSWORD"),
		JWTSecret:                os.Getenv("JWT_SECRET"),
		UseMemoryStore:           os.Getenv("USE_MEMORY_STORE") == "true",
		Environment:              getEnv("ENVIRONMENT", "development"),
		DisableWebhookValidation: os.Getenv("DISABLE_WEBHOOK_VALIDATION") == "true",
		Port:                     getEnv("PORT", "8080"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
