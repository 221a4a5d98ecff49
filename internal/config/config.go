package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Completion modes for a reservation: instant checkout link or emailed invoice.
const (
	ModeCheckout = "checkout"
	ModeInvoice  = "invoice"
)

type Config struct {
	// Server
	Port string

	// Google Calendar (service account)
	GoogleClientEmail string
	GooglePrivateKey  string
	CalDirectID       string
	CalBlockID        string

	// Square
	SquareAccessToken  string
	SquareLocationID   string
	SquareWebhookKey   string
	SquareWebhookURL   string
	SquareBaseURL      string
	PaymentRedirectURL string

	// Gemini assistant
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	// Booking policy
	CompletionMode string
	MaxStayNights  int
	StandardRate   int
	PremiumRate    int
	ExtraGuestRate int
	BaseOccupancy  int

	// Hold TTLs per completion mode.
	// Operators must keep these comfortably smaller than SweepLookBack,
	// and larger than the expected payment completion latency: the sweeper
	// deletes expired holds without consulting Square first.
	CheckoutHoldTTL time.Duration
	InvoiceHoldTTL  time.Duration

	// Invoice terms
	InvoiceDueInDays    int
	InvoiceReminderDays []int

	// Sweeper
	SweepSchedule string
	SweepLookBack time.Duration
	SweepHorizon  time.Duration

	// Owner notifications
	OwnerEmail       string
	OwnerPhone       string
	SendGridAPIKey   string
	SendGridFrom     string
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		GoogleClientEmail: getEnv("GOOGLE_CLIENT_EMAIL", ""),
		// Netlify-style env vars store the key with literal \n sequences.
		GooglePrivateKey: strings.ReplaceAll(getEnv("GOOGLE_PRIVATE_KEY", ""), `\n`, "\n"),
		CalDirectID:      getEnv("CAL_DIRECT_ID", ""),
		CalBlockID:       getEnv("CAL_BLOCK_ID", ""),

		SquareAccessToken:  getEnv("SQUARE_ACCESS_TOKEN", ""),
		SquareLocationID:   getEnv("SQUARE_LOCATION_ID", ""),
		SquareWebhookKey:   getEnv("SQUARE_WEBHOOK_SIGNATURE_KEY", ""),
		SquareWebhookURL:   getEnv("SQUARE_WEBHOOK_URL", ""),
		SquareBaseURL:      getEnv("SQUARE_BASE_URL", "https://connect.squareup.com"),
		PaymentRedirectURL: getEnv("PAYMENT_REDIRECT_URL", "https://terra-shimanami.com/?payment=success"),

		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash-preview-09-2025"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),

		CompletionMode: getEnv("COMPLETION_MODE", ModeCheckout),
		MaxStayNights:  getEnvAsInt("MAX_STAY_NIGHTS", 4),
		StandardRate:   getEnvAsInt("STANDARD_RATE", 20000),
		PremiumRate:    getEnvAsInt("PREMIUM_RATE", 30000),
		ExtraGuestRate: getEnvAsInt("EXTRA_GUEST_RATE", 5000),
		BaseOccupancy:  getEnvAsInt("BASE_OCCUPANCY", 4),

		CheckoutHoldTTL: getEnvAsDuration("CHECKOUT_HOLD_TTL", "30m"),
		InvoiceHoldTTL:  getEnvAsDuration("INVOICE_HOLD_TTL", "72h"),

		InvoiceDueInDays:    getEnvAsInt("INVOICE_DUE_IN_DAYS", 7),
		InvoiceReminderDays: []int{-3, -1},

		SweepSchedule: getEnv("SWEEP_SCHEDULE", "*/15 * * * *"),
		SweepLookBack: getEnvAsDuration("SWEEP_LOOK_BACK", "336h"),
		SweepHorizon:  getEnvAsDuration("SWEEP_HORIZON", "8880h"),

		OwnerEmail:       getEnv("OWNER_EMAIL", ""),
		OwnerPhone:       getEnv("OWNER_PHONE", ""),
		SendGridAPIKey:   getEnv("SENDGRID_API_KEY", ""),
		SendGridFrom:     getEnv("SENDGRID_FROM_EMAIL", ""),
		TwilioAccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFromNumber: getEnv("TWILIO_FROM_NUMBER", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	if duration, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
