package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	// Enrollment / payments
	MinCoursePrice     int // minimum payable course price in cents
	PendingEnrollTTL   int // hours before an unpaid enrollment is cancelled
	EnrollRateLimit    int // enroll attempts allowed per window
	EnrollRateWindow   int // rate-limit window in seconds
	PaymentApiURL      string
	PaymentApiKey      string
	CheckoutSuccessURL string
	CheckoutCancelURL  string

	// Video conferencing provider
	VideoApiURL string
	VideoApiKey string

	EmailSender string
	Password    string // SMTP Password
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		MinCoursePrice:     getEnvInt("MIN_COURSE_PRICE", 100),
		PendingEnrollTTL:   getEnvInt("PENDING_ENROLL_TTL_HOURS", 24),
		EnrollRateLimit:    getEnvInt("ENROLL_RATE_LIMIT", 5),
		EnrollRateWindow:   getEnvInt("ENROLL_RATE_WINDOW_SECONDS", 60),
		PaymentApiURL:      getEnv("PAYMENT_API_URL", "https://api.payments.example.com/v1"),
		PaymentApiKey:      getEnv("PAYMENT_API_KEY", "defaultSecret"),
		CheckoutSuccessURL: getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:3000/checkout/success"),
		CheckoutCancelURL:  getEnv("CHECKOUT_CANCEL_URL", "http://localhost:3000/checkout/cancel"),

		VideoApiURL: getEnv("VIDEO_API_URL", "https://api.video.example.com/v1"),
		VideoApiKey: getEnv("VIDEO_API_KEY", "defaultSecret"),

		EmailSender: getEnv("EMAIL_SENDER", "defaultSecret"),
		Password:    getEnv("PASSWORD", "defaultSecret"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.PaymentApiKey == "defaultSecret" {
		log.Println("Warning: Using default PAYMENT_API_KEY. Checkout calls will be rejected by the provider.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
