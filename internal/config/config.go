package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	// Booking engine tuning
	BookingWindowDays int
	SlotFetchTimeout  time.Duration
	SubmitTimeout     time.Duration
	ScheduleCacheTTL  time.Duration

	// Outbound notifications
	BookingWebhookURL string
	WebhookTimeout    time.Duration
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string

	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		BookingWindowDays: getEnvAsInt("BOOKING_WINDOW_DAYS", 14),
		SlotFetchTimeout:  getEnvAsDuration("SLOT_FETCH_TIMEOUT", 12*time.Second),
		SubmitTimeout:     getEnvAsDuration("SUBMIT_TIMEOUT", 15*time.Second),
		ScheduleCacheTTL:  getEnvAsDuration("SCHEDULE_CACHE_TTL", 5*time.Minute),

		BookingWebhookURL: getEnv("BOOKING_WEBHOOK_URL", ""),
		WebhookTimeout:    getEnvAsDuration("BOOKING_WEBHOOK_TIMEOUT", 10*time.Second),
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "BrightCare Clinic"),

		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", nil),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
