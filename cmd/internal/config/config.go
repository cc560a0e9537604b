package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string
	DatabasePath    string
	LogLevel        string
	MailProvider    string
	SMTPHost        string
	SMTPPort        int
	SMTPUsername    string
	SMTPPassword    string
	MailFrom        string
	MailFromName    string
	SendGridAPIKey  string
	GeminiAPIKey    string
	GeminiModel     string
	SubmitRateLimit float64
}

// Load reads .env files (if any) and then the environment. A missing
// .env is reported through the returned error but Config is still valid.
func Load(files ...string) (*Config, error) {
	envErr := godotenv.Load(files...)

	cfg := &Config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":5000"),
		DatabasePath:    getEnv("DATABASE_PATH", "./appointments.db"),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
		MailProvider:    strings.ToLower(getEnv("MAIL_PROVIDER", "smtp")),
		SMTPHost:        getEnv("SMTP_HOST", "smtp.example.com"),
		SMTPPort:        getEnvAsInt("SMTP_PORT", 587),
		SMTPUsername:    getEnv("SMTP_USERNAME", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		MailFrom:        getEnv("MAIL_FROM", ""),
		MailFromName:    getEnv("MAIL_FROM_NAME", "Elderly Companion"),
		SendGridAPIKey:  getEnv("SENDGRID_API_KEY", ""),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", ""),
		SubmitRateLimit: getEnvAsFloat("SUBMIT_RATE_LIMIT", 2),
	}
	if cfg.MailFrom == "" {
		cfg.MailFrom = cfg.SMTPUsername
	}
	return cfg, envErr
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}
