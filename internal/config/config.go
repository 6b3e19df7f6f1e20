package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the process reads from the environment. It is
// loaded once in main and passed down; no other package touches os.Getenv.
type Config struct {
	Port         string
	StoreBackend string // "postgres" or "redis"

	DatabaseDSN   string
	RedisAddr     string
	RedisPassword string

	SMTPHost  string
	SMTPUser  string
	SMTPPass  string
	FromEmail string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	JWTSecret string
	OTPTTL    time.Duration
	TokenTTL  time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getenv("PORT", "8080"),
		StoreBackend: getenv("STORE_BACKEND", "postgres"),

		DatabaseDSN:   os.Getenv("DATABASE_DSN"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		SMTPHost:  os.Getenv("SMTP_HOST"),
		SMTPUser:  os.Getenv("SMTP_USER"),
		SMTPPass:  os.Getenv("SMTP_PASS"),
		FromEmail: os.Getenv("FROM_EMAIL"),

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_PHONE_NUMBER"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		OTPTTL:    time.Duration(getenvInt("OTP_TTL_MIN", 10)) * time.Minute,
		TokenTTL:  time.Duration(getenvInt("ACCESS_TOKEN_EXPIRES_MIN", 60)) * time.Minute,
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET required")
	}
	switch cfg.StoreBackend {
	case "postgres":
		if cfg.DatabaseDSN == "" {
			return nil, fmt.Errorf("DATABASE_DSN required")
		}
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR required")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
