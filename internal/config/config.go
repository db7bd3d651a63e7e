package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseURL    string
	MigrateOnStart bool

	// Auth
	Auth AuthConfig

	// Identity provider (hosted GoTrue)
	Supabase SupabaseConfig

	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Dashboard
	UpcomingHorizonDays int

	// S3 Storage
	S3 S3Config

	// Reminders
	SMTP     SMTPConfig
	Reminder ReminderConfig
}

// AuthConfig selects how bearer tokens are verified.
// With IssuerURL set tokens are RS256 verified against the issuer's JWKS, otherwise JWTSecret is used with HS256.
type AuthConfig struct {
	IssuerURL       string
	Audience        string
	JWTSecret       string
	RateLimitPerMin int
	RateLimitBurst  int
}

// SupabaseConfig holds the hosted auth service settings
type SupabaseConfig struct {
	URL     string
	AnonKey string
}

// S3Config holds AWS S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for MinIO/LocalStack local dev
}

// Enabled reports whether photo storage has been configured
func (c S3Config) Enabled() bool {
	return c.Bucket != "" && (c.Endpoint != "" || c.AccessKeyID != "")
}

// SMTPConfig holds outgoing mail settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether mail can be sent
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.From != ""
}

// Addr returns host:port
func (c SMTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ReminderConfig schedules due date reminder mails
type ReminderConfig struct {
	Cron     string
	Days     int
	Timezone string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrateOnStart: getEnvBool("MIGRATE_ON_START", true),
		Auth: AuthConfig{
			IssuerURL:       getEnv("AUTH_ISSUER_URL", ""),
			Audience:        getEnv("AUTH_AUDIENCE", "authenticated"),
			JWTSecret:       getEnv("AUTH_JWT_SECRET", ""),
			RateLimitPerMin: getEnvInt("AUTH_RATE_LIMIT", 20),
			RateLimitBurst:  getEnvInt("AUTH_RATE_BURST", 5),
		},
		Supabase: SupabaseConfig{
			URL:     getEnv("SUPABASE_URL", ""),
			AnonKey: getEnv("SUPABASE_ANON_KEY", ""),
		},
		Port:                getEnv("PORT", "8080"),
		CORSOrigins:         strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:                 getEnv("ENV", "development"),
		UpcomingHorizonDays: getEnvInt("UPCOMING_HORIZON_DAYS", 31),
		S3: S3Config{
			Region:          getEnv("S3_REGION", "ap-south-1"),
			Bucket:          getEnv("S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", ""),
		},
		Reminder: ReminderConfig{
			Cron:     getEnv("REMINDER_CRON", ""),
			Days:     getEnvInt("REMINDER_DAYS", 3),
			Timezone: getEnv("REMINDER_TIMEZONE", "Asia/Kolkata"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Auth.IssuerURL == "" && c.Auth.JWTSecret == "" {
		return fmt.Errorf("one of AUTH_ISSUER_URL or AUTH_JWT_SECRET is required")
	}
	if c.Supabase.URL == "" || c.Supabase.AnonKey == "" {
		return fmt.Errorf("SUPABASE_URL and SUPABASE_ANON_KEY are required")
	}
	if c.UpcomingHorizonDays < 1 {
		return fmt.Errorf("UPCOMING_HORIZON_DAYS must be at least 1")
	}
	if c.Reminder.Cron != "" && !c.SMTP.Enabled() {
		return fmt.Errorf("REMINDER_CRON requires SMTP_HOST and SMTP_FROM")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
