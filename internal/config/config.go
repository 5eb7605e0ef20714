package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read once at startup and passed
// into the components that need it.
type Config struct {
	Port string

	// Either DatabaseURL or the individual DB_* parameters.
	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	DBSSLMode   string

	TelegramToken string
	PollInterval  time.Duration

	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string

	DeepseekAPIKey string

	LogLevel       string
	AllowedOrigins []string
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	// Missing .env is fine in production; everything comes from the
	// environment there.
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnvDefault("PORT", "8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DBHost:            os.Getenv("DB_HOST"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBPort:            os.Getenv("DB_PORT"),
		DBSSLMode:         getEnvDefault("DB_SSL_MODE", "disable"),
		TelegramToken:     os.Getenv("TELEGRAM_BOT_TOKEN"),
		SendGridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		SendGridFromEmail: os.Getenv("SENDGRID_NOTIFICATIONS_FROM_EMAIL"),
		SendGridFromName:  os.Getenv("SENDGRID_FROM_NAME"),
		DeepseekAPIKey:    os.Getenv("DEEPSEEK_API_KEY"),
		LogLevel:          getEnvDefault("LOG_LEVEL", "info"),
		AllowedOrigins:    splitList(getEnvDefault("ALLOWED_ORIGINS", "*")),
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("config: TELEGRAM_BOT_TOKEN is not set")
	}
	if cfg.DatabaseURL == "" && (cfg.DBHost == "" || cfg.DBUser == "" || cfg.DBName == "" || cfg.DBPort == "") {
		return nil, fmt.Errorf("config: set DATABASE_URL or DB_HOST/DB_USER/DB_PASSWORD/DB_NAME/DB_PORT")
	}

	interval := getEnvDefault("POLL_INTERVAL", "10s")
	d, err := time.ParseDuration(interval)
	if err != nil || d <= 0 {
		return nil, fmt.Errorf("config: invalid POLL_INTERVAL %q", interval)
	}
	cfg.PollInterval = d

	return cfg, nil
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC connect_timeout=10",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func getEnvDefault(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
