package config

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config carries all process-wide settings. It is loaded once in main and
// injected at construction time; nothing reads the environment ad hoc.
type Config struct {
	Port        string
	DatabaseURL string
	FrontendURL string

	SessionSecret string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// ZapierWebhookURL may be empty; the webhook client reports that as a
	// distinct configuration error instead of silently skipping sends.
	ZapierWebhookURL string

	// AutomationSchedule is a cron spec for the reminder sweep.
	AutomationSchedule string
}

func Load() Config {
	return Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3000"),
		SessionSecret:      getEnv("SESSION_SECRET", "supersecretkey"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/auth/google/callback"),
		ZapierWebhookURL:   os.Getenv("ZAPIER_WEBHOOK_URL"),
		AutomationSchedule: getEnv("AUTOMATION_SCHEDULE", "0 * * * *"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the Postgres connection used by the whole app.
func InitDB(cfg Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}
	return db
}
