package config

import (
	"os"
)

// Config collects every externally supplied setting. It is built once in
// main and handed to the components that need it, instead of each package
// reading the environment on its own.
type Config struct {
	DatabaseURL   string
	SessionSecret string
	SiteURL       string
	Port          string
	AvatarDir     string

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string
}

func Load() *Config {
	return &Config{
		DatabaseURL:   getenv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=blogpost port=5432 sslmode=disable"),
		SessionSecret: getenv("SESSION_SECRET", "secret_key_change_me"),
		SiteURL:       getenv("SITE_URL", "http://localhost:8080"),
		Port:          getenv("PORT", "8080"),
		AvatarDir:     getenv("AVATAR_DIR", "./web/static/profile_pics"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      os.Getenv("SMTP_PORT"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPass:      os.Getenv("SMTP_PASS"),
		SMTPFrom:      os.Getenv("SMTP_FROM"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
