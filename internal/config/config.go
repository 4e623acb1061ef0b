package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Database
	DatabaseURL string

	// Session storage; when set, sessions (and parked submission drafts)
	// live in Redis instead of instance memory.
	RedisURL string

	// Directory API consumed by the submission workflow. Defaults to this
	// instance's own API.
	APIBaseURL string

	// Reverse geocoding (Nominatim-compatible)
	GeocodeBaseURL          string
	GeocodeBackfillEnabled  bool
	GeocodeBackfillInterval time.Duration

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string

	// OIDC
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string

	// Session
	SessionSecret string // Used for signing cookies (min 32 chars)

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Features
	RequireLoginToEdit bool // Gate entry create/edit behind OIDC login

	// Results
	ResultsCacheSize int // Bound of the in-memory recent-results collection

	// Email (SMTP)
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string

	EmailNotifyOnSubmit            bool // Notify moderators on each new entry
	EmailNotifyOnDuplicateOverride bool // Notify when duplicates were confirmed away

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "Mapdex"
	SiteTagline string // env: SITE_TAGLINE
	SiteFooter  string // env: SITE_FOOTER
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/mapdex?sslmode=disable"),
		RedisURL:    getEnv("REDIS_URL", ""),

		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:3000"),

		GeocodeBaseURL:          getEnv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocodeBackfillEnabled:  getEnv("GEOCODE_BACKFILL_ENABLED", "") != "",
		GeocodeBackfillInterval: getDuration("GEOCODE_BACKFILL_INTERVAL", 15*time.Minute),

		TLSEnabled:  getEnv("TLS_ENABLED", "") != "",
		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		OIDCIssuer:       getEnv("OIDC_ISSUER", ""),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:  getEnv("OIDC_REDIRECT_URL", "http://localhost:3000/auth/callback"),

		SessionSecret: getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		CORSOrigins:   getEnv("CORS_ORIGINS", ""),

		RequireLoginToEdit: getEnv("REQUIRE_LOGIN_TO_EDIT", "") != "",

		ResultsCacheSize: getInt("RESULTS_CACHE_SIZE", 50),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "Mapdex"),

		EmailNotifyOnSubmit:            getEnv("EMAIL_NOTIFY_ON_SUBMIT", "") != "",
		EmailNotifyOnDuplicateOverride: getEnv("EMAIL_NOTIFY_ON_DUPLICATE_OVERRIDE", "") != "",

		SiteTitle:   getEnv("SITE_TITLE", "Mapdex"),
		SiteTagline: getEnv("SITE_TAGLINE", "The map of places worth finding"),
		SiteFooter:  getEnv("SITE_FOOTER", "Mapdex - The map of places worth finding"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsEmailEnabled returns true if SMTP is configured.
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

// IsOIDCEnabled returns true if an OIDC issuer is configured.
func (c *Config) IsOIDCEnabled() bool {
	return c.OIDCIssuer != ""
}
