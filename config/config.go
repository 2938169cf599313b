package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string

	// Pretalx source API
	PretalxBaseURL string
	PretalxToken   string
	Event          string

	// Local dataset layout and published URLs
	DataDir    string
	WebsiteURL string

	// Optional run archive; archiving is disabled when empty
	DBUrl string

	// Dataset API
	ServeToken         string
	CORSAllowedOrigins []string

	// Transform report email
	EmailProvider         string
	EmailFromAddress      string
	EmailFromName         string
	ReportRecipients      []string
	AWSRegion             string
	AWSAccessKeyID        string
	AWSSecretAccessKey    string
	SESInsecureSkipVerify bool
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file if not in production
	// We don't return error here because in production .env might not exist
	// and we rely on system environment variables
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment: env,
		Port:        getEnv("PORT", "8080"),

		PretalxBaseURL: getEnv("PRETALX_BASE_URL", "https://pretalx.com/api"),
		PretalxToken:   os.Getenv("PRETALX_TOKEN"),
		Event:          getEnv("PRETALX_EVENT", "democon-2026"),

		DataDir:    getEnv("DATA_DIR", "./data"),
		WebsiteURL: getEnv("WEBSITE_URL", "http://localhost:3000"),

		DBUrl: os.Getenv("DATABASE_URL"),

		ServeToken:         os.Getenv("SERVE_TOKEN"),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),

		EmailProvider:         getEnv("EMAIL_PROVIDER", "noop"),
		EmailFromAddress:      os.Getenv("EMAIL_FROM_ADDRESS"),
		EmailFromName:         os.Getenv("EMAIL_FROM_NAME"),
		ReportRecipients:      splitList(os.Getenv("REPORT_RECIPIENTS")),
		AWSRegion:             os.Getenv("AWS_REGION"),
		AWSAccessKeyID:        os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey:    os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SESInsecureSkipVerify: os.Getenv("SES_INSECURE_SKIP_VERIFY") == "true",
	}

	return cfg, nil
}

// ArchiveEnabled reports whether a run archive database is configured.
func (c *Config) ArchiveEnabled() bool {
	return c.DBUrl != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitList parses a comma-separated env value into trimmed non-empty items.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
