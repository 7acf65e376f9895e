// internal/config/config.go
//
// Runtime configuration read from the environment.
// main loads a `.env` file (godotenv) before calling FromEnv, so both work.
//
// Environment variables (defaults in parentheses):
//   PORT (5175), LOG_LEVEL (info), CLIENT_ORIGIN (http://localhost:5173)
//   DB_PATH (in-memory), CATALOG_FILE (embedded catalog)
//   GEMINI_API_KEY or API_KEY (unset: advisor answers with fallbacks), ADVISOR_MODEL
//   JWT_SECRET, ACCESS_PASSPHRASE_HASH (unset: advisor routes are open),
//   ACCESS_TOKEN_DAYS (14), COOKIE_NAME (tfos_token)
//   ADVISOR_RATE_PER_MINUTE (6), ADVISOR_BURST (2), REQUEST_TIMEOUT (10s)

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/robalobadob/terraform-os/internal/advisor"
	"github.com/robalobadob/terraform-os/internal/db"
)

// Config is the full set of server settings.
type Config struct {
	Port         string
	LogLevel     string
	ClientOrigin string

	DBPath      string
	CatalogFile string

	GeminiAPIKey string
	AdvisorModel string

	JWTSecret            string
	AccessPassphraseHash string // bcrypt hash; empty disables the access gate
	AccessTokenDays      int
	CookieName           string
	Production           bool // secure cookies

	AdvisorRatePerMinute int
	AdvisorBurst         int
	RequestTimeout       time.Duration
}

// DevJWTSecret signs tokens when JWT_SECRET is unset.
const DevJWTSecret = "dev_secret_change_me"

// FromEnv reads Config from the process environment.
func FromEnv() Config {
	c := Config{
		Port:                 getEnv("PORT", "5175"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		ClientOrigin:         getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		DBPath:               getEnv("DB_PATH", db.MemoryDSN),
		CatalogFile:          os.Getenv("CATALOG_FILE"),
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", os.Getenv("API_KEY")),
		AdvisorModel:         getEnv("ADVISOR_MODEL", advisor.DefaultModel),
		JWTSecret:            getEnv("JWT_SECRET", DevJWTSecret),
		AccessPassphraseHash: os.Getenv("ACCESS_PASSPHRASE_HASH"),
		AccessTokenDays:      getEnvInt("ACCESS_TOKEN_DAYS", 14),
		CookieName:           getEnv("COOKIE_NAME", "tfos_token"),
		Production:           os.Getenv("APP_ENV") == "production",
		AdvisorRatePerMinute: getEnvInt("ADVISOR_RATE_PER_MINUTE", 6),
		AdvisorBurst:         getEnvInt("ADVISOR_BURST", 2),
		RequestTimeout:       getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
	}
	return c
}

// AccessGate reports whether the advisor routes require a token.
func (c Config) AccessGate() bool { return c.AccessPassphraseHash != "" }

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getEnvInt parses a positive integer, falling back to def.
func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getEnvDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
