package config

import (
	"os"
	"strings"
	"time"
)

const defaultSessionTTL = 24 * time.Hour

type Config struct {
	Environment    string   // ENV: production, development, etc.
	Port           string
	DatabaseURL    string   // empty: in-memory store
	RedisURI       string   // empty: in-process session cache
	SessionSecret  string
	SessionTTL     time.Duration
	CookieSecure   bool
	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS
	StaticDir      string
	LogLevel       string
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", ""))
	if err != nil || sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}

	return &Config{
		Environment:    env,
		Port:           getEnv("PORT", "3000"),
		DatabaseURL:    getEnv("DATABASE_URL", getEnv("POSTGRES_URI", "")),
		RedisURI:       getEnv("REDIS_URI", ""),
		SessionSecret:  getEnv("SESSION_SECRET", "mindful-space-secret-key-change-in-production"),
		SessionTTL:     sessionTTL,
		CookieSecure:   parseBool(getEnv("COOKIE_SECURE", "false")),
		AllowedOrigins: allowedOrigins,
		StaticDir:      getEnv("STATIC_DIR", "./public"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

// IsDevelopment returns true when ENV is set to "development".
func (c *Config) IsDevelopment() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
