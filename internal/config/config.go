// internal/config/config.go
package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	LogLevel    string

	// Admin gate. A shared password, not a user system.
	AdminPassword   string
	JWTSecret       string
	AdminSessionTTL time.Duration

	RateLimitMax      int
	RateLimitWindow   time.Duration
	RateLimitFailOpen bool
	RateLimitStore    string
	RedisURL          string

	AdsCacheTTL  time.Duration
	LinkCacheTTL time.Duration

	// LegacyListLimit caps GET /api/submissions. 0 lists everything.
	LegacyListLimit int

	CORSAllowedOrigins []string

	// TrustProxyHeaders takes the client address from X-Forwarded-For or
	// X-Real-IP. Only enable it behind a proxy that overwrites those headers.
	TrustProxyHeaders bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("failed to load .env file")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		host := getEnv("PSQL_HOST", "localhost")
		port := getEnv("PSQL_PORT", "5432")
		user := getEnv("PSQL_USER", "postgres")
		password := getEnv("PSQL_PASSWORD", "")
		dbName := getEnv("PSQL_DB_NAME", "smsguide")

		u := &url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(user, password),
			Host:   host + ":" + port,
			Path:   dbName,
		}
		q := u.Query()
		q.Set("sslmode", getEnv("PSQL_SSLMODE", "disable"))
		u.RawQuery = q.Encode()
		databaseURL = u.String()
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		DatabaseURL: databaseURL,
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AdminSessionTTL: getEnvDuration("ADMIN_SESSION_TTL", 2*time.Hour),

		RateLimitMax:      getEnvInt("RATE_LIMIT_MAX", 10),
		RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW", time.Hour),
		RateLimitFailOpen: getEnvBool("RATE_LIMIT_FAIL_OPEN", false),
		RateLimitStore:    getEnv("RATE_LIMIT_STORE", "postgres"),
		RedisURL:          getEnv("REDIS_URL", "redis://localhost:6379/0"),

		AdsCacheTTL:  getEnvDuration("ADS_CACHE_TTL", 5*time.Minute),
		LinkCacheTTL: getEnvDuration("LINK_CACHE_TTL", time.Hour),

		LegacyListLimit: getEnvInt("LEGACY_LIST_LIMIT", 100),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		TrustProxyHeaders:  getEnvBool("TRUST_PROXY_HEADERS", false),
	}
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		logrus.WithField("key", key).Warn("invalid integer in environment, using default")
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
		logrus.WithField("key", key).Warn("invalid boolean in environment, using default")
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("90m") or a bare number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	logrus.WithField("key", key).Warn("invalid duration in environment, using default")
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
