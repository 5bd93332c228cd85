package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	ContentAPIURL  string        // base URL of the portal content API (ex: https://api.portal.ext)
	ContentTimeout time.Duration // per-request timeout for content API calls

	CategoriesFile   string        // path to categories.yaml (optional, empty = category checks disabled)
	ReloadInterval   time.Duration // interval to reload categories.yaml (default: 24h)
	FlushInterval    time.Duration // interval to flush degraded-mode slots back to redis (default: 30s)
	SweepInterval    time.Duration // interval to sweep expired delete confirmations (default: 1m)
	DeleteConfirmTTL time.Duration // how long a delete request may wait for confirmation (default: 2m)

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	// Rate limiting on mutation endpoints
	RateLimitBurst  int // token bucket capacity per caller
	RateLimitPerMin int // refill rate per caller per minute

	AllowedOrigins []string // CORS origins for the portal front end (empty = allow any)
	AllowedHosts   []string // optional, restrict admin endpoints to specific Host headers
	AdminCIDRS     []string // optional, restrict admin endpoints to specific IPs/CIDRs
	TrustProxy     bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	// Local development reads a .env file; missing is fine.
	_ = godotenv.Load()

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("STASH_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("STASH_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("STASH_LOG_LEVEL", "info"),
		PrettyLog: mustBool("STASH_PRETTY_LOG", true),

		// Content API
		ContentAPIURL:  requireEnv("STASH_CONTENT_API_URL"),
		ContentTimeout: mustDuration("STASH_CONTENT_TIMEOUT", 5*time.Second),

		// Categories file and background intervals
		CategoriesFile:   getenv("STASH_CATEGORIES_FILE", ""), // Optional, empty = category checks disabled
		ReloadInterval:   mustDuration("STASH_RELOAD_SOURCE_INTERVAL", 24*time.Hour),
		FlushInterval:    mustDuration("STASH_FLUSH_INTERVAL", 30*time.Second),
		SweepInterval:    mustDuration("STASH_SWEEP_INTERVAL", time.Minute),
		DeleteConfirmTTL: mustDuration("STASH_DELETE_CONFIRM_TTL", 2*time.Minute),

		// Redis settings
		RedisAddr:             requireEnv("STASH_REDIS_ADDR"),
		RedisUser:             getenv("STASH_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("STASH_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("STASH_REDIS_PASSWORD", ""),
		RedisDB:               requireEnvInt("STASH_REDIS_DB"),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Rate limiting
		RateLimitBurst:  getenvInt("STASH_RATE_LIMIT_BURST", 10),
		RateLimitPerMin: getenvInt("STASH_RATE_LIMIT_PER_MIN", 30),

		// Access restrictions
		AllowedOrigins: splitAndTrim(getenv("STASH_ALLOWED_ORIGINS", "")),
		AllowedHosts:   splitAndTrim(getenv("STASH_ALLOWED_HOSTS", "")),
		AdminCIDRS:     splitAndTrim(getenv("STASH_ADMIN_CIDRS", "")),
		TrustProxy:     mustBool("STASH_TRUST_PROXY", true),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: STASH_REDIS_PASSWORD is required when STASH_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
