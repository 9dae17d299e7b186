package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the gateway.
type Config struct {
	App      AppConfig
	Backend  BackendConfig
	Cookies  CookieConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Recent   RecentConfig
	Logger   LoggerConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	PublicURL             string
	WebDir                string
	RequestTimeoutSeconds int
}

// BackendConfig locates the business API behind the gateway.
type BackendConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// CookieConfig defines session cookie lifetimes and flags.
type CookieConfig struct {
	AccessTTLSeconds  int
	RefreshTTLSeconds int
	Secure            bool
}

// PostgresConfig holds DB connection values for the audit store.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RecentConfig controls the per-user recent orders list.
type RecentConfig struct {
	TTLHours int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "pos-gateway"),
			Env:                   env,
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "3000"),
			Version:               getEnv("APP_VERSION", "dev"),
			PublicURL:             publicURL(),
			WebDir:                os.Getenv("WEB_DIR"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Backend: BackendConfig{
			BaseURL:        strings.TrimRight(os.Getenv("NEST_API_URL"), "/"),
			TimeoutSeconds: getEnvAsInt("NEST_API_TIMEOUT_SECONDS", 15),
		},
		Cookies: CookieConfig{
			AccessTTLSeconds:  getEnvAsInt("AUTH_ACCESS_COOKIE_TTL_SECONDS", 60*15),
			RefreshTTLSeconds: getEnvAsInt("AUTH_REFRESH_COOKIE_TTL_SECONDS", 60*60*24*7),
			Secure:            getEnvAsBool("AUTH_COOKIE_SECURE", env != "development"),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 5)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 1)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Recent: RecentConfig{
			TTLHours: getEnvAsInt("RECENT_ORDERS_TTL_HOURS", 24*7),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// IsDevelopment reports whether the gateway runs in local development.
func (a AppConfig) IsDevelopment() bool {
	return a.Env == "development"
}

// Configured reports whether a backend address was provided.
func (b BackendConfig) Configured() bool {
	return b.BaseURL != ""
}

// Timeout returns the transport timeout for backend calls.
func (b BackendConfig) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// AccessTTL returns the access cookie lifetime.
func (c CookieConfig) AccessTTL() time.Duration {
	return time.Duration(c.AccessTTLSeconds) * time.Second
}

// RefreshTTL returns the refresh cookie lifetime.
func (c CookieConfig) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTTLSeconds) * time.Second
}

// TTL returns how long an idle recent orders list is kept.
func (r RecentConfig) TTL() time.Duration {
	if r.TTLHours <= 0 {
		return 0
	}
	return time.Duration(r.TTLHours) * time.Hour
}

// publicURL prefers NEXT_PUBLIC_APP_URL, then APP_URL.
func publicURL() string {
	if v := os.Getenv("NEXT_PUBLIC_APP_URL"); v != "" {
		return strings.TrimRight(v, "/")
	}
	return strings.TrimRight(os.Getenv("APP_URL"), "/")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
