package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Ingest   IngestConfig
	Resolver ResolverConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	CORSOrigins           string
}

// PostgresConfig holds primary store connection values. An empty DSN puts
// the service in local file mode.
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

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters. An empty AdminKeyHash
// disables auth on the mutating routes.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	AdminKeyHash          string
}

// IngestConfig locates the batch ingestion directories and schedule.
type IngestConfig struct {
	InputDir     string
	ArchiveDir   string
	DataDir      string
	CronSchedule string
	RunOnStartup bool
}

// ResolverConfig tunes the read-time source resolution.
type ResolverConfig struct {
	ScanPageSize         int
	RemoteTimeoutSeconds int
	CacheTTLSeconds      int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "ticketflow"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			CORSOrigins:           getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000"),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			AdminKeyHash:          os.Getenv("AUTH_ADMIN_KEY_HASH"),
		},
		Ingest: IngestConfig{
			InputDir:     getEnv("INGEST_INPUT_DIR", "inputs"),
			ArchiveDir:   getEnv("INGEST_ARCHIVE_DIR", "archive"),
			DataDir:      getEnv("INGEST_DATA_DIR", "data"),
			CronSchedule: getEnv("INGEST_CRON_SCHEDULE", "*/5 * * * *"),
			RunOnStartup: getEnvAsBool("INGEST_RUN_ON_STARTUP", true),
		},
		Resolver: ResolverConfig{
			ScanPageSize:         getEnvAsInt("RESOLVER_SCAN_PAGE_SIZE", 500),
			RemoteTimeoutSeconds: getEnvAsInt("RESOLVER_REMOTE_TIMEOUT_SECONDS", 5),
			CacheTTLSeconds:      getEnvAsInt("RESOLVER_CACHE_TTL_SECONDS", 30),
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

// IsProduction reports whether the service runs in production mode.
func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

// Enabled reports whether the mutating routes require a bearer token.
func (a AuthConfig) Enabled() bool {
	return a.AdminKeyHash != ""
}

// StoreFile returns the path of the persisted local store.
func (i IngestConfig) StoreFile() string {
	return filepath.Join(i.DataDir, "tickets.json")
}

// RemoteTimeout returns the bounded timeout applied to primary store calls.
func (r ResolverConfig) RemoteTimeout() time.Duration {
	if r.RemoteTimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(r.RemoteTimeoutSeconds) * time.Second
}

// CacheTTL returns the resolver cache lifetime; zero disables caching.
func (r ResolverConfig) CacheTTL() time.Duration {
	if r.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(r.CacheTTLSeconds) * time.Second
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
