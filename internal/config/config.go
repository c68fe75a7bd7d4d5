package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	MaxRequests    int

	// Logging
	LogLevel    string
	LogFormat   string
	LogDir      string
	Environment string
	ServiceName string
	Version     string

	// Storage
	StorageBackend    string
	AutoMigrate       bool
	TxIsolation       string
	DBURL             string
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration
	CatalogFile       string

	// Caches
	SessionCacheSize int
	SessionCacheTTL  time.Duration
	CatalogCacheTTL  time.Duration

	// Background work
	BoosterSweepInterval   time.Duration
	SessionCleanupInterval time.Duration
	EventLogRetentionDays  int
	WorkerCount            int
	WorkerQueueSize        int

	// Event publishing
	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// A missing .env is fine, real env vars may be set
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),
		MaxRequests:    getEnvAsInt("MAX_REQUESTS_PER_WINDOW", DefaultMaxRequestsPerWindow),

		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "text")),
		LogDir:      getEnv("LOG_DIR", "logs"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", "dev"),

		StorageBackend:    strings.ToLower(getEnv("STORAGE_BACKEND", StorageBackendPostgres)),
		AutoMigrate:       getEnvAsBool("AUTO_MIGRATE", true),
		TxIsolation:       strings.ToLower(getEnv("TX_ISOLATION", IsolationReadCommitted)),
		DBURL:             getEnv("DB_URL", ""),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", DefaultDBName),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),
		CatalogFile:       getEnv("CATALOG_FILE", ""),

		SessionCacheSize: getEnvAsInt("SESSION_CACHE_SIZE", DefaultSessionCacheSize),
		SessionCacheTTL:  getEnvAsDuration("SESSION_CACHE_TTL", DefaultSessionCacheTTL),
		CatalogCacheTTL:  getEnvAsDuration("CATALOG_CACHE_TTL", DefaultCatalogCacheTTL),

		BoosterSweepInterval:   getEnvAsDuration("BOOSTER_SWEEP_INTERVAL", DefaultBoosterSweepInterval),
		SessionCleanupInterval: getEnvAsDuration("SESSION_CLEANUP_INTERVAL", DefaultSessionCleanupInterval),
		EventLogRetentionDays:  getEnvAsInt("EVENTLOG_RETENTION_DAYS", DefaultEventLogRetentionDays),
		WorkerCount:            getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		WorkerQueueSize:        getEnvAsInt("WORKER_QUEUE_SIZE", DefaultWorkerQueueSize),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", DefaultEventDeadLetterPath),
	}

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	switch cfg.StorageBackend {
	case StorageBackendPostgres, StorageBackendMemory:
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q: expected %s or %s", cfg.StorageBackend, StorageBackendPostgres, StorageBackendMemory)
	}

	switch cfg.TxIsolation {
	case IsolationReadCommitted, IsolationRepeatableRead, IsolationSerializable:
	default:
		return nil, fmt.Errorf("invalid TX_ISOLATION %q", cfg.TxIsolation)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to defaultValue when unset or invalid
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration parses a time.Duration variable, falling back to defaultValue when unset or invalid
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string. DB_URL wins when set.
func (c *Config) GetDBConnString() string {
	if c.DBURL != "" {
		return c.DBURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// UsesPostgres reports whether the postgres backend is selected
func (c *Config) UsesPostgres() bool {
	return c.StorageBackend == StorageBackendPostgres
}
