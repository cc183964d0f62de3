package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all application configuration
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Ledger      LedgerConfig
	Kafka       KafkaConfig
	Secrets     SecretsConfig
	Logger      LoggerConfig
	RateLimit   RateLimitConfig
	Environment string
	CronSecret  string
}

// ServerConfig holds the HTTP, gRPC health and metrics listeners
type ServerConfig struct {
	Host            string
	HTTPPort        int
	GRPCPort        int
	MetricsPort     int
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int32
	MinConns int32

	TxTimeout     time.Duration
	MaxTxAttempts int
}

// LedgerConfig holds account defaults and batch sizes
type LedgerConfig struct {
	DefaultFreezePeriodDays  int
	DefaultCommissionPercent decimal.Decimal
	RolloverBatchSize        int
	DispatchBatchSize        int
	OutboxMaxAttempts        int
}

// KafkaConfig holds the ledger event publisher configuration.
// An empty broker list disables publishing; events stay in the outbox.
type KafkaConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// SecretsConfig selects where the database password and cron secret come from
type SecretsConfig struct {
	Provider       string // env, aws, vault, local
	AWSRegion      string
	AWSEndpoint    string
	VaultAddress   string
	VaultToken     string
	VaultMountPath string
	LocalPath      string
	DBPasswordPath string
	CronSecretPath string
	CacheTTL       time.Duration
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// RateLimitConfig throttles the cron endpoints per client
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	commission, err := decimal.NewFromString(getEnv("LEDGER_DEFAULT_COMMISSION_PERCENT", "10"))
	if err != nil {
		return nil, fmt.Errorf("LEDGER_DEFAULT_COMMISSION_PERCENT: %w", err)
	}

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		CronSecret:  getEnv("CRON_SECRET", ""),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			HTTPPort:        getEnvAsInt("HTTP_PORT", 8080),
			GRPCPort:        getEnvAsInt("GRPC_PORT", 50051),
			MetricsPort:     getEnvAsInt("METRICS_PORT", 9090),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "settlement_ledger"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
			MaxConns: int32(getEnvAsInt("DB_MAX_CONNS", 25)),
			MinConns: int32(getEnvAsInt("DB_MIN_CONNS", 5)),

			TxTimeout:     getEnvAsDuration("DB_TX_TIMEOUT", 30*time.Second),
			MaxTxAttempts: getEnvAsInt("DB_MAX_TX_ATTEMPTS", 1),
		},
		Ledger: LedgerConfig{
			DefaultFreezePeriodDays:  getEnvAsInt("LEDGER_DEFAULT_FREEZE_PERIOD_DAYS", 14),
			DefaultCommissionPercent: commission,
			RolloverBatchSize:        getEnvAsInt("LEDGER_ROLLOVER_BATCH_SIZE", 100),
			DispatchBatchSize:        getEnvAsInt("LEDGER_DISPATCH_BATCH_SIZE", 100),
			OutboxMaxAttempts:        getEnvAsInt("LEDGER_OUTBOX_MAX_ATTEMPTS", 10),
		},
		Kafka: KafkaConfig{
			Brokers:      getEnvAsSlice("KAFKA_BROKERS", nil),
			Topic:        getEnv("KAFKA_TOPIC", "settlement-ledger-events"),
			WriteTimeout: getEnvAsDuration("KAFKA_WRITE_TIMEOUT", 10*time.Second),
		},
		Secrets: SecretsConfig{
			Provider:       getEnv("SECRET_MANAGER", "env"),
			AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
			AWSEndpoint:    getEnv("AWS_ENDPOINT", ""),
			VaultAddress:   getEnv("VAULT_ADDR", ""),
			VaultToken:     getEnv("VAULT_TOKEN", ""),
			VaultMountPath: getEnv("VAULT_MOUNT_PATH", "secret"),
			LocalPath:      getEnv("LOCAL_SECRETS_PATH", "./secrets"),
			DBPasswordPath: getEnv("DB_PASSWORD_SECRET_PATH", ""),
			CronSecretPath: getEnv("CRON_SECRET_PATH", ""),
			CacheTTL:       getEnvAsDuration("SECRET_CACHE_TTL", 5*time.Minute),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvAsFloat("CRON_RATE_LIMIT_RPS", 1),
			Burst:             getEnvAsInt("CRON_RATE_LIMIT_BURST", 5),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields that have no safe default
func (c *Config) Validate() error {
	switch c.Secrets.Provider {
	case "env", "aws", "vault", "local":
	default:
		return fmt.Errorf("SECRET_MANAGER must be one of env, aws, vault, local (got %q)", c.Secrets.Provider)
	}
	if c.Database.Password == "" && c.Secrets.DBPasswordPath == "" {
		return fmt.Errorf("DB_PASSWORD or DB_PASSWORD_SECRET_PATH is required")
	}
	if c.Secrets.Provider == "vault" && c.Secrets.VaultAddress == "" {
		return fmt.Errorf("VAULT_ADDR is required when SECRET_MANAGER=vault")
	}
	if c.Ledger.DefaultFreezePeriodDays < 1 || c.Ledger.DefaultFreezePeriodDays > 365 {
		return fmt.Errorf("LEDGER_DEFAULT_FREEZE_PERIOD_DAYS must be between 1 and 365")
	}
	if c.Ledger.DefaultCommissionPercent.IsNegative() || c.Ledger.DefaultCommissionPercent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("LEDGER_DEFAULT_COMMISSION_PERCENT must be between 0 and 100")
	}
	return nil
}

// IsProduction reports whether ENVIRONMENT=production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// URL returns the postgres:// connection URL with credentials escaped
func (c *DatabaseConfig) URL() string {
	return (&url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.Database,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}).String()
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice splits a comma separated value, dropping blanks
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
