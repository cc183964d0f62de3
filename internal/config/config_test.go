package config

import (
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "settlement_ledger", cfg.Database.Database)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 14, cfg.Ledger.DefaultFreezePeriodDays)
	assert.True(t, decimal.NewFromInt(10).Equal(cfg.Ledger.DefaultCommissionPercent))
	assert.Equal(t, "env", cfg.Secrets.Provider)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 1, cfg.Database.MaxTxAttempts)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("LEDGER_DEFAULT_FREEZE_PERIOD_DAYS", "7")
	t.Setenv("LEDGER_DEFAULT_COMMISSION_PERCENT", "12.5")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("CRON_RATE_LIMIT_RPS", "0.5")
	t.Setenv("HTTP_PORT", "not-a-number")
	t.Setenv("DB_MAX_TX_ATTEMPTS", "3")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 7, cfg.Ledger.DefaultFreezePeriodDays)
	assert.Equal(t, "12.5", cfg.Ledger.DefaultCommissionPercent.String())
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 0.5, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 3, cfg.Database.MaxTxAttempts)
	assert.Equal(t, 8080, cfg.Server.HTTPPort, "unparsable values fall back to the default")
}

func TestLoadFromEnv_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing_password", env: map[string]string{}},
		{name: "bad_provider", env: map[string]string{"DB_PASSWORD": "x", "SECRET_MANAGER": "gcp"}},
		{name: "vault_without_address", env: map[string]string{"DB_PASSWORD_SECRET_PATH": "db", "SECRET_MANAGER": "vault"}},
		{name: "freeze_days", env: map[string]string{"DB_PASSWORD": "x", "LEDGER_DEFAULT_FREEZE_PERIOD_DAYS": "400"}},
		{name: "commission", env: map[string]string{"DB_PASSWORD": "x", "LEDGER_DEFAULT_COMMISSION_PERCENT": "101"}},
		{name: "commission_unparsable", env: map[string]string{"DB_PASSWORD": "x", "LEDGER_DEFAULT_COMMISSION_PERCENT": "ten"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DB_PASSWORD", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFromEnv()
			assert.Error(t, err)
		})
	}
}

func TestLoadFromEnv_PasswordFromSecretPath(t *testing.T) {
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("SECRET_MANAGER", "local")
	t.Setenv("DB_PASSWORD_SECRET_PATH", "db/password")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "db/password", cfg.Secrets.DBPasswordPath)
}

func TestDatabaseURL(t *testing.T) {
	db := DatabaseConfig{Host: "h", Port: 5432, User: "u", Password: "p", Database: "d", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", db.URL())

	db.Password = "p@ss word/1"
	parsed, err := url.Parse(db.URL())
	require.NoError(t, err)
	password, _ := parsed.User.Password()
	assert.Equal(t, "p@ss word/1", password)
	assert.Equal(t, "h:5432", parsed.Host)
}
