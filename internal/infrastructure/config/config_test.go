package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "skirent-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "skirent", cfg.Database.DBName)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "catalog.product-events", cfg.Kafka.ProductTopic)
	assert.Equal(t, "rental-reconciliation", cfg.Kafka.ConsumerGroup)
	assert.True(t, cfg.Event.IdempotencyEnabled, "dedup must be on out of the box")
	assert.Equal(t, 24*time.Hour, cfg.Event.IdempotencyTTL)
	assert.Equal(t, 5, cfg.Metrics.LowStockThreshold)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadIdempotencyOptOut(t *testing.T) {
	t.Setenv("SKIRENT_EVENT_IDEMPOTENCY_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Event.IdempotencyEnabled)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SKIRENT_DATABASE_HOST", "db.internal")
	t.Setenv("SKIRENT_KAFKA_PRODUCT_TOPIC", "catalog.products.v2")
	t.Setenv("SKIRENT_METRICS_LOW_STOCK_THRESHOLD", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "catalog.products.v2", cfg.Kafka.ProductTopic)
	assert.Equal(t, 3, cfg.Metrics.LowStockThreshold)
}

func TestValidate(t *testing.T) {
	t.Run("idle conns cannot exceed open conns", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.Database.MaxOpenConns = 5
		cfg.Database.MaxIdleConns = 10

		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
	})

	t.Run("production requires database password", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.App.Env = "production"
		cfg.Database.SSLMode = "require"

		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password")
	})

	t.Run("production rejects sslmode disable", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.App.Env = "production"
		cfg.Database.Password = "secret"

		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "skirent",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	assert.NotContains(t, dsn, "p@ss/word", "password must be escaped")
}
