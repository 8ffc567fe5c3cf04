package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"OTEL_SERVICE_NAME", "ENVIRONMENT", "HTTP_PORT", "GRPC_PORT", "SESSION_TTL",
		"SESSION_CLEANUP_INTERVAL", "SEED_INVENTORY", "KAFKA_BROKERS", "KAFKA_TOPIC",
		"AUDIT_CONSUMER_ENABLED", "TRACING_ENABLED", "REQUEST_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "inventory-service", cfg.ServiceName)
	assert.Equal(t, "8082", cfg.HTTPPort)
	assert.Equal(t, "9092", cfg.GRPCPort)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, time.Minute, cfg.SessionCleanupInterval)
	assert.True(t, cfg.SeedInventory)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "inventory-items", cfg.KafkaTopic)
	assert.False(t, cfg.TracingEnabled)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("SESSION_TTL", "90s")
	t.Setenv("SEED_INVENTORY", "false")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("AUDIT_CONSUMER_ENABLED", "true")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, 90*time.Second, cfg.SessionTTL)
	assert.False(t, cfg.SeedInventory)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.AuditConsumerEnabled)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"SESSION_TTL", "forever"},
		{"SESSION_CLEANUP_INTERVAL", "-1s"},
		{"REQUEST_TIMEOUT", "0s"},
		{"SEED_INVENTORY", "maybe"},
		{"TRACING_ENABLED", "yes please"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_AuditConsumerNeedsBrokers(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUDIT_CONSUMER_ENABLED", "true")

	_, err := Load()
	assert.ErrorContains(t, err, "KAFKA_BROKERS")
}
