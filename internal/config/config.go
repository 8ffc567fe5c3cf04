package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the inventory service configuration
type Config struct {
	ServiceName string
	Version     string
	Environment string
	LogLevel    string

	HTTPPort       string
	GRPCPort       string
	RequestTimeout time.Duration

	SessionTTL             time.Duration
	SessionCleanupInterval time.Duration
	SeedInventory          bool

	KafkaBrokers         []string
	KafkaTopic           string
	KafkaGroupID         string
	AuditConsumerEnabled bool

	TracingEnabled bool
	JaegerEndpoint string
}

// IsDevelopment reports whether console logging should be used
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{
		ServiceName:  getEnv("OTEL_SERVICE_NAME", "inventory-service"),
		Version:      getEnv("SERVICE_VERSION", "1.0.0"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		HTTPPort:     getEnv("HTTP_PORT", "8082"),
		GRPCPort:     getEnv("GRPC_PORT", "9092"),
		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "inventory-items"),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "inventory-audit"),

		JaegerEndpoint: getEnv("JAEGER_ENDPOINT", ""),
	}

	var err error
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SessionCleanupInterval, err = getDuration("SESSION_CLEANUP_INTERVAL", time.Minute); err != nil {
		return nil, err
	}
	if cfg.SeedInventory, err = getBool("SEED_INVENTORY", true); err != nil {
		return nil, err
	}
	if cfg.AuditConsumerEnabled, err = getBool("AUDIT_CONSUMER_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.TracingEnabled, err = getBool("TRACING_ENABLED", false); err != nil {
		return nil, err
	}

	if cfg.AuditConsumerEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("AUDIT_CONSUMER_ENABLED requires KAFKA_BROKERS")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, value)
	}
	return d, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return b, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
