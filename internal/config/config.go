package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/connection"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	Env      string
	Postgres connection.PostgresConfig

	RedisAddr   string
	KafkaBroker string
	JWTSecret   string

	ConnectRetries      int
	OutboxPollInterval  time.Duration
	OutboxRetention     time.Duration
	EmployeeTimeout     time.Duration
	RunLockTTL          time.Duration
	ActivityLogTopic    string
	ActivityLogBuffer   int
	ConsumerGroupPrefix string
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port: getEnv("PORT", "3000"),
		Env:  getEnv("APP_ENV", "development"),
		Postgres: connection.PostgresConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "payroll"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RedisAddr:           getEnv("REDIS_ADDR", ""),
		KafkaBroker:         getEnv("KAFKA_BROKER", ""),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		ConnectRetries:      getEnvInt("CONNECT_RETRIES", 5),
		OutboxPollInterval:  getEnvDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
		OutboxRetention:     getEnvDuration("OUTBOX_SENT_RETENTION", 72*time.Hour),
		EmployeeTimeout:     getEnvDuration("PAYROLL_EMPLOYEE_TIMEOUT", 10*time.Second),
		RunLockTTL:          getEnvDuration("PAYROLL_LOCK_TTL", 15*time.Minute),
		ActivityLogTopic:    getEnv("ACTIVITY_LOG_TOPIC", ""),
		ActivityLogBuffer:   getEnvInt("ACTIVITY_LOG_BUFFER", 256),
		ConsumerGroupPrefix: getEnv("KAFKA_CONSUMER_GROUP_PREFIX", "payroll"),
	}

	if cfg.JWTSecret == "" && !strings.EqualFold(cfg.Env, "test") {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.EmployeeTimeout <= 0 {
		return Config{}, fmt.Errorf("PAYROLL_EMPLOYEE_TIMEOUT must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
