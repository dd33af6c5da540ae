package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the sandbox API server.
type Config struct {
	Server    ServerConfig
	Storage   string
	Database  DatabaseConfig
	Redis     RedisConfig
	Session   SessionConfig
	Kafka     KafkaConfig
	NewRelic  NewRelicConfig
	Telemetry TelemetryConfig
}

// ClientConfig holds configuration for the paydash terminal client.
type ClientConfig struct {
	APIURL      string
	Timeout     time.Duration
	SuccessRate float64
	Credentials CredentialConfig
	Redis       RedisConfig
	NewRelic    NewRelicConfig
	Telemetry   TelemetryConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis configuration. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SessionConfig holds sandbox authentication settings.
type SessionConfig struct {
	TTL   time.Duration
	Users map[string]string
}

// KafkaConfig holds event publishing settings. No brokers disables publishing.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// CredentialConfig selects where the client keeps its bearer token.
type CredentialConfig struct {
	Backend string
	Dir     string
	Secret  string
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// TelemetryConfig holds logging and tracing configuration.
type TelemetryConfig struct {
	LogLevel     string
	OTLPEndpoint string
}

// Storage backends for the sandbox.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Credential store backends for the client.
const (
	CredentialFile  = "file"
	CredentialRedis = "redis"
)

// Load loads sandbox configuration from environment variables.
func Load() *Config {
	loadDotEnv()

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Storage: getEnv("SANDBOX_STORAGE", StorageMemory),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "paydash"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Session: SessionConfig{
			TTL:   getDurationEnv("SESSION_TTL", 24*time.Hour),
			Users: parseUsers(getEnv("SANDBOX_USERS", "admin:admin123")),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_TOPIC", "payment.created"),
		},
		NewRelic: loadNewRelic("paydash-sandbox"),
		Telemetry: TelemetryConfig{
			LogLevel:     getEnv("LOG_LEVEL", "info"),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		},
	}
}

// LoadClient loads terminal client configuration from environment variables.
func LoadClient() *ClientConfig {
	loadDotEnv()

	return &ClientConfig{
		APIURL:      strings.TrimRight(getEnv("PAYDASH_API_URL", "http://localhost:8080"), "/"),
		Timeout:     getDurationEnv("PAYDASH_TIMEOUT", 15*time.Second),
		SuccessRate: getFloatEnv("PAYDASH_SUCCESS_RATE", 0.8),
		Credentials: CredentialConfig{
			Backend: getEnv("PAYDASH_CREDENTIAL_STORE", CredentialFile),
			Dir:     getEnv("PAYDASH_CREDENTIAL_DIR", defaultCredentialDir()),
			Secret:  getEnv("PAYDASH_CREDENTIAL_SECRET", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		NewRelic: loadNewRelic("paydash-client"),
		Telemetry: TelemetryConfig{
			LogLevel:     getEnv("PAYDASH_LOG_LEVEL", "warn"),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		},
	}
}

func loadNewRelic(defaultName string) NewRelicConfig {
	return NewRelicConfig{
		AppName:    getEnv("NEW_RELIC_APP_NAME", defaultName),
		LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
		Enabled:    getBoolEnv("NEW_RELIC_ENABLED", false),
	}
}

// loadDotEnv reads an optional .env file; real environment variables win.
func loadDotEnv() {
	_ = godotenv.Load()
}

func defaultCredentialDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".paydash"
	}
	return filepath.Join(home, ".paydash")
}

// parseUsers parses "user:pass,user2:pass2".
func parseUsers(raw string) map[string]string {
	users := make(map[string]string)
	for _, entry := range splitList(raw) {
		name, pass, ok := strings.Cut(entry, ":")
		if !ok || name == "" {
			continue
		}
		users[name] = pass
	}
	return users
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
