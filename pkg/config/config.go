package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type AppConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Port           string
	GinMode        string

	DBDriver       string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string
	DBLogQueries   bool

	RateLimitEnabled bool
	RateLimitConfigs map[string]RateLimitConfig

	EnforceHTTPS bool

	MetricsPort  string
	OTLPEndpoint string
	LokiURL      string

	ShutdownTimeout time.Duration
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		ServiceName:    "userapp",
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Port:           "5000",
		GinMode:        "debug",

		DBDriver:     DriverSQLite,
		DatabasePath: "users.db",

		RateLimitEnabled: true,
		RateLimitConfigs: map[string]RateLimitConfig{
			"GET /users": {
				Requests: 100,
				Window:   time.Minute,
			},
			"POST /users": {
				Requests: 20,
				Window:   time.Minute,
			},
			"PUT /users/:id": {
				Requests: 20,
				Window:   time.Minute,
			},
			"DELETE /users/:id": {
				Requests: 20,
				Window:   time.Minute,
			},
			"DELETE /users": {
				Requests: 10,
				Window:   time.Minute,
			},
		},
		EnforceHTTPS: false,

		MetricsPort: "9091",

		ShutdownTimeout: 10 * time.Second,
	}
}

// LoadFromEnv returns the default config overlaid with the process
// environment. A .env file in the working directory is loaded first when
// present; variables already set win over it.
func LoadFromEnv() *AppConfig {
	_ = godotenv.Load()

	config := GetDefaultConfig()

	config.Port = envString("PORT", config.Port)
	config.GinMode = envString("GIN_MODE", config.GinMode)
	config.Environment = envString("APP_ENV", config.Environment)

	config.DBDriver = strings.ToLower(envString("DB_DRIVER", config.DBDriver))
	config.DatabasePath = envString("DATABASE_PATH", config.DatabasePath)
	config.DatabaseURL = envString("DATABASE_URL", config.DatabaseURL)
	config.MigrationsPath = envString("MIGRATIONS_PATH", config.MigrationsPath)
	config.DBLogQueries = envBool("DB_LOG_QUERIES", config.DBLogQueries)

	config.RateLimitEnabled = envBool("RATE_LIMIT_ENABLED", config.RateLimitEnabled)
	config.EnforceHTTPS = envBool("ENFORCE_HTTPS", config.EnforceHTTPS) || config.GinMode == "release"

	config.MetricsPort = envString("METRICS_PORT", config.MetricsPort)
	config.OTLPEndpoint = envString("OTLP_ENDPOINT", config.OTLPEndpoint)
	config.LokiURL = envString("LOKI_URL", config.LokiURL)

	if config.GinMode == "release" {
		config.Environment = "production"
	}

	return config
}

func envString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}

	return fallback
}

func envBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)

	if !ok || value == "" {
		return fallback
	}

	parsed, err := strconv.ParseBool(value)

	if err != nil {
		return fallback
	}

	return parsed
}
