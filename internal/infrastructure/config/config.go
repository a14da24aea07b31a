// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store backends
const (
	StoreFile  = "file"
	StoreMongo = "mongo"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Metrics/health server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Provider
	SerpAPIKey      string
	SerpAPIGL       string
	SerpAPIHL       string
	ProviderTimeout time.Duration

	// Result store
	ResultStore   string
	StoreDir      string
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// Retention
	RetentionHours int
	SweepInterval  time.Duration

	// Airport reference data (optional)
	PostgresURI string

	// Normalization
	MissingAirportPolicy string

	// MCP
	ToolCallTimeout time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		SerpAPIKey:      getEnv("SERPAPI_KEY", ""),
		SerpAPIGL:       getEnv("SERPAPI_GL", "us"),
		SerpAPIHL:       getEnv("SERPAPI_HL", "en"),
		ProviderTimeout: time.Duration(getEnvAsInt("PROVIDER_TIMEOUT", 30)) * time.Second,

		ResultStore:   getEnv("RESULT_STORE", StoreFile),
		StoreDir:      getEnv("FLIGHT_STORE_DIR", ""),
		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "flightsearch"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		RetentionHours: getEnvAsInt("RETENTION_HOURS", 24),
		SweepInterval:  time.Duration(getEnvAsInt("SWEEP_INTERVAL", 3600)) * time.Second,

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		MissingAirportPolicy: getEnv("MISSING_AIRPORT_POLICY", "skip-flight"),

		ToolCallTimeout: time.Duration(getEnvAsInt("TOOL_CALL_TIMEOUT", 60)) * time.Second,
	}

	return config, nil
}

// RetentionAge returns the record retention window as a duration
func (c *Config) RetentionAge() time.Duration {
	return time.Duration(c.RetentionHours) * time.Hour
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
