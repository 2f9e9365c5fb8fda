package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig

	// Remote backend configuration (Postgres)
	Remote RemoteConfig

	// Local backend configuration (embedded key-value store)
	Local LocalConfig

	// JWT configuration
	JWT JWTConfig

	// CORS configuration
	CORS CORSConfig

	// Security configuration
	Security SecurityConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port        string
	Environment string // development, staging, production
	LogLevel    string // debug, info, warn, error
}

// RemoteConfig holds the remote backend connection settings. Remote mode is
// active only when both URL and AccessKey are present.
type RemoteConfig struct {
	URL                string
	AccessKey          string
	MaxConnections     int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

// LocalConfig holds the local persistence settings used when no remote
// backend is configured.
type LocalConfig struct {
	Path string // sqlite file holding the key-value slots
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret        string
	SessionExpiry time.Duration
}

// CORSConfig holds CORS-related configuration
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	BcryptCost       int
	EnableRequestLog bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			Environment: getEnv("ENVIRONMENT", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Remote: RemoteConfig{
			URL:                getEnv("REMOTE_DATABASE_URL", ""),
			AccessKey:          getEnv("REMOTE_ACCESS_KEY", ""),
			MaxConnections:     getEnvAsInt("REMOTE_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("REMOTE_MAX_IDLE_CONNECTIONS", 5),
			ConnMaxLifetime:    time.Duration(getEnvAsInt("REMOTE_CONN_MAX_LIFETIME", 300)) * time.Second,
		},
		Local: LocalConfig{
			Path: getEnv("LOCAL_STORE_PATH", "maintenance.db"),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", ""),
			SessionExpiry: time.Duration(getEnvAsInt("SESSION_EXPIRY_SECONDS", 86400)) * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization"}),
		},
		Security: SecurityConfig{
			BcryptCost:       getEnvAsInt("BCRYPT_COST", 12),
			EnableRequestLog: getEnvAsBool("ENABLE_REQUEST_LOGGING", true),
		},
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// RemoteEnabled reports whether remote mode is active. The choice is made
// once at startup and never changes for the lifetime of the process.
func (c *Config) RemoteEnabled() bool {
	return c.Remote.URL != "" && c.Remote.AccessKey != ""
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.JWT.SessionExpiry <= 0 {
		return fmt.Errorf("SESSION_EXPIRY_SECONDS must be positive")
	}

	if !c.RemoteEnabled() && c.Local.Path == "" {
		return fmt.Errorf("LOCAL_STORE_PATH is required when no remote backend is configured")
	}

	return nil
}

// Helper functions to get environment variables

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s, using default: %d", key, defaultValue)
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
		log.Printf("Invalid boolean value for %s, using default: %t", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var result []string
	for _, v := range strings.Split(valueStr, ",") {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
