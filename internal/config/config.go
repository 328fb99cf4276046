package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Search     SearchConfig
	Storage    StorageConfig
	Redis      RedisConfig
	Logging    LoggingConfig

	// Warnings collects env values that were ignored while loading.
	// They are logged once the logger exists.
	Warnings []string
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, used when set
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

// SearchConfig holds search-related configuration
type SearchConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// StorageConfig selects where listings, users and wishlists live
type StorageConfig struct {
	Backend         string
	SeedFile        string // empty means the built-in demo data
	SeedOnStart     bool
	WishlistBackend string
}

// RedisConfig holds Redis connection settings for the wishlist store
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.PostgreSQL = PostgreSQLConfig{
		DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
		Host:               getEnv("PG_HOST", "localhost"),
		Port:               cfg.getEnvAsInt("PG_PORT", 5432),
		User:               getEnv("PG_USER", "postgres"),
		Password:           getEnv("PG_PASSWORD", ""),
		Database:           getEnv("PG_DATABASE", "hostelhub"),
		SSLMode:            getEnv("PG_SSLMODE", "disable"),
		MaxConnections:     cfg.getEnvAsInt("PG_MAX_CONNECTIONS", 25),
		MaxIdleConnections: cfg.getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
	}
	cfg.Server = ServerConfig{
		Port:           cfg.getEnvAsInt("SERVER_PORT", 8080),
		Host:           getEnv("SERVER_HOST", "0.0.0.0"),
		GinMode:        getEnv("GIN_MODE", "release"),
		AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		AllowedMethods: getEnv("CORS_ALLOWED_METHODS", "GET,POST,PUT,PATCH,DELETE,OPTIONS"),
		AllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "Content-Type,Authorization"),
	}
	cfg.Search = SearchConfig{
		DefaultLimit: cfg.getEnvAsInt("SEARCH_DEFAULT_LIMIT", 20),
		MaxLimit:     cfg.getEnvAsInt("SEARCH_MAX_LIMIT", 100),
	}
	cfg.Storage = StorageConfig{
		Backend:         strings.ToLower(getEnv("STORAGE_BACKEND", BackendMemory)),
		SeedFile:        getEnv("SEED_FILE", ""),
		SeedOnStart:     cfg.getEnvAsBool("SEED_ON_START", true),
		WishlistBackend: strings.ToLower(getEnv("WISHLIST_BACKEND", BackendMemory)),
	}
	cfg.Redis = RedisConfig{
		Address:  getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       cfg.getEnvAsInt("REDIS_DB", 0),
	}
	cfg.Logging = LoggingConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted silently
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT %d is out of range", c.Server.Port)
	}
	switch c.Storage.Backend {
	case BackendMemory, BackendPostgres:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q (want memory or postgres)", c.Storage.Backend)
	}
	switch c.Storage.WishlistBackend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("unknown WISHLIST_BACKEND %q (want memory or redis)", c.Storage.WishlistBackend)
	}
	if c.Search.DefaultLimit <= 0 || c.Search.MaxLimit < c.Search.DefaultLimit {
		return fmt.Errorf("search limits %d/%d are invalid", c.Search.DefaultLimit, c.Search.MaxLimit)
	}
	return nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func (c *Config) getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		c.Warnings = append(c.Warnings, fmt.Sprintf("invalid integer value for %s, using default %d", key, defaultValue))
		return defaultValue
	}
	return value
}

func (c *Config) getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		c.Warnings = append(c.Warnings, fmt.Sprintf("invalid boolean value for %s, using default %t", key, defaultValue))
		return defaultValue
	}
	return value
}
