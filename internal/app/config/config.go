package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"clinic-core/internal/infrastructure/database/mongodb"
	"clinic-core/internal/infrastructure/database/redis"

	"github.com/joho/godotenv"
)

// Configuration comes from environment variables only. A .env file is
// loaded when present as a convenience for local development.

// Config is the unified application configuration.
type Config struct {
	Environment string
	Server      ServerConfig
	MongoDB     MongoConfig
	Redis       RedisConfig
	Session     SessionConfig
	Auth        AuthConfig
	Logging     LoggingConfig
	CORS        CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `env:"SERVER_HOST"`
	Port         int           `env:"SERVER_PORT"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT"`
}

// MongoConfig holds MongoDB settings.
type MongoConfig struct {
	URI            string        `env:"MONGODB_URI"`
	Database       string        `env:"MONGODB_DATABASE"`
	ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT"`
	MaxPoolSize    int           `env:"MONGODB_MAX_POOL_SIZE"`
}

// RedisConfig holds Redis settings.
type RedisConfig struct {
	Host        string        `env:"REDIS_HOST"`
	Port        int           `env:"REDIS_PORT"`
	Password    string        `env:"REDIS_PASSWORD"`
	Database    int           `env:"REDIS_DATABASE"`
	MaxRetries  int           `env:"REDIS_MAX_RETRIES"`
	PoolSize    int           `env:"REDIS_POOL_SIZE"`
	PoolTimeout time.Duration `env:"REDIS_POOL_TIMEOUT"`
}

// SessionConfig holds session cookie and TTL settings.
type SessionConfig struct {
	TTL        time.Duration `env:"SESSION_TTL"`
	CookieName string        `env:"SESSION_COOKIE_NAME"`
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	AdminEmail       string        `env:"ADMIN_EMAIL"`
	AdminPassword    string        `env:"ADMIN_PASSWORD"`
	MaxLoginFailures int           `env:"AUTH_MAX_LOGIN_FAILURES"`
	LoginFailureTTL  time.Duration `env:"AUTH_LOGIN_FAILURE_TTL"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"`
	MaxAge           int      `env:"CORS_MAX_AGE"`
}

// NewConfig loads the configuration from environment variables.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		fmt.Printf("[CONFIG] No .env file loaded: %v\n", err)
	}

	config := &Config{}

	config.Environment = getEnv("APP_ENV", "development")

	config.Server = ServerConfig{
		Host:         getEnv("SERVER_HOST", "localhost"),
		Port:         getEnvInt("SERVER_PORT", 3000),
		ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 30) * time.Second,
		WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 30) * time.Second,
	}

	config.MongoDB = MongoConfig{
		URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		Database:       getEnv("MONGODB_DATABASE", "clinic-dashboard"),
		ConnectTimeout: getEnvDuration("MONGODB_CONNECT_TIMEOUT", 10) * time.Second,
		MaxPoolSize:    getEnvInt("MONGODB_MAX_POOL_SIZE", 100),
	}

	config.Redis = RedisConfig{
		Host:        getEnv("REDIS_HOST", "localhost"),
		Port:        getEnvInt("REDIS_PORT", 6379),
		Password:    getEnv("REDIS_PASSWORD", ""),
		Database:    getEnvInt("REDIS_DATABASE", 0),
		MaxRetries:  getEnvInt("REDIS_MAX_RETRIES", 3),
		PoolSize:    getEnvInt("REDIS_POOL_SIZE", 10),
		PoolTimeout: getEnvDuration("REDIS_POOL_TIMEOUT", 30) * time.Second,
	}

	config.Session = SessionConfig{
		TTL:        getEnvDuration("SESSION_TTL", 86400) * time.Second,
		CookieName: getEnv("SESSION_COOKIE_NAME", "session"),
	}

	config.Auth = AuthConfig{
		AdminEmail:       getEnv("ADMIN_EMAIL", "admin@clinica.com"),
		AdminPassword:    getEnv("ADMIN_PASSWORD", ""),
		MaxLoginFailures: getEnvInt("AUTH_MAX_LOGIN_FAILURES", 10),
		LoginFailureTTL:  getEnvDuration("AUTH_LOGIN_FAILURE_TTL", 900) * time.Second,
	}

	config.Logging = LoggingConfig{
		Level: getEnv("LOG_LEVEL", "info"),
	}

	config.CORS = CORSConfig{
		AllowedOrigins:   getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		AllowedMethods:   getEnvSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		AllowedHeaders:   getEnvSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept"}),
		AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", true),
		MaxAge:           getEnvInt("CORS_MAX_AGE", 300),
	}

	return config, nil
}

// NewMongoConfig adapts the application config for the MongoDB client.
func NewMongoConfig(cfg *Config) *mongodb.MongoConfig {
	return &mongodb.MongoConfig{
		URI:      cfg.MongoDB.URI,
		Database: cfg.MongoDB.Database,
	}
}

// NewRedisConfig adapts the application config for the Redis client.
func NewRedisConfig(cfg *Config) *redis.RedisConfig {
	return &redis.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		Database: cfg.Redis.Database,
	}
}

// GetServer returns the server configuration.
func (c *Config) GetServer() ServerConfig {
	return c.Server
}

// GetCORS returns the CORS configuration.
func (c *Config) GetCORS() CORSConfig {
	return c.CORS
}

// IsProduction reports whether the application runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvInt(key, defaultSeconds))
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
