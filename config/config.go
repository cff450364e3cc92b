package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Identity providers supported by the backend
const (
	ProviderLocal    = "local"
	ProviderSupabase = "supabase"
)

// Database drivers supported by the backend
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string
	LogLevel   string

	// Database configuration
	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	AutoMigrate bool

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Recipe imports allowed per user per hour, 0 disables the limiter
	RecipeImportLimit int

	// Identity provider configuration
	AuthProvider    string
	JWTSecret       string
	SupabaseURL     string
	SupabaseAnonKey string

	// Text generation configuration
	LLMAPIKey      string
	LLMAPIURL      string
	LLMModel       string
	LLMMaxTokens   int
	LLMTemperature float64
	LLMTimeout     time.Duration

	// CORS configuration
	AllowedOrigins []string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	// A local .env file is a development convenience only
	if env != Production {
		_ = godotenv.Load()
	}

	cfg, err := load()
	if err != nil {
		return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func load() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DatabaseURL: readSecret("database_url"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      readSecret("db_user"),
		DBPassword:  readSecret("db_password"),
		DBName:      getEnv("DB_NAME", "recipebox"),
		DBSSLMode:   getEnv("DB_SSL_MODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: readSecret("redis_password"),
		RedisURL:      readSecret("redis_url"),

		AuthProvider:    strings.ToLower(getEnv("AUTH_PROVIDER", ProviderLocal)),
		JWTSecret:       readSecret("jwt_secret"),
		SupabaseURL:     strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseAnonKey: readSecret("supabase_anon_key"),

		LLMAPIKey: readSecret("llm_api_key"),
		LLMAPIURL: getEnv("LLM_API_URL", "https://openrouter.ai/api/v1/chat/completions"),
		LLMModel:  getEnv("LLM_MODEL", "google/gemini-2.0-flash-exp:free"),
	}

	var err error
	if cfg.AutoMigrate, err = strconv.ParseBool(getEnv("AUTO_MIGRATE", "false")); err != nil {
		return nil, fmt.Errorf("invalid AUTO_MIGRATE: %w", err)
	}
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	if cfg.RecipeImportLimit, err = strconv.Atoi(getEnv("RECIPE_IMPORT_LIMIT", "5")); err != nil {
		return nil, fmt.Errorf("invalid RECIPE_IMPORT_LIMIT: %w", err)
	}
	if cfg.LLMMaxTokens, err = strconv.Atoi(getEnv("LLM_MAX_TOKENS", "1024")); err != nil {
		return nil, fmt.Errorf("invalid LLM_MAX_TOKENS: %w", err)
	}
	if cfg.LLMTemperature, err = strconv.ParseFloat(getEnv("LLM_TEMPERATURE", "0.7"), 64); err != nil {
		return nil, fmt.Errorf("invalid LLM_TEMPERATURE: %w", err)
	}
	if cfg.LLMTimeout, err = time.ParseDuration(getEnv("LLM_TIMEOUT", "60s")); err != nil {
		return nil, fmt.Errorf("invalid LLM_TIMEOUT: %w", err)
	}

	if origins := getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	return cfg, nil
}

// RedisEnabled reports whether a Redis server has been configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// readSecret resolves a secret from the NAME environment variable, then from
// the file named by NAME_FILE, then from the Docker secrets directory.
func readSecret(name string) string {
	key := strings.ToUpper(name)
	if v := os.Getenv(key); v != "" {
		return v
	}

	if path := os.Getenv(key + "_FILE"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(data))
		}
	}

	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
