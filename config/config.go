package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pageza/macromatch/internal/nutrition"
)

// Store backends selectable via STORE_BACKEND.
const (
	StoreFile     = "file"
	StorePostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Recipe store configuration
	StoreBackend string
	RecipesPath  string

	// Database configuration (postgres backend)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration (optional embedding cache level)
	RedisEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Food catalog source: local CSV path, or an S3 object when bucket
	// and key are set
	CatalogPath     string
	CatalogS3Bucket string
	CatalogS3Key    string

	// Matching thresholds
	LexicalThreshold  int
	SemanticThreshold float64
	TopK              int
}

// LoadConfig creates a new Config instance with values from environment
// variables or Docker secrets, then validates it.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: envOr("SERVER_PORT", "8080"),
		ServerHost: envOr("SERVER_HOST", "0.0.0.0"),

		StoreBackend: envOr("STORE_BACKEND", StoreFile),
		RecipesPath:  envOr("RECIPES_PATH", "data/recipes.json"),

		DBHost:     envOr("DB_HOST", "localhost"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     envOrSecret("DB_USER", "db_user"),
		DBPassword: envOrSecret("DB_PASSWORD", "db_password"),
		DBName:     envOr("DB_NAME", "macromatch"),
		DBSSLMode:  envOr("DB_SSL_MODE", "disable"),

		RedisEnabled:  os.Getenv("REDIS_HOST") != "" || os.Getenv("REDIS_URL") != "",
		RedisHost:     envOr("REDIS_HOST", "localhost"),
		RedisPort:     envOr("REDIS_PORT", "6379"),
		RedisPassword: envOrSecret("REDIS_PASSWORD", "redis_password"),
		RedisURL:      os.Getenv("REDIS_URL"),

		CatalogPath:     envOr("CATALOG_PATH", "data/macro.csv"),
		CatalogS3Bucket: os.Getenv("CATALOG_S3_BUCKET"),
		CatalogS3Key:    os.Getenv("CATALOG_S3_KEY"),

		LexicalThreshold:  nutrition.DefaultLexicalThreshold,
		SemanticThreshold: nutrition.DefaultSemanticThreshold,
		TopK:              nutrition.DefaultTopK,
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.RedisDB = db
		}
	}

	if v := os.Getenv("LEXICAL_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LEXICAL_THRESHOLD %q: %w", v, err)
		}
		cfg.LexicalThreshold = n
	}
	if v := os.Getenv("SEMANTIC_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SEMANTIC_THRESHOLD %q: %w", v, err)
		}
		cfg.SemanticThreshold = f
	}
	if v := os.Getenv("MATCH_TOP_K"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MATCH_TOP_K %q: %w", v, err)
		}
		cfg.TopK = n
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// envOr returns the environment variable value or a default.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envOrSecret prefers the environment variable and falls back to a
// Docker secret of the given name.
func envOrSecret(key, secret string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return readSecret(secret)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
