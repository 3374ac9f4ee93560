package config

import (
	"fmt"
	"strings"
)

// ValidateConfig checks that the configuration is internally consistent
// before the server starts.
func ValidateConfig(cfg *Config) error {
	var errors []string

	switch cfg.StoreBackend {
	case StoreFile:
		if cfg.RecipesPath == "" {
			errors = append(errors, "RECIPES_PATH is required for the file store backend")
		}
	case StorePostgres:
		if cfg.DBUser == "" {
			errors = append(errors, "DB_USER environment variable or db_user secret is required for the postgres backend")
		}
		if cfg.DBPassword == "" {
			errors = append(errors, "DB_PASSWORD environment variable or db_password secret is required for the postgres backend")
		}
	default:
		errors = append(errors, fmt.Sprintf("unknown store backend %q (expected %q or %q)", cfg.StoreBackend, StoreFile, StorePostgres))
	}

	if cfg.LexicalThreshold < 0 || cfg.LexicalThreshold > 100 {
		errors = append(errors, fmt.Sprintf("LEXICAL_THRESHOLD must be within 0-100, got %d", cfg.LexicalThreshold))
	}
	if cfg.SemanticThreshold < 0 || cfg.SemanticThreshold > 1 {
		errors = append(errors, fmt.Sprintf("SEMANTIC_THRESHOLD must be within 0-1, got %g", cfg.SemanticThreshold))
	}
	if cfg.TopK < 1 {
		errors = append(errors, fmt.Sprintf("MATCH_TOP_K must be positive, got %d", cfg.TopK))
	}

	if cfg.CatalogS3Bucket != "" && cfg.CatalogS3Key == "" {
		errors = append(errors, "CATALOG_S3_KEY is required when CATALOG_S3_BUCKET is set")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "\n"))
	}

	return nil
}
