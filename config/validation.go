package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is the list of problems found in a configuration
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Error())
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks if the configuration is usable in the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()

	var errs ValidationErrors

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"SERVER_PORT", "must be set"})
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" && cfg.DBHost == "" {
			errs = append(errs, ValidationError{"DB_HOST", "DATABASE_URL or DB_HOST is required for postgres"})
		}
	case DriverSQLite:
		if cfg.DBName == "" {
			errs = append(errs, ValidationError{"DB_NAME", "sqlite database path is required"})
		}
		if env == Production {
			errs = append(errs, ValidationError{"DB_DRIVER", "sqlite is not allowed in production"})
		}
	default:
		errs = append(errs, ValidationError{"DB_DRIVER", fmt.Sprintf("unknown driver %q", cfg.DBDriver)})
	}

	switch cfg.AuthProvider {
	case ProviderLocal:
		if cfg.JWTSecret == "" {
			errs = append(errs, ValidationError{"JWT_SECRET", "jwt_secret is required for the local identity provider"})
		}
	case ProviderSupabase:
		if cfg.SupabaseURL == "" {
			errs = append(errs, ValidationError{"SUPABASE_URL", "must be set for the supabase identity provider"})
		}
		if cfg.SupabaseAnonKey == "" {
			errs = append(errs, ValidationError{"SUPABASE_ANON_KEY", "supabase_anon_key is required for the supabase identity provider"})
		}
	default:
		errs = append(errs, ValidationError{"AUTH_PROVIDER", fmt.Sprintf("unknown provider %q", cfg.AuthProvider)})
	}

	if cfg.LLMAPIKey == "" && (env == Production || env == CI) {
		errs = append(errs, ValidationError{"LLM_API_KEY", "llm_api_key is required"})
	}
	if cfg.LLMMaxTokens <= 0 {
		errs = append(errs, ValidationError{"LLM_MAX_TOKENS", "must be positive"})
	}
	if cfg.LLMTemperature < 0 || cfg.LLMTemperature > 2 {
		errs = append(errs, ValidationError{"LLM_TEMPERATURE", "must be between 0 and 2"})
	}
	if cfg.RecipeImportLimit < 0 {
		errs = append(errs, ValidationError{"RECIPE_IMPORT_LIMIT", "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
