package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate checks struct tags first, then the cross-field rules tags cannot
// express.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	return validateCustomRules(cfg)
}

func validateCustomRules(cfg *Config) error {
	if !cfg.Adapters.HTTP.Enabled {
		return fmt.Errorf("adapters: at least one adapter must be enabled")
	}

	if cfg.Adapters.HTTP.Workers <= 0 {
		return fmt.Errorf("adapters.http.workers: must be > 0, got %d", cfg.Adapters.HTTP.Workers)
	}

	if cfg.Server.Metrics.Enabled && cfg.Server.Metrics.Port == cfg.Adapters.HTTP.Port {
		return fmt.Errorf("server.metrics.port: %d is already used by the http adapter", cfg.Server.Metrics.Port)
	}

	switch cfg.Storage.Type {
	case "filesystem":
		if path, _ := cfg.Storage.Filesystem["path"].(string); path == "" {
			return fmt.Errorf("storage.filesystem.path: required when storage.type is filesystem")
		}
	case "badger":
		if path, _ := cfg.Storage.Badger["db_path"].(string); path == "" {
			return fmt.Errorf("storage.badger.db_path: required when storage.type is badger")
		}
	case "s3":
		for _, key := range []string{"bucket", "region"} {
			if v, _ := cfg.Storage.S3[key].(string); v == "" {
				return fmt.Errorf("storage.s3.%s: required when storage.type is s3", key)
			}
		}
	}

	return nil
}

// formatValidationError reports the first failing field in a readable form.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		e := validationErrs[0]
		return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)",
			e.Namespace(), e.Tag(), e.Value())
	}
	return err
}
