package config

import (
	"errors"
	"fmt"
	"strings"

	"categoryassign/internal/registry"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateArticles(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateArticles() error {
	params := c.ComponentParams(ArticlesComponent)
	if raw := params.Get(ParamWorkflowEnabled); raw != nil {
		switch raw.(type) {
		case bool, string, int, int64, float64:
		default:
			return fmt.Errorf("components.%s.%s must be a boolean", ArticlesComponent, ParamWorkflowEnabled)
		}
	}
	if raw := params.Get(ParamFallbackCategoryID); raw != nil {
		id, ok := registry.ToInt64(raw)
		if !ok || id <= 0 {
			return fmt.Errorf("components.%s.%s must be a positive category id, got %v", ArticlesComponent, ParamFallbackCategoryID, raw)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
