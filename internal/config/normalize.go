package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"categoryassign/internal/registry"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeComponents()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("CATEGORYASSIGN_DATA_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.DataDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir()
	}
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.DataDir, defaultLogDirName)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.FormsDir) == "" {
		c.Paths.FormsDir = filepath.Join(c.Paths.DataDir, defaultFormDirName)
	}
	if c.Paths.FormsDir, err = expandPath(c.Paths.FormsDir); err != nil {
		return fmt.Errorf("paths.forms_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeComponents() {
	// Tables whose names differ only in case or spacing are merged in a fixed
	// order: other spellings first, then the canonical lower-case table, so its
	// values win.
	names := make([]string, 0, len(c.Components))
	for name := range c.Components {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ci := names[i] == normalizeComponentName(names[i])
		cj := names[j] == normalizeComponentName(names[j])
		if ci != cj {
			return cj
		}
		return names[i] < names[j]
	})

	normalized := make(map[string]registry.Registry, len(c.Components)+1)
	for _, name := range names {
		params := c.Components[name]
		key := normalizeComponentName(name)
		if key == "" {
			continue
		}
		if params == nil {
			params = registry.New()
		}
		if existing, ok := normalized[key]; ok {
			existing.Merge(params)
			continue
		}
		normalized[key] = params
	}
	articles, ok := normalized[ArticlesComponent]
	if !ok {
		articles = registry.New()
		normalized[ArticlesComponent] = articles
	}
	for key, value := range defaultArticleParams() {
		if !articles.Has(key) {
			articles[key] = value
		}
	}
	c.Components = normalized
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
