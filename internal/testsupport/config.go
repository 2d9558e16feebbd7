package testsupport

import (
	"path/filepath"
	"testing"

	"categoryassign/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.FormsDir = filepath.Join(base, "forms")
	cfgVal.Logging.Level = "debug"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithWorkflowDisabled turns the articles workflow automation off.
func WithWorkflowDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.SetComponentParam(config.ArticlesComponent, config.ParamWorkflowEnabled, false)
	}
}

// WithFallbackCategory overrides the category given to uncategorised articles.
func WithFallbackCategory(id int64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.SetComponentParam(config.ArticlesComponent, config.ParamFallbackCategoryID, id)
	}
}

// WithComponentParam sets an arbitrary component parameter.
func WithComponentParam(component, key string, value any) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.SetComponentParam(component, key, value)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
