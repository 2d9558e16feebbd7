package config

import "categoryassign/internal/registry"

const (
	defaultConfigPath  = "~/.config/categoryassign/config.toml"
	projectConfigName  = "categoryassign.toml"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	defaultLogDirName  = "logs"
	defaultFormDirName = "forms"
)

// ArticlesComponent names the component whose articles the workflow automation manages.
const ArticlesComponent = "articles"

// Article component parameter keys.
const (
	ParamWorkflowEnabled    = "workflow_enabled"
	ParamFallbackCategoryID = "fallback_category_id"
)

// DefaultFallbackCategoryID is the Uncategorised category seeded by the store.
const DefaultFallbackCategoryID int64 = 2

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir(),
		},
		Components: map[string]registry.Registry{
			ArticlesComponent: defaultArticleParams(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func defaultArticleParams() registry.Registry {
	return registry.Registry{
		ParamWorkflowEnabled:    true,
		ParamFallbackCategoryID: DefaultFallbackCategoryID,
	}
}
