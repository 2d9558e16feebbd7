package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"categoryassign/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("CATEGORYASSIGN_DATA_DIR", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, resolved)
	assert.False(t, exists, "expected config file to be absent in temp HOME")

	wantData := filepath.Join(tempHome, ".local", "share", "categoryassign")
	assert.Equal(t, wantData, cfg.Paths.DataDir)
	assert.Equal(t, filepath.Join(wantData, "logs"), cfg.Paths.LogDir)
	assert.Equal(t, filepath.Join(wantData, "forms"), cfg.Paths.FormsDir)
	assert.Equal(t, filepath.Join(wantData, "content.db"), cfg.DatabasePath())
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "info", cfg.Logging.Level)

	params := cfg.ComponentParams(config.ArticlesComponent)
	assert.True(t, params.GetBool(config.ParamWorkflowEnabled, false))
	assert.Equal(t, config.DefaultFallbackCategoryID, params.GetInt64(config.ParamFallbackCategoryID, 0))

	require.NoError(t, cfg.EnsureDirectories())
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "categoryassign.toml")
	t.Setenv("CATEGORYASSIGN_DATA_DIR", "")

	contents := `
[paths]
data_dir = "` + filepath.ToSlash(filepath.Join(tempDir, "data")) + `"

[components.Articles]
workflow_enabled = false

[components.blog]
workflow_enabled = 1

[logging]
format = "JSON"
level = "Debug"
`
	require.NoError(t, os.WriteFile(configPath, []byte(contents), 0o644))

	cfg, resolved, exists, err := config.Load(configPath)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, configPath, resolved)

	assert.Equal(t, filepath.Join(tempDir, "data"), cfg.Paths.DataDir)
	assert.Equal(t, filepath.Join(tempDir, "data", "logs"), cfg.Paths.LogDir)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)

	articles := cfg.ComponentParams("articles")
	assert.False(t, articles.GetBool(config.ParamWorkflowEnabled, true))
	assert.Equal(t, int64(2), articles.GetInt64(config.ParamFallbackCategoryID, 0), "missing keys fall back to defaults")

	blog := cfg.ComponentParams("blog")
	assert.True(t, blog.GetBool(config.ParamWorkflowEnabled, false))

	assert.Empty(t, cfg.ComponentParams("unknown"))
}

func TestLoadMergesComponentSpellingsDeterministically(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "categoryassign.toml")
	t.Setenv("CATEGORYASSIGN_DATA_DIR", "")

	contents := `
[paths]
data_dir = "` + filepath.ToSlash(filepath.Join(tempDir, "data")) + `"

[components.ARTICLES]
fallback_category_id = 9

[components.Articles]
fallback_category_id = 5
workflow_enabled = false

[components.articles]
fallback_category_id = 7
`
	require.NoError(t, os.WriteFile(configPath, []byte(contents), 0o644))

	for i := 0; i < 25; i++ {
		cfg, _, _, err := config.Load(configPath)
		require.NoError(t, err)
		articles := cfg.ComponentParams("articles")
		require.Equal(t, int64(7), articles.GetInt64(config.ParamFallbackCategoryID, 0), "canonical table wins (run %d)", i)
		require.False(t, articles.GetBool(config.ParamWorkflowEnabled, true), "keys only set in other spellings survive (run %d)", i)
		require.Len(t, cfg.Components, 1)
	}
}

func TestEnvOverridesDataDir(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("CATEGORYASSIGN_DATA_DIR", dataDir)

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, dataDir, cfg.Paths.DataDir)
	assert.Equal(t, filepath.Join(dataDir, "content.db"), cfg.DatabasePath())
	assert.Equal(t, filepath.Join(dataDir, "workflow.lock"), cfg.LockPath())
}

func TestComponentParamsReturnsCopy(t *testing.T) {
	cfg := config.Default()
	params := cfg.ComponentParams(config.ArticlesComponent)
	params.Set(config.ParamWorkflowEnabled, false)

	assert.True(t, cfg.ComponentParams(config.ArticlesComponent).GetBool(config.ParamWorkflowEnabled, false))

	cfg.SetComponentParam(config.ArticlesComponent, config.ParamWorkflowEnabled, false)
	assert.False(t, cfg.ComponentParams(config.ArticlesComponent).GetBool(config.ParamWorkflowEnabled, true))

	cfg.SetComponentParam("Blog", "workflow_enabled", true)
	assert.True(t, cfg.ComponentParams("blog").GetBool("workflow_enabled", false))
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	require.NoError(t, config.CreateSample(path))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "workflow_enabled")

	var cfg config.Config
	require.NoError(t, toml.Unmarshal(contents, &cfg))
	assert.Contains(t, cfg.Paths.DataDir, "categoryassign")
	assert.True(t, cfg.Components["articles"].GetBool(config.ParamWorkflowEnabled, false))
	assert.Equal(t, int64(2), cfg.Components["articles"].GetInt64(config.ParamFallbackCategoryID, 0))
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.SetComponentParam(config.ArticlesComponent, config.ParamFallbackCategoryID, 0)
	assert.Error(t, cfg.Validate(), "expected error for non-positive fallback category")

	cfg = config.Default()
	cfg.SetComponentParam(config.ArticlesComponent, config.ParamFallbackCategoryID, "uncategorised")
	assert.Error(t, cfg.Validate(), "expected error for non-numeric fallback category")

	cfg = config.Default()
	cfg.SetComponentParam(config.ArticlesComponent, config.ParamWorkflowEnabled, []string{"yes"})
	assert.Error(t, cfg.Validate(), "expected error for list-valued flag")

	cfg = config.Default()
	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = config.Default()
	cfg.Paths.DataDir = " "
	assert.Error(t, cfg.Validate())

	cfg = config.Default()
	assert.NoError(t, cfg.Validate())
}

func TestEncodeRoundTrips(t *testing.T) {
	cfg := config.Default()
	encoded, err := cfg.Encode()
	require.NoError(t, err)

	var decoded config.Config
	require.NoError(t, toml.Unmarshal([]byte(encoded), &decoded))
	assert.Equal(t, cfg.Paths.DataDir, decoded.Paths.DataDir)
	assert.True(t, decoded.Components["articles"].GetBool(config.ParamWorkflowEnabled, false))
}
