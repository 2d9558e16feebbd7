package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t, true)

	out := env.mustRun(t, "config", "validate")
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, env.configPath)

	target := filepath.Join(t.TempDir(), "config.toml")
	out = env.mustRun(t, "config", "init", "--path", target)
	assert.Contains(t, out, "Wrote sample configuration")
	assert.FileExists(t, target)

	_, _, err := env.run(t, "config", "init", "--path", target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--overwrite")

	env.mustRun(t, "config", "init", "--path", target, "--overwrite")
}

func TestConfigInitSkipsConfigLoad(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.toml")
	writeBroken(t, broken)

	target := filepath.Join(dir, "fresh.toml")
	out, _, err := runCLI(t, []string{"--config", broken, "config", "init", "--path", target})
	require.NoError(t, err)
	assert.Contains(t, out, target)

	_, _, err = runCLI(t, []string{"--config", broken, "config", "validate"})
	assert.Error(t, err)
}

func TestConfigShow(t *testing.T) {
	env := setupCLITestEnv(t, false)

	out := env.mustRun(t, "config", "show")
	assert.Contains(t, out, "[components.articles]")
	assert.Contains(t, out, "workflow_enabled = false")
	assert.Contains(t, out, env.formsDir)
}
