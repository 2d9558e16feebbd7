package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"categoryassign/internal/testsupport"
)

const editorialDefinition = `categories:
  - title: News
  - title: Archive
    alias: archive

stages:
  - title: Draft
    default: true
  - title: Review
  - title: Published

transitions:
  - title: Submit
    from: Draft
    to: Review
  - title: Publish
    from: Review
    to: Published
    category: news
  - title: Withdraw
    from: "*"
    to: Draft
    category: archive
`

type cliTestEnv struct {
	baseDir    string
	configPath string
	formsDir   string
}

func setupCLITestEnv(t *testing.T, workflowEnabled bool) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("CATEGORYASSIGN_DATA_DIR", "")

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		formsDir:   filepath.Join(base, "forms"),
	}
	contents := fmt.Sprintf(`[paths]
data_dir = %q
forms_dir = %q

[components.articles]
workflow_enabled = %t
fallback_category_id = 2

[logging]
level = "error"
`, filepath.Join(base, "data"), env.formsDir, workflowEnabled)
	testsupport.WriteFile(t, env.configPath, contents)
	return env
}

// seed imports the editorial workflow and creates one article in Draft.
func (e *cliTestEnv) seed(t *testing.T) {
	t.Helper()
	definition := testsupport.WriteFile(t, filepath.Join(e.baseDir, "editorial.yaml"), editorialDefinition)
	e.mustRun(t, "workflow", "import", definition)
	e.mustRun(t, "article", "add", "Launch")
}

func (e *cliTestEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return runCLI(t, append([]string{"--config", e.configPath}, args...))
}

func (e *cliTestEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, stderr, err := e.run(t, args...)
	require.NoError(t, err, "categoryassign %v\nstderr: %s", args, stderr)
	return out
}

func (e *cliTestEnv) runJSON(t *testing.T, target any, args ...string) {
	t.Helper()
	out := e.mustRun(t, append([]string{"--json"}, args...)...)
	require.NoError(t, json.Unmarshal([]byte(out), target), "output: %s", out)
}

func runCLI(t *testing.T, args []string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeBroken(t *testing.T, path string) {
	t.Helper()
	testsupport.WriteFile(t, path, "[paths\ndata_dir = \n")
}
