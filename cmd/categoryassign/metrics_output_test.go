package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"categoryassign/internal/workflow"
)

func TestMetricsFlagReportsHookOutcomes(t *testing.T) {
	env := setupCLITestEnv(t, true)
	env.seed(t)
	env.mustRun(t, "article", "transition", "1", "Submit")

	out, stderr, err := env.run(t, "--metrics", "--json", "article", "transition", "1", "Publish")
	require.NoError(t, err)

	var result workflow.TransitionResult
	require.NoError(t, json.Unmarshal([]byte(out), &result), "stdout stays JSON: %s", out)
	assert.EqualValues(t, 3, result.Article.CatID)

	assert.Contains(t, stderr, "categoryassign_transition_hook_total")
	assert.Contains(t, stderr, "outcome=assigned")
}

func TestMetricsFlagFormHook(t *testing.T) {
	env := setupCLITestEnv(t, true)

	_, stderr, err := env.run(t, "--metrics", "form", "show", "article", "0")
	require.NoError(t, err)
	assert.Contains(t, stderr, "categoryassign_form_hook_total")
	assert.Contains(t, stderr, "form=article,outcome=defaulted")
}

func TestMetricsFlagWithoutHookCalls(t *testing.T) {
	env := setupCLITestEnv(t, true)

	_, stderr, err := env.run(t, "--metrics", "status")
	require.NoError(t, err)
	assert.Contains(t, stderr, "No hook calls recorded")

	_, stderr, err = env.run(t, "status")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "hook")
}
