package categoryassign

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"categoryassign/internal/config"
	"categoryassign/internal/logging"
	"categoryassign/internal/registry"
)

type staticParams map[string]registry.Registry

func (s staticParams) ComponentParams(component string) registry.Registry {
	return s[component].Clone()
}

func articleParams(values map[string]any) staticParams {
	params := registry.New()
	for key, value := range values {
		params.Set(key, value)
	}
	return staticParams{config.ArticlesComponent: params}
}

func newTestPlugin(t *testing.T, params ParamsReader, formsDir string) (*Plugin, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", Writer: &buf})
	require.NoError(t, err)
	return New(Options{
		Params:     params,
		Logger:     logger,
		FormsDir:   formsDir,
		Registerer: prometheus.NewRegistry(),
	}), &buf
}

func quietPlugin(params ParamsReader) *Plugin {
	return New(Options{Params: params, Logger: slog.New(logging.NoopHandler{})})
}
