package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"categoryassign/internal/categoryassign"
	"categoryassign/internal/config"
	"categoryassign/internal/event"
	"categoryassign/internal/logging"
	"categoryassign/internal/store"
	"categoryassign/internal/workflow"
)

type commandContext struct {
	configFlag  *string
	jsonOutput  bool
	showMetrics bool

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	runtimeOnce sync.Once
	runtime     *runtime
	runtimeErr  error
}

// runtime is the wired host: store, dispatcher with the plugin subscribed,
// and the workflow manager.
type runtime struct {
	logger   *slog.Logger
	store    *store.Store
	plugin   *categoryassign.Plugin
	manager  *workflow.Manager
	registry *prometheus.Registry
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureRuntime() (*runtime, error) {
	c.runtimeOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.runtimeErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.runtimeErr = fmt.Errorf("init logging: %w", err)
			return
		}
		st, err := store.Open(cfg)
		if err != nil {
			c.runtimeErr = fmt.Errorf("open content store: %w", err)
			return
		}

		reg := prometheus.NewRegistry()
		plugin := categoryassign.New(categoryassign.Options{
			Params:     cfg,
			Logger:     logger,
			FormsDir:   cfg.Paths.FormsDir,
			Registerer: reg,
		})
		dispatcher := event.NewDispatcher(logger)
		dispatcher.Subscribe(plugin)

		manager, err := workflow.NewManager(cfg, st, dispatcher, logger)
		if err != nil {
			_ = st.Close()
			c.runtimeErr = err
			return
		}
		c.runtime = &runtime{
			logger:   logger,
			store:    st,
			plugin:   plugin,
			manager:  manager,
			registry: reg,
		}
	})
	return c.runtime, c.runtimeErr
}

// writeHookMetrics prints the hook counters when --metrics is set. Commands
// that never opened the runtime fired no hooks and print nothing.
func (c *commandContext) writeHookMetrics(w io.Writer) error {
	if !c.showMetrics || c.runtime == nil {
		return nil
	}
	out, err := renderHookMetrics(c.runtime.registry)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func (c *commandContext) close() {
	if c.runtime != nil && c.runtime.store != nil {
		_ = c.runtime.store.Close()
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
