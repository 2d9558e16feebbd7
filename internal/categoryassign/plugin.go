package categoryassign

import (
	"context"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"categoryassign/internal/config"
	"categoryassign/internal/event"
	"categoryassign/internal/logging"
	"categoryassign/internal/registry"
)

// ArticleContext is the hook context and form name of the article editor.
const ArticleContext = config.ArticlesComponent + ".article"

const categoryField = "catid"

// ParamsReader exposes per-component configuration.
type ParamsReader interface {
	ComponentParams(component string) registry.Registry
}

// Options configures a Plugin.
type Options struct {
	// Params supplies component parameters. Nil means defaults everywhere.
	Params ParamsReader
	Logger *slog.Logger
	// FormsDir holds the transition.xml fragment merged into the transition
	// editor. Empty disables that extension.
	FormsDir string
	// Registerer receives the hook counters. Nil leaves them unregistered.
	Registerer prometheus.Registerer
}

// Plugin implements the category assignment hooks.
type Plugin struct {
	params   ParamsReader
	logger   *slog.Logger
	formsDir string
	metrics  *metrics
}

// New constructs a Plugin.
func New(opts Options) *Plugin {
	return &Plugin{
		params:   opts.Params,
		logger:   logging.NewComponentLogger(opts.Logger, "categoryassign"),
		formsDir: strings.TrimSpace(opts.FormsDir),
		metrics:  newMetrics(opts.Registerer),
	}
}

// SubscribedEvents wires the hooks into an event dispatcher.
func (p *Plugin) SubscribedEvents() map[string]event.Listener {
	return map[string]event.Listener{
		event.BeforeChangeStage: func(ctx context.Context, e event.Event) bool {
			return p.OnContentBeforeChangeStageDo(ctx, e)
		},
		event.PrepareForm: func(ctx context.Context, e event.Event) bool {
			return p.OnContentPrepareForm(ctx, e)
		},
	}
}

// Enabled reports whether the automation runs for an "<extension>.<view>"
// context. Only the articles extension is supported; its workflow_enabled
// parameter defaults to true.
func (p *Plugin) Enabled(hookContext string) bool {
	parts := strings.Split(hookContext, ".")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return false
	}
	if parts[0] != config.ArticlesComponent {
		return false
	}
	return p.componentParams(parts[0]).GetBool(config.ParamWorkflowEnabled, true)
}

// FallbackCategoryID is the category given to articles edited without one.
func (p *Plugin) FallbackCategoryID() int64 {
	id := p.componentParams(config.ArticlesComponent).GetInt64(config.ParamFallbackCategoryID, config.DefaultFallbackCategoryID)
	if id <= 0 {
		return config.DefaultFallbackCategoryID
	}
	return id
}

func (p *Plugin) componentParams(component string) registry.Registry {
	if p.params == nil {
		return registry.New()
	}
	params := p.params.ComponentParams(component)
	if params == nil {
		return registry.New()
	}
	return params
}
