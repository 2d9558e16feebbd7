package categoryassign

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"categoryassign/internal/config"
	"categoryassign/internal/content"
	"categoryassign/internal/event"
	"categoryassign/internal/registry"
)

func TestEnabled(t *testing.T) {
	enabled := quietPlugin(articleParams(nil))
	disabled := quietPlugin(articleParams(map[string]any{config.ParamWorkflowEnabled: false}))
	disabledString := quietPlugin(articleParams(map[string]any{config.ParamWorkflowEnabled: "0"}))
	noParams := quietPlugin(nil)

	tests := []struct {
		name    string
		plugin  *Plugin
		context string
		want    bool
	}{
		{"article context", enabled, "articles.article", true},
		{"other view", enabled, "articles.featured", true},
		{"single part", enabled, "articles", false},
		{"empty", enabled, "", false},
		{"blank extension", enabled, ".article", false},
		{"blank view", enabled, "articles.", false},
		{"other extension", enabled, "other.thing", false},
		{"case sensitive", enabled, "Articles.article", false},
		{"disabled flag", disabled, "articles.article", false},
		{"disabled string flag", disabledString, "articles.article", false},
		{"nil params default on", noParams, "articles.article", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.plugin.Enabled(tt.context))
		})
	}
}

func TestEnabledWithConfig(t *testing.T) {
	cfg := config.Default()
	assert.True(t, quietPlugin(&cfg).Enabled(ArticleContext))

	cfg.SetComponentParam(config.ArticlesComponent, config.ParamWorkflowEnabled, false)
	assert.False(t, quietPlugin(&cfg).Enabled(ArticleContext))
}

func TestFallbackCategoryID(t *testing.T) {
	assert.Equal(t, content.UncategorisedCategoryID, quietPlugin(nil).FallbackCategoryID())
	assert.Equal(t, int64(7), quietPlugin(articleParams(map[string]any{config.ParamFallbackCategoryID: 7})).FallbackCategoryID())
	assert.Equal(t, int64(2), quietPlugin(articleParams(map[string]any{config.ParamFallbackCategoryID: -4})).FallbackCategoryID())
	assert.Equal(t, int64(2), quietPlugin(articleParams(map[string]any{config.ParamFallbackCategoryID: "nope"})).FallbackCategoryID())
}

func TestSubscribedEvents(t *testing.T) {
	plugin := quietPlugin(nil)
	d := event.NewDispatcher(nil)
	d.Subscribe(plugin)

	assert.True(t, d.HasListeners(event.BeforeChangeStage))
	assert.True(t, d.HasListeners(event.PrepareForm))
	assert.False(t, d.HasListeners(event.AfterTransition))

	article := &content.Article{ID: 1, CatID: 3}
	transition := &content.Transition{ID: 1, Options: registry.Registry{"category_id": 5}}
	ok := d.Dispatch(context.Background(), event.NewTransitionEvent(event.BeforeChangeStage, ArticleContext, article, transition, nil))
	assert.True(t, ok)
	assert.Equal(t, int64(5), article.CatID)
}

func TestMetricsReuseRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := New(Options{Registerer: reg})
	second := New(Options{Registerer: reg})

	first.OnContentBeforeChangeStageDo(context.Background(), "other.thing", nil, nil, nil)
	second.OnContentBeforeChangeStageDo(context.Background(), "other.thing", nil, nil, nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(first.metrics.transitionHooks.WithLabelValues(OutcomeSkippedContext)))
	assert.Equal(t, 1, testutil.CollectAndCount(first.metrics.transitionHooks))
}
