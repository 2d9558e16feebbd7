package categoryassign

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"categoryassign/internal/config"
	"categoryassign/internal/content"
	"categoryassign/internal/event"
	"categoryassign/internal/registry"
)

// callTransition invokes the hook with the requested calling convention.
func callTransition(p *Plugin, convention, hookContext string, item, transition any) bool {
	if convention == ConventionEvent {
		e := event.NewTransitionEvent(event.BeforeChangeStage, hookContext, item, transition, map[string]any{})
		return p.OnContentBeforeChangeStageDo(context.Background(), e)
	}
	return p.OnContentBeforeChangeStageDo(context.Background(), hookContext, item, transition, map[string]any{})
}

func transitionWith(options registry.Registry) *content.Transition {
	return &content.Transition{ID: 9, FromStageID: content.AnyStage, ToStageID: 2, Options: options}
}

func TestTransitionHookScenarios(t *testing.T) {
	tests := []struct {
		name       string
		params     ParamsReader
		context    string
		options    registry.Registry
		wantCatID  int64
		wantResult string
	}{
		{"assigns target category", articleParams(nil), "articles.article", registry.Registry{"category_id": 5}, 5, OutcomeAssigned},
		{"string category id", articleParams(nil), "articles.article", registry.Registry{"category_id": "8"}, 8, OutcomeAssigned},
		{"unset category keeps item", articleParams(nil), "articles.article", registry.Registry{}, 3, OutcomeNoCategory},
		{"nil options keep item", articleParams(nil), "articles.article", nil, 3, OutcomeNoCategory},
		{"zero category keeps item", articleParams(nil), "articles.article", registry.Registry{"category_id": 0}, 3, OutcomeNoCategory},
		{"zero string keeps item", articleParams(nil), "articles.article", registry.Registry{"category_id": "0"}, 3, OutcomeNoCategory},
		{"blank string keeps item", articleParams(nil), "articles.article", registry.Registry{"category_id": ""}, 3, OutcomeNoCategory},
		{"other context ignored", articleParams(nil), "other.thing", registry.Registry{"category_id": 5}, 3, OutcomeSkippedContext},
		{"other article view ignored", articleParams(nil), "articles.featured", registry.Registry{"category_id": 5}, 3, OutcomeSkippedContext},
		{"disabled keeps item", articleParams(map[string]any{config.ParamWorkflowEnabled: false}), "articles.article", registry.Registry{"category_id": 5}, 3, OutcomeDisabled},
		{"non numeric ignored", articleParams(nil), "articles.article", registry.Registry{"category_id": "news"}, 3, OutcomeInvalidCategory},
		{"negative ignored", articleParams(nil), "articles.article", registry.Registry{"category_id": -5}, 3, OutcomeInvalidCategory},
	}

	for _, convention := range []string{ConventionPositional, ConventionEvent} {
		for _, tt := range tests {
			t.Run(convention+"/"+tt.name, func(t *testing.T) {
				plugin, _ := newTestPlugin(t, tt.params, "")
				article := &content.Article{ID: 1, CatID: 3}

				ok := callTransition(plugin, convention, tt.context, article, transitionWith(tt.options))

				assert.True(t, ok)
				assert.Equal(t, tt.wantCatID, article.CatID)
				assert.Equal(t, 1.0, testutil.ToFloat64(plugin.metrics.transitionHooks.WithLabelValues(tt.wantResult)))
			})
		}
	}
}

func TestTransitionHookItemShapes(t *testing.T) {
	plugin, _ := newTestPlugin(t, nil, "")
	transition := map[string]any{"options": map[string]any{"category_id": 6}}

	asMap := map[string]any{"catid": 3}
	assert.True(t, plugin.OnContentBeforeChangeStageDo(context.Background(), ArticleContext, asMap, transition, nil))
	assert.Equal(t, int64(6), asMap["catid"])

	asRegistry := registry.Registry{"catid": 3}
	assert.True(t, plugin.OnContentBeforeChangeStageDo(context.Background(), ArticleContext, asRegistry, transition, nil))
	assert.Equal(t, int64(6), asRegistry.GetInt64("catid", 0))

	value := content.Article{CatID: 3}
	assert.True(t, plugin.OnContentBeforeChangeStageDo(context.Background(), ArticleContext, value, transition, nil))
	assert.Equal(t, int64(3), value.CatID)
	assert.Equal(t, 1.0, testutil.ToFloat64(plugin.metrics.transitionHooks.WithLabelValues(OutcomeUnsupportedItem)))
}

func TestTransitionHookNilArticle(t *testing.T) {
	plugin, buf := newTestPlugin(t, nil, "")
	var article *content.Article

	assert.True(t, plugin.OnContentBeforeChangeStageDo(context.Background(), ArticleContext, article, transitionWith(registry.Registry{"category_id": 5}), nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(plugin.metrics.transitionHooks.WithLabelValues(OutcomeUnsupportedItem)))
	assert.Equal(t, 0.0, testutil.ToFloat64(plugin.metrics.transitionHooks.WithLabelValues(OutcomeAssigned)))
	assert.NotContains(t, buf.String(), `"msg":"category assigned"`)
}

func TestTransitionOptionsShapes(t *testing.T) {
	tests := []struct {
		name       string
		transition any
		want       int64
	}{
		{"content transition", transitionWith(registry.Registry{"category_id": 4}), 4},
		{"map options", map[string]any{"options": map[string]any{"category_id": 4}}, 4},
		{"json string options", map[string]any{"options": `{"category_id":"4"}`}, 4},
		{"struct options", struct {
			Options map[string]any `json:"options"`
		}{Options: map[string]any{"category_id": 4}}, 4},
		{"invalid json options", map[string]any{"options": `{"category_id"`}, 0},
		{"nil transition", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, transitionOptions(tt.transition).GetInt64("category_id", 0))
		})
	}
}

func TestTransitionHookLogsAssignment(t *testing.T) {
	plugin, buf := newTestPlugin(t, nil, "")
	article := &content.Article{ID: 1, CatID: 3}

	plugin.OnContentBeforeChangeStageDo(context.Background(), ArticleContext, article, transitionWith(registry.Registry{"category_id": 5}), nil)

	out := buf.String()
	require.Contains(t, out, `"msg":"category assigned"`)
	assert.Contains(t, out, `"previous_category_id":3`)
	assert.Contains(t, out, `"category_id":5`)
	assert.Contains(t, out, `"component":"categoryassign"`)
}

func TestTransitionHookWithoutArguments(t *testing.T) {
	plugin, _ := newTestPlugin(t, nil, "")
	assert.True(t, plugin.OnContentBeforeChangeStageDo(context.Background()))
	assert.Equal(t, 1.0, testutil.ToFloat64(plugin.metrics.transitionHooks.WithLabelValues(OutcomeSkippedContext)))
}
