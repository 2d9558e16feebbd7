package categoryassign

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"categoryassign/internal/content"
	"categoryassign/internal/logging"
	"categoryassign/internal/registry"
)

type optionsProvider interface {
	OptionsRegistry() registry.Registry
}

// OnContentBeforeChangeStageDo assigns the transition's target category to
// the item about to change stage. It always returns true: a transition is
// never blocked by this hook.
func (p *Plugin) OnContentBeforeChangeStageDo(ctx context.Context, args ...any) bool {
	call := NormalizeTransitionArgs(args...)
	logger := logging.WithContext(ctx, p.logger).With(
		logging.String(logging.FieldContext, call.Context),
		logging.String("convention", call.Convention),
	)

	if call.Context != ArticleContext {
		p.skipTransition(logger, OutcomeSkippedContext, "unsupported context")
		return true
	}
	if !p.Enabled(call.Context) {
		p.skipTransition(logger, OutcomeDisabled, "workflow automation disabled")
		return true
	}

	raw := transitionOptions(call.Transition).Get(content.OptionCategoryID)
	if registry.Empty(raw) {
		p.skipTransition(logger, OutcomeNoCategory, "transition has no target category")
		return true
	}
	categoryID, ok := registry.ToInt64(raw)
	if !ok || categoryID <= 0 {
		p.metrics.transition(OutcomeInvalidCategory)
		logging.WarnWithContext(logger, "transition category ignored", "invalid_category",
			logging.String(logging.FieldCategoryID, fmt.Sprint(raw)),
			logging.String(logging.FieldErrorHint, "set options.category_id to a numeric category id"),
			logging.String(logging.FieldImpact, "article keeps its current category"),
		)
		return true
	}

	previous := registry.From(call.Item).GetInt64(categoryField, 0)
	if !assignCategory(call.Item, categoryID) {
		p.metrics.transition(OutcomeUnsupportedItem)
		logging.WarnWithContext(logger, "transition item has no category", "unsupported_item",
			logging.String("item_type", fmt.Sprintf("%T", call.Item)),
			logging.String(logging.FieldImpact, "category not assigned"),
		)
		return true
	}

	p.metrics.transition(OutcomeAssigned)
	logger.Info("category assigned",
		logging.String(logging.FieldEventType, "category_assigned"),
		logging.Int64("previous_category_id", previous),
		logging.Int64(logging.FieldCategoryID, categoryID),
	)
	return true
}

func (p *Plugin) skipTransition(logger *slog.Logger, outcome, reason string) {
	p.metrics.transition(outcome)
	logger.Debug("transition hook skipped",
		logging.Args(logging.DecisionAttrs("category_assignment", "skipped", reason)...)...)
}

// transitionOptions reads the options bag of a transition given as a
// content.Transition, a registry/map with an "options" entry, or a struct
// with an options field. Options stored as a JSON string are decoded.
func transitionOptions(transition any) registry.Registry {
	if transition == nil {
		return registry.New()
	}
	if provider, ok := transition.(optionsProvider); ok {
		return provider.OptionsRegistry()
	}
	options := registry.From(transition).Get("options")
	if raw, ok := options.(string); ok {
		decoded, err := registry.FromJSON(raw)
		if err != nil {
			return registry.New()
		}
		return decoded
	}
	return registry.From(options)
}

// assignCategory writes catid on items that expose it.
func assignCategory(item any, categoryID int64) bool {
	switch typed := item.(type) {
	case content.Categorized:
		if rv := reflect.ValueOf(typed); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return false
		}
		typed.SetCategoryID(categoryID)
		return true
	case registry.Registry:
		if typed == nil {
			return false
		}
		typed.Set(categoryField, categoryID)
		return true
	case map[string]any:
		if typed == nil {
			return false
		}
		typed[categoryField] = categoryID
		return true
	default:
		return false
	}
}
