package workflow

import (
	"context"
	"fmt"

	"categoryassign/internal/content"
	"categoryassign/internal/event"
	"categoryassign/internal/form"
	"categoryassign/internal/services"
)

// ArticleForm builds the article editor. articleID 0 prepares the form for a
// new article.
func (m *Manager) ArticleForm(ctx context.Context, articleID int64) (*form.Form, error) {
	f, err := form.Builtin(form.ArticleContext)
	if err != nil {
		return nil, err
	}

	var data any = map[string]any{}
	if articleID != 0 {
		article, err := m.store.GetArticle(ctx, articleID)
		if err != nil {
			return nil, err
		}
		if article == nil {
			return nil, services.Wrap(services.ErrNotFound, "workflow", "article form", fmt.Sprintf("article %d", articleID), nil)
		}
		ctx = services.WithItemID(ctx, articleID)
		data = article
	}
	f.Bind(data)
	m.dispatcher.Dispatch(ctx, event.NewPrepareFormEvent(f, data))
	return f, nil
}

// TransitionForm builds the transition editor. transitionID 0 prepares the
// form for a new transition.
func (m *Manager) TransitionForm(ctx context.Context, transitionID int64) (*form.Form, error) {
	f, err := form.Builtin(form.TransitionContext)
	if err != nil {
		return nil, err
	}

	var data any = map[string]any{}
	if transitionID != 0 {
		transition, err := m.store.GetTransition(ctx, transitionID)
		if err != nil {
			return nil, err
		}
		if transition == nil {
			return nil, services.Wrap(services.ErrNotFound, "workflow", "transition form", fmt.Sprintf("transition %d", transitionID), nil)
		}
		data = transitionData(transition)
	}
	f.Bind(data)
	m.dispatcher.Dispatch(ctx, event.NewPrepareFormEvent(f, data))
	return f, nil
}

func transitionData(t *content.Transition) map[string]any {
	return map[string]any{
		"id":            t.ID,
		"title":         t.Title,
		"description":   t.Description,
		"from_stage_id": t.FromStageID,
		"to_stage_id":   t.ToStageID,
		"published":     t.Published,
		"options":       t.OptionsRegistry().Clone(),
	}
}
