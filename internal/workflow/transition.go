package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"categoryassign/internal/config"
	"categoryassign/internal/content"
	"categoryassign/internal/event"
	"categoryassign/internal/form"
	"categoryassign/internal/logging"
	"categoryassign/internal/services"
)

// TransitionResult describes a completed transition.
type TransitionResult struct {
	RequestID          string              `json:"request_id"`
	Article            *content.Article    `json:"article"`
	Transition         *content.Transition `json:"transition"`
	FromStageID        int64               `json:"from_stage_id"`
	PreviousCategoryID int64               `json:"previous_category_id"`
}

// CategoryChanged reports whether a listener reassigned the article.
func (r *TransitionResult) CategoryChanged() bool {
	return r != nil && r.Article != nil && r.Article.CatID != r.PreviousCategoryID
}

// RunTransition applies a transition to an article.
func (m *Manager) RunTransition(ctx context.Context, articleID, transitionID int64) (*TransitionResult, error) {
	started := time.Now()
	requestID := uuid.NewString()
	ctx = services.WithRequestID(ctx, requestID)
	ctx = services.WithItemID(ctx, articleID)

	release, err := m.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	article, err := m.store.GetArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, services.Wrap(services.ErrNotFound, "workflow", "run transition", fmt.Sprintf("article %d", articleID), nil)
	}
	transition, err := m.store.GetTransition(ctx, transitionID)
	if err != nil {
		return nil, err
	}
	if transition == nil {
		return nil, services.Wrap(services.ErrNotFound, "workflow", "run transition", fmt.Sprintf("transition %d", transitionID), nil)
	}
	if !transition.Published {
		return nil, services.Wrap(services.ErrValidation, "workflow", "run transition",
			fmt.Sprintf("transition %q is disabled", transition.Title), nil)
	}
	if !transition.AllowsFrom(article.StageID) {
		return nil, services.Wrap(services.ErrValidation, "workflow", "run transition",
			fmt.Sprintf("transition %q does not start at stage %d", transition.Title, article.StageID), nil)
	}

	if target, err := m.store.GetStage(ctx, transition.ToStageID); err == nil && target != nil {
		ctx = services.WithStage(ctx, target.Title)
	}
	logger := logging.WithContext(ctx, m.logger).With(
		logging.Int64(logging.FieldTransitionID, transition.ID),
	)

	result := &TransitionResult{
		RequestID:          requestID,
		Article:            article,
		Transition:         transition,
		FromStageID:        article.StageID,
		PreviousCategoryID: article.CatID,
	}
	data := map[string]any{
		"from_stage_id": article.StageID,
		"to_stage_id":   transition.ToStageID,
		"request_id":    requestID,
	}

	before := event.NewTransitionEvent(event.BeforeChangeStage, form.ArticleContext, article, transition, data)
	if !m.dispatcher.Dispatch(ctx, before) {
		logger.Info("transition blocked",
			logging.String(logging.FieldEventType, "transition_blocked"),
			logging.String("transition", transition.Title),
		)
		return nil, fmt.Errorf("%w: %s", ErrTransitionBlocked, transition.Title)
	}

	article.StageID = transition.ToStageID
	if err := m.store.UpdateArticle(ctx, article); err != nil {
		return nil, fmt.Errorf("persist article %d: %w", article.ID, err)
	}

	m.dispatcher.Dispatch(ctx, event.NewTransitionEvent(event.AfterTransition, form.ArticleContext, article, transition, data))

	logger.Info("transition applied",
		logging.String(logging.FieldEventType, "transition_applied"),
		logging.String("transition", transition.Title),
		logging.Int64("from_stage_id", result.FromStageID),
		logging.Int64("to_stage_id", article.StageID),
		logging.Int64("previous_category_id", result.PreviousCategoryID),
		logging.Int64(logging.FieldCategoryID, article.CatID),
		logging.Bool("category_changed", result.CategoryChanged()),
		logging.Duration("elapsed", time.Since(started)),
	)
	return result, nil
}

// AvailableTransitions lists the transitions an article may take next.
func (m *Manager) AvailableTransitions(ctx context.Context, articleID int64) ([]*content.Transition, error) {
	article, err := m.store.GetArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, services.Wrap(services.ErrNotFound, "workflow", "available transitions", fmt.Sprintf("article %d", articleID), nil)
	}
	return m.store.TransitionsFrom(ctx, article.StageID)
}

// SetTransitionCategory stores the category a transition assigns. Zero clears
// it. The category must exist and belong to the articles extension.
func (m *Manager) SetTransitionCategory(ctx context.Context, transitionID, categoryID int64) (*content.Transition, error) {
	transition, err := m.store.GetTransition(ctx, transitionID)
	if err != nil {
		return nil, err
	}
	if transition == nil {
		return nil, services.Wrap(services.ErrNotFound, "workflow", "set transition category", fmt.Sprintf("transition %d", transitionID), nil)
	}
	if categoryID != 0 {
		if err := m.requireArticleCategory(ctx, "set transition category", categoryID); err != nil {
			return nil, err
		}
	}
	options := transition.OptionsRegistry().Clone()
	if categoryID == 0 {
		delete(options, content.OptionCategoryID)
	} else {
		options.Set(content.OptionCategoryID, categoryID)
	}
	transition.Options = options
	if err := m.store.UpdateTransition(ctx, transition); err != nil {
		return nil, err
	}
	logging.WithContext(ctx, m.logger).Info("transition category updated",
		logging.Int64(logging.FieldTransitionID, transition.ID),
		logging.Int64(logging.FieldCategoryID, categoryID),
	)
	return transition, nil
}

func (m *Manager) requireArticleCategory(ctx context.Context, operation string, categoryID int64) error {
	category, err := m.store.GetCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return services.Wrap(services.ErrNotFound, "workflow", operation, fmt.Sprintf("category %d", categoryID), nil)
	}
	if !strings.EqualFold(category.Extension, config.ArticlesComponent) {
		return services.Wrap(services.ErrValidation, "workflow", operation,
			fmt.Sprintf("category %d belongs to %s", categoryID, category.Extension), nil)
	}
	return nil
}
