package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"categoryassign/internal/config"
	"categoryassign/internal/content"
	"categoryassign/internal/services"
	"categoryassign/internal/store"
)

func parseID(kind, value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, value)
	}
	return id, nil
}

func notFound(kind, ref string) error {
	return services.Wrap(services.ErrNotFound, "cli", "lookup "+kind, fmt.Sprintf("%s %q not found", kind, ref), nil)
}

// resolveCategory accepts a numeric id or an article category alias.
func resolveCategory(ctx context.Context, st *store.Store, ref string) (*content.Category, error) {
	ref = strings.TrimSpace(ref)
	var (
		cat *content.Category
		err error
	)
	if id, convErr := strconv.ParseInt(ref, 10, 64); convErr == nil {
		cat, err = st.GetCategory(ctx, id)
	} else {
		cat, err = st.FindCategoryByAlias(ctx, config.ArticlesComponent, content.Alias(ref))
	}
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, notFound("category", ref)
	}
	return cat, nil
}

// resolveStage accepts a numeric id or a stage title.
func resolveStage(ctx context.Context, st *store.Store, ref string) (*content.Stage, error) {
	ref = strings.TrimSpace(ref)
	var (
		stage *content.Stage
		err   error
	)
	if id, convErr := strconv.ParseInt(ref, 10, 64); convErr == nil {
		stage, err = st.GetStage(ctx, id)
	} else {
		stage, err = st.FindStageByTitle(ctx, ref)
	}
	if err != nil {
		return nil, err
	}
	if stage == nil {
		return nil, notFound("stage", ref)
	}
	return stage, nil
}

// resolveTransition accepts a numeric id or a transition title.
func resolveTransition(ctx context.Context, st *store.Store, ref string) (*content.Transition, error) {
	ref = strings.TrimSpace(ref)
	var (
		tr  *content.Transition
		err error
	)
	if id, convErr := strconv.ParseInt(ref, 10, 64); convErr == nil {
		tr, err = st.GetTransition(ctx, id)
	} else {
		tr, err = st.FindTransitionByTitle(ctx, ref)
	}
	if err != nil {
		return nil, err
	}
	if tr == nil {
		return nil, notFound("transition", ref)
	}
	return tr, nil
}

// stageTitles maps stage ids to titles for table rendering.
func stageTitles(ctx context.Context, st *store.Store) (map[int64]string, error) {
	stages, err := st.ListStages(ctx)
	if err != nil {
		return nil, err
	}
	titles := make(map[int64]string, len(stages)+1)
	titles[content.AnyStage] = "*"
	for _, stage := range stages {
		titles[stage.ID] = stage.Title
	}
	return titles, nil
}

func stageLabel(titles map[int64]string, id int64) string {
	if title, ok := titles[id]; ok {
		return title
	}
	return strconv.FormatInt(id, 10)
}

func transitionCategory(tr *content.Transition) string {
	id := tr.OptionsRegistry().GetInt64(content.OptionCategoryID, 0)
	if id <= 0 {
		return "-"
	}
	return strconv.FormatInt(id, 10)
}
