package testsupport

import (
	"context"
	"testing"

	"categoryassign/internal/config"
	"categoryassign/internal/content"
	"categoryassign/internal/registry"
	"categoryassign/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// Workflow is the seeded editorial workflow used across tests.
type Workflow struct {
	Draft     *content.Stage
	Review    *content.Stage
	Published *content.Stage

	News     *content.Category
	Archive  *content.Category
	Submit   *content.Transition // draft -> review, no category
	Publish  *content.Transition // review -> published, assigns News
	Withdraw *content.Transition // any stage -> draft, assigns Archive
}

// SeedWorkflow creates three stages, two categories, and three transitions.
func SeedWorkflow(t testing.TB, st *store.Store) Workflow {
	t.Helper()

	var wf Workflow
	wf.Draft = mustStage(t, st, content.Stage{Title: "Draft", Default: true, Ordering: 1})
	wf.Review = mustStage(t, st, content.Stage{Title: "Review", Ordering: 2})
	wf.Published = mustStage(t, st, content.Stage{Title: "Published", Ordering: 3})
	wf.News = mustCategory(t, st, content.Category{Title: "News", Published: true})
	wf.Archive = mustCategory(t, st, content.Category{Title: "Archive", Published: true})

	wf.Submit = mustTransition(t, st, content.Transition{
		Title: "Submit", FromStageID: wf.Draft.ID, ToStageID: wf.Review.ID, Published: true,
	})
	wf.Publish = mustTransition(t, st, content.Transition{
		Title: "Publish", FromStageID: wf.Review.ID, ToStageID: wf.Published.ID, Published: true,
		Options: registry.Registry{content.OptionCategoryID: wf.News.ID},
	})
	wf.Withdraw = mustTransition(t, st, content.Transition{
		Title: "Withdraw", FromStageID: content.AnyStage, ToStageID: wf.Draft.ID, Published: true,
		Options: registry.Registry{content.OptionCategoryID: wf.Archive.ID},
	})
	return wf
}

// NewArticle inserts an article in the default stage.
func NewArticle(t testing.TB, st *store.Store, title string, catID int64) *content.Article {
	t.Helper()

	article, err := st.CreateArticle(context.Background(), content.Article{
		Title: title,
		CatID: catID,
		State: content.StatePublished,
	})
	if err != nil {
		t.Fatalf("store.CreateArticle: %v", err)
	}
	return article
}

func mustStage(t testing.TB, st *store.Store, stage content.Stage) *content.Stage {
	t.Helper()
	created, err := st.CreateStage(context.Background(), stage)
	if err != nil {
		t.Fatalf("store.CreateStage(%s): %v", stage.Title, err)
	}
	return created
}

func mustCategory(t testing.TB, st *store.Store, cat content.Category) *content.Category {
	t.Helper()
	created, err := st.CreateCategory(context.Background(), cat)
	if err != nil {
		t.Fatalf("store.CreateCategory(%s): %v", cat.Title, err)
	}
	return created
}

func mustTransition(t testing.TB, st *store.Store, tr content.Transition) *content.Transition {
	t.Helper()
	created, err := st.CreateTransition(context.Background(), tr)
	if err != nil {
		t.Fatalf("store.CreateTransition(%s): %v", tr.Title, err)
	}
	return created
}
