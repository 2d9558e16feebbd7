package store_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"categoryassign/internal/content"
	"categoryassign/internal/registry"
	"categoryassign/internal/services"
	"categoryassign/internal/store"
	"categoryassign/internal/testsupport"
)

func TestOpenSeedsWellKnownCategories(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	assert.Equal(t, cfg.DatabasePath(), st.Path())

	root, err := st.GetCategory(ctx, content.RootCategoryID)
	require.NoError(t, err)
	require.NotNil(t, root)
	assert.Equal(t, "ROOT", root.Title)

	uncategorised, err := st.GetCategory(ctx, content.UncategorisedCategoryID)
	require.NoError(t, err)
	require.NotNil(t, uncategorised)
	assert.Equal(t, "articles", uncategorised.Extension)
	assert.Equal(t, "uncategorised", uncategorised.Alias)
	assert.False(t, uncategorised.CreatedAt.IsZero())

	articles, err := st.ListCategories(ctx, "articles")
	require.NoError(t, err)
	assert.Len(t, articles, 1)

	all, err := st.ListCategories(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestReopenKeepsData(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st, err := store.Open(cfg)
	require.NoError(t, err)
	_, err = st.CreateStage(context.Background(), content.Stage{Title: "Draft"})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	reopened := testsupport.MustOpenStore(t, cfg)
	stats, err := reopened.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, store.Stats{Categories: 2, Stages: 1}, stats)
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	require.NoError(t, st.Close())

	db, err := sql.Open("sqlite", cfg.DatabasePath())
	require.NoError(t, err)
	_, err = db.Exec("UPDATE schema_version SET version = 99")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = store.Open(cfg)
	assert.ErrorIs(t, err, store.ErrSchemaMismatch)
}

func TestCategoryCreation(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	cat, err := st.CreateCategory(ctx, content.Category{Title: "Café Reviews", Published: true})
	require.NoError(t, err)
	assert.Equal(t, "cafe-reviews", cat.Alias)
	assert.Equal(t, content.RootCategoryID, cat.ParentID)
	assert.Equal(t, "articles", cat.Extension)
	assert.True(t, cat.Published)

	found, err := st.FindCategoryByAlias(ctx, "articles", "cafe-reviews")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, cat.ID, found.ID)

	_, err = st.CreateCategory(ctx, content.Category{Title: "Cafe Reviews"})
	assert.ErrorIs(t, err, services.ErrConflict)

	_, err = st.CreateCategory(ctx, content.Category{Title: "  "})
	assert.ErrorIs(t, err, services.ErrValidation)

	missing, err := st.GetCategory(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStagesAndDefault(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	none, err := st.DefaultStage(ctx)
	require.NoError(t, err)
	assert.Nil(t, none)

	first, err := st.CreateStage(ctx, content.Stage{Title: "Draft", Ordering: 1})
	require.NoError(t, err)
	def, err := st.DefaultStage(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, def.ID)

	second, err := st.CreateStage(ctx, content.Stage{Title: "Inbox", Ordering: 0, Default: true, Description: "incoming"})
	require.NoError(t, err)
	assert.Equal(t, "incoming", second.Description)
	third, err := st.CreateStage(ctx, content.Stage{Title: "Review", Ordering: 2, Default: true})
	require.NoError(t, err)

	def, err = st.DefaultStage(ctx)
	require.NoError(t, err)
	assert.Equal(t, third.ID, def.ID)

	stages, err := st.ListStages(ctx)
	require.NoError(t, err)
	require.Len(t, stages, 3)
	assert.Equal(t, []string{"Inbox", "Draft", "Review"}, []string{stages[0].Title, stages[1].Title, stages[2].Title})
	assert.False(t, stages[0].Default)

	byTitle, err := st.FindStageByTitle(ctx, "Review")
	require.NoError(t, err)
	assert.Equal(t, third.ID, byTitle.ID)

	_, err = st.CreateStage(ctx, content.Stage{Title: "Review"})
	assert.ErrorIs(t, err, services.ErrConflict)
}

func TestTransitionOptionsRoundTrip(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	wf := testsupport.SeedWorkflow(t, st)
	ctx := context.Background()

	publish, err := st.GetTransition(ctx, wf.Publish.ID)
	require.NoError(t, err)
	assert.Equal(t, wf.News.ID, publish.OptionsRegistry().GetInt64("category_id", 0))
	assert.Equal(t, wf.Review.ID, publish.FromStageID)

	submit, err := st.GetTransition(ctx, wf.Submit.ID)
	require.NoError(t, err)
	assert.False(t, submit.OptionsRegistry().Has("category_id"))

	submit.Options = registry.Registry{"category_id": "7", "publishing": "1"}
	submit.Description = "send to editors"
	require.NoError(t, st.UpdateTransition(ctx, submit))

	reloaded, err := st.FindTransitionByTitle(ctx, "Submit")
	require.NoError(t, err)
	assert.Equal(t, int64(7), reloaded.OptionsRegistry().GetInt64("category_id", 0))
	assert.Equal(t, "send to editors", reloaded.Description)

	fromReview, err := st.TransitionsFrom(ctx, wf.Review.ID)
	require.NoError(t, err)
	var titles []string
	for _, tr := range fromReview {
		titles = append(titles, tr.Title)
	}
	assert.Equal(t, []string{"Publish", "Withdraw"}, titles)

	all, err := st.ListTransitions(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestTransitionValidation(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	wf := testsupport.SeedWorkflow(t, st)
	ctx := context.Background()

	_, err := st.CreateTransition(ctx, content.Transition{Title: "", ToStageID: wf.Draft.ID, FromStageID: content.AnyStage})
	assert.ErrorIs(t, err, services.ErrValidation)
	_, err = st.CreateTransition(ctx, content.Transition{Title: "Nowhere", FromStageID: content.AnyStage})
	assert.ErrorIs(t, err, services.ErrValidation)
	_, err = st.CreateTransition(ctx, content.Transition{Title: "Odd", FromStageID: -7, ToStageID: wf.Draft.ID})
	assert.ErrorIs(t, err, services.ErrValidation)
	_, err = st.CreateTransition(ctx, content.Transition{Title: "Ghost", FromStageID: content.AnyStage, ToStageID: 999})
	assert.ErrorIs(t, err, services.ErrValidation)

	err = st.UpdateTransition(ctx, &content.Transition{ID: 999, Title: "Missing", FromStageID: content.AnyStage, ToStageID: wf.Draft.ID})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestArticleLifecycle(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	_, err := st.CreateArticle(ctx, content.Article{Title: "Orphan"})
	assert.ErrorIs(t, err, services.ErrValidation, "no stages yet")

	wf := testsupport.SeedWorkflow(t, st)
	article := testsupport.NewArticle(t, st, "Hello World", 0)
	assert.Equal(t, content.UncategorisedCategoryID, article.CatID)
	assert.Equal(t, wf.Draft.ID, article.StageID)
	assert.Equal(t, "hello-world", article.Alias)
	assert.False(t, article.CreatedAt.IsZero())

	article.CatID = wf.News.ID
	article.StageID = wf.Review.ID
	require.NoError(t, st.UpdateArticle(ctx, article))

	reloaded, err := st.GetArticle(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, wf.News.ID, reloaded.CatID)
	assert.Equal(t, wf.Review.ID, reloaded.StageID)

	article.CatID = 999
	assert.ErrorIs(t, st.UpdateArticle(ctx, article), services.ErrValidation)

	testsupport.NewArticle(t, st, "Second", wf.Archive.ID)
	inDraft, err := st.ListArticles(ctx, wf.Draft.ID)
	require.NoError(t, err)
	require.Len(t, inDraft, 1)
	assert.Equal(t, "Second", inDraft[0].Title)

	all, err := st.ListArticles(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	missing, err := st.GetArticle(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
	assert.ErrorIs(t, st.UpdateArticle(ctx, &content.Article{ID: 999, Title: "x", CatID: 2, StageID: wf.Draft.ID}), services.ErrNotFound)
}
