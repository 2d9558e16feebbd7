package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"categoryassign/internal/content"
	"categoryassign/internal/registry"
)

func TestArticleCategorized(t *testing.T) {
	var item content.Categorized = &content.Article{CatID: 3}
	assert.Equal(t, int64(3), item.CategoryID())
	item.SetCategoryID(5)
	assert.Equal(t, int64(5), item.CategoryID())

	var nilArticle *content.Article
	assert.Equal(t, int64(0), nilArticle.CategoryID())
	nilArticle.SetCategoryID(1)
}

func TestArticleDataKeys(t *testing.T) {
	data := registry.From(&content.Article{CatID: 9, Title: "Draft"})
	assert.Equal(t, int64(9), data.GetInt64("catid", 0))
	assert.Equal(t, "Draft", data.GetString("title", ""))
}

func TestTransitionAllowsFrom(t *testing.T) {
	anyStage := &content.Transition{FromStageID: content.AnyStage, ToStageID: 2}
	assert.True(t, anyStage.AllowsFrom(1))
	assert.True(t, anyStage.AllowsFrom(7))

	fixed := &content.Transition{FromStageID: 1, ToStageID: 2}
	assert.True(t, fixed.AllowsFrom(1))
	assert.False(t, fixed.AllowsFrom(2))

	var nilTransition *content.Transition
	assert.False(t, nilTransition.AllowsFrom(1))
	assert.NotNil(t, nilTransition.OptionsRegistry())
}

func TestAlias(t *testing.T) {
	tests := map[string]string{
		"Hello World":          "hello-world",
		"  Crème brûlée!  ":    "creme-brulee",
		"News / Local -- 2026": "news-local-2026",
	}
	for title, want := range tests {
		assert.Equal(t, want, content.Alias(title), title)
	}
	assert.NotEmpty(t, content.Alias("!!!"))
}

func TestDisplayTitle(t *testing.T) {
	assert.Equal(t, "Needs Review", content.DisplayTitle("needs review"))
	assert.Equal(t, "", content.DisplayTitle("  "))
}
