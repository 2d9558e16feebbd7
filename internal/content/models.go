package content

import (
	"time"

	"categoryassign/internal/registry"
)

// Well-known category identifiers seeded by the store.
const (
	RootCategoryID          int64 = 1
	UncategorisedCategoryID int64 = 2
)

// AnyStage marks a transition that may start from every stage.
const AnyStage int64 = -1

// OptionCategoryID is the transition option naming the category assigned to
// items moved by the transition.
const OptionCategoryID = "category_id"

// Article publishing states.
const (
	StateUnpublished = 0
	StatePublished   = 1
	StateArchived    = 2
	StateTrashed     = -2
)

// Categorized is implemented by items whose category the workflow may assign.
type Categorized interface {
	CategoryID() int64
	SetCategoryID(id int64)
}

// Article is a piece of content moving through the workflow.
type Article struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Alias      string    `json:"alias"`
	CatID      int64     `json:"catid"`
	StageID    int64     `json:"stage_id"`
	State      int       `json:"state"`
	Body       string    `json:"articletext"`
	CreatedAt  time.Time `json:"created"`
	ModifiedAt time.Time `json:"modified"`
}

// CategoryID returns the article's current category.
func (a *Article) CategoryID() int64 {
	if a == nil {
		return 0
	}
	return a.CatID
}

// SetCategoryID assigns the article's category.
func (a *Article) SetCategoryID(id int64) {
	if a == nil {
		return
	}
	a.CatID = id
}

// Category classifies articles for one extension.
type Category struct {
	ID        int64     `json:"id"`
	ParentID  int64     `json:"parent_id"`
	Extension string    `json:"extension"`
	Title     string    `json:"title"`
	Alias     string    `json:"alias"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created"`
}

// Stage is a workflow position an article can occupy.
type Stage struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Default     bool   `json:"default"`
	Ordering    int    `json:"ordering"`
}

// Transition moves articles from one stage to another. Options carries
// administrator-defined metadata such as the target category_id.
type Transition struct {
	ID          int64             `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	FromStageID int64             `json:"from_stage_id"`
	ToStageID   int64             `json:"to_stage_id"`
	Published   bool              `json:"published"`
	Options     registry.Registry `json:"options"`
}

// AllowsFrom reports whether the transition may fire for an item in stageID.
func (t *Transition) AllowsFrom(stageID int64) bool {
	if t == nil {
		return false
	}
	return t.FromStageID == AnyStage || t.FromStageID == stageID
}

// OptionsRegistry returns the transition options, never nil.
func (t *Transition) OptionsRegistry() registry.Registry {
	if t == nil || t.Options == nil {
		return registry.New()
	}
	return t.Options
}
