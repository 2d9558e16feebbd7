package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"categoryassign/internal/config"
	"categoryassign/internal/content"
	"categoryassign/internal/logging"
	"categoryassign/internal/registry"
	"categoryassign/internal/services"
)

// Definition is a workflow described in YAML.
type Definition struct {
	Categories  []CategoryDefinition   `yaml:"categories"`
	Stages      []StageDefinition      `yaml:"stages"`
	Transitions []TransitionDefinition `yaml:"transitions"`
}

// CategoryDefinition declares an article category.
type CategoryDefinition struct {
	Title string `yaml:"title"`
	Alias string `yaml:"alias"`
}

// StageDefinition declares a workflow stage.
type StageDefinition struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Default     bool   `yaml:"default"`
}

// TransitionDefinition declares a transition. From and To name stages by
// title; From "*" allows every stage. Category names an article category by
// alias and becomes options.category_id.
type TransitionDefinition struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	From        string         `yaml:"from"`
	To          string         `yaml:"to"`
	Category    string         `yaml:"category"`
	Disabled    bool           `yaml:"disabled"`
	Options     map[string]any `yaml:"options"`
}

// ImportSummary counts what an import changed.
type ImportSummary struct {
	CategoriesCreated  int `json:"categories_created"`
	StagesCreated      int `json:"stages_created"`
	TransitionsCreated int `json:"transitions_created"`
	TransitionsUpdated int `json:"transitions_updated"`
}

// ParseDefinition decodes and validates a YAML workflow definition.
func ParseDefinition(r io.Reader) (*Definition, error) {
	var def Definition
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, services.Wrap(services.ErrValidation, "workflow", "parse definition", "definition is empty", nil)
		}
		return nil, services.Wrap(services.ErrValidation, "workflow", "parse definition", "invalid yaml", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks required fields and rejects duplicate stage and transition
// titles. Stage and category references may name rows that already exist in
// the store, so Import resolves them before writing anything.
func (d *Definition) Validate() error {
	stages := make(map[string]bool, len(d.Stages))
	for i, stage := range d.Stages {
		title := strings.TrimSpace(stage.Title)
		if title == "" {
			return invalidDefinition(fmt.Sprintf("stages[%d]: title is required", i))
		}
		if stages[title] {
			return invalidDefinition(fmt.Sprintf("stages[%d]: duplicate title %q", i, title))
		}
		stages[title] = true
	}
	transitions := make(map[string]bool, len(d.Transitions))
	for i, tr := range d.Transitions {
		title := strings.TrimSpace(tr.Title)
		if title == "" {
			return invalidDefinition(fmt.Sprintf("transitions[%d]: title is required", i))
		}
		if transitions[title] {
			return invalidDefinition(fmt.Sprintf("transitions[%d]: duplicate title %q", i, title))
		}
		transitions[title] = true
		if strings.TrimSpace(tr.To) == "" {
			return invalidDefinition(fmt.Sprintf("transition %q: to is required", tr.Title))
		}
	}
	for i, cat := range d.Categories {
		if strings.TrimSpace(cat.Title) == "" {
			return invalidDefinition(fmt.Sprintf("categories[%d]: title is required", i))
		}
	}
	return nil
}

func invalidDefinition(message string) error {
	return services.Wrap(services.ErrValidation, "workflow", "validate definition", message, nil)
}

// ImportDefinition loads a YAML definition from path into the store. Rows
// that already exist (categories by alias, stages and transitions by title)
// are reused; existing transitions are updated to match the definition.
func (m *Manager) ImportDefinition(ctx context.Context, path string) (ImportSummary, error) {
	file, err := os.Open(path)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("open definition: %w", err)
	}
	defer file.Close()

	def, err := ParseDefinition(file)
	if err != nil {
		return ImportSummary{}, err
	}
	return m.Import(ctx, def)
}

// Import applies a parsed definition. Every stage and category reference is
// resolved before the first row is written, so a definition naming an unknown
// stage or category leaves the store untouched. The import is not one
// transaction: a store failure part way keeps the rows already written, and
// running the import again reuses them.
func (m *Manager) Import(ctx context.Context, def *Definition) (ImportSummary, error) {
	var summary ImportSummary
	if def == nil {
		return summary, nil
	}
	if err := m.checkReferences(ctx, def); err != nil {
		return summary, err
	}

	categories := map[string]int64{}
	for _, cd := range def.Categories {
		alias := strings.TrimSpace(cd.Alias)
		if alias == "" {
			alias = content.Alias(cd.Title)
		}
		existing, err := m.store.FindCategoryByAlias(ctx, config.ArticlesComponent, alias)
		if err != nil {
			return summary, err
		}
		if existing == nil {
			existing, err = m.store.CreateCategory(ctx, content.Category{Title: cd.Title, Alias: alias, Published: true})
			if err != nil {
				return summary, err
			}
			summary.CategoriesCreated++
		}
		categories[alias] = existing.ID
	}

	stages := map[string]int64{}
	for i, sd := range def.Stages {
		title := strings.TrimSpace(sd.Title)
		existing, err := m.store.FindStageByTitle(ctx, title)
		if err != nil {
			return summary, err
		}
		if existing == nil {
			existing, err = m.store.CreateStage(ctx, content.Stage{
				Title:       title,
				Description: sd.Description,
				Default:     sd.Default,
				Ordering:    i + 1,
			})
			if err != nil {
				return summary, err
			}
			summary.StagesCreated++
		}
		stages[title] = existing.ID
	}

	for _, td := range def.Transitions {
		tr, err := m.resolveTransition(ctx, td, stages, categories)
		if err != nil {
			return summary, err
		}
		existing, err := m.store.FindTransitionByTitle(ctx, tr.Title)
		if err != nil {
			return summary, err
		}
		if existing == nil {
			if _, err := m.store.CreateTransition(ctx, tr); err != nil {
				return summary, err
			}
			summary.TransitionsCreated++
			continue
		}
		tr.ID = existing.ID
		if err := m.store.UpdateTransition(ctx, &tr); err != nil {
			return summary, err
		}
		summary.TransitionsUpdated++
	}

	m.logger.Info("workflow definition imported",
		logging.String(logging.FieldEventType, "definition_imported"),
		logging.Int("categories_created", summary.CategoriesCreated),
		logging.Int("stages_created", summary.StagesCreated),
		logging.Int("transitions_created", summary.TransitionsCreated),
		logging.Int("transitions_updated", summary.TransitionsUpdated),
	)
	return summary, nil
}

// checkReferences verifies that every transition names a stage and category
// that is either declared in def or already stored.
func (m *Manager) checkReferences(ctx context.Context, def *Definition) error {
	stages := make(map[string]bool, len(def.Stages))
	for _, sd := range def.Stages {
		stages[strings.TrimSpace(sd.Title)] = true
	}
	categories := make(map[string]bool, len(def.Categories))
	for _, cd := range def.Categories {
		alias := strings.TrimSpace(cd.Alias)
		if alias == "" {
			alias = content.Alias(cd.Title)
		}
		categories[alias] = true
	}

	stageKnown := func(title string) (bool, error) {
		if stages[title] {
			return true, nil
		}
		stage, err := m.store.FindStageByTitle(ctx, title)
		return stage != nil, err
	}
	for _, td := range def.Transitions {
		refs := []string{strings.TrimSpace(td.To)}
		if from := strings.TrimSpace(td.From); from != "" && from != "*" {
			refs = append(refs, from)
		}
		for _, title := range refs {
			ok, err := stageKnown(title)
			if err != nil {
				return err
			}
			if !ok {
				return invalidDefinition(fmt.Sprintf("transition %q: unknown stage %q", td.Title, title))
			}
		}
		alias := strings.TrimSpace(td.Category)
		if alias == "" || categories[alias] {
			continue
		}
		existing, err := m.store.FindCategoryByAlias(ctx, config.ArticlesComponent, alias)
		if err != nil {
			return err
		}
		if existing == nil {
			return invalidDefinition(fmt.Sprintf("transition %q: unknown category %q", td.Title, alias))
		}
	}
	return nil
}

func (m *Manager) resolveTransition(ctx context.Context, td TransitionDefinition, stages, categories map[string]int64) (content.Transition, error) {
	tr := content.Transition{
		Title:       strings.TrimSpace(td.Title),
		Description: td.Description,
		Published:   !td.Disabled,
		Options:     registry.From(td.Options).Clone(),
	}

	from := strings.TrimSpace(td.From)
	switch from {
	case "", "*":
		tr.FromStageID = content.AnyStage
	default:
		id, err := m.stageID(ctx, from, stages)
		if err != nil {
			return tr, err
		}
		tr.FromStageID = id
	}
	to, err := m.stageID(ctx, strings.TrimSpace(td.To), stages)
	if err != nil {
		return tr, err
	}
	tr.ToStageID = to

	if alias := strings.TrimSpace(td.Category); alias != "" {
		id, ok := categories[alias]
		if !ok {
			existing, err := m.store.FindCategoryByAlias(ctx, config.ArticlesComponent, alias)
			if err != nil {
				return tr, err
			}
			if existing == nil {
				return tr, invalidDefinition(fmt.Sprintf("transition %q: unknown category %q", tr.Title, alias))
			}
			id = existing.ID
		}
		tr.Options.Set(content.OptionCategoryID, id)
	}
	return tr, nil
}

func (m *Manager) stageID(ctx context.Context, title string, known map[string]int64) (int64, error) {
	if id, ok := known[title]; ok {
		return id, nil
	}
	stage, err := m.store.FindStageByTitle(ctx, title)
	if err != nil {
		return 0, err
	}
	if stage == nil {
		return 0, invalidDefinition(fmt.Sprintf("unknown stage %q", title))
	}
	return stage.ID, nil
}
