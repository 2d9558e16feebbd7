package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"categoryassign/internal/content"
	"categoryassign/internal/registry"
)

const transitionColumns = "id, title, description, from_stage_id, to_stage_id, published, options_json"

func scanTransition(scanner rowScanner) (*content.Transition, error) {
	var (
		tr          content.Transition
		description sql.NullString
		published   int
		optionsJSON sql.NullString
	)
	if err := scanner.Scan(&tr.ID, &tr.Title, &description, &tr.FromStageID, &tr.ToStageID, &published, &optionsJSON); err != nil {
		return nil, err
	}
	tr.Description = description.String
	tr.Published = published != 0
	options, err := registry.FromJSON(optionsJSON.String)
	if err != nil {
		return nil, fmt.Errorf("decode options of transition %d: %w", tr.ID, err)
	}
	tr.Options = options
	return &tr, nil
}

func validateTransition(operation string, tr *content.Transition) error {
	tr.Title = strings.TrimSpace(tr.Title)
	if tr.Title == "" {
		return validationError(operation, "title is required")
	}
	if tr.ToStageID <= 0 {
		return validationError(operation, "target stage is required")
	}
	if tr.FromStageID <= 0 && tr.FromStageID != content.AnyStage {
		return validationError(operation, fmt.Sprintf("invalid from stage %d", tr.FromStageID))
	}
	return nil
}

func encodeOptions(options registry.Registry) (string, error) {
	if options == nil {
		options = registry.New()
	}
	encoded, err := options.JSON()
	if err != nil {
		return "", fmt.Errorf("encode transition options: %w", err)
	}
	return encoded, nil
}

// CreateTransition inserts a transition with its options.
func (s *Store) CreateTransition(ctx context.Context, tr content.Transition) (*content.Transition, error) {
	if err := validateTransition("create transition", &tr); err != nil {
		return nil, err
	}
	optionsJSON, err := encodeOptions(tr.Options)
	if err != nil {
		return nil, err
	}
	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO transitions (title, description, from_stage_id, to_stage_id, published, options_json)
         VALUES (?, ?, ?, ?, ?, ?)`,
		tr.Title,
		nullableString(strings.TrimSpace(tr.Description)),
		tr.FromStageID,
		tr.ToStageID,
		boolToInt(tr.Published),
		optionsJSON,
	)
	if err != nil {
		return nil, constraintError("create transition", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetTransition(ctx, id)
}

// UpdateTransition persists every mutable transition column.
func (s *Store) UpdateTransition(ctx context.Context, tr *content.Transition) error {
	if tr == nil {
		return validationError("update transition", "transition is nil")
	}
	if err := validateTransition("update transition", tr); err != nil {
		return err
	}
	optionsJSON, err := encodeOptions(tr.Options)
	if err != nil {
		return err
	}
	res, err := s.execWithRetry(
		ctx,
		`UPDATE transitions
         SET title = ?, description = ?, from_stage_id = ?, to_stage_id = ?, published = ?, options_json = ?
         WHERE id = ?`,
		tr.Title,
		nullableString(strings.TrimSpace(tr.Description)),
		tr.FromStageID,
		tr.ToStageID,
		boolToInt(tr.Published),
		optionsJSON,
		tr.ID,
	)
	if err != nil {
		return constraintError("update transition", err)
	}
	return requireAffected(res, "update transition", tr.ID)
}

// GetTransition fetches a transition by identifier.
func (s *Store) GetTransition(ctx context.Context, id int64) (*content.Transition, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+transitionColumns+` FROM transitions WHERE id = ?`, id)
	tr, err := scanTransition(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get transition: %w", err)
	}
	return tr, nil
}

// FindTransitionByTitle looks a transition up by its unique title.
func (s *Store) FindTransitionByTitle(ctx context.Context, title string) (*content.Transition, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+transitionColumns+` FROM transitions WHERE title = ?`, strings.TrimSpace(title))
	tr, err := scanTransition(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find transition: %w", err)
	}
	return tr, nil
}

// ListTransitions returns every transition ordered by id.
func (s *Store) ListTransitions(ctx context.Context) ([]*content.Transition, error) {
	return s.queryTransitions(ctx, `SELECT `+transitionColumns+` FROM transitions ORDER BY id`)
}

// TransitionsFrom returns the published transitions available to an item in
// stageID, including those that start from any stage.
func (s *Store) TransitionsFrom(ctx context.Context, stageID int64) ([]*content.Transition, error) {
	return s.queryTransitions(ctx,
		`SELECT `+transitionColumns+` FROM transitions
         WHERE published = 1 AND (from_stage_id = ? OR from_stage_id = ?)
         ORDER BY id`,
		stageID, content.AnyStage,
	)
}

func (s *Store) queryTransitions(ctx context.Context, query string, args ...any) ([]*content.Transition, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transitions: %w", err)
	}
	defer rows.Close()

	var out []*content.Transition
	for rows.Next() {
		tr, err := scanTransition(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}
