package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"categoryassign/internal/content"
)

const stageColumns = "id, title, description, is_default, ordering"

func scanStage(scanner rowScanner) (*content.Stage, error) {
	var (
		stage       content.Stage
		description sql.NullString
		isDefault   int
	)
	if err := scanner.Scan(&stage.ID, &stage.Title, &description, &isDefault, &stage.Ordering); err != nil {
		return nil, err
	}
	stage.Description = description.String
	stage.Default = isDefault != 0
	return &stage, nil
}

// CreateStage inserts a workflow stage. Marking a stage as default clears the
// flag on every other stage.
func (s *Store) CreateStage(ctx context.Context, stage content.Stage) (*content.Stage, error) {
	stage.Title = strings.TrimSpace(stage.Title)
	if stage.Title == "" {
		return nil, validationError("create stage", "title is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin stage tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if stage.Default {
		if _, err := tx.ExecContext(ctx, `UPDATE stages SET is_default = 0`); err != nil {
			return nil, fmt.Errorf("clear default stage: %w", err)
		}
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO stages (title, description, is_default, ordering) VALUES (?, ?, ?, ?)`,
		stage.Title,
		nullableString(strings.TrimSpace(stage.Description)),
		boolToInt(stage.Default),
		stage.Ordering,
	)
	if err != nil {
		return nil, constraintError("create stage", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit stage: %w", err)
	}
	return s.GetStage(ctx, id)
}

// GetStage fetches a stage by identifier.
func (s *Store) GetStage(ctx context.Context, id int64) (*content.Stage, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+stageColumns+` FROM stages WHERE id = ?`, id)
	stage, err := scanStage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get stage: %w", err)
	}
	return stage, nil
}

// FindStageByTitle looks a stage up by its unique title.
func (s *Store) FindStageByTitle(ctx context.Context, title string) (*content.Stage, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+stageColumns+` FROM stages WHERE title = ?`, strings.TrimSpace(title))
	stage, err := scanStage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find stage: %w", err)
	}
	return stage, nil
}

// DefaultStage returns the stage new articles start in: the flagged default,
// otherwise the first stage by ordering.
func (s *Store) DefaultStage(ctx context.Context) (*content.Stage, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+stageColumns+` FROM stages ORDER BY is_default DESC, ordering, id LIMIT 1`)
	stage, err := scanStage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("default stage: %w", err)
	}
	return stage, nil
}

// ListStages returns stages by ordering.
func (s *Store) ListStages(ctx context.Context) ([]*content.Stage, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+stageColumns+` FROM stages ORDER BY ordering, id`)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	defer rows.Close()

	var out []*content.Stage
	for rows.Next() {
		stage, err := scanStage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, stage)
	}
	return out, rows.Err()
}
