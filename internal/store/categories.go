package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"categoryassign/internal/config"
	"categoryassign/internal/content"
)

const categoryColumns = "id, parent_id, extension, title, alias, published, created_at"

func scanCategory(scanner rowScanner) (*content.Category, error) {
	var (
		cat       content.Category
		published int
		created   sql.NullString
	)
	if err := scanner.Scan(&cat.ID, &cat.ParentID, &cat.Extension, &cat.Title, &cat.Alias, &published, &created); err != nil {
		return nil, err
	}
	cat.Published = published != 0
	cat.CreatedAt = parseTimeOrZero(created)
	return &cat, nil
}

// CreateCategory inserts a category. Extension defaults to articles, the
// parent to ROOT, and the alias is derived from the title when blank.
func (s *Store) CreateCategory(ctx context.Context, cat content.Category) (*content.Category, error) {
	cat.Title = strings.TrimSpace(cat.Title)
	if cat.Title == "" {
		return nil, validationError("create category", "title is required")
	}
	if cat.Extension = strings.TrimSpace(cat.Extension); cat.Extension == "" {
		cat.Extension = config.ArticlesComponent
	}
	if cat.ParentID == 0 {
		cat.ParentID = content.RootCategoryID
	}
	if cat.Alias = strings.TrimSpace(cat.Alias); cat.Alias == "" {
		cat.Alias = content.Alias(cat.Title)
	}

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO categories (parent_id, extension, title, alias, published, created_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		cat.ParentID,
		cat.Extension,
		cat.Title,
		cat.Alias,
		boolToInt(cat.Published),
		timestamp(time.Now()),
	)
	if err != nil {
		return nil, constraintError("create category", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetCategory(ctx, id)
}

// GetCategory fetches a category by identifier.
func (s *Store) GetCategory(ctx context.Context, id int64) (*content.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)
	cat, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return cat, nil
}

// FindCategoryByAlias returns the first category of extension with alias.
func (s *Store) FindCategoryByAlias(ctx context.Context, extension, alias string) (*content.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE extension = ? AND alias = ? ORDER BY id LIMIT 1`,
		extension, alias,
	)
	cat, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	return cat, nil
}

// ListCategories returns categories ordered by id. An empty extension lists
// every category including ROOT.
func (s *Store) ListCategories(ctx context.Context, extension string) ([]*content.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories`
	var args []any
	if extension = strings.TrimSpace(extension); extension != "" {
		query += ` WHERE extension = ?`
		args = append(args, extension)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []*content.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cat)
	}
	return out, rows.Err()
}
