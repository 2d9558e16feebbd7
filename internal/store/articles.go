package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"categoryassign/internal/content"
	"categoryassign/internal/services"
)

const articleColumns = "id, title, alias, catid, stage_id, state, body, created_at, modified_at"

func scanArticle(scanner rowScanner) (*content.Article, error) {
	var (
		article  content.Article
		body     sql.NullString
		created  sql.NullString
		modified sql.NullString
	)
	if err := scanner.Scan(
		&article.ID,
		&article.Title,
		&article.Alias,
		&article.CatID,
		&article.StageID,
		&article.State,
		&body,
		&created,
		&modified,
	); err != nil {
		return nil, err
	}
	article.Body = body.String
	article.CreatedAt = parseTimeOrZero(created)
	article.ModifiedAt = parseTimeOrZero(modified)
	return &article, nil
}

// CreateArticle inserts an article. A zero CatID stores the Uncategorised
// category; a zero StageID places the article in the default stage.
func (s *Store) CreateArticle(ctx context.Context, article content.Article) (*content.Article, error) {
	article.Title = strings.TrimSpace(article.Title)
	if article.Title == "" {
		return nil, validationError("create article", "title is required")
	}
	if article.Alias = strings.TrimSpace(article.Alias); article.Alias == "" {
		article.Alias = content.Alias(article.Title)
	}
	if article.CatID == 0 {
		article.CatID = content.UncategorisedCategoryID
	}
	if article.StageID == 0 {
		stage, err := s.DefaultStage(ctx)
		if err != nil {
			return nil, err
		}
		if stage == nil {
			return nil, services.Wrap(services.ErrValidation, "store", "create article", "no workflow stages defined", nil)
		}
		article.StageID = stage.ID
	}

	now := timestamp(time.Now())
	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO articles (title, alias, catid, stage_id, state, body, created_at, modified_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		article.Title,
		article.Alias,
		article.CatID,
		article.StageID,
		article.State,
		nullableString(article.Body),
		now,
		now,
	)
	if err != nil {
		return nil, constraintError("create article", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetArticle(ctx, id)
}

// UpdateArticle persists the article and refreshes ModifiedAt.
func (s *Store) UpdateArticle(ctx context.Context, article *content.Article) error {
	if article == nil {
		return validationError("update article", "article is nil")
	}
	article.ModifiedAt = time.Now().UTC()
	res, err := s.execWithRetry(
		ctx,
		`UPDATE articles
         SET title = ?, alias = ?, catid = ?, stage_id = ?, state = ?, body = ?, modified_at = ?
         WHERE id = ?`,
		article.Title,
		article.Alias,
		article.CatID,
		article.StageID,
		article.State,
		nullableString(article.Body),
		timestamp(article.ModifiedAt),
		article.ID,
	)
	if err != nil {
		return constraintError("update article", err)
	}
	return requireAffected(res, "update article", article.ID)
}

// GetArticle fetches an article by identifier.
func (s *Store) GetArticle(ctx context.Context, id int64) (*content.Article, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = ?`, id)
	article, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	return article, nil
}

// ListArticles returns articles ordered by id. A positive stageID limits the
// result to that stage.
func (s *Store) ListArticles(ctx context.Context, stageID int64) ([]*content.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles`
	var args []any
	if stageID > 0 {
		query += ` WHERE stage_id = ?`
		args = append(args, stageID)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var out []*content.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, article)
	}
	return out, rows.Err()
}

func requireAffected(res sql.Result, operation string, id int64) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", operation, err)
	}
	if affected == 0 {
		return services.Wrap(services.ErrNotFound, "store", operation, fmt.Sprintf("id %d", id), nil)
	}
	return nil
}
