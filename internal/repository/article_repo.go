package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/radio-cms-api/internal/database"
	"github.com/radio-cms-api/internal/models"
)

const articleColumns = `id, title, slug, status, published_at, thumbnail_url, body_markdown,
	audio_links, guest_ids, navigator_ids, tag_ids, library_items, created_at, updated_at`

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// Create inserts a new article
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	exists, err := r.SlugExists(ctx, article.Slug, "")
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateSlug
	}

	query := `
		INSERT INTO articles (` + articleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err = r.db.ExecContext(ctx, query,
		article.ID, article.Title, article.Slug, article.Status,
		nullableString(article.PublishedAt), nullableString(article.ThumbnailURL),
		article.BodyMarkdown,
		marshalJSON(article.AudioLinks), marshalJSON(article.GuestIDs),
		marshalJSON(article.NavigatorIDs), marshalJSON(article.TagIDs),
		marshalJSON(article.LibraryItems),
		article.CreatedAt, article.UpdatedAt,
	)
	return err
}

// Update replaces every mutable column of an article
func (r *articleRepo) Update(ctx context.Context, article *models.Article) error {
	exists, err := r.SlugExists(ctx, article.Slug, article.ID)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateSlug
	}

	query := `
		UPDATE articles
		SET title=$2, slug=$3, status=$4, published_at=$5, thumbnail_url=$6,
		    body_markdown=$7, audio_links=$8, guest_ids=$9, navigator_ids=$10,
		    tag_ids=$11, library_items=$12, updated_at=$13
		WHERE id=$1
	`
	res, err := r.db.ExecContext(ctx, query,
		article.ID, article.Title, article.Slug, article.Status,
		nullableString(article.PublishedAt), nullableString(article.ThumbnailURL),
		article.BodyMarkdown,
		marshalJSON(article.AudioLinks), marshalJSON(article.GuestIDs),
		marshalJSON(article.NavigatorIDs), marshalJSON(article.TagIDs),
		marshalJSON(article.LibraryItems),
		article.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireRows(res)
}

// Delete removes an article and its embedded library items with it
func (r *articleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

// GetByID retrieves an article by ID
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	return r.getOne(ctx, "SELECT "+articleColumns+" FROM articles WHERE id = $1", id)
}

// GetBySlug retrieves an article by its unique slug
func (r *articleRepo) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	return r.getOne(ctx, "SELECT "+articleColumns+" FROM articles WHERE slug = $1", slug)
}

func (r *articleRepo) getOne(ctx context.Context, query string, arg any) (*models.Article, error) {
	article, err := scanArticle(r.db.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// SlugExists checks if another article already uses the given slug
func (r *articleRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM articles WHERE slug = $1 AND id <> $2)",
		slug, excludeID,
	).Scan(&exists)
	return exists, err
}

// List retrieves the full collection in presentation order
func (r *articleRepo) List(ctx context.Context) ([]models.Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles
		ORDER BY COALESCE(published_at, created_at) DESC, id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *article)
	}
	return articles, rows.Err()
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanArticle is the single decode point for the JSONB columns: they
// are unmarshaled here once, and malformed JSON degrades to an empty
// slice instead of failing the whole row.
func scanArticle(row rowScanner) (*models.Article, error) {
	var (
		article                                                  models.Article
		publishedAt, thumbnailURL                                sql.NullString
		audioJSON, guestsJSON, navigatorsJSON, tagsJSON, libJSON []byte
	)

	err := row.Scan(
		&article.ID, &article.Title, &article.Slug, &article.Status,
		&publishedAt, &thumbnailURL, &article.BodyMarkdown,
		&audioJSON, &guestsJSON, &navigatorsJSON, &tagsJSON, &libJSON,
		&article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if publishedAt.Valid {
		article.PublishedAt = &publishedAt.String
	}
	if thumbnailURL.Valid {
		article.ThumbnailURL = &thumbnailURL.String
	}

	article.AudioLinks = decodeJSON[models.AudioLink](audioJSON)
	article.GuestIDs = decodeJSON[string](guestsJSON)
	article.NavigatorIDs = decodeJSON[string](navigatorsJSON)
	article.TagIDs = decodeJSON[string](tagsJSON)
	article.LibraryItems = decodeJSON[models.LibraryItem](libJSON)

	return &article, nil
}

func decodeJSON[T any](raw []byte) []T {
	out := []T{}
	if len(raw) == 0 {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return []T{}
	}
	return out
}

func marshalJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil || string(b) == "null" {
		return []byte("[]")
	}
	return b
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func requireRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
