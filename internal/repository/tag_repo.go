package repository

import (
	"context"
	"database/sql"

	"github.com/radio-cms-api/internal/database"
	"github.com/radio-cms-api/internal/models"
)

// tagRepo is the concrete implementation of TagRepository
type tagRepo struct {
	db *database.DB
}

// NewTagRepo creates a new tag repository
func NewTagRepo(db *database.DB) TagRepository {
	return &tagRepo{db: db}
}

// Create inserts a new tag
func (r *tagRepo) Create(ctx context.Context, tag *models.Tag) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO tags (id, name, slug) VALUES ($1, $2, $3)",
		tag.ID, tag.Name, tag.Slug,
	)
	return err
}

// Update renames a tag and refreshes its slug
func (r *tagRepo) Update(ctx context.Context, tag *models.Tag) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE tags SET name = $2, slug = $3 WHERE id = $1",
		tag.ID, tag.Name, tag.Slug,
	)
	if err != nil {
		return err
	}
	return requireRows(res)
}

// Delete removes a tag. The caller is responsible for the in-use check.
func (r *tagRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tags WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

// GetByID retrieves a tag by ID
func (r *tagRepo) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, slug FROM tags WHERE id = $1", id,
	).Scan(&tag.ID, &tag.Name, &tag.Slug)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// List retrieves all tags in insertion order
func (r *tagRepo) List(ctx context.Context) ([]models.Tag, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, slug FROM tags ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// InUse reports whether any article still references the tag
func (r *tagRepo) InUse(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM articles WHERE tag_ids @> jsonb_build_array($1::text))",
		id,
	).Scan(&exists)
	return exists, err
}

// Count returns the total number of tags
func (r *tagRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tags").Scan(&count)
	return count, err
}
