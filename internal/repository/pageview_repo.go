package repository

import (
	"context"
	"time"

	"github.com/radio-cms-api/internal/database"
	"github.com/radio-cms-api/internal/dateutil"
	"github.com/radio-cms-api/internal/models"
)

// pageViewRepo is the concrete implementation of PageViewRepository
type pageViewRepo struct {
	db *database.DB
}

// NewPageViewRepo creates a new pageview repository
func NewPageViewRepo(db *database.DB) PageViewRepository {
	return &pageViewRepo{db: db}
}

// Append records one view event. Unconditional: no dedup, no rate
// limiting, every call is a new row.
func (r *pageViewRepo) Append(ctx context.Context, view *models.PageView) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO page_views (date, article_id) VALUES ($1, $2)",
		view.Date, view.ArticleID,
	)
	return err
}

// ListRange retrieves view rows with both day bounds inclusive. ISO day
// strings compare correctly as text, so BETWEEN does the right thing.
func (r *pageViewRepo) ListRange(ctx context.Context, start, end time.Time) ([]models.PageView, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT date, article_id FROM page_views WHERE date BETWEEN $1 AND $2 ORDER BY date ASC",
		dateutil.FormatISO(start), dateutil.FormatISO(end),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []models.PageView
	for rows.Next() {
		var v models.PageView
		if err := rows.Scan(&v.Date, &v.ArticleID); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

// Count returns the total number of recorded views
func (r *pageViewRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM page_views").Scan(&count)
	return count, err
}
