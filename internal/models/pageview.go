package models

// PageView is one recorded visit to an article's detail view.
// Append-only: rows are never updated or deleted, and repeat views from
// the same visitor are not distinguished from first views.
type PageView struct {
	Date      string `json:"date" db:"date"` // ISO day string (YYYY-MM-DD)
	ArticleID string `json:"article_id" db:"article_id"`
}
