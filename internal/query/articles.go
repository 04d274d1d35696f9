// Package query implements the in-memory query engine for article and
// library listings: filter, sort and paginate over an immutable snapshot
// of the collection. Every function here is pure; concurrent calls with
// the same inputs cannot race and always produce the same result.
package query

import (
	"sort"
	"strings"

	"github.com/radio-cms-api/internal/dateutil"
	"github.com/radio-cms-api/internal/models"
)

// Sort orders accepted by the article listing
const (
	SortNewest = "newest"
	SortOldest = "oldest"
)

// ArticleParams are the filter/sort/pagination parameters of one article
// listing request. Zero-value filters are inactive; a blank or
// whitespace-only SearchTerm is equivalent to no search filter.
type ArticleParams struct {
	SearchTerm  string
	NavigatorID string
	TagID       string
	SortOrder   string // SortNewest (default) or SortOldest
	Page        int    // 1-indexed
	PageSize    int
}

// ArticleResult is one page of articles plus the pre-pagination total.
type ArticleResult struct {
	Page  []models.Article
	Total int
}

// Articles runs the public listing pipeline: restrict to published,
// apply the conjunctive filters, sort by publication day and paginate.
// guestsByID resolves guest ids for the search predicate; unresolved ids
// contribute an empty name rather than an error.
func Articles(articles []models.Article, guestsByID map[string]models.Person, p ArticleParams) ArticleResult {
	published := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if a.IsPublished() {
			published = append(published, a)
		}
	}
	return runArticlePipeline(published, guestsByID, p)
}

// AdminArticles is the admin entry point: same pipeline, but drafts are
// kept. This is deliberately a distinct function rather than a flag so
// public callers cannot reach drafts by parameter mistake.
func AdminArticles(articles []models.Article, guestsByID map[string]models.Person, p ArticleParams) ArticleResult {
	return runArticlePipeline(articles, guestsByID, p)
}

func runArticlePipeline(articles []models.Article, guestsByID map[string]models.Person, p ArticleParams) ArticleResult {
	results := articles

	if term := strings.TrimSpace(p.SearchTerm); term != "" {
		lower := strings.ToLower(term)
		filtered := make([]models.Article, 0, len(results))
		for _, a := range results {
			if articleMatches(&a, guestsByID, lower) {
				filtered = append(filtered, a)
			}
		}
		results = filtered
	}

	if p.NavigatorID != "" {
		filtered := make([]models.Article, 0, len(results))
		for _, a := range results {
			if a.HasNavigator(p.NavigatorID) {
				filtered = append(filtered, a)
			}
		}
		results = filtered
	}

	if p.TagID != "" {
		filtered := make([]models.Article, 0, len(results))
		for _, a := range results {
			if a.HasTag(p.TagID) {
				filtered = append(filtered, a)
			}
		}
		results = filtered
	}

	// Copy before sorting so the caller's snapshot keeps its order.
	sorted := make([]models.Article, len(results))
	copy(sorted, results)

	// Stable sort: ties keep the snapshot's presentation order. A nil
	// published_at parses to the zero time and so sorts after every real
	// date in newest order.
	sort.SliceStable(sorted, func(i, j int) bool {
		di := dateutil.ParseDayPtr(sorted[i].PublishedAt)
		dj := dateutil.ParseDayPtr(sorted[j].PublishedAt)
		if p.SortOrder == SortOldest {
			return di.Before(dj)
		}
		return di.After(dj)
	})

	return ArticleResult{
		Page:  paginate(sorted, p.Page, p.PageSize),
		Total: len(sorted),
	}
}

// articleMatches is the search predicate: case-insensitive substring
// match against title, body, or the space-joined names of the article's
// resolved guests.
func articleMatches(a *models.Article, guestsByID map[string]models.Person, lowerTerm string) bool {
	if strings.Contains(strings.ToLower(a.Title), lowerTerm) {
		return true
	}
	if strings.Contains(strings.ToLower(a.BodyMarkdown), lowerTerm) {
		return true
	}
	names := make([]string, 0, len(a.GuestIDs))
	for _, id := range a.GuestIDs {
		names = append(names, guestsByID[id].Name)
	}
	return strings.Contains(strings.ToLower(strings.Join(names, " ")), lowerTerm)
}

// paginate slices out the 1-indexed page. Out-of-range pages yield an
// empty slice, never an error.
func paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		return []T{}
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// TotalPages derives the page count from a result total.
func TotalPages(total, pageSize int) int {
	if pageSize < 1 || total < 1 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
