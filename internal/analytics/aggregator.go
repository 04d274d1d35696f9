// Package analytics rolls raw pageview rows up into the dashboard
// summary: a total for a date range plus a ranked list of the most
// viewed articles. Pure computation; persistence of the rows lives in
// the repository layer.
package analytics

import (
	"sort"
	"time"

	"github.com/radio-cms-api/internal/dateutil"
	"github.com/radio-cms-api/internal/models"
)

// TopArticleLimit caps the ranked list.
const TopArticleLimit = 10

// UnknownArticleTitle stands in for views whose article has since been
// deleted. Those views still count; localization is the client's job.
const UnknownArticleTitle = "unknown article"

// ArticleViews is one entry of the ranked list.
type ArticleViews struct {
	ArticleID    string `json:"article_id"`
	ArticleTitle string `json:"article_title"`
	Views        int    `json:"views"`
}

// Summary is the aggregation result for one date range.
type Summary struct {
	TotalViews  int            `json:"total_views"`
	TopArticles []ArticleViews `json:"top_articles"`
}

// Aggregate filters views to the closed interval [start, end] at day
// granularity, counts them, groups by article and resolves titles via
// titlesByID. Views referencing an unknown article keep their place in
// both the total and the ranking under UnknownArticleTitle. Ranking is
// by views descending, ties broken by ascending article id so the
// result never depends on map iteration order.
func Aggregate(views []models.PageView, titlesByID map[string]string, start, end time.Time) Summary {
	counts := make(map[string]int)
	total := 0

	for _, v := range views {
		if !dateutil.WithinDay(dateutil.ParseDay(v.Date), start, end) {
			continue
		}
		total++
		counts[v.ArticleID]++
	}

	ranked := make([]ArticleViews, 0, len(counts))
	for id, n := range counts {
		title, ok := titlesByID[id]
		if !ok {
			title = UnknownArticleTitle
		}
		ranked = append(ranked, ArticleViews{ArticleID: id, ArticleTitle: title, Views: n})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Views != ranked[j].Views {
			return ranked[i].Views > ranked[j].Views
		}
		return ranked[i].ArticleID < ranked[j].ArticleID
	})

	if len(ranked) > TopArticleLimit {
		ranked = ranked[:TopArticleLimit]
	}

	return Summary{TotalViews: total, TopArticles: ranked}
}

// AllTimeRange is the widest preset: 1970-01-01 through today.
func AllTimeRange(now time.Time) (time.Time, time.Time) {
	return time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// YearRange is the calendar-year preset: Jan 1 through Dec 31.
func YearRange(year int) (time.Time, time.Time) {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}
