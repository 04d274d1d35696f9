package query

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/radio-cms-api/internal/dateutil"
	"github.com/radio-cms-api/internal/models"
)

// Library listing sort orders and type filters
const (
	SortTitle     = "title"
	TypeFilterAll = "all"
)

// LibraryParams are the filter/sort/pagination parameters of one library
// listing request.
type LibraryParams struct {
	SearchTerm string
	TypeFilter string // TypeFilterAll (default), "book" or "track"
	SortOrder  string // SortNewest (default) or SortTitle
	Page       int
	PageSize   int
}

// LibraryResult is one page of flattened items plus the pre-pagination
// total.
type LibraryResult struct {
	Page  []models.FlattenedLibraryItem
	Total int
}

// FlattenLibraryItems joins every article with its embedded library
// items for the cross-article listing. Pure mapping, no filtering:
// articles stay in collection order and items in embedded order. Each
// produced item gets a composite id derived from (parent id, position),
// since embedded ids are not unique across articles; the composite is
// stable across re-flattens of the same collection.
func FlattenLibraryItems(articles []models.Article) []models.FlattenedLibraryItem {
	var flattened []models.FlattenedLibraryItem
	for _, a := range articles {
		for idx, item := range a.LibraryItems {
			f := models.FlattenedLibraryItem{
				LibraryItem:          item,
				EpisodeID:            a.ID,
				EpisodeTitle:         a.Title,
				EpisodeSlug:          a.Slug,
				RecommendingGuestIDs: append([]string(nil), a.GuestIDs...),
			}
			f.ID = fmt.Sprintf("%s-%d", a.ID, idx)
			flattened = append(flattened, f)
		}
	}
	return flattened
}

// LibraryItems filters, sorts and paginates a flattened snapshot.
func LibraryItems(items []models.FlattenedLibraryItem, p LibraryParams) LibraryResult {
	results := items

	if p.TypeFilter != "" && p.TypeFilter != TypeFilterAll {
		filtered := make([]models.FlattenedLibraryItem, 0, len(results))
		for _, it := range results {
			if it.Type == p.TypeFilter {
				filtered = append(filtered, it)
			}
		}
		results = filtered
	}

	if term := strings.TrimSpace(p.SearchTerm); term != "" {
		lower := strings.ToLower(term)
		filtered := make([]models.FlattenedLibraryItem, 0, len(results))
		for _, it := range results {
			if strings.Contains(strings.ToLower(it.Title), lower) ||
				strings.Contains(strings.ToLower(it.Creator), lower) {
				filtered = append(filtered, it)
			}
		}
		results = filtered
	}

	sorted := make([]models.FlattenedLibraryItem, len(results))
	copy(sorted, results)

	if p.SortOrder == SortTitle {
		// Collation-aware title sort, the localeCompare equivalent.
		// Collators are not safe for concurrent use, so build per call.
		cl := collate.New(language.Und)
		sort.SliceStable(sorted, func(i, j int) bool {
			return cl.CompareString(sorted[i].Title, sorted[j].Title) < 0
		})
	} else {
		sort.SliceStable(sorted, func(i, j int) bool {
			return dateutil.ParseDay(sorted[i].CreatedAt).After(dateutil.ParseDay(sorted[j].CreatedAt))
		})
	}

	return LibraryResult{
		Page:  paginate(sorted, p.Page, p.PageSize),
		Total: len(sorted),
	}
}
