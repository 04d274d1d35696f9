package query_test

import (
	"reflect"
	"testing"

	"github.com/radio-cms-api/internal/models"
	"github.com/radio-cms-api/internal/query"
)

func strPtr(s string) *string { return &s }

func testArticle(id, title, published string, mutate func(*models.Article)) models.Article {
	a := models.Article{
		ID:     id,
		Title:  title,
		Slug:   "slug-" + id,
		Status: models.StatusPublished,
	}
	if published != "" {
		a.PublishedAt = strPtr(published)
	}
	if mutate != nil {
		mutate(&a)
	}
	return a
}

func testGuests() map[string]models.Person {
	return map[string]models.Person{
		"g1": {ID: "g1", Name: "Kenichi Sato", Role: models.RoleGuest},
		"g2": {ID: "g2", Name: "Anna Suzuki", Role: models.RoleGuest},
	}
}

func pageIDs(result query.ArticleResult) []string {
	ids := make([]string, 0, len(result.Page))
	for _, a := range result.Page {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestArticles_EmptyCollection(t *testing.T) {
	result := query.Articles(nil, nil, query.ArticleParams{Page: 1, PageSize: 10})

	if result.Total != 0 {
		t.Errorf("Expected total 0, got %d", result.Total)
	}
	if len(result.Page) != 0 {
		t.Errorf("Expected empty page, got %d items", len(result.Page))
	}
}

func TestArticles_ExcludesDrafts(t *testing.T) {
	articles := []models.Article{
		testArticle("1", "Published", "2023.10.01", nil),
		testArticle("2", "Draft", "", func(a *models.Article) { a.Status = models.StatusDraft }),
	}

	result := query.Articles(articles, nil, query.ArticleParams{Page: 1, PageSize: 10})

	if result.Total != 1 {
		t.Fatalf("Expected total 1, got %d", result.Total)
	}
	if result.Page[0].ID != "1" {
		t.Errorf("Expected article 1, got %s", result.Page[0].ID)
	}
}

func TestAdminArticles_IncludesDrafts(t *testing.T) {
	articles := []models.Article{
		testArticle("1", "Published", "2023.10.01", nil),
		testArticle("2", "Draft", "", func(a *models.Article) { a.Status = models.StatusDraft }),
	}

	result := query.AdminArticles(articles, nil, query.ArticleParams{Page: 1, PageSize: 10})

	if result.Total != 2 {
		t.Errorf("Expected total 2, got %d", result.Total)
	}
}

func TestArticles_SortStability(t *testing.T) {
	// Two articles share 2023.10.15; their relative snapshot order must
	// survive the sort in both directions.
	articles := []models.Article{
		testArticle("a", "A", "2023.10.01", nil),
		testArticle("b", "B", "2023.10.15", nil),
		testArticle("c", "C", "2023.10.15", nil),
		testArticle("d", "D", "2023.09.01", nil),
	}

	newest := query.Articles(articles, nil, query.ArticleParams{SortOrder: query.SortNewest, Page: 1, PageSize: 10})
	if got, want := pageIDs(newest), []string{"b", "c", "a", "d"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Newest order = %v, want %v", got, want)
	}

	oldest := query.Articles(articles, nil, query.ArticleParams{SortOrder: query.SortOldest, Page: 1, PageSize: 10})
	if got, want := pageIDs(oldest), []string{"d", "a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Oldest order = %v, want %v", got, want)
	}
}

func TestArticles_NilPublishedAtSortsLast(t *testing.T) {
	// Published articles always carry a date, but a nil must still keep
	// the sort total: it parses as epoch-earliest.
	articles := []models.Article{
		testArticle("undated", "Undated", "", nil),
		testArticle("dated", "Dated", "2023.10.01", nil),
	}

	result := query.Articles(articles, nil, query.ArticleParams{SortOrder: query.SortNewest, Page: 1, PageSize: 10})

	if got, want := pageIDs(result), []string{"dated", "undated"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Order = %v, want %v", got, want)
	}
}

func TestArticles_SearchTitleBodyAndGuests(t *testing.T) {
	articles := []models.Article{
		testArticle("1", "Frontend Deep Dive", "2023.10.03", nil),
		testArticle("2", "Storytelling", "2023.10.02", func(a *models.Article) {
			a.BodyMarkdown = "An episode about the craft of frontend work."
		}),
		testArticle("3", "Music Masterclass", "2023.10.01", func(a *models.Article) {
			a.GuestIDs = []string{"g2"}
		}),
	}
	guests := testGuests()

	byTitle := query.Articles(articles, guests, query.ArticleParams{SearchTerm: "FRONTEND", Page: 1, PageSize: 10})
	if got, want := pageIDs(byTitle), []string{"1", "2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Title/body search = %v, want %v", got, want)
	}

	byGuest := query.Articles(articles, guests, query.ArticleParams{SearchTerm: "suzuki", Page: 1, PageSize: 10})
	if got, want := pageIDs(byGuest), []string{"3"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Guest-name search = %v, want %v", got, want)
	}
}

func TestArticles_UnresolvedGuestIDIsNotAnError(t *testing.T) {
	articles := []models.Article{
		testArticle("1", "Solo Episode", "2023.10.01", func(a *models.Article) {
			a.GuestIDs = []string{"missing-guest"}
		}),
	}

	result := query.Articles(articles, testGuests(), query.ArticleParams{SearchTerm: "solo", Page: 1, PageSize: 10})
	if result.Total != 1 {
		t.Errorf("Expected title match despite unresolved guest, got total %d", result.Total)
	}
}

func TestArticles_WhitespaceSearchIsNoFilter(t *testing.T) {
	articles := []models.Article{
		testArticle("1", "One", "2023.10.01", nil),
		testArticle("2", "Two", "2023.10.02", nil),
	}

	result := query.Articles(articles, nil, query.ArticleParams{SearchTerm: "   ", Page: 1, PageSize: 10})
	if result.Total != 2 {
		t.Errorf("Whitespace search filtered articles: total %d", result.Total)
	}
}

func TestArticles_ConjunctiveFilters(t *testing.T) {
	articles := []models.Article{
		testArticle("match", "Jazz Special", "2023.10.03", func(a *models.Article) {
			a.NavigatorIDs = []string{"n1"}
			a.TagIDs = []string{"t1"}
		}),
		testArticle("wrong-tag", "Jazz History", "2023.10.02", func(a *models.Article) {
			a.NavigatorIDs = []string{"n1"}
			a.TagIDs = []string{"t2"}
		}),
		testArticle("wrong-nav", "Jazz Live", "2023.10.01", func(a *models.Article) {
			a.NavigatorIDs = []string{"n2"}
			a.TagIDs = []string{"t1"}
		}),
		testArticle("wrong-term", "Classical Hour", "2023.10.01", func(a *models.Article) {
			a.NavigatorIDs = []string{"n1"}
			a.TagIDs = []string{"t1"}
		}),
	}

	result := query.Articles(articles, nil, query.ArticleParams{
		SearchTerm:  "jazz",
		NavigatorID: "n1",
		TagID:       "t1",
		Page:        1,
		PageSize:    10,
	})

	if got, want := pageIDs(result), []string{"match"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Conjunctive filter = %v, want %v", got, want)
	}
}

func TestArticles_Pagination(t *testing.T) {
	var articles []models.Article
	days := []string{"2023.10.09", "2023.10.08", "2023.10.07", "2023.10.06", "2023.10.05"}
	for i, d := range days {
		articles = append(articles, testArticle(string(rune('a'+i)), "Episode", d, nil))
	}

	page2 := query.Articles(articles, nil, query.ArticleParams{Page: 2, PageSize: 2})
	if page2.Total != 5 {
		t.Errorf("Expected total 5, got %d", page2.Total)
	}
	if got, want := pageIDs(page2), []string{"c", "d"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Page 2 = %v, want %v", got, want)
	}

	// A page past the end is empty, but the total is unchanged.
	beyond := query.Articles(articles, nil, query.ArticleParams{Page: 4, PageSize: 2})
	if beyond.Total != 5 {
		t.Errorf("Out-of-range page changed total: %d", beyond.Total)
	}
	if len(beyond.Page) != 0 {
		t.Errorf("Out-of-range page returned %d items", len(beyond.Page))
	}
}

func TestArticles_Idempotent(t *testing.T) {
	articles := []models.Article{
		testArticle("1", "One", "2023.10.01", nil),
		testArticle("2", "Two", "2023.10.02", nil),
	}
	params := query.ArticleParams{SortOrder: query.SortNewest, Page: 1, PageSize: 10}

	first := query.Articles(articles, nil, params)
	second := query.Articles(articles, nil, params)

	if !reflect.DeepEqual(first, second) {
		t.Error("Two identical invocations produced different results")
	}
	// The input snapshot must keep its original order.
	if articles[0].ID != "1" || articles[1].ID != "2" {
		t.Error("Query mutated the input snapshot")
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, pageSize, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := query.TotalPages(tt.total, tt.pageSize); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.pageSize, got, tt.want)
		}
	}
}
