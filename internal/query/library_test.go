package query_test

import (
	"reflect"
	"testing"

	"github.com/radio-cms-api/internal/models"
	"github.com/radio-cms-api/internal/query"
)

func libraryFixture() []models.Article {
	return []models.Article{
		testArticle("ep1", "Episode One", "2023.10.26", func(a *models.Article) {
			a.GuestIDs = []string{"g1"}
			a.LibraryItems = []models.LibraryItem{
				{ID: "1", Type: models.LibraryTypeBook, Title: "Writing Well", Creator: "Zinsser", CreatedAt: "2023.10.26"},
				{ID: "4", Type: models.LibraryTypeTrack, Title: "Digital Love", Creator: "Daft Punk", CreatedAt: "2023.10.26"},
			}
		}),
		testArticle("ep2", "Episode Two", "2023.10.15", func(a *models.Article) {
			a.GuestIDs = []string{"g2"}
			a.LibraryItems = []models.LibraryItem{
				// Embedded id collides with ep1's first item on purpose.
				{ID: "1", Type: models.LibraryTypeTrack, Title: "Bohemian Rhapsody", Creator: "Queen", CreatedAt: "2023.10.15"},
			}
		}),
	}
}

func itemIDs(result query.LibraryResult) []string {
	ids := make([]string, 0, len(result.Page))
	for _, it := range result.Page {
		ids = append(ids, it.ID)
	}
	return ids
}

func TestFlattenLibraryItems_OrderAndAnnotation(t *testing.T) {
	flattened := query.FlattenLibraryItems(libraryFixture())

	if len(flattened) != 3 {
		t.Fatalf("Expected 3 flattened items, got %d", len(flattened))
	}

	// Articles in collection order, items in embedded order.
	wantIDs := []string{"ep1-0", "ep1-1", "ep2-0"}
	for i, want := range wantIDs {
		if flattened[i].ID != want {
			t.Errorf("Item %d id = %s, want %s", i, flattened[i].ID, want)
		}
	}

	first := flattened[0]
	if first.EpisodeID != "ep1" || first.EpisodeTitle != "Episode One" || first.EpisodeSlug != "slug-ep1" {
		t.Errorf("Parent annotation wrong: %+v", first)
	}
	if !reflect.DeepEqual(first.RecommendingGuestIDs, []string{"g1"}) {
		t.Errorf("Recommending guests = %v", first.RecommendingGuestIDs)
	}
}

func TestFlattenLibraryItems_StableAcrossReflattens(t *testing.T) {
	articles := libraryFixture()

	first := query.FlattenLibraryItems(articles)
	second := query.FlattenLibraryItems(articles)

	if !reflect.DeepEqual(first, second) {
		t.Error("Re-flattening the same collection produced different items")
	}
}

func TestFlattenLibraryItems_CollidingEmbeddedIDs(t *testing.T) {
	flattened := query.FlattenLibraryItems(libraryFixture())

	seen := map[string]bool{}
	for _, it := range flattened {
		if seen[it.ID] {
			t.Errorf("Duplicate flattened id %s", it.ID)
		}
		seen[it.ID] = true
	}
}

func TestLibraryItems_TypeFilter(t *testing.T) {
	items := query.FlattenLibraryItems(libraryFixture())

	books := query.LibraryItems(items, query.LibraryParams{TypeFilter: models.LibraryTypeBook, Page: 1, PageSize: 10})
	if books.Total != 1 || books.Page[0].Title != "Writing Well" {
		t.Errorf("Book filter = %v (total %d)", itemIDs(books), books.Total)
	}

	all := query.LibraryItems(items, query.LibraryParams{TypeFilter: query.TypeFilterAll, Page: 1, PageSize: 10})
	if all.Total != 3 {
		t.Errorf("'all' filter total = %d", all.Total)
	}
}

func TestLibraryItems_SearchTitleOrCreator(t *testing.T) {
	items := query.FlattenLibraryItems(libraryFixture())

	byCreator := query.LibraryItems(items, query.LibraryParams{SearchTerm: "queen", Page: 1, PageSize: 10})
	if byCreator.Total != 1 || byCreator.Page[0].Title != "Bohemian Rhapsody" {
		t.Errorf("Creator search = %v", itemIDs(byCreator))
	}

	byTitle := query.LibraryItems(items, query.LibraryParams{SearchTerm: "digital", Page: 1, PageSize: 10})
	if byTitle.Total != 1 || byTitle.Page[0].Creator != "Daft Punk" {
		t.Errorf("Title search = %v", itemIDs(byTitle))
	}
}

func TestLibraryItems_SortNewestParsesCalendarDates(t *testing.T) {
	// 2023.9.5 vs 2023.10.1: string compare would order these wrongly.
	items := []models.FlattenedLibraryItem{
		{LibraryItem: models.LibraryItem{ID: "sep", Title: "September", CreatedAt: "2023.09.05"}},
		{LibraryItem: models.LibraryItem{ID: "oct", Title: "October", CreatedAt: "2023.10.01"}},
	}

	result := query.LibraryItems(items, query.LibraryParams{SortOrder: query.SortNewest, Page: 1, PageSize: 10})
	if got, want := itemIDs(result), []string{"oct", "sep"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Newest order = %v, want %v", got, want)
	}
}

func TestLibraryItems_SortByTitle(t *testing.T) {
	items := []models.FlattenedLibraryItem{
		{LibraryItem: models.LibraryItem{ID: "c", Title: "Charlie", CreatedAt: "2023.10.03"}},
		{LibraryItem: models.LibraryItem{ID: "a", Title: "alpha", CreatedAt: "2023.10.01"}},
		{LibraryItem: models.LibraryItem{ID: "b", Title: "Bravo", CreatedAt: "2023.10.02"}},
	}

	result := query.LibraryItems(items, query.LibraryParams{SortOrder: query.SortTitle, Page: 1, PageSize: 10})
	// Collation is case-insensitive at the primary level, unlike a plain
	// byte compare which would put "alpha" after the capitals.
	if got, want := itemIDs(result), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Title order = %v, want %v", got, want)
	}
}

func TestLibraryItems_Pagination(t *testing.T) {
	items := query.FlattenLibraryItems(libraryFixture())

	page2 := query.LibraryItems(items, query.LibraryParams{Page: 2, PageSize: 2})
	if page2.Total != 3 {
		t.Errorf("Total = %d, want 3", page2.Total)
	}
	if len(page2.Page) != 1 {
		t.Errorf("Page 2 size = %d, want 1", len(page2.Page))
	}

	beyond := query.LibraryItems(items, query.LibraryParams{Page: 9, PageSize: 2})
	if len(beyond.Page) != 0 || beyond.Total != 3 {
		t.Errorf("Out-of-range page = %d items, total %d", len(beyond.Page), beyond.Total)
	}
}
