package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/radio-cms-api/internal/config"
	"github.com/radio-cms-api/internal/dateutil"
	"github.com/radio-cms-api/internal/memstore"
	"github.com/radio-cms-api/internal/models"
	"github.com/radio-cms-api/internal/query"
	"github.com/radio-cms-api/internal/repository"
)

func setupServices(t *testing.T) (*Services, *repository.Repositories) {
	t.Helper()
	cfg := &config.Config{
		Content: config.ContentConfig{DefaultPageSize: 6, MaxPageSize: 100},
	}
	repos := memstore.New()
	return NewServices(repos, cfg, zerolog.Nop()), repos
}

func day(s string) *string { return &s }

func seed(t *testing.T, repos *repository.Repositories, a *models.Article) {
	t.Helper()
	if a.Status == "" {
		a.Status = models.StatusPublished
	}
	if a.CreatedAt == "" {
		a.CreatedAt = "2024.01.10"
	}
	if a.UpdatedAt == "" {
		a.UpdatedAt = a.CreatedAt
	}
	if err := repos.Article.Create(context.Background(), a); err != nil {
		t.Fatalf("Failed to seed article: %v", err)
	}
}

func TestContentCreate_Defaults(t *testing.T) {
	services, repos := setupServices(t)

	created, err := services.Content.Create(context.Background(), &models.Article{
		Title: "First Broadcast",
		Slug:  "first-broadcast",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Error("Expected a minted id")
	}
	if created.Status != models.StatusDraft {
		t.Errorf("Expected default draft status, got %q", created.Status)
	}
	if created.CreatedAt == "" || created.CreatedAt != created.UpdatedAt {
		t.Errorf("Expected matching creation timestamps, got %q / %q", created.CreatedAt, created.UpdatedAt)
	}

	stored, _ := repos.Article.GetByID(context.Background(), created.ID)
	if stored == nil {
		t.Fatal("Created article not persisted")
	}
}

func TestContentCreate_Validation(t *testing.T) {
	services, _ := setupServices(t)

	_, err := services.Content.Create(context.Background(), &models.Article{
		Title: "",
		Slug:  "Not A Slug",
	})
	var vErr *ValidationFailedError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected ValidationFailedError, got %v", err)
	}
	if len(vErr.Errors) == 0 {
		t.Error("Expected field errors")
	}
}

func TestContentCreate_DuplicateSlug(t *testing.T) {
	services, repos := setupServices(t)
	seed(t, repos, &models.Article{ID: "a1", Title: "Taken", Slug: "taken", PublishedAt: day("2024.01.01")})

	_, err := services.Content.Create(context.Background(), &models.Article{
		Title: "Impostor",
		Slug:  "taken",
	})
	if !errors.Is(err, repository.ErrDuplicateSlug) {
		t.Errorf("Expected ErrDuplicateSlug, got %v", err)
	}
}

func TestContentUpdate(t *testing.T) {
	services, repos := setupServices(t)
	seed(t, repos, &models.Article{
		ID: "a1", Title: "Before", Slug: "before",
		PublishedAt: day("2024.01.01"), CreatedAt: "2023.12.01",
	})

	updated, err := services.Content.Update(context.Background(), &models.Article{
		ID: "a1", Title: "After", Slug: "before",
		Status: models.StatusPublished, PublishedAt: day("2024.01.01"),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.CreatedAt != "2023.12.01" {
		t.Errorf("Expected original CreatedAt preserved, got %q", updated.CreatedAt)
	}
	if updated.UpdatedAt == "2023.12.01" {
		t.Error("Expected UpdatedAt refreshed")
	}

	_, err = services.Content.Update(context.Background(), &models.Article{
		ID: "missing", Title: "Ghost", Slug: "ghost",
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestContentGetByID_DraftGating(t *testing.T) {
	services, repos := setupServices(t)
	seed(t, repos, &models.Article{ID: "d1", Title: "Hidden", Slug: "hidden", Status: models.StatusDraft})

	view, err := services.Content.GetByID(context.Background(), "d1", false)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if view != nil {
		t.Error("Draft visible without includeDrafts")
	}

	view, err = services.Content.GetByID(context.Background(), "d1", true)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if view == nil {
		t.Error("Draft invisible with includeDrafts")
	}
}

func TestContentList_Enrichment(t *testing.T) {
	services, repos := setupServices(t)
	ctx := context.Background()
	repos.Person.Create(ctx, &models.Person{ID: "g1", Name: "Miles", Role: models.RoleGuest})
	repos.Tag.Create(ctx, &models.Tag{ID: "t1", Name: "Jazz", Slug: "jazz"})
	seed(t, repos, &models.Article{
		ID: "a1", Title: "Jazz Hour", Slug: "jazz-hour",
		PublishedAt: day("2024.01.01"),
		GuestIDs:    []string{"g1", "gone"},
		TagIDs:      []string{"t1"},
	})

	list, err := services.Content.ListPublished(ctx, query.ArticleParams{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ListPublished failed: %v", err)
	}
	if len(list.Articles) != 1 {
		t.Fatalf("Expected 1 article, got %d", len(list.Articles))
	}

	a := list.Articles[0]
	if len(a.Guests) != 1 || a.Guests[0].Name != "Miles" {
		t.Errorf("Expected unresolved guest ids dropped, resolved kept: %+v", a.Guests)
	}
	if len(a.GuestIDs) != 2 {
		t.Errorf("Expected raw id set untouched, got %v", a.GuestIDs)
	}
	if len(a.Tags) != 1 || a.Tags[0].Slug != "jazz" {
		t.Errorf("Expected resolved tag, got %+v", a.Tags)
	}
}

func TestContentList_PageSizeClamped(t *testing.T) {
	services, repos := setupServices(t)
	seed(t, repos, &models.Article{ID: "a1", Title: "One", Slug: "one", PublishedAt: day("2024.01.01")})

	list, err := services.Content.ListPublished(context.Background(), query.ArticleParams{Page: 1, PageSize: 9999})
	if err != nil {
		t.Fatalf("ListPublished failed: %v", err)
	}
	if list.PageSize != 100 {
		t.Errorf("Expected page size clamped to max, got %d", list.PageSize)
	}
}

func TestLibraryList_DraftsExcluded(t *testing.T) {
	services, repos := setupServices(t)
	ctx := context.Background()
	repos.Person.Create(ctx, &models.Person{ID: "g1", Name: "Miles", Role: models.RoleGuest})
	seed(t, repos, &models.Article{
		ID: "a1", Title: "Live", Slug: "live", PublishedAt: day("2024.01.01"),
		GuestIDs: []string{"g1"},
		LibraryItems: []models.LibraryItem{
			{Title: "So What", Type: models.LibraryTypeTrack, CreatedAt: "2024.01.01"},
		},
	})
	seed(t, repos, &models.Article{
		ID: "a2", Title: "Draft", Slug: "draft-ep", Status: models.StatusDraft,
		LibraryItems: []models.LibraryItem{
			{Title: "Invisible", Type: models.LibraryTypeBook, CreatedAt: "2024.01.01"},
		},
	})

	list, err := services.Library.List(ctx, query.LibraryParams{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list.Items) != 1 {
		t.Fatalf("Expected 1 item from published articles, got %d", len(list.Items))
	}

	item := list.Items[0]
	if item.ID != "a1-0" {
		t.Errorf("Expected composite id a1-0, got %q", item.ID)
	}
	if item.EpisodeSlug != "live" {
		t.Errorf("Expected episode annotation, got %q", item.EpisodeSlug)
	}
	if len(item.RecommendingGuests) != 1 || item.RecommendingGuests[0].Name != "Miles" {
		t.Errorf("Expected recommending guest resolved, got %+v", item.RecommendingGuests)
	}
}

func TestTaxonomyPersonLifecycle(t *testing.T) {
	services, repos := setupServices(t)
	ctx := context.Background()

	person, err := services.Taxonomy.CreatePerson(ctx, "  Ella  ", models.RoleGuest)
	if err != nil {
		t.Fatalf("CreatePerson failed: %v", err)
	}
	if person.Name != "Ella" {
		t.Errorf("Expected trimmed name, got %q", person.Name)
	}

	if _, err := services.Taxonomy.CreatePerson(ctx, "", models.RoleGuest); err == nil {
		t.Error("Expected validation error for empty name")
	}
	if _, err := services.Taxonomy.CreatePerson(ctx, "X", "producer"); err == nil {
		t.Error("Expected validation error for unknown role")
	}

	if _, err := services.Taxonomy.UpdatePerson(ctx, "missing", "Name"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	// Referenced persons survive delete attempts.
	seed(t, repos, &models.Article{
		ID: "a1", Title: "Jazz Hour", Slug: "jazz-hour",
		PublishedAt: day("2024.01.01"), GuestIDs: []string{person.ID},
	})
	if err := services.Taxonomy.DeletePerson(ctx, person.ID); !errors.Is(err, repository.ErrInUse) {
		t.Errorf("Expected ErrInUse, got %v", err)
	}

	repos.Article.Delete(ctx, "a1")
	if err := services.Taxonomy.DeletePerson(ctx, person.ID); err != nil {
		t.Errorf("Expected delete to succeed once unreferenced, got %v", err)
	}
}

func TestTaxonomyTagLifecycle(t *testing.T) {
	services, repos := setupServices(t)
	ctx := context.Background()

	tag, err := services.Taxonomy.CreateTag(ctx, "City Pop Classics")
	if err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	if tag.Slug != "city-pop-classics" {
		t.Errorf("Expected slugified tag, got %q", tag.Slug)
	}

	seed(t, repos, &models.Article{
		ID: "a1", Title: "City Pop", Slug: "city-pop",
		PublishedAt: day("2024.01.01"), TagIDs: []string{tag.ID},
	})
	if err := services.Taxonomy.DeleteTag(ctx, tag.ID); !errors.Is(err, repository.ErrInUse) {
		t.Errorf("Expected ErrInUse, got %v", err)
	}

	if err := services.Taxonomy.DeleteTag(ctx, "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestAnalyticsTrack(t *testing.T) {
	services, repos := setupServices(t)
	ctx := context.Background()

	if err := services.Analytics.Track(ctx, "", ""); !errors.Is(err, ErrArticleIDRequired) {
		t.Errorf("Expected ErrArticleIDRequired, got %v", err)
	}
	if err := services.Analytics.Track(ctx, "a1", "not-a-date"); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("Expected ErrInvalidDateRange, got %v", err)
	}

	// Omitted date defaults to today.
	if err := services.Analytics.Track(ctx, "a1", ""); err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	views, _ := repos.PageView.ListRange(ctx, time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), time.Now())
	if len(views) != 1 {
		t.Fatalf("Expected 1 recorded view, got %d", len(views))
	}
	if views[0].Date != dateutil.FormatISO(time.Now()) {
		t.Errorf("Expected today's date, got %q", views[0].Date)
	}
}

func TestAnalyticsSummary(t *testing.T) {
	services, repos := setupServices(t)
	ctx := context.Background()
	seed(t, repos, &models.Article{ID: "a1", Title: "Jazz Hour", Slug: "jazz-hour", PublishedAt: day("2024.01.01")})

	for _, d := range []string{"2024-03-01", "2024-03-02", "2024-03-02"} {
		repos.PageView.Append(ctx, &models.PageView{Date: d, ArticleID: "a1"})
	}
	repos.PageView.Append(ctx, &models.PageView{Date: "2024-03-05", ArticleID: "deleted"})

	summary, err := services.Analytics.Summary(ctx, "2024-03-01", "2024-03-31")
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.TotalViews != 4 {
		t.Errorf("Expected 4 total views, got %d", summary.TotalViews)
	}
	if len(summary.TopArticles) != 2 {
		t.Fatalf("Expected 2 ranked articles, got %d", len(summary.TopArticles))
	}
	if summary.TopArticles[0].ArticleTitle != "Jazz Hour" {
		t.Errorf("Expected resolved title first, got %q", summary.TopArticles[0].ArticleTitle)
	}
	if summary.TopArticles[1].ArticleTitle != "unknown article" {
		t.Errorf("Expected placeholder for deleted article, got %q", summary.TopArticles[1].ArticleTitle)
	}

	if _, err := services.Analytics.Summary(ctx, "2024-03-31", "2024-03-01"); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("Expected ErrInvalidDateRange for inverted range, got %v", err)
	}
	if _, err := services.Analytics.Summary(ctx, "bogus", ""); !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("Expected ErrInvalidDateRange for malformed start, got %v", err)
	}
}

func TestAnalyticsSummary_StoreError(t *testing.T) {
	cfg := &config.Config{Content: config.ContentConfig{DefaultPageSize: 6, MaxPageSize: 100}}
	repos := memstore.New()
	services := NewServices(repos, cfg, zerolog.Nop())

	storeErr := errors.New("connection reset")
	repos.PageView.(*memstore.PageViewStore).Err = storeErr

	if _, err := services.Analytics.Summary(context.Background(), "", ""); !errors.Is(err, storeErr) {
		t.Errorf("Expected store error surfaced, got %v", err)
	}
}
