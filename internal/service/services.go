package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/radio-cms-api/internal/analytics"
	"github.com/radio-cms-api/internal/config"
	"github.com/radio-cms-api/internal/models"
	"github.com/radio-cms-api/internal/query"
	"github.com/radio-cms-api/internal/repository"
	"github.com/radio-cms-api/internal/validation"
)

// ValidationFailedError carries field-level validation errors to the
// API layer.
type ValidationFailedError struct {
	Errors []validation.ValidationError
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("validation failed: %d error(s)", len(e.Errors))
}

// ArticleView is an article enriched with its resolved taxonomies.
// Unresolvable ids silently drop from the resolved slices; the raw id
// sets stay untouched on the embedded Article.
type ArticleView struct {
	models.Article
	Guests     []models.Person `json:"guests"`
	Navigators []models.Person `json:"navigators"`
	Tags       []models.Tag    `json:"tags"`
}

// ArticleList is one page of enriched articles
type ArticleList struct {
	Articles   []ArticleView `json:"articles"`
	Total      int           `json:"total"`
	TotalPages int           `json:"total_pages"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
}

// LibraryItemView is a flattened library item with its recommending
// guests resolved.
type LibraryItemView struct {
	models.FlattenedLibraryItem
	RecommendingGuests []models.Person `json:"recommending_guests"`
}

// LibraryList is one page of library items
type LibraryList struct {
	Items      []LibraryItemView `json:"items"`
	Total      int               `json:"total"`
	TotalPages int               `json:"total_pages"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
}

// ContentService defines article authoring and listing operations
type ContentService interface {
	ListPublished(ctx context.Context, p query.ArticleParams) (*ArticleList, error)
	ListAll(ctx context.Context, p query.ArticleParams) (*ArticleList, error)
	GetByID(ctx context.Context, id string, includeDrafts bool) (*ArticleView, error)
	GetBySlug(ctx context.Context, slug string, includeDrafts bool) (*ArticleView, error)
	Latest(ctx context.Context, limit int) ([]ArticleView, error)
	Related(ctx context.Context, id string, limit int) ([]ArticleView, error)
	Create(ctx context.Context, article *models.Article) (*models.Article, error)
	Update(ctx context.Context, article *models.Article) (*models.Article, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// LibraryService defines the cross-article library listing
type LibraryService interface {
	List(ctx context.Context, p query.LibraryParams) (*LibraryList, error)
}

// TaxonomyService defines guest/navigator/tag management
type TaxonomyService interface {
	ListPersons(ctx context.Context, role string) ([]models.Person, error)
	CreatePerson(ctx context.Context, name, role string) (*models.Person, error)
	UpdatePerson(ctx context.Context, id, name string) (*models.Person, error)
	DeletePerson(ctx context.Context, id string) error
	ListTags(ctx context.Context) ([]models.Tag, error)
	CreateTag(ctx context.Context, name string) (*models.Tag, error)
	UpdateTag(ctx context.Context, id, name string) (*models.Tag, error)
	DeleteTag(ctx context.Context, id string) error
	CountPersons(ctx context.Context) (int, error)
	CountTags(ctx context.Context) (int, error)
}

// AnalyticsService defines pageview recording and aggregation
type AnalyticsService interface {
	Summary(ctx context.Context, start, end string) (*analytics.Summary, error)
	Track(ctx context.Context, articleID, date string) error
	ViewCount(ctx context.Context) (int, error)
}

// Services holds all service interfaces
type Services struct {
	Content   ContentService
	Library   LibraryService
	Taxonomy  TaxonomyService
	Analytics AnalyticsService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Content:   newContentService(repos, &cfg.Content, log),
		Library:   newLibraryService(repos, &cfg.Content, log),
		Taxonomy:  newTaxonomyService(repos, log),
		Analytics: newAnalyticsService(repos, log),
	}
}
