package repository

import (
	"context"
	"errors"
	"time"

	"github.com/radio-cms-api/internal/database"
	"github.com/radio-cms-api/internal/models"
)

// Sentinel errors shared by all repository implementations
var (
	// ErrNotFound is returned by Update/Delete when no row matched.
	ErrNotFound = errors.New("not found")
	// ErrInUse is returned when deleting a taxonomy entry an article
	// still references.
	ErrInUse = errors.New("referenced by an article")
	// ErrDuplicateSlug is returned when an article slug is already taken.
	ErrDuplicateSlug = errors.New("slug already exists")
)

// ArticleRepository defines the interface for article data operations.
// List returns the full collection in presentation order (publication
// day descending, drafts by creation day); the query engine relies on
// that order for stable tie-breaks. GetByID/GetBySlug return (nil, nil)
// when no article matches.
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	List(ctx context.Context) ([]models.Article, error)
	Count(ctx context.Context) (int, error)
}

// PersonRepository defines the interface for guest/navigator data
// operations. The role argument selects the logical collection.
type PersonRepository interface {
	Create(ctx context.Context, person *models.Person) error
	Update(ctx context.Context, person *models.Person) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Person, error)
	List(ctx context.Context, role string) ([]models.Person, error)
	InUse(ctx context.Context, id, role string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	Update(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Tag, error)
	List(ctx context.Context) ([]models.Tag, error)
	InUse(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// PageViewRepository defines the interface for the append-only pageview
// log. ListRange filters by ISO day strings, both bounds inclusive.
type PageViewRepository interface {
	Append(ctx context.Context, view *models.PageView) error
	ListRange(ctx context.Context, start, end time.Time) ([]models.PageView, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article  ArticleRepository
	Person   PersonRepository
	Tag      TagRepository
	PageView PageViewRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Article:  NewArticleRepo(db),
		Person:   NewPersonRepo(db),
		Tag:      NewTagRepo(db),
		PageView: NewPageViewRepo(db),
	}
}
