// Package memstore implements every repository interface in memory. It
// is the interchangeable fixture store: api/service tests run against
// it, and the server can select it at runtime (STORE=memory) to come up
// without a database. State is injected, never package-global.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/radio-cms-api/internal/dateutil"
	"github.com/radio-cms-api/internal/models"
	"github.com/radio-cms-api/internal/repository"
)

// New creates an empty in-memory repository bundle. The person and tag
// stores share the article store so their in-use checks see the same
// data the SQL implementation would.
func New() *repository.Repositories {
	articles := NewArticleStore()
	persons := NewPersonStore()
	persons.Articles = articles
	tags := NewTagStore()
	tags.Articles = articles
	return &repository.Repositories{
		Article:  articles,
		Person:   persons,
		Tag:      tags,
		PageView: NewPageViewStore(),
	}
}

// ArticleStore is the in-memory ArticleRepository
type ArticleStore struct {
	mu       sync.RWMutex
	Articles map[string]*models.Article
	// Err, when set, is returned by every operation. Test hook.
	Err error
}

// NewArticleStore creates an empty article store
func NewArticleStore() *ArticleStore {
	return &ArticleStore{Articles: make(map[string]*models.Article)}
}

func (s *ArticleStore) Create(ctx context.Context, article *models.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, a := range s.Articles {
		if a.Slug == article.Slug {
			return repository.ErrDuplicateSlug
		}
	}
	clone := *article
	s.Articles[article.ID] = &clone
	return nil
}

func (s *ArticleStore) Update(ctx context.Context, article *models.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Articles[article.ID]; !ok {
		return repository.ErrNotFound
	}
	for _, a := range s.Articles {
		if a.Slug == article.Slug && a.ID != article.ID {
			return repository.ErrDuplicateSlug
		}
	}
	clone := *article
	s.Articles[article.ID] = &clone
	return nil
}

func (s *ArticleStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Articles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.Articles, id)
	return nil
}

func (s *ArticleStore) GetByID(ctx context.Context, id string) (*models.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	a, ok := s.Articles[id]
	if !ok {
		return nil, nil
	}
	clone := *a
	return &clone, nil
}

func (s *ArticleStore) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, a := range s.Articles {
		if a.Slug == slug {
			clone := *a
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *ArticleStore) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return false, s.Err
	}
	for _, a := range s.Articles {
		if a.Slug == slug && a.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// List returns the collection in presentation order, matching the SQL
// implementation: COALESCE(published_at, created_at) descending, id
// ascending on equal days.
func (s *ArticleStore) List(ctx context.Context) ([]models.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	articles := make([]models.Article, 0, len(s.Articles))
	for _, a := range s.Articles {
		articles = append(articles, *a)
	}
	sort.Slice(articles, func(i, j int) bool {
		di := presentationDay(&articles[i])
		dj := presentationDay(&articles[j])
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return articles[i].ID < articles[j].ID
	})
	return articles, nil
}

func (s *ArticleStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return len(s.Articles), nil
}

func presentationDay(a *models.Article) time.Time {
	if a.PublishedAt != nil {
		return dateutil.ParseDay(*a.PublishedAt)
	}
	return dateutil.ParseDay(a.CreatedAt)
}

// referenced reports whether any stored article's id set named by pick
// contains id. Shared by the person and tag in-use checks.
func (s *ArticleStore) referenced(id string, pick func(*models.Article) []string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.Articles {
		for _, v := range pick(a) {
			if v == id {
				return true
			}
		}
	}
	return false
}

// PersonStore is the in-memory PersonRepository
type PersonStore struct {
	mu      sync.RWMutex
	Persons map[string]*models.Person
	// Articles, when set, backs the InUse check.
	Articles *ArticleStore
}

// NewPersonStore creates an empty person store
func NewPersonStore() *PersonStore {
	return &PersonStore{Persons: make(map[string]*models.Person)}
}

func (s *PersonStore) Create(ctx context.Context, person *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *person
	s.Persons[person.ID] = &clone
	return nil
}

func (s *PersonStore) Update(ctx context.Context, person *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.Persons[person.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Name = person.Name
	return nil
}

func (s *PersonStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Persons[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.Persons, id)
	return nil
}

func (s *PersonStore) GetByID(ctx context.Context, id string) (*models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.Persons[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (s *PersonStore) List(ctx context.Context, role string) ([]models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var persons []models.Person
	for _, p := range s.Persons {
		if p.Role == role {
			persons = append(persons, *p)
		}
	}
	sort.Slice(persons, func(i, j int) bool { return persons[i].Name < persons[j].Name })
	return persons, nil
}

func (s *PersonStore) InUse(ctx context.Context, id, role string) (bool, error) {
	if s.Articles == nil {
		return false, nil
	}
	if role == models.RoleNavigator {
		return s.Articles.referenced(id, func(a *models.Article) []string { return a.NavigatorIDs }), nil
	}
	return s.Articles.referenced(id, func(a *models.Article) []string { return a.GuestIDs }), nil
}

func (s *PersonStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.Persons), nil
}

// TagStore is the in-memory TagRepository
type TagStore struct {
	mu   sync.RWMutex
	Tags map[string]*models.Tag
	// Articles, when set, backs the InUse check.
	Articles *ArticleStore
}

// NewTagStore creates an empty tag store
func NewTagStore() *TagStore {
	return &TagStore{Tags: make(map[string]*models.Tag)}
}

func (s *TagStore) Create(ctx context.Context, tag *models.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *tag
	s.Tags[tag.ID] = &clone
	return nil
}

func (s *TagStore) Update(ctx context.Context, tag *models.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.Tags[tag.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Name = tag.Name
	existing.Slug = tag.Slug
	return nil
}

func (s *TagStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Tags[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.Tags, id)
	return nil
}

func (s *TagStore) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.Tags[id]
	if !ok {
		return nil, nil
	}
	clone := *t
	return &clone, nil
}

func (s *TagStore) List(ctx context.Context) ([]models.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var tags []models.Tag
	for _, t := range s.Tags {
		tags = append(tags, *t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].ID < tags[j].ID })
	return tags, nil
}

func (s *TagStore) InUse(ctx context.Context, id string) (bool, error) {
	if s.Articles == nil {
		return false, nil
	}
	return s.Articles.referenced(id, func(a *models.Article) []string { return a.TagIDs }), nil
}

func (s *TagStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.Tags), nil
}

// PageViewStore is the in-memory PageViewRepository
type PageViewStore struct {
	mu    sync.RWMutex
	Views []models.PageView
	// Err, when set, is returned by every operation. Test hook.
	Err error
}

// NewPageViewStore creates an empty pageview store
func NewPageViewStore() *PageViewStore {
	return &PageViewStore{}
}

func (s *PageViewStore) Append(ctx context.Context, view *models.PageView) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Views = append(s.Views, *view)
	return nil
}

func (s *PageViewStore) ListRange(ctx context.Context, start, end time.Time) ([]models.PageView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var views []models.PageView
	for _, v := range s.Views {
		if dateutil.WithinDay(dateutil.ParseDay(v.Date), start, end) {
			views = append(views, v)
		}
	}
	return views, nil
}

func (s *PageViewStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return len(s.Views), nil
}
