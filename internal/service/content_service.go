package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/radio-cms-api/internal/config"
	"github.com/radio-cms-api/internal/dateutil"
	"github.com/radio-cms-api/internal/models"
	"github.com/radio-cms-api/internal/query"
	"github.com/radio-cms-api/internal/repository"
	"github.com/radio-cms-api/internal/validation"
)

// contentService is the concrete implementation of ContentService. It
// fetches one snapshot of the collection per call and hands it to the
// pure query engine; there is no shared mutable state between calls.
type contentService struct {
	repos *repository.Repositories
	cfg   *config.ContentConfig
	log   zerolog.Logger
}

func newContentService(repos *repository.Repositories, cfg *config.ContentConfig, log zerolog.Logger) *contentService {
	return &contentService{
		repos: repos,
		cfg:   cfg,
		log:   log.With().Str("service", "content").Logger(),
	}
}

// snapshot loads the article collection and taxonomy lookups backing
// one query invocation.
func (s *contentService) snapshot(ctx context.Context) ([]models.Article, *taxonomyLookup, error) {
	articles, err := s.repos.Article.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	lookup, err := loadTaxonomyLookup(ctx, s.repos)
	if err != nil {
		return nil, nil, err
	}
	return articles, lookup, nil
}

func (s *contentService) ListPublished(ctx context.Context, p query.ArticleParams) (*ArticleList, error) {
	articles, lookup, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	p = s.clampParams(p)
	result := query.Articles(articles, lookup.guests, p)
	return s.buildList(result, lookup, p), nil
}

func (s *contentService) ListAll(ctx context.Context, p query.ArticleParams) (*ArticleList, error) {
	articles, lookup, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	p = s.clampParams(p)
	result := query.AdminArticles(articles, lookup.guests, p)
	return s.buildList(result, lookup, p), nil
}

func (s *contentService) buildList(result query.ArticleResult, lookup *taxonomyLookup, p query.ArticleParams) *ArticleList {
	views := make([]ArticleView, 0, len(result.Page))
	for _, a := range result.Page {
		views = append(views, lookup.enrich(a))
	}
	return &ArticleList{
		Articles:   views,
		Total:      result.Total,
		TotalPages: query.TotalPages(result.Total, p.PageSize),
		Page:       p.Page,
		PageSize:   p.PageSize,
	}
}

func (s *contentService) clampParams(p query.ArticleParams) query.ArticleParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = s.cfg.DefaultPageSize
	}
	if p.PageSize > s.cfg.MaxPageSize {
		p.PageSize = s.cfg.MaxPageSize
	}
	return p
}

func (s *contentService) GetByID(ctx context.Context, id string, includeDrafts bool) (*ArticleView, error) {
	article, err := s.repos.Article.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toVisibleView(ctx, article, includeDrafts)
}

func (s *contentService) GetBySlug(ctx context.Context, slug string, includeDrafts bool) (*ArticleView, error) {
	article, err := s.repos.Article.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.toVisibleView(ctx, article, includeDrafts)
}

func (s *contentService) toVisibleView(ctx context.Context, article *models.Article, includeDrafts bool) (*ArticleView, error) {
	if article == nil {
		return nil, nil
	}
	if !article.IsPublished() && !includeDrafts {
		return nil, nil
	}
	lookup, err := loadTaxonomyLookup(ctx, s.repos)
	if err != nil {
		return nil, err
	}
	view := lookup.enrich(*article)
	return &view, nil
}

// Latest returns the first published articles in presentation order,
// for the home page strip.
func (s *contentService) Latest(ctx context.Context, limit int) ([]ArticleView, error) {
	articles, lookup, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]ArticleView, 0, limit)
	for _, a := range articles {
		if !a.IsPublished() {
			continue
		}
		views = append(views, lookup.enrich(a))
		if len(views) == limit {
			break
		}
	}
	return views, nil
}

// Related returns published articles sharing a guest or a tag with the
// given article, in presentation order, excluding the article itself.
func (s *contentService) Related(ctx context.Context, id string, limit int) ([]ArticleView, error) {
	subject, err := s.repos.Article.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, nil
	}

	articles, lookup, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ArticleView, 0, limit)
	for _, a := range articles {
		if a.ID == subject.ID || !a.IsPublished() {
			continue
		}
		if !sharesAny(a.GuestIDs, subject.GuestIDs) && !sharesAny(a.TagIDs, subject.TagIDs) {
			continue
		}
		views = append(views, lookup.enrich(a))
		if len(views) == limit {
			break
		}
	}
	return views, nil
}

func (s *contentService) Create(ctx context.Context, article *models.Article) (*models.Article, error) {
	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	if article.Status == "" {
		article.Status = models.StatusDraft
	}
	if errs := validation.ValidateArticle(article); len(errs) > 0 {
		return nil, &ValidationFailedError{Errors: errs}
	}

	today := dateutil.TodayDotted()
	article.CreatedAt = today
	article.UpdatedAt = today

	if err := s.repos.Article.Create(ctx, article); err != nil {
		return nil, err
	}
	s.log.Info().Str("article_id", article.ID).Str("slug", article.Slug).Msg("Article created")
	return article, nil
}

func (s *contentService) Update(ctx context.Context, article *models.Article) (*models.Article, error) {
	existing, err := s.repos.Article.GetByID(ctx, article.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, repository.ErrNotFound
	}
	if errs := validation.ValidateArticle(article); len(errs) > 0 {
		return nil, &ValidationFailedError{Errors: errs}
	}

	article.CreatedAt = existing.CreatedAt
	article.UpdatedAt = dateutil.TodayDotted()

	if err := s.repos.Article.Update(ctx, article); err != nil {
		return nil, err
	}
	s.log.Info().Str("article_id", article.ID).Msg("Article updated")
	return article, nil
}

func (s *contentService) Delete(ctx context.Context, id string) error {
	if err := s.repos.Article.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("article_id", id).Msg("Article deleted")
	return nil
}

func (s *contentService) Count(ctx context.Context) (int, error) {
	return s.repos.Article.Count(ctx)
}

func sharesAny(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// taxonomyLookup resolves taxonomy ids for enrichment and search
type taxonomyLookup struct {
	guests     map[string]models.Person
	navigators map[string]models.Person
	tags       map[string]models.Tag
}

func loadTaxonomyLookup(ctx context.Context, repos *repository.Repositories) (*taxonomyLookup, error) {
	guests, err := repos.Person.List(ctx, models.RoleGuest)
	if err != nil {
		return nil, err
	}
	navigators, err := repos.Person.List(ctx, models.RoleNavigator)
	if err != nil {
		return nil, err
	}
	tags, err := repos.Tag.List(ctx)
	if err != nil {
		return nil, err
	}

	lookup := &taxonomyLookup{
		guests:     make(map[string]models.Person, len(guests)),
		navigators: make(map[string]models.Person, len(navigators)),
		tags:       make(map[string]models.Tag, len(tags)),
	}
	for _, g := range guests {
		lookup.guests[g.ID] = g
	}
	for _, n := range navigators {
		lookup.navigators[n.ID] = n
	}
	for _, t := range tags {
		lookup.tags[t.ID] = t
	}
	return lookup, nil
}

// enrich resolves an article's id sets; unresolved ids drop silently.
func (l *taxonomyLookup) enrich(a models.Article) ArticleView {
	view := ArticleView{
		Article:    a,
		Guests:     []models.Person{},
		Navigators: []models.Person{},
		Tags:       []models.Tag{},
	}
	for _, id := range a.GuestIDs {
		if g, ok := l.guests[id]; ok {
			view.Guests = append(view.Guests, g)
		}
	}
	for _, id := range a.NavigatorIDs {
		if n, ok := l.navigators[id]; ok {
			view.Navigators = append(view.Navigators, n)
		}
	}
	for _, id := range a.TagIDs {
		if t, ok := l.tags[id]; ok {
			view.Tags = append(view.Tags, t)
		}
	}
	return view
}
