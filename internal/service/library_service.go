package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/radio-cms-api/internal/config"
	"github.com/radio-cms-api/internal/models"
	"github.com/radio-cms-api/internal/query"
	"github.com/radio-cms-api/internal/repository"
)

// libraryService is the concrete implementation of LibraryService
type libraryService struct {
	repos *repository.Repositories
	cfg   *config.ContentConfig
	log   zerolog.Logger
}

func newLibraryService(repos *repository.Repositories, cfg *config.ContentConfig, log zerolog.Logger) *libraryService {
	return &libraryService{
		repos: repos,
		cfg:   cfg,
		log:   log.With().Str("service", "library").Logger(),
	}
}

// List flattens the published articles' embedded items and runs the
// library query over them. Drafts never feed the public library, so
// only published articles are flattened here; the flatten itself stays
// a pure, filter-free mapping.
func (s *libraryService) List(ctx context.Context, p query.LibraryParams) (*LibraryList, error) {
	articles, err := s.repos.Article.List(ctx)
	if err != nil {
		return nil, err
	}

	published := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if a.IsPublished() {
			published = append(published, a)
		}
	}

	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = s.cfg.DefaultPageSize
	}
	if p.PageSize > s.cfg.MaxPageSize {
		p.PageSize = s.cfg.MaxPageSize
	}

	result := query.LibraryItems(query.FlattenLibraryItems(published), p)

	guests, err := s.repos.Person.List(ctx, models.RoleGuest)
	if err != nil {
		return nil, err
	}
	guestsByID := make(map[string]models.Person, len(guests))
	for _, g := range guests {
		guestsByID[g.ID] = g
	}

	items := make([]LibraryItemView, 0, len(result.Page))
	for _, it := range result.Page {
		view := LibraryItemView{FlattenedLibraryItem: it, RecommendingGuests: []models.Person{}}
		for _, id := range it.RecommendingGuestIDs {
			if g, ok := guestsByID[id]; ok {
				view.RecommendingGuests = append(view.RecommendingGuests, g)
			}
		}
		items = append(items, view)
	}

	return &LibraryList{
		Items:      items,
		Total:      result.Total,
		TotalPages: query.TotalPages(result.Total, p.PageSize),
		Page:       p.Page,
		PageSize:   p.PageSize,
	}, nil
}
