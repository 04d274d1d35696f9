package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/radio-cms-api/internal/analytics"
	"github.com/radio-cms-api/internal/dateutil"
	"github.com/radio-cms-api/internal/models"
	"github.com/radio-cms-api/internal/repository"
	"github.com/radio-cms-api/internal/validation"
)

// Analytics request errors
var (
	ErrInvalidDateRange  = errors.New("invalid date range")
	ErrArticleIDRequired = errors.New("article_id is required")
)

// analyticsService is the concrete implementation of AnalyticsService
type analyticsService struct {
	repos *repository.Repositories
	log   zerolog.Logger
	// now is swappable for tests
	now func() time.Time
}

func newAnalyticsService(repos *repository.Repositories, log zerolog.Logger) *analyticsService {
	return &analyticsService{
		repos: repos,
		log:   log.With().Str("service", "analytics").Logger(),
		now:   time.Now,
	}
}

// Summary aggregates pageviews over [start, end], both ISO day strings
// and both bounds inclusive. Missing bounds take the all-time defaults:
// 1970-01-01 through today.
func (s *analyticsService) Summary(ctx context.Context, start, end string) (*analytics.Summary, error) {
	allStart, allEnd := analytics.AllTimeRange(s.now())

	startDay := allStart
	if start != "" {
		if startDay = dateutil.ParseDay(start); startDay.IsZero() {
			return nil, ErrInvalidDateRange
		}
	}
	endDay := allEnd
	if end != "" {
		if endDay = dateutil.ParseDay(end); endDay.IsZero() {
			return nil, ErrInvalidDateRange
		}
	}
	if endDay.Before(startDay) {
		return nil, ErrInvalidDateRange
	}

	views, err := s.repos.PageView.ListRange(ctx, startDay, endDay)
	if err != nil {
		return nil, err
	}

	articles, err := s.repos.Article.List(ctx)
	if err != nil {
		return nil, err
	}
	titles := make(map[string]string, len(articles))
	for _, a := range articles {
		titles[a.ID] = a.Title
	}

	summary := analytics.Aggregate(views, titles, startDay, endDay)
	return &summary, nil
}

// Track appends one view event. The date defaults to today; repeat
// views are recorded as-is.
func (s *analyticsService) Track(ctx context.Context, articleID, date string) error {
	if articleID == "" {
		return ErrArticleIDRequired
	}
	if date == "" {
		date = dateutil.FormatISO(s.now())
	} else if !validation.IsDayString(date) {
		return ErrInvalidDateRange
	}

	return s.repos.PageView.Append(ctx, &models.PageView{
		Date:      date,
		ArticleID: articleID,
	})
}

func (s *analyticsService) ViewCount(ctx context.Context) (int, error) {
	return s.repos.PageView.Count(ctx)
}
