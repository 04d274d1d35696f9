package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/radio-cms-api/internal/repository"
	"github.com/radio-cms-api/internal/service"
)

// respondError maps service/repository errors onto HTTP statuses.
// Anything unmapped is a 500 and gets logged; the mapped cases are
// caller mistakes and only echo the reason.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var vErr *service.ValidationFailedError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": vErr.Errors})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, repository.ErrDuplicateSlug):
		c.JSON(http.StatusConflict, gin.H{"error": "slug already exists"})
	case errors.Is(err, repository.ErrInUse):
		c.JSON(http.StatusConflict, gin.H{"error": "still referenced by an article"})
	case errors.Is(err, service.ErrInvalidDateRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date range"})
	case errors.Is(err, service.ErrArticleIDRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "article_id is required"})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// intQuery parses an integer query parameter, falling back on absence
// or garbage.
func intQuery(c *gin.Context, key string, fallback int) int {
	if raw := c.Query(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}
