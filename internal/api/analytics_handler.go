package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/radio-cms-api/internal/service"
)

// AnalyticsHandler handles pageview tracking and the admin summary
type AnalyticsHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(services *service.Services, log zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		services: services,
		log:      log.With().Str("handler", "analytics").Logger(),
	}
}

type trackRequest struct {
	ArticleID string `json:"article_id"`
	Date      string `json:"date,omitempty"`
}

// Track handles POST /v1/analytics/track. The date defaults to today
// when the client omits it.
func (h *AnalyticsHandler) Track(c *gin.Context) {
	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.services.Analytics.Track(c.Request.Context(), req.ArticleID, req.Date); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Summary handles GET /v1/analytics?start=&end=. Omitted bounds widen
// to the all-time range.
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	summary, err := h.services.Analytics.Summary(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
