package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/radio-cms-api/internal/config"
	"github.com/radio-cms-api/internal/models"
	"github.com/radio-cms-api/internal/query"
	"github.com/radio-cms-api/internal/service"
)

// LibraryHandler handles the cross-article library listing
type LibraryHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewLibraryHandler creates a new LibraryHandler
func NewLibraryHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *LibraryHandler {
	return &LibraryHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "library").Logger(),
	}
}

// List handles GET /v1/library-items
func (h *LibraryHandler) List(c *gin.Context) {
	p := query.LibraryParams{
		SearchTerm: c.Query("search"),
		TypeFilter: c.DefaultQuery("type", query.TypeFilterAll),
		SortOrder:  c.DefaultQuery("sort", query.SortNewest),
		Page:       intQuery(c, "page", 1),
		PageSize:   intQuery(c, "page_size", h.cfg.Content.DefaultPageSize),
	}

	if p.TypeFilter != query.TypeFilterAll && !models.ValidLibraryTypes[p.TypeFilter] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be one of: all, book, track"})
		return
	}
	if p.SortOrder != query.SortNewest && p.SortOrder != query.SortTitle {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sort must be one of: newest, title"})
		return
	}

	list, err := h.services.Library.List(c.Request.Context(), p)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
