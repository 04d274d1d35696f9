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

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

func (h *ArticleHandler) listParams(c *gin.Context) (query.ArticleParams, bool) {
	p := query.ArticleParams{
		SearchTerm:  c.Query("search"),
		NavigatorID: c.Query("navigator_id"),
		TagID:       c.Query("tag_id"),
		SortOrder:   c.DefaultQuery("sort", query.SortNewest),
		Page:        intQuery(c, "page", 1),
		PageSize:    intQuery(c, "page_size", h.cfg.Content.DefaultPageSize),
	}
	if p.SortOrder != query.SortNewest && p.SortOrder != query.SortOldest {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sort must be one of: newest, oldest"})
		return p, false
	}
	return p, true
}

// List handles GET /v1/articles — the public listing: published only,
// filtered/sorted/paginated server-side.
func (h *ArticleHandler) List(c *gin.Context) {
	p, ok := h.listParams(c)
	if !ok {
		return
	}

	list, err := h.services.Content.ListPublished(c.Request.Context(), p)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// AdminList handles GET /v1/admin/articles — same pipeline, drafts
// included.
func (h *ArticleHandler) AdminList(c *gin.Context) {
	p, ok := h.listParams(c)
	if !ok {
		return
	}

	list, err := h.services.Content.ListAll(c.Request.Context(), p)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get handles GET /v1/articles/:id. Drafts are only visible to a live
// admin session.
func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.services.Content.GetByID(c.Request.Context(), c.Param("id"), h.isAdmin(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}
	c.JSON(http.StatusOK, article)
}

// GetBySlug handles GET /v1/episodes/:slug
func (h *ArticleHandler) GetBySlug(c *gin.Context) {
	article, err := h.services.Content.GetBySlug(c.Request.Context(), c.Param("slug"), h.isAdmin(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}
	c.JSON(http.StatusOK, article)
}

// Latest handles GET /v1/latest-articles?limit=
func (h *ArticleHandler) Latest(c *gin.Context) {
	limit := intQuery(c, "limit", 3)
	if limit < 1 || limit > h.cfg.Content.MaxPageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	articles, err := h.services.Content.Latest(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// Related handles GET /v1/articles/:id/related — published articles
// sharing a guest or tag.
func (h *ArticleHandler) Related(c *gin.Context) {
	limit := intQuery(c, "limit", 3)
	if limit < 1 || limit > h.cfg.Content.MaxPageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	articles, err := h.services.Content.Related(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if articles == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// Create handles POST /v1/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var article models.Article
	if err := c.ShouldBindJSON(&article); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.services.Content.Create(c.Request.Context(), &article)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /v1/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	var article models.Article
	if err := c.ShouldBindJSON(&article); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	article.ID = c.Param("id")

	updated, err := h.services.Content.Update(c.Request.Context(), &article)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.services.Content.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// isAdmin reports whether the request carries a live admin session.
// Public endpoints use it only to widen draft visibility.
func (h *ArticleHandler) isAdmin(c *gin.Context) bool {
	admin, ok := c.Get(ctxKeyAdmin)
	return ok && admin == true
}
