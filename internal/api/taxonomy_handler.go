package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/radio-cms-api/internal/models"
	"github.com/radio-cms-api/internal/service"
)

// TaxonomyHandler handles guest, navigator and tag endpoints
type TaxonomyHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewTaxonomyHandler creates a new TaxonomyHandler
func NewTaxonomyHandler(services *service.Services, log zerolog.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{
		services: services,
		log:      log.With().Str("handler", "taxonomy").Logger(),
	}
}

type nameRequest struct {
	Name string `json:"name"`
}

// ListGuests handles GET /v1/guests
func (h *TaxonomyHandler) ListGuests(c *gin.Context) {
	h.listPersons(c, models.RoleGuest)
}

// ListNavigators handles GET /v1/navigators
func (h *TaxonomyHandler) ListNavigators(c *gin.Context) {
	h.listPersons(c, models.RoleNavigator)
}

func (h *TaxonomyHandler) listPersons(c *gin.Context, role string) {
	persons, err := h.services.Taxonomy.ListPersons(c.Request.Context(), role)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{role + "s": persons})
}

// CreateGuest handles POST /v1/guests
func (h *TaxonomyHandler) CreateGuest(c *gin.Context) {
	h.createPerson(c, models.RoleGuest)
}

// CreateNavigator handles POST /v1/navigators
func (h *TaxonomyHandler) CreateNavigator(c *gin.Context) {
	h.createPerson(c, models.RoleNavigator)
}

func (h *TaxonomyHandler) createPerson(c *gin.Context, role string) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	person, err := h.services.Taxonomy.CreatePerson(c.Request.Context(), req.Name, role)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, person)
}

// UpdatePerson handles PUT /v1/guests/:id and PUT /v1/navigators/:id
func (h *TaxonomyHandler) UpdatePerson(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	person, err := h.services.Taxonomy.UpdatePerson(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, person)
}

// DeletePerson handles DELETE /v1/guests/:id and DELETE /v1/navigators/:id.
// A person still referenced by an article cannot be deleted.
func (h *TaxonomyHandler) DeletePerson(c *gin.Context) {
	if err := h.services.Taxonomy.DeletePerson(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListTags handles GET /v1/tags
func (h *TaxonomyHandler) ListTags(c *gin.Context) {
	tags, err := h.services.Taxonomy.ListTags(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// CreateTag handles POST /v1/tags
func (h *TaxonomyHandler) CreateTag(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	tag, err := h.services.Taxonomy.CreateTag(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

// UpdateTag handles PUT /v1/tags/:id
func (h *TaxonomyHandler) UpdateTag(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	tag, err := h.services.Taxonomy.UpdateTag(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

// DeleteTag handles DELETE /v1/tags/:id. A tag still referenced by an
// article cannot be deleted.
func (h *TaxonomyHandler) DeleteTag(c *gin.Context) {
	if err := h.services.Taxonomy.DeleteTag(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
