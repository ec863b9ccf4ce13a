package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"sermon-art-backend/internal/models"
	"sermon-art-backend/internal/presets"
	"sermon-art-backend/internal/prompt"
)

type PresetsHandler struct {
	catalog *presets.Catalog
}

func NewPresetsHandler(catalog *presets.Catalog) *PresetsHandler {
	return &PresetsHandler{catalog: catalog}
}

// List godoc
// @Summary     List style presets
// @Description Returns the preset catalog, optionally filtered by a category tag
// @Tags        presets
// @Produce     json
// @Security    Bearer
// @Param       category query string false "Category tag"
// @Success     200 {object} models.PresetListResponse
// @Router      /presets [get]
func (h *PresetsHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, models.PresetListResponse{
		Presets:    presets.Filter(h.catalog.List(), c.Query("category")),
		Categories: h.catalog.Categories(),
	})
}

// Groups godoc
// @Summary     Presets grouped by category
// @Tags        presets
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.PresetGroupsResponse
// @Router      /presets/groups [get]
func (h *PresetsHandler) Groups(c *gin.Context) {
	c.JSON(http.StatusOK, models.PresetGroupsResponse{
		Groups: presets.GroupByCategory(h.catalog.List()),
	})
}

// Get godoc
// @Summary     Get a style preset
// @Tags        presets
// @Produce     json
// @Security    Bearer
// @Param       preset_id path string true "Preset ID"
// @Success     200 {object} presets.StylePreset
// @Failure     404 {object} models.ErrorResponse
// @Router      /presets/{preset_id} [get]
func (h *PresetsHandler) Get(c *gin.Context) {
	p, err := h.catalog.Get(c.Param("preset_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Materialize godoc
// @Summary     Materialize a preset for a sermon
// @Description Substitutes the sermon title, topic and reference into the preset's prompt template
// @Tags        presets
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       preset_id path string true "Preset ID"
// @Param       request body models.MaterializeRequest true "Sermon details"
// @Success     200 {object} models.MaterializeResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /presets/{preset_id}/materialize [post]
func (h *PresetsHandler) Materialize(c *gin.Context) {
	var req models.MaterializeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	p, err := h.catalog.Get(c.Param("preset_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	out, err := prompt.MaterializePreset(p, prompt.Sermon{Title: req.Title, Topic: req.Topic, Reference: req.Reference})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MaterializeResponse{
		PresetID:     p.ID,
		Prompt:       out,
		ReferenceURL: p.ReferenceURL,
	})
}
