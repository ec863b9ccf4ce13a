package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"sermon-art-backend/internal/models"
	"sermon-art-backend/internal/services"
)

type PromptGenerator interface {
	Generate(ctx context.Context, title, topic, presetID string) (*services.PromptResult, error)
	Convert(ctx context.Context, summary, presetID string) (string, error)
}

type PromptsHandler struct {
	svc PromptGenerator
}

func NewPromptsHandler(svc PromptGenerator) *PromptsHandler {
	return &PromptsHandler{svc: svc}
}

// Create godoc
// @Summary     Generate or convert a prompt
// @Description Generates an editable prompt from a sermon title and topic, or with mode "convert" expands an edited summary into a full prompt
// @Tags        prompts
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.PromptRequest true "Prompt request"
// @Success     200 {object} models.PromptResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /prompts [post]
func (h *PromptsHandler) Create(c *gin.Context) {
	var req models.PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	switch req.Mode {
	case "", "generate":
		res, err := h.svc.Generate(c.Request.Context(), req.Title, req.Topic, req.StylePreset)
		if err != nil {
			writeError(c, err)
			return
		}
		resp := models.PromptResponse{FullPrompt: res.FullPrompt, Summary: res.Summary, PromptData: res.PromptData}
		if res.PromptData != nil {
			resp.Summary = res.PromptData.DisplaySummary()
		}
		c.JSON(http.StatusOK, resp)
	case "convert":
		full, err := h.svc.Convert(c.Request.Context(), req.Summary, req.StylePreset)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.PromptResponse{FullPrompt: full})
	default:
		badRequest(c, "mode must be \"generate\" or \"convert\"")
	}
}

// Edit godoc
// @Summary     Edit a prompt element
// @Description Replaces one element's value; every summary span that references it shows the new value
// @Tags        prompts
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.EditPromptRequest true "Edit request"
// @Success     200 {object} models.EditPromptResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /prompts/edit [post]
func (h *PromptsHandler) Edit(c *gin.Context) {
	var req models.EditPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	pd := req.PromptData
	if err := pd.Normalize(); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := pd.Validate(); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := pd.EditElement(req.ElementID, req.Value); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.EditPromptResponse{Summary: pd.DisplaySummary(), PromptData: pd})
}
