package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"sermon-art-backend/internal/models"
	"sermon-art-backend/internal/services"
)

type ImageGenerator interface {
	GenerateImage(ctx context.Context, userID uuid.UUID, prompt, presetID string) (*services.ImageResult, error)
}

type ImagesHandler struct {
	svc ImageGenerator
}

func NewImagesHandler(svc ImageGenerator) *ImagesHandler {
	return &ImagesHandler{svc: svc}
}

// Create godoc
// @Summary     Generate an image
// @Description Generates an image from a prompt. Requires a positive credit balance; one credit is consumed only when generation succeeds.
// @Tags        images
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.ImageRequest true "Image request"
// @Success     200 {object} models.ImageResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     402 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /images [post]
func (h *ImagesHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	res, err := h.svc.GenerateImage(c.Request.Context(), userID, req.Prompt, req.StylePreset)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := models.ImageResponse{URL: res.URL}
	if res.Balance != nil {
		resp.CreditsRemaining = res.Balance.CreditsRemaining
	}
	c.JSON(http.StatusOK, resp)
}
