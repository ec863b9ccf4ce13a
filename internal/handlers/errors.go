package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"sermon-art-backend/internal/credits"
	"sermon-art-backend/internal/middleware"
	"sermon-art-backend/internal/models"
	"sermon-art-backend/internal/openai"
	"sermon-art-backend/internal/presets"
	"sermon-art-backend/internal/prompt"
	"sermon-art-backend/internal/saltapi"
	"sermon-art-backend/internal/services"
	"sermon-art-backend/internal/workflow"
)

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return uuid.Nil, false
	}
	return userID, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: msg})
}

// writeError maps domain errors to status codes.
func writeError(c *gin.Context, err error) {
	var (
		validation *workflow.ValidationError
		stage      *workflow.StageError
		saltErr    *saltapi.APIError
		openaiErr  *openai.APIError
		tmplErr    *prompt.TemplateError
	)

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: validation.Message})
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, prompt.ErrElementNotFound):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
	case errors.Is(err, credits.ErrNoCredits):
		c.JSON(http.StatusPaymentRequired, models.ErrorResponse{Error: credits.ErrNoCredits.Error()})
	case errors.Is(err, presets.ErrPresetNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "style preset not found", Message: err.Error()})
	case errors.Is(err, workflow.ErrStageInProgress), errors.Is(err, workflow.ErrInvalidTransition):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "action not allowed", Message: err.Error()})
	case errors.As(err, &tmplErr):
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "template malformed", Message: tmplErr.Error()})
	case errors.Is(err, prompt.ErrTemplateMalformed):
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "template malformed", Message: err.Error()})
	case errors.As(err, &stage):
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: string(stage.Stage) + " generation failed", Message: stage.Message})
	case errors.As(err, &saltErr), errors.As(err, &openaiErr):
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "generation failed", Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal error", Message: err.Error()})
	}
}
