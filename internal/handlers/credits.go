package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"sermon-art-backend/internal/credits"
	"sermon-art-backend/internal/models"
)

type CreditsHandler struct {
	gate *credits.Gate
}

func NewCreditsHandler(gate *credits.Gate) *CreditsHandler {
	return &CreditsHandler{gate: gate}
}

// Get godoc
// @Summary     Get credit balance
// @Tags        credits
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.CreditsResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /credits [get]
func (h *CreditsHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	b := h.gate.CurrentBalance(userID)
	if b == nil {
		var err error
		if b, err = h.gate.Refresh(c.Request.Context(), userID); err != nil {
			writeError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, models.CreditsResponse{CreditsRemaining: b.CreditsRemaining, NextResetAt: b.NextResetAt})
}

// Refresh godoc
// @Summary     Reload credit balance
// @Description Re-reads the balance from the database
// @Tags        credits
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.CreditsResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /credits/refresh [post]
func (h *CreditsHandler) Refresh(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	b, err := h.gate.Refresh(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.CreditsResponse{CreditsRemaining: b.CreditsRemaining, NextResetAt: b.NextResetAt})
}
