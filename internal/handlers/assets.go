package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"sermon-art-backend/internal/models"
)

type AssetLister interface {
	List(userID uuid.UUID, limit int) ([]models.GeneratedAsset, error)
}

type AssetsHandler struct {
	svc AssetLister
}

func NewAssetsHandler(svc AssetLister) *AssetsHandler {
	return &AssetsHandler{svc: svc}
}

// List godoc
// @Summary     List saved assets
// @Description Returns the user's saved posters and videos, newest first
// @Tags        assets
// @Produce     json
// @Security    Bearer
// @Param       limit query int false "Maximum number of assets (default 50, max 100)"
// @Success     200 {object} models.AssetListResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /assets [get]
func (h *AssetsHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	assets, err := h.svc.List(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list assets", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.AssetListResponse{Assets: assets})
}
