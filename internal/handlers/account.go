package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"sermon-art-backend/internal/credits"
	"sermon-art-backend/internal/workflow"
)

type AccountHandler struct {
	gate     *credits.Gate
	sessions *workflow.Store
}

func NewAccountHandler(gate *credits.Gate, sessions *workflow.Store) *AccountHandler {
	return &AccountHandler{gate: gate, sessions: sessions}
}

// SignOut godoc
// @Summary     Sign out
// @Description Drops the cached credit balance and the generation session. The next request reloads the balance.
// @Tags        account
// @Security    Bearer
// @Success     204
// @Router      /signout [post]
func (h *AccountHandler) SignOut(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	h.gate.Forget(userID)
	h.sessions.Remove(userID)
	c.Status(http.StatusNoContent)
}
