package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"sermon-art-backend/internal/credits"
	"sermon-art-backend/internal/logging"
)

// CreditsRefresh loads the user's balance into the gate on their first
// authenticated request. Failures are logged and the request continues.
func CreditsRefresh(gate *credits.Gate, logger *slog.Logger) gin.HandlerFunc {
	logger = logging.OrDiscard(logger)
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if ok && !gate.Loaded(userID) {
			if _, err := gate.Refresh(c.Request.Context(), userID); err != nil {
				logger.Warn("Failed to load credits", "user_id", userID.String(), "error", err)
			}
		}
		c.Next()
	}
}
