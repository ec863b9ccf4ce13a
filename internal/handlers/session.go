package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"sermon-art-backend/internal/models"
	"sermon-art-backend/internal/workflow"
)

// SessionHandler exposes the per-user generation session. Stage requests
// block until the stage finishes; the work is detached from the request
// context so a dropped connection still leaves the session in a final state
// that GET /session reports.
type SessionHandler struct {
	store *workflow.Store
}

func NewSessionHandler(store *workflow.Store) *SessionHandler {
	return &SessionHandler{store: store}
}

func (h *SessionHandler) session(c *gin.Context) (*workflow.Session, bool) {
	userID, ok := currentUser(c)
	if !ok {
		return nil, false
	}
	return h.store.Get(userID), true
}

func (h *SessionHandler) run(c *gin.Context, stage func(ctx context.Context, s *workflow.Session) error) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	if err := stage(context.WithoutCancel(c.Request.Context()), sess); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

// Get godoc
// @Summary     Get generation session
// @Description Returns the session status, the data of the current stage and the elapsed time of a running stage
// @Tags        session
// @Produce     json
// @Security    Bearer
// @Success     200 {object} workflow.Snapshot
// @Router      /session [get]
func (h *SessionHandler) Get(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

// Typography godoc
// @Summary     Generate typography options
// @Description Generates typography images and background suggestions for a headline
// @Tags        session
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.TypographyRequest true "Headline"
// @Success     200 {object} workflow.Snapshot
// @Failure     400 {object} models.ErrorResponse
// @Failure     402 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /session/typography [post]
func (h *SessionHandler) Typography(c *gin.Context) {
	var req models.TypographyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	h.run(c, func(ctx context.Context, s *workflow.Session) error {
		return s.GenerateTypography(ctx, workflow.TypographyInput{
			Headline:    req.Headline,
			SubHeadline: req.SubHeadline,
			Style:       req.Style,
		})
	})
}

// Selection godoc
// @Summary     Choose typography and background
// @Tags        session
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.SelectionRequest true "Selection"
// @Success     200 {object} workflow.Snapshot
// @Failure     400 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /session/selection [post]
func (h *SessionHandler) Selection(c *gin.Context) {
	var req models.SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.TypographyURL == nil && req.BackgroundDescription == nil {
		badRequest(c, "typographyUrl or backgroundDescription is required")
		return
	}
	h.run(c, func(_ context.Context, s *workflow.Session) error {
		if req.TypographyURL != nil {
			if err := s.SelectTypography(*req.TypographyURL); err != nil {
				return err
			}
		}
		if req.BackgroundDescription != nil {
			return s.SetBackgroundDescription(*req.BackgroundDescription)
		}
		return nil
	})
}

// Poster godoc
// @Summary     Generate the final poster
// @Tags        session
// @Produce     json
// @Security    Bearer
// @Success     200 {object} workflow.Snapshot
// @Failure     400 {object} models.ErrorResponse
// @Failure     402 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /session/poster [post]
func (h *SessionHandler) Poster(c *gin.Context) {
	h.run(c, func(ctx context.Context, s *workflow.Session) error {
		return s.GeneratePoster(ctx)
	})
}

// Animate godoc
// @Summary     Animate the poster
// @Tags        session
// @Produce     json
// @Security    Bearer
// @Success     200 {object} workflow.Snapshot
// @Failure     402 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /session/animate [post]
func (h *SessionHandler) Animate(c *gin.Context) {
	h.run(c, func(ctx context.Context, s *workflow.Session) error {
		return s.Animate(ctx)
	})
}

// Retry godoc
// @Summary     Retry the failed stage
// @Tags        session
// @Produce     json
// @Security    Bearer
// @Success     200 {object} workflow.Snapshot
// @Failure     402 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /session/retry [post]
func (h *SessionHandler) Retry(c *gin.Context) {
	h.run(c, func(ctx context.Context, s *workflow.Session) error {
		return s.Retry(ctx)
	})
}

// Reset godoc
// @Summary     Reset the session
// @Tags        session
// @Produce     json
// @Security    Bearer
// @Success     200 {object} workflow.Snapshot
// @Router      /session [delete]
func (h *SessionHandler) Reset(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	sess.Reset()
	c.JSON(http.StatusOK, sess.Snapshot())
}
