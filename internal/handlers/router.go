package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"sermon-art-backend/internal/credits"
	"sermon-art-backend/internal/middleware"
	"sermon-art-backend/internal/models"
	"sermon-art-backend/internal/presets"
	"sermon-art-backend/internal/workflow"
)

// RouterOptions wires the API. Prompts, Images, Assets and DB may be nil
// when the backing service is not configured.
type RouterOptions struct {
	JWTSecret string
	Logger    *slog.Logger
	Catalog   *presets.Catalog
	Gate      *credits.Gate
	Sessions  *workflow.Store
	Prompts   PromptGenerator
	Images    ImageGenerator
	Assets    AssetLister
	DB        Pinger
}

func unavailable(feature string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: feature + " not configured"})
	}
}

func NewRouter(opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.GET("/health", NewHealthHandler(opts.DB).Get)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(opts.JWTSecret))
	api.Use(middleware.CreditsRefresh(opts.Gate, opts.Logger))

	// Presets
	presetsHandler := NewPresetsHandler(opts.Catalog)
	api.GET("/presets", presetsHandler.List)
	api.GET("/presets/groups", presetsHandler.Groups)
	api.GET("/presets/:preset_id", presetsHandler.Get)
	api.POST("/presets/:preset_id/materialize", presetsHandler.Materialize)

	// Prompts and images
	if opts.Prompts != nil {
		promptsHandler := NewPromptsHandler(opts.Prompts)
		api.POST("/prompts", promptsHandler.Create)
		api.POST("/prompts/edit", promptsHandler.Edit)
	} else {
		api.POST("/prompts", unavailable("prompt generation"))
		api.POST("/prompts/edit", unavailable("prompt generation"))
	}
	if opts.Images != nil {
		api.POST("/images", NewImagesHandler(opts.Images).Create)
	} else {
		api.POST("/images", unavailable("image generation"))
	}

	// Credits
	creditsHandler := NewCreditsHandler(opts.Gate)
	api.GET("/credits", creditsHandler.Get)
	api.POST("/credits/refresh", creditsHandler.Refresh)

	// Generation session
	sessionHandler := NewSessionHandler(opts.Sessions)
	api.GET("/session", sessionHandler.Get)
	api.DELETE("/session", sessionHandler.Reset)
	api.POST("/session/typography", sessionHandler.Typography)
	api.POST("/session/selection", sessionHandler.Selection)
	api.POST("/session/poster", sessionHandler.Poster)
	api.POST("/session/animate", sessionHandler.Animate)
	api.POST("/session/retry", sessionHandler.Retry)

	api.POST("/signout", NewAccountHandler(opts.Gate, opts.Sessions).SignOut)

	// Saved assets
	if opts.Assets != nil {
		api.GET("/assets", NewAssetsHandler(opts.Assets).List)
	} else {
		api.GET("/assets", unavailable("asset storage"))
	}

	return router
}
