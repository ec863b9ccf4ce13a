// @title           Sermon Art Backend API
// @version         1.0.0
// @description     Backend API for sermon artwork. It serves the style preset catalog, generates editable image prompts, runs the typography, poster and animation generation session, and gates generation on monthly credits.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"sermon-art-backend/docs"
	"sermon-art-backend/internal/config"
	"sermon-art-backend/internal/credits"
	"sermon-art-backend/internal/database"
	"sermon-art-backend/internal/handlers"
	"sermon-art-backend/internal/httpclient"
	"sermon-art-backend/internal/logging"
	"sermon-art-backend/internal/openai"
	"sermon-art-backend/internal/presets"
	"sermon-art-backend/internal/saltapi"
	"sermon-art-backend/internal/services"
	"sermon-art-backend/internal/supabase"
	"sermon-art-backend/internal/workflow"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Update Swagger docs with dynamic base URL
	if cfg.BaseURL != "" {
		baseURL, err := url.Parse(cfg.BaseURL)
		if err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog := presets.Default()
	httpClient := httpclient.New(httpclient.Options{PreferIPv4: cfg.PreferIPv4, Timeout: cfg.HTTPTimeout})

	// Generation clients
	saltClient := saltapi.NewClient(saltapi.Options{
		BaseURL:    cfg.SaltAPIBaseURL,
		APIKey:     cfg.SaltAPIKey,
		HTTPClient: httpClient,
	})

	var chatClient *openai.Client
	if cfg.OpenAIAPIKey != "" {
		chatClient = openai.NewClient(openai.Options{
			BaseURL:    cfg.OpenAIBaseURL,
			APIKey:     cfg.OpenAIAPIKey,
			ChatModel:  cfg.OpenAIChatModel,
			ImageModel: cfg.OpenAIImageModel,
			Timeout:    cfg.OpenAITimeout,
			MaxRetries: cfg.OpenAIMaxRetries,
		})
	} else {
		logger.Warn("OPENAI_API_KEY not set, prompt and image generation are disabled")
	}

	// Initialize Supabase clients
	if !cfg.UsesServiceRole() {
		logger.Warn("SUPABASE_SERVICE_ROLE_KEY not set, saved assets are limited by row level security and uploads may fail")
	}
	supabaseClient, err := supabase.NewClient(cfg.SupabaseURL, cfg.ServerKey())
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}
	storageClient := supabase.NewStorageClient(cfg.SupabaseURL, cfg.ServerKey(), cfg.SupabaseStorageBucket)

	// Database: credits, migrations and the balance push feed
	var dbClient *supabase.DatabaseClient
	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set, credits and migrations are disabled")
	} else {
		dbClient, err = supabase.NewDatabaseClient(cfg.DatabaseURL)
		if err != nil {
			logger.Error("Failed to initialize database client", "error", err)
			dbClient = nil
		} else {
			defer dbClient.Close()
			runMigrations(ctx, cfg.DatabaseURL, logger)
		}
	}

	var gate *credits.Gate
	if dbClient != nil {
		gate = credits.NewGate(dbClient, logger)

		listener, err := supabase.NewCreditListener(cfg.DatabaseURL, logger)
		if err != nil {
			logger.Warn("Credit updates will not be pushed", "error", err)
		} else {
			defer listener.Close()
			go gate.Run(ctx, listener.Feed(ctx))
		}
	} else {
		gate = credits.NewGate(nil, logger)
	}

	// Services
	assetService := services.NewAssetService(services.AssetServiceOptions{
		Storage:       storageClient,
		Index:         supabaseClient,
		HTTPClient:    httpClient,
		MaxVideoBytes: cfg.MaxVideoBytes,
		Logger:        logger,
	})

	sessions := workflow.NewStore(workflow.StoreOptions{
		Generator: saltClient,
		CreditsFor: func(userID uuid.UUID) workflow.CreditChecker {
			return gate.ForUser(userID)
		},
		Saver:   assetService,
		Logger:  logger,
		IdleTTL: cfg.SessionIdleTTL,
	})
	go sessions.Run(ctx, time.Minute)

	routerOpts := handlers.RouterOptions{
		JWTSecret: cfg.SupabaseJWTSecret,
		Logger:    logger,
		Catalog:   catalog,
		Gate:      gate,
		Sessions:  sessions,
		Assets:    assetService,
	}
	if chatClient != nil {
		var ledger services.CreditLedger
		if dbClient != nil {
			ledger = dbClient
		}
		promptService := services.NewPromptService(services.PromptServiceOptions{
			Chat:    chatClient,
			Catalog: catalog,
			Ledger:  ledger,
			Gate:    gate,
			Logger:  logger,
		})
		routerOpts.Prompts = promptService
		if ledger != nil {
			routerOpts.Images = promptService
		}
	}
	if dbClient != nil {
		routerOpts.DB = dbClient
	}

	// Setup router
	router := handlers.NewRouter(routerOpts)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}

func runMigrations(ctx context.Context, dbURL string, logger *slog.Logger) {
	migrator, err := database.NewMigrator(dbURL, logger)
	if err != nil {
		logger.Warn("Failed to initialize migrator", "error", err)
		return
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		logger.Warn("Migration failed", "error", err)
		return
	}
	logger.Info("Migrations completed successfully")
}
