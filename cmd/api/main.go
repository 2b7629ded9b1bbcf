package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/talentbridge/backend/internal/config"
	"github.com/talentbridge/backend/internal/handlers"
	"github.com/talentbridge/backend/internal/models"
	"github.com/talentbridge/backend/internal/repositories"
	"github.com/talentbridge/backend/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := newLogger(cfg.Server.Env)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	resumeRepo := repositories.NewResumeRepository(db)
	offerRepo := repositories.NewJobOfferRepository(db)
	matchRepo := repositories.NewMatchRepository(db)
	appRepo := repositories.NewApplicationRepository(db)

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		logger.Fatal("failed to create upload directory", zap.Error(err))
	}

	pdfParser := services.NewPDFParserService()

	aiService, err := services.NewGeminiService(cfg.Gemini, logger)
	if err != nil {
		logger.Fatal("failed to initialize Gemini AI", zap.Error(err))
	}

	var embeddingCache services.EmbeddingCache
	if cfg.Qdrant.Enabled {
		cache, err := services.NewQdrantEmbeddingCache(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
			logger,
		)
		if err != nil {
			logger.Fatal("failed to initialize Qdrant", zap.Error(err))
		}
		if err := cache.InitCollection(); err != nil {
			logger.Fatal("failed to initialize Qdrant collection", zap.Error(err))
		}
		embeddingCache = cache
	}

	identityProvider := services.NewJWTIdentityProvider(cfg.Auth.JWTSecret)

	ingestionService := services.NewIngestionService(
		resumeRepo,
		storageService,
		pdfParser,
		aiService,
		cfg.Matching.RetryMaxAttempts,
		cfg.Matching.CallTimeout,
		logger,
	)

	matcherService := services.NewMatcherService(
		resumeRepo,
		offerRepo,
		matchRepo,
		aiService,
		embeddingCache,
		cfg.Matching.Concurrency,
		cfg.Matching.CallTimeout,
		logger,
	)

	coverLetterService := services.NewCoverLetterService(
		aiService,
		cfg.Matching.RetryMaxAttempts,
		cfg.Matching.CallTimeout,
		time.Now,
		logger,
	)

	applicationService := services.NewApplicationService(
		resumeRepo,
		matchRepo,
		offerRepo,
		userRepo,
		appRepo,
		coverLetterService,
		logger,
	)

	logger.Info("services initialized")

	// Initialize handlers
	cvHandler := handlers.NewCVHandler(resumeRepo, ingestionService, storageService, cfg.Storage.MaxFileSize)
	matchHandler := handlers.NewMatchHandler(matcherService)
	offerHandler := handlers.NewJobOfferHandler(offerRepo)
	appHandler := handlers.NewApplicationHandler(appRepo, offerRepo, applicationService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "TalentBridge API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	authed := api.Group("", handlers.AuthMiddleware(identityProvider))

	cv := authed.Group("/cv")
	cv.Post("/upload", cvHandler.HandleUpload)
	cv.Get("/", cvHandler.HandleList)
	cv.Get("/download/:id", cvHandler.HandleDownload)
	cv.Delete("/:id", cvHandler.HandleDelete)

	match := authed.Group("/match")
	match.Post("/run", matchHandler.HandleRun)
	match.Get("/results", matchHandler.HandleResults)

	offersGroup := authed.Group("/job-offers")
	offersGroup.Get("/", offerHandler.HandleList)
	offersGroup.Get("/:id", offerHandler.HandleGet)
	offersGroup.Post("/", handlers.RequireRole(models.RoleEmployer), offerHandler.HandleCreate)
	offersGroup.Put("/:id", handlers.RequireRole(models.RoleEmployer), offerHandler.HandleUpdate)
	offersGroup.Delete("/:id", handlers.RequireRole(models.RoleEmployer), offerHandler.HandleDelete)

	apps := authed.Group("/applications")
	apps.Post("/generate-from-matches", appHandler.HandleGenerateFromMatches)
	apps.Post("/", appHandler.HandleCreate)
	apps.Get("/", appHandler.HandleListMine)
	apps.Get("/offer/:offerId", handlers.RequireRole(models.RoleEmployer), appHandler.HandleListByOffer)
	apps.Delete("/:id", appHandler.HandleDelete)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "TalentBridge API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/cv/upload",
				"POST /api/v1/match/run",
				"GET /api/v1/match/results",
				"POST /api/v1/applications/generate-from-matches",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			logger.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
