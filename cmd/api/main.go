package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/resume-reviewer/internal/config"
	"alfredoptarigan/resume-reviewer/internal/handlers"
	"alfredoptarigan/resume-reviewer/internal/logger"
	"alfredoptarigan/resume-reviewer/internal/repositories"
	"alfredoptarigan/resume-reviewer/internal/services"
)

var log = logger.New("api")

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Configure(cfg.Server.Env, cfg.Server.LogLevel)
	log.Info("✅ Config loaded successfully")

	ctx := context.Background()

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.WithError(err).Fatal("❌ Failed to initialize database")
	}

	reviewRepo := repositories.NewReviewRepository(db)
	log.Info("✅ Repositories initialized successfully")

	// Extraction with cache
	var textCache services.TextCache
	if cfg.Cache.ValkeyAddr != "" {
		valkeyCache, err := services.NewValkeyTextCache(ctx, cfg.Cache.ValkeyAddr, cfg.Cache.ValkeyPassword, cfg.Cache.TTL)
		if err != nil {
			log.WithError(err).Fatal("❌ Failed to initialize Valkey cache")
		}
		defer valkeyCache.Close()
		textCache = valkeyCache
		log.Info("✅ Valkey text cache initialized")
	} else {
		textCache = services.NewMemoryTextCache(cfg.Cache.TTL, cfg.Cache.MaxEntries)
		log.Info("✅ In-memory text cache initialized")
	}

	extractor := services.NewCachedExtractor(
		services.NewTextExtractor(cfg.Extraction.MaxFileSize),
		textCache,
	)

	// Initialize Gemini AI
	llm, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.WithError(err).Fatal("❌ Failed to initialize Gemini AI")
	}
	log.Info("✅ Gemini AI initialized successfully")

	analyzer := services.NewAnalysisClient(llm, services.RetryPolicy{
		MaxAttempts:    cfg.Analysis.MaxAttempts,
		InitialBackoff: cfg.Analysis.InitialBackoff,
		MaxBackoff:     cfg.Analysis.MaxBackoff,
	}, cfg.Analysis.CallTimeout)

	reviewService := services.NewReviewService(
		extractor,
		services.NewPromptBuilder(cfg.Analysis.MaxPromptChars),
		analyzer,
		cfg.Extraction.PreviewChars,
	)

	// Optional report archive
	var reportStore services.ReportStore
	if cfg.Reports.Bucket != "" {
		store, err := services.NewS3ReportStore(ctx, services.S3Config{
			Bucket:      cfg.Reports.Bucket,
			EndpointURL: cfg.Reports.EndpointURL,
			Region:      cfg.Reports.Region,
			AccessKey:   cfg.Reports.AccessKey,
			SecretKey:   cfg.Reports.SecretKey,
		})
		if err != nil {
			log.WithError(err).Fatal("❌ Failed to initialize report store")
		}
		reportStore = store
		log.Info("✅ Report archive enabled")
	}
	log.Info("✅ Services initialized successfully")

	// Initialize Handlers
	extractHandler := handlers.NewExtractHandler(reviewService, cfg.Extraction.MaxFileSize, cfg.Extraction.PreviewChars)
	reviewHandler := handlers.NewReviewHandler(reviewService, reviewRepo, reportStore, cfg.Extraction.MaxFileSize)
	resultHandler := handlers.NewResultHandler(reviewRepo)
	log.Info("✅ Handlers initialized")

	// Worst case per analysis is attempts x (timeout + backoff)
	requestTimeout := time.Duration(cfg.Analysis.MaxAttempts)*(cfg.Analysis.CallTimeout+cfg.Analysis.MaxBackoff) + 30*time.Second

	app := fiber.New(fiber.Config{
		AppName:      "AI Resume Reviewer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: requestTimeout,
		BodyLimit:    int(2*cfg.Extraction.MaxFileSize) + 1<<20,
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
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	handlers.RegisterRoutes(app, extractHandler, reviewHandler, resultHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("❌ Server forced to shutdown")
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Infof("🚀 Server starting on %s", addr)

	if err := app.Listen(addr); err != nil {
		log.WithError(err).Fatal("❌ Failed to start server")
	}
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
