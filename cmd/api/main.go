package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"recruitkit/cv-pipeline/internal/config"
	"recruitkit/cv-pipeline/internal/handlers"
	"recruitkit/cv-pipeline/internal/repositories"
	"recruitkit/cv-pipeline/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	docRepo := repositories.NewDocumentRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	evalRepo := repositories.NewEvaluationRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	fetcher := services.NewFileFetcher(cfg.Fetch.Timeout, cfg.Storage.MaxFileSize)
	ocrService := services.NewTesseractOCRService(cfg.OCR.Languages)
	extractor := services.NewTextExtractorService(ocrService, cfg.Storage.MaxFileSize)
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize Qdrant
	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Initialize pipeline services
	fieldExtractor := services.NewFieldExtractorService(geminiService, cfg.Worker.RetryMaxAttempts)
	extractionService := services.NewExtractionService(
		profileRepo,
		docRepo,
		fetcher,
		extractor,
		fieldExtractor,
		services.DefaultScoreWeights(),
	)

	fitEvaluator := services.NewFitEvaluatorService(
		evalRepo,
		profileRepo,
		jobRepo,
		geminiService,
		qdrantService,
		services.FitBreakpoints{
			Excellent: cfg.Fit.ExcellentMin,
			Good:      cfg.Fit.GoodMin,
			Fair:      cfg.Fit.FairMin,
		},
		cfg.Worker.RetryMaxAttempts,
	)
	log.Println("✅ Pipeline services initialized")

	// Initialize worker
	worker := services.NewWorker(
		profileRepo,
		evalRepo,
		extractionService,
		fitEvaluator,
		cfg.Worker.Concurrency,
		cfg.Worker.PollInterval,
	)

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(
		docRepo,
		profileRepo,
		storageService,
		worker,
		cfg.Storage.MaxFileSize,
	)
	jobHandler := handlers.NewJobHandler(jobRepo)
	evaluateHandler := handlers.NewEvaluateHandler(
		evalRepo,
		profileRepo,
		jobRepo,
		worker,
	)
	resultHandler := handlers.NewResultHandler(profileRepo, evalRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "CV Pipeline API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
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

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/documents", uploadHandler.HandleUpload)
	api.Get("/profiles/:id", resultHandler.HandleGetProfile)
	api.Get("/profiles/:id/evaluations", resultHandler.HandleListEvaluations)
	api.Post("/jobs", jobHandler.HandleCreateJob)
	api.Get("/jobs", jobHandler.HandleListJobs)
	api.Get("/jobs/:id", jobHandler.HandleGetJob)
	api.Post("/evaluations", evaluateHandler.HandleEvaluate)
	api.Get("/evaluations/:id", resultHandler.HandleGetEvaluation)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "CV Pipeline API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/documents",
				"GET /api/v1/profiles/:id",
				"GET /api/v1/profiles/:id/evaluations",
				"POST /api/v1/jobs",
				"GET /api/v1/jobs",
				"GET /api/v1/jobs/:id",
				"POST /api/v1/evaluations",
				"GET /api/v1/evaluations/:id",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
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
