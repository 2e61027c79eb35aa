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
	"go.uber.org/zap"

	"github.com/roomanhq/resume-screener/internal/config"
	"github.com/roomanhq/resume-screener/internal/handlers"
	"github.com/roomanhq/resume-screener/internal/llm"
	"github.com/roomanhq/resume-screener/internal/logging"
	"github.com/roomanhq/resume-screener/internal/parser"
	"github.com/roomanhq/resume-screener/internal/repositories"
	"github.com/roomanhq/resume-screener/internal/services"
	"github.com/roomanhq/resume-screener/internal/vectorstore"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logging.New(cfg.Log.Dir, cfg.Server.Env == "development")
	if err != nil {
		log.Fatalf("failed to initialize logging: %v", err)
	}
	defer zlog.Sync()
	zlog.Info("config loaded")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}
	zlog.Info("database connected")

	// Initialize repositories
	docRepo := repositories.NewDocumentRepository(db)
	screeningRepo := repositories.NewScreeningRepository(db)

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		zlog.Fatal("failed to create upload directory", zap.Error(err))
	}

	ctx := context.Background()

	// The Ollama client always exists for the health endpoint, even when
	// Gemini serves embeddings and commentary.
	ollamaClient := llm.NewOllamaClient(cfg.Ollama.URL, cfg.Ollama.Model, cfg.Ollama.EmbedModel)

	embedder, generator, err := buildProviders(ctx, cfg, ollamaClient)
	if err != nil {
		zlog.Fatal("failed to initialize model providers", zap.Error(err))
	}
	zlog.Info("model providers initialized",
		zap.String("embedding", cfg.Providers.Embedding),
		zap.String("llm", cfg.Providers.LLM))

	store, err := buildVectorStore(cfg)
	if err != nil {
		zlog.Fatal("failed to initialize vector store", zap.Error(err))
	}
	zlog.Info("vector store initialized", zap.String("backend", cfg.Vector.Backend))

	pipeline := &services.Pipeline{
		Parser:    parser.NewDocumentParser(),
		Embedder:  embedder,
		Generator: generator,
		Store:     store,
		Logger:    zlog,
	}

	screener := services.NewScreenerService(screeningRepo, docRepo, pipeline, zlog)

	// Initialize worker
	worker := services.NewWorker(screeningRepo, screener, cfg.Worker.Concurrency, zlog)
	worker.Start(ctx)

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(docRepo, storageService, cfg.Storage.MaxFileSize)
	screeningHandler := handlers.NewScreeningHandler(screeningRepo, docRepo, worker)
	exportHandler := handlers.NewExportHandler(screeningRepo, screeningHandler)
	healthHandler := handlers.NewHealthHandler(ollamaClient)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Screener API",
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

	api.Get("/health", healthHandler.HandleHealth)
	api.Post("/upload", uploadHandler.HandleUpload)
	api.Post("/screenings", screeningHandler.HandleCreateScreening)
	api.Get("/screenings/:id", screeningHandler.HandleGetScreening)
	api.Get("/screenings/:id/export", exportHandler.HandleExportCSV)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Screener API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/upload",
				"POST /api/v1/screenings",
				"GET /api/v1/screenings/:id",
				"GET /api/v1/screenings/:id/export",
				"GET /api/v1/health",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("shutting down server")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			zlog.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

func buildProviders(ctx context.Context, cfg *config.Config, ollamaClient *llm.OllamaClient) (llm.Embedder, llm.Generator, error) {
	var gemini *llm.GeminiClient

	needGemini := cfg.Providers.Embedding == "gemini" || cfg.Providers.LLM == "gemini"
	if needGemini {
		var err error
		gemini, err = llm.NewGeminiClient(ctx, cfg.Gemini.APIKey)
		if err != nil {
			return nil, nil, err
		}
	}

	var embedder llm.Embedder = ollamaClient
	if cfg.Providers.Embedding == "gemini" {
		embedder = gemini
	}

	var generator llm.Generator = ollamaClient
	if cfg.Providers.LLM == "gemini" {
		generator = gemini
	}

	return embedder, generator, nil
}

func buildVectorStore(cfg *config.Config) (vectorstore.Store, error) {
	if cfg.Vector.Backend == "qdrant" {
		return vectorstore.NewQdrantStore(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	}
	return vectorstore.NewFileStore(cfg.Vector.Dir)
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
