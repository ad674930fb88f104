package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"category_service/config"
	"category_service/internal/delivery"
	"category_service/internal/domain"
	"category_service/internal/middleware"
	"category_service/internal/repository"
	"category_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// HTML content for the test page
const htmlTestPageContent = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Category Service API Test Page</title>
    <style>
        body { font-family: Helvetica, Arial, sans-serif; line-height: 1.6; padding: 20px; background-color: #f9f9f9; color: #333; }
        h1, h2 { border-bottom: 1px solid #ccc; padding-bottom: 5px; }
        ul { list-style: none; padding-left: 0; }
        li { margin-bottom: 15px; background-color: #fff; padding: 10px; border: 1px solid #eee; border-radius: 4px; }
        code { background-color: #e8e8e8; padding: 3px 6px; border-radius: 3px; font-family: Consolas, Monaco, monospace; }
        .method { font-weight: bold; display: inline-block; width: 60px; }
        .method-post { color: #49cc90; }
        .method-get { color: #61affe; }
        .method-delete { color: #f93e3e; }
        a { color: #007bff; text-decoration: none; }
        a:hover { text-decoration: underline; }
        p > code { font-size: 0.9em; }
    </style>
</head>
<body>
    <h1>Category Service API Endpoints</h1>
    <p>Base URL: <code>http://localhost:8080</code></p>

    <h2>Categories API</h2>
    <ul>
        <li><span class="method method-post">POST</span> <code>/categories</code> - Create a new category. Requires JSON body: <code>{"name": "string", "icon": "string (optional, defaults to 📁)"}</code></li>
        <li><span class="method method-get">GET</span> <code><a href="/categories">/categories</a></code> - List all categories in insertion order.</li>
        <li><span class="method method-delete">DELETE</span> <code>/categories/{id}</code> - Delete a category by its ID.</li>
    </ul>

    <h2>Service API</h2>
    <ul>
        <li><span class="method method-get">GET</span> <code><a href="/health">/health</a></code> - Health check.</li>
    </ul>

</body>
</html>
`

func serveTestPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(htmlTestPageContent))
}

// defaultCategories is the optional starter set loaded when SEED_CATEGORIES
// is enabled. Ids are fixed here; the store assigns ids itself for everything
// created afterwards.
var defaultCategories = []domain.Category{
	{ID: 1, Name: "Boodschappen", Icon: "🛒"},
	{ID: 2, Name: "Huur", Icon: "🏠"},
	{ID: 3, Name: "Vervoer", Icon: "🚗"},
	{ID: 4, Name: "Abonnementen", Icon: "📺"},
}

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.LoadConfig(logger)

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s' in config, using default 'info'. Error: %v", cfg.LogLevel, err)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	logger.Info("Starting Category Service...")

	// --- Dependency Injection ---
	var seed []domain.Category
	if cfg.SeedCategories {
		seed = defaultCategories
		logger.Infof("Seeding store with %d default categories", len(seed))
	}
	categoryRepo := repository.NewInMemoryCategoryRepository(logger, seed...)
	logger.Info("Repositories initialized.")

	categoryUseCase := usecase.NewCategoryUseCase(categoryRepo, logger)
	logger.Info("Use cases initialized.")

	categoryHandler := delivery.NewCategoryHandler(categoryUseCase, logger)
	logger.Info("Handlers initialized.")

	router := gin.Default()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))

	router.GET("/", serveTestPage)
	logger.Info("Registered HTML test page route at /")

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	categoryHandler.RegisterRoutes(router)
	logger.Info("API Routes registered.")

	srv := &http.Server{
		Addr:    cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		logger.Infof("Starting server on port %s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("Signal listener started.")

	sig := <-quit
	logger.Warnf("Shutdown signal received: %s", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shut down: %v", err)
	}

	logger.Info("Category Service shut down gracefully.")
}
