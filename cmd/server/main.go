package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kartikp36/github-org-stats/internal/handlers"
	"github.com/kartikp36/github-org-stats/internal/middleware"
	"github.com/kartikp36/github-org-stats/internal/services"
	"github.com/kartikp36/github-org-stats/pkg/config"
	"github.com/kartikp36/github-org-stats/pkg/logger"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init()

	gin.SetMode(config.AppConfig.Server.Mode)

	// Initialize dependencies
	clientService := services.NewGitHubClientService(
		config.AppConfig.GitHub.Token,
		config.AppConfig.GitHub.RequestTimeout,
		logger.GetLogger(),
	)
	statsService := services.NewStatsService(clientService, config.AppConfig.Stats.Concurrency, logger.GetLogger())
	exportService := services.NewExportService()

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())

	// Setup static files and templates
	router.Static("/static", "./web/static")
	router.LoadHTMLFiles("web/templates/index.html")

	setupRoutes(router, statsService, exportService)

	// Setup server
	server := &http.Server{
		Addr:         ":" + config.AppConfig.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(config.AppConfig.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(config.AppConfig.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Infof("Server starting on :%s", config.AppConfig.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Forced shutdown: %v", err)
	}
	logger.Info("Server stopped")
}

func setupRoutes(router *gin.Engine, statsService *services.StatsService, exportService *services.ExportService) {
	// Initialize handlers
	homeHandler := handlers.NewHomeHandler()
	statsHandler := handlers.NewStatsHandler(statsService)
	exportHandler := handlers.NewExportHandler(exportService)
	healthHandler := handlers.NewHealthHandler()

	// Home page
	router.GET("/", homeHandler.Index)

	// API routes
	api := router.Group("/api")
	{
		api.POST("/stats", statsHandler.GetStats)
		api.POST("/export/csv", exportHandler.ExportCSV)
		api.POST("/export/json", exportHandler.ExportJSON)
		api.POST("/export/xlsx", exportHandler.ExportExcel)
	}

	// Health check endpoint
	router.GET("/health", healthHandler.HealthCheck)
}
