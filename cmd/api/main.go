package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"consumption-solver/internal/api/handlers"
	"consumption-solver/internal/api/middleware"
	"consumption-solver/internal/preset"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Initialize handlers. Presets are the built-ins overlaid with the
	// presets file when one exists.
	presets := preset.Available("")
	log.Printf("Loaded %d presets (file: %s)", len(presets.Presets), preset.DefaultPath())

	solveHandler := handlers.NewSolveHandler(nil, presets)
	presetsHandler := handlers.NewPresetsHandler(presets)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/solve", solveHandler.RunSolve)
		api.POST("/solve/compare", solveHandler.CompareMethods)
		api.GET("/solutions/:id", solveHandler.GetSolution)
		api.GET("/solutions/:id/policy", solveHandler.GetPolicy)

		api.GET("/methods", handlers.ListMethods)
		api.GET("/presets", presetsHandler.ListPresets)
	}

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
