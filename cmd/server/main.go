// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/forma3d/catalog-backend/internal/config"
	"github.com/forma3d/catalog-backend/internal/database"
	"github.com/forma3d/catalog-backend/internal/jobs"
	"github.com/forma3d/catalog-backend/internal/media"
	"github.com/forma3d/catalog-backend/internal/router"
	"github.com/forma3d/catalog-backend/internal/services"
)

func main() {
	seed := flag.Bool("seed", false, "seed the catalog with sample data and exit")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize database
	db, err := database.Initialize(cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close(db)

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if *seed {
		if err := database.SeedCatalog(db); err != nil {
			log.Fatal("Failed to seed catalog:", err)
		}
		log.Println("Catalog seeded")
		return
	}

	// Initialize media store
	store, err := media.New(cfg.Media)
	if err != nil {
		log.Fatal("Failed to initialize media store:", err)
	}

	// Start background jobs
	mediaService := services.NewMediaService(db, store)
	scheduler, err := jobs.NewScheduler(mediaService, cfg)
	if err != nil {
		log.Fatal("Failed to create job scheduler:", err)
	}
	if err := scheduler.Start(); err != nil {
		log.Fatal("Failed to start job scheduler:", err)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := router.Initialize(db, cfg, store)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if err := scheduler.Shutdown(); err != nil {
		log.Println("Failed to stop job scheduler:", err)
	}

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
