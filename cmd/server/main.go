package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"evolution/fitness-dashboard/internal/api"
	"evolution/fitness-dashboard/internal/config"
	"evolution/fitness-dashboard/internal/repository/gormdb"
	"evolution/fitness-dashboard/internal/service"
	"evolution/fitness-dashboard/internal/storage"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})
	log.Info("Starting Evolution dashboard server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	log.Info("Configuration loaded.")

	// --- Database ---
	db, err := gormdb.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Could not open database at %s: %v", cfg.Database.Path, err)
	}
	log.WithField("path", cfg.Database.Path).Info("Database ready.")

	// --- File storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("Failed to initialize S3 storage: %v", err)
	}

	// --- Repositories ---
	exerciseRepo := gormdb.NewExerciseRepository(db)
	goalRepo := gormdb.NewGoalRepository(db)
	profileRepo := gormdb.NewProfileRepository(db)

	// --- Services ---
	exerciseService := service.NewExerciseService(exerciseRepo)
	goalService := service.NewGoalService(goalRepo)
	profileService := service.NewProfileService(profileRepo, fileStorage)
	analysisService := service.NewAnalysisService(exerciseRepo)
	coachService := service.NewCoachService(exerciseRepo)
	exportService := service.NewExportService(exerciseRepo, goalRepo, profileRepo)

	// --- Router ---
	router := gin.Default()
	api.SetupRoutes(router, cfg.JWT.Secret,
		exerciseService, goalService, profileService,
		analysisService, coachService, exportService)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Infof("Server starting on %s", cfg.Server.Address)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exiting.")
}
