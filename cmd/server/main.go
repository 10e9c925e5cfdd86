package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harlowdev/imposter-arena/internal/api"
	"github.com/harlowdev/imposter-arena/internal/config"
	"github.com/harlowdev/imposter-arena/internal/repository/postgres"
	"github.com/harlowdev/imposter-arena/internal/room"
	"github.com/harlowdev/imposter-arena/internal/service"
	"github.com/harlowdev/imposter-arena/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	// Loading a local .env is a no-op in production where real env vars
	// are already set; ignore the error so a missing file never blocks
	// startup.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Initialize the reference auth broker and the stats persistence
	// adapter, both given minimal in-repo implementations so the server
	// is runnable standalone.
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	statsRecorder := service.NewStatsRecorder(repos.Stats)

	// Initialize the room registry and its channel-actor hub.
	st := store.New()
	hub := room.NewHub(st, cfg.Durations(), cfg.HintRounds, statsRecorder, nil, nil)
	go hub.Run()

	// Initialize router
	router := api.NewRouter(authService, hub, st)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	hub.Stop()

	log.Println("Server stopped")
}
