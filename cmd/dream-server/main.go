package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/nmorrow/dream-server/internal/analyzer"
	"github.com/nmorrow/dream-server/internal/api"
	"github.com/nmorrow/dream-server/internal/archive"
	"github.com/nmorrow/dream-server/internal/config"
	"github.com/nmorrow/dream-server/internal/db"
	"github.com/nmorrow/dream-server/internal/nlp"
	"github.com/nmorrow/dream-server/internal/scheduler"
	"github.com/nmorrow/dream-server/internal/sentiment"
)

func main() {
	_ = godotenv.Load()
	log.Println("Starting dream-server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	// Create archive
	if err := os.MkdirAll(cfg.ArchivePath, 0755); err != nil {
		log.Fatalf("Failed to create archive dir: %v", err)
	}
	arc := archive.New(cfg.ArchivePath)

	// Warm up the NLP pipeline so the first request doesn't pay for it
	engine := nlp.NewProseEngine()
	log.Println("Warming up NLP pipeline...")
	if err := engine.Warmup(); err != nil {
		log.Printf("WARNING: NLP warmup failed: %v", err)
		log.Println("Server will start but entry analysis may not work")
	}

	an := analyzer.New(engine, sentiment.NewDefaultEnsemble())

	// Create router
	router := api.NewRouter(cfg, database, arc, an)

	// Create and start scheduler
	reminderHour, reminderMinute, err := cfg.ReminderClock()
	if err != nil {
		log.Fatalf("Invalid reminder time: %v", err)
	}

	sched, err := scheduler.New(database, arc, scheduler.Config{
		Timezone:       cfg.Timezone,
		ReminderHour:   reminderHour,
		ReminderMinute: reminderMinute,
	})
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	// Start server
	addr := ":" + cfg.Port
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down gracefully...")

	// Give ongoing requests 10 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Stopping scheduler...")
	if err := sched.Stop(); err != nil {
		log.Printf("Scheduler shutdown error: %v", err)
	}

	log.Println("Closing database...")
	if err := database.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("Shutdown complete")
}
