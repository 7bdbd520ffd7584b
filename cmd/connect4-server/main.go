// Package main implements the Connect4 game server with a RESTful API,
// SQLite persistence, and background jobs for reminders and maintenance.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"connect4/cmd/connect4-server/cli"
	"connect4/internal/server/cache"
	"connect4/internal/server/http"
	"connect4/internal/server/processor"
	"connect4/internal/server/service"
	"connect4/internal/server/storage"
)

const (
	gracefulShutdownTimeout = time.Second * 5
	defaultReminderInterval = time.Hour
)

func main() {
	// Check for CLI database commands
	if len(os.Args) > 1 && os.Args[1] == "db" {
		if err := cli.Run(os.Args[2:]); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		os.Exit(0)
	}

	// Command-line flags
	var (
		apiHost     = flag.String("api-host", "localhost", "API server host")
		apiPort     = flag.Int("api-port", 8080, "API server port")
		dev         = flag.Bool("dev", false, "Development mode (relaxed rate limits, WAL journal)")
		storagePath = flag.String("storage-path", "connect4.db", "Path to SQLite database file")
		pidPath     = flag.String("pid", "", "Optional path to write PID file")
		pidLock     = flag.Bool("pid-lock", false, "Lock PID file to allow only one instance (requires -pid)")
	)
	flag.Parse()

	// Validate PID flags
	if *pidLock && *pidPath == "" {
		log.Fatal("Error: -pid-lock flag requires the -pid flag to be set")
	}

	// Manage PID file if requested
	if *pidPath != "" {
		cleanup, err := managePIDFile(*pidPath, *pidLock)
		if err != nil {
			log.Fatalf("Failed to manage PID file: %v", err)
		}
		defer cleanup()
		log.Printf("PID file created at: %s (lock: %v)", *pidPath, *pidLock)
	}

	// Optional environment overrides for mail and cache wiring
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	// 1. Initialize storage
	log.Printf("Initializing persistent storage at: %s", *storagePath)
	store, err := storage.NewStore(*storagePath, *dev)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	if err := store.InitDB(); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Warning: failed to close storage cleanly: %v", err)
		}
	}()

	// 2. Optional statistics cache
	var statsCache service.Cache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
		redisCache, err := cache.NewRedis(addr, os.Getenv("REDIS_PASSWORD"), db)
		if err != nil {
			log.Printf("Warning: statistics cache unavailable: %v", err)
		} else {
			defer redisCache.Close()
			statsCache = redisCache
			log.Printf("Statistics cache: Redis at %s", addr)
		}
	}

	// 3. Initialize the service (provisions the computer opponent account)
	svc, err := service.NewService(store, statsCache)
	if err != nil {
		log.Fatalf("Failed to initialize service: %v", err)
	}

	// 4. Background jobs: lock pruning and open-game reminders
	scheduler, err := svc.StartScheduler(configureMailer(), reminderInterval())
	if err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			log.Printf("Scheduler shutdown error: %v", err)
		}
	}()

	// 5. Initialize the processor and the Fiber app
	proc := processor.New(svc)
	app := http.NewFiberApp(proc, svc, *dev)

	apiAddr := fmt.Sprintf("%s:%d", *apiHost, *apiPort)

	// Start API server in a goroutine
	go func() {
		log.Printf("Connect4 API Server starting...")
		log.Printf("API Listening on: http://%s", apiAddr)
		log.Printf("API Version: v1")
		if *dev {
			log.Printf("Rate Limit: 20 requests/second per IP (DEV MODE)")
		} else {
			log.Printf("Rate Limit: 10 requests/second per IP")
		}
		log.Printf("Storage: %s", *storagePath)
		log.Printf("API Endpoints: http://%s/api/v1/games", apiAddr)
		log.Printf("Health: http://%s/health", apiAddr)

		if err := app.Listen(apiAddr); err != nil {
			log.Printf("API server listen error: %v", err)
		}
	}()

	// Wait for an interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// configureMailer builds the reminder mailer from SMTP_* environment
// variables; reminders stay disabled when no relay is configured.
func configureMailer() service.Mailer {
	addr := os.Getenv("SMTP_ADDR")
	from := os.Getenv("SMTP_FROM")
	if addr == "" || from == "" {
		log.Printf("Reminder mail: disabled (set SMTP_ADDR and SMTP_FROM to enable)")
		return nil
	}

	log.Printf("Reminder mail: enabled via %s", addr)
	return &service.SMTPMailer{
		Addr:     addr,
		From:     from,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
	}
}

func reminderInterval() time.Duration {
	raw := os.Getenv("REMINDER_INTERVAL")
	if raw == "" {
		return defaultReminderInterval
	}
	interval, err := time.ParseDuration(raw)
	if err != nil || interval <= 0 {
		log.Printf("Warning: invalid REMINDER_INTERVAL %q, using %s", raw, defaultReminderInterval)
		return defaultReminderInterval
	}
	return interval
}
