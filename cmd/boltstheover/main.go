package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"github.com/pkjoshua/boltstheover/internal/config"
	"github.com/pkjoshua/boltstheover/internal/db"
	"github.com/pkjoshua/boltstheover/internal/handlers"
	"github.com/pkjoshua/boltstheover/internal/hub"
	"github.com/pkjoshua/boltstheover/internal/jobs"
	"github.com/pkjoshua/boltstheover/internal/report"
)

func main() {
	fmt.Println("=== Bolts The Over v0 ===")

	cfg := config.LoadConfig()

	// Connect to Postgres
	database, err := db.Connect(cfg.Postgres.DSN)
	if err != nil {
		fmt.Printf("❌ Failed to connect to Postgres: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	fmt.Println("✓ Connected to Postgres")

	// Run schema bootstrap; the ingestion jobs own the rows
	if err := db.Migrate(database); err != nil {
		fmt.Printf("❌ Failed to run migrations: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✓ Schema up to date")

	// Connect to Redis for the job store
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		fmt.Printf("❌ Failed to parse Redis URL: %v\n", err)
		os.Exit(1)
	}
	if cfg.Redis.Password != "" {
		redisOpts.Password = cfg.Redis.Password
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		fmt.Printf("❌ Failed to connect to Redis: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✓ Connected to Redis")

	// Repositories and core components
	statsClient := db.NewStatsClient(database)
	oddsClient := db.NewOddsClient(database)
	builder := report.NewBuilder(statsClient, oddsClient)

	// Job machinery: Redis-backed store, status hub, worker
	jobStore := jobs.NewRedisStore(redisClient)
	statusHub := hub.NewHub()
	runner := jobs.NewRunner(jobStore, builder, statusHub)

	go statusHub.Run(ctx)
	go runner.Run(ctx)

	// Handlers
	handler := handlers.NewHandler(statsClient, oddsClient, builder, runner, jobStore)
	socketHandler := handlers.NewSocketHandler(statusHub, ctx)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Routes
	r.Get("/", handler.Dashboard)
	r.Get("/health", handler.HealthCheck)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/teams", handler.GetTeams)
		r.Get("/events/{eventID}/odds", handler.GetEventOdds)

		r.Get("/report", handler.GetReport)
		r.Post("/reports", handler.CreateReportJob)
		r.Get("/reports/{jobID}", handler.GetReportJob)
	})

	// Job status WebSocket
	r.Get("/ws/reports/{jobID}", socketHandler.HandleJobSocket)

	// Start server
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	serverErrors := make(chan error, 1)
	go func() {
		fmt.Printf("✓ Bolts The Over listening on %s\n", cfg.Server.Addr)
		fmt.Println("  Endpoints:")
		fmt.Println("    GET  /")
		fmt.Println("    GET  /health")
		fmt.Println("    GET  /api/v1/teams")
		fmt.Println("    GET  /api/v1/events/{eventID}/odds")
		fmt.Println("    GET  /api/v1/report?team={name}")
		fmt.Println("    POST /api/v1/reports")
		fmt.Println("    GET  /api/v1/reports/{jobID}")
		fmt.Println("    WS   /ws/reports/{jobID}")

		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		fmt.Printf("❌ Server error: %v\n", err)
		os.Exit(1)

	case sig := <-shutdown:
		fmt.Printf("\n⚠️  Received signal: %v\n", sig)

		// Stop the hub and job runner
		cancel()

		// Give outstanding requests a deadline for completion
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("⚠️  Graceful shutdown failed: %v\n", err)
			if err := srv.Close(); err != nil {
				fmt.Printf("❌ Could not stop server: %v\n", err)
			}
		}
	}

	fmt.Println("✓ Shutdown complete")
}
