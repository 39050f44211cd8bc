package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skillpath-backend/internal/config"
	"skillpath-backend/internal/database"
	"skillpath-backend/internal/handlers"
	"skillpath-backend/internal/logger"
	"skillpath-backend/internal/middleware"
	"skillpath-backend/internal/repository"
	"skillpath-backend/internal/router"
	"skillpath-backend/internal/services"
	"skillpath-backend/internal/websocket"
	"skillpath-backend/internal/worker"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Error("✗ invalid configuration", "error", err)
		os.Exit(1)
	}
	log.Info("🚀 starting skillpath backend", "env", cfg.Env, "provider", cfg.LLMProvider)

	ctx := context.Background()

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("✗ postgres connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	log.Info("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("✗ redis connection failed", "error", err)
		os.Exit(1)
	}
	defer redisClients.Close()
	log.Info("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(ctx, pool, cfg.MigrationsDir, log); err != nil {
		log.Error("✗ database migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("✓ Database migrations applied")

	// ──── Step 5: Initialize LLM Provider ────
	var generator services.Generator
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		gemini, err := services.NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMMaxTokens, cfg.LLMConcurrentRequests, log)
		if err != nil {
			log.Error("✗ gemini client initialization failed", "error", err)
			os.Exit(1)
		}
		defer gemini.Close()
		generator = gemini
	default:
		generator = services.NewGroqService(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel, cfg.LLMMaxTokens, cfg.LLMConcurrentRequests, log)
	}
	log.Info("✓ LLM provider ready", "provider", generator.Provider(), "model", generator.Model())

	// ──── Initialize Repositories ────
	pathRepo := repository.NewPathRepo(pool)
	jobRepo := repository.NewJobRepo(pool)
	attemptRepo := repository.NewAttemptRepo(pool)
	jobQueue := repository.NewJobQueue(redisClients.Queue)
	sessionStore := repository.NewSessionStore(redisClients.Store, cfg.SessionTTL)
	quizStates := repository.NewQuizStateStore(redisClients.Store, cfg.SessionTTL)

	// ──── Initialize Services ────
	sessionAuth := middleware.NewSessionAuth(cfg.JWTSecret, cfg.SessionTTL)
	publisher := services.NewPublisher(redisClients.Queue)
	pathService := services.NewPathService(
		generator,
		services.NewProfileValidator(),
		pathRepo,
		jobRepo,
		jobQueue,
		sessionStore,
		log.With("component", "paths"),
	)
	quizService := services.NewQuizService(pathService, quizStates, attemptRepo, log.With("component", "quizzes"))

	// ──── Step 6: Start Job Worker Pool ────
	workerPool := worker.NewPool(
		redisClients.Queue,
		pathService,
		jobRepo,
		jobQueue,
		publisher,
		log.With("component", "worker"),
		cfg.WorkerCount,
	)
	workerPool.Start()
	log.Info("✓ Worker pool started", "workers", cfg.WorkerCount)

	// ──── Step 7: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub, sessionAuth, log.With("component", "ws"))

	// ──── Step 8: Start HTTP Server ────
	generateLimiter := middleware.NewRateLimiter(cfg.GenerateRateLimit, time.Minute)
	defer generateLimiter.Stop()

	r := router.New(
		sessionAuth,
		generateLimiter,
		handlers.NewLegacyHandler(pathService, log.With("component", "legacy")),
		handlers.NewSessionHandler(sessionAuth, log),
		handlers.NewPathHandler(pathService),
		handlers.NewQuizHandler(quizService),
		wsHub,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// /api/generate-path waits on the provider inline.
		WriteTimeout: 4 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutting down")
		workerPool.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Info("✓ skillpath backend ready",
		"api", fmt.Sprintf("http://localhost:%s/api/v1", cfg.Port),
		"ws", fmt.Sprintf("ws://localhost:%s/api/v1/ws", cfg.Port),
	)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
