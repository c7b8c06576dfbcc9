package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"bookbot-backend/internal/catalog"
	"bookbot-backend/internal/config"
	"bookbot-backend/internal/database"
	"bookbot-backend/internal/handlers"
	"bookbot-backend/internal/logging"
	"bookbot-backend/internal/router"
	"bookbot-backend/internal/scope"
	"bookbot-backend/internal/services"
	"bookbot-backend/internal/websocket"
)

func main() {
	// ──── Step 1: Load Configuration ────
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ Configuration error: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	logging.Info().Str("env", cfg.Server.Env).Msg("🚀 Starting BookBot Backend...")
	logging.Info().Msg("✓ Configuration loaded")
	if cfg.IsProduction() && slices.Contains(cfg.CORS.Origins, "*") {
		logging.Warn().Msg("CORS allows any origin in production; set CORS_ORIGINS")
	}

	// ──── Step 2: Initialize Gemini Client ────
	provider, err := services.NewGeminiProvider(context.Background(), cfg.Gemini)
	if err != nil {
		logging.Fatal().Err(err).Msg("✗ Gemini client initialization failed")
	}
	defer provider.Close()
	logging.Info().Str("model", cfg.Gemini.Model).Msg("✓ Gemini client initialized")

	// ──── Step 3: Optional Redis for the feedback stream ────
	var (
		publisher  services.Publisher
		subscriber websocket.Subscriber
	)
	if cfg.Redis.URL != "" {
		redisClient, err := database.NewRedisClient(cfg.Redis.URL)
		if err != nil {
			logging.Fatal().Err(err).Msg("✗ Redis connection failed")
		}
		defer redisClient.Close()
		publisher = services.NewRedisPublisher(redisClient)
		subscriber = websocket.NewRedisSubscriber(redisClient)
		logging.Info().Str("channel", cfg.Redis.FeedbackChannel).Msg("✓ Redis connected")
	} else {
		logging.Info().Msg("Redis not configured, feedback is only logged")
	}

	// ──── Step 4: Load Book Catalog ────
	books := catalog.Load(cfg.Books.Path)
	logging.Info().Int("books", books.Len()).Msg("✓ Book catalog ready")

	// ──── Initialize Services & Handlers ────
	chatService := services.NewChatService(provider, scope.NewDefaultGate(), time.Now)
	feedbackService := services.NewFeedbackService(publisher, cfg.Redis.FeedbackChannel, time.Now)

	chatHandler := handlers.NewChatHandler(chatService)
	dailyBookHandler := handlers.NewDailyBookHandler(time.Now)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	bookHandler := handlers.NewBookHandler(books)

	// ──── Step 5: Start WebSocket Hub ────
	wsHub := websocket.NewHub(subscriber, cfg.Redis.FeedbackChannel)
	logging.Info().Msg("✓ WebSocket hub started")

	// ──── Step 6: Start HTTP Server ────
	r := router.New(
		chatHandler,
		dailyBookHandler,
		feedbackHandler,
		bookHandler,
		wsHub,
		cfg.CORS.Origins,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logging.Info().Msg("Shutting down...")
		wsHub.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logging.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	logging.Info().Msgf("✓ BookBot Backend ready on http://localhost:%s", cfg.Server.Port)
	logging.Info().Msgf("  API: http://localhost:%s/api", cfg.Server.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logging.Fatal().Err(err).Msg("Server error")
	}
}
