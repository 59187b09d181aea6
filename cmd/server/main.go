package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/menuscan/backend/config"
	httpDelivery "github.com/menuscan/backend/internal/delivery/http"
	"github.com/menuscan/backend/internal/infrastructure/gemini"
	"github.com/menuscan/backend/internal/infrastructure/logging"
	"github.com/menuscan/backend/internal/usecase"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})

	logger.Info().
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Msg("Starting MenuScan Backend v1.0.0")

	// Initialize infrastructure dependencies
	geminiClient := gemini.NewClient(gemini.ClientConfig{
		APIKey:            cfg.Gemini.APIKey,
		BaseURL:           cfg.Gemini.BaseURL,
		Model:             cfg.Gemini.Model,
		Timeout:           cfg.Gemini.Timeout,
		RequestsPerMinute: cfg.Gemini.RequestsPerMinute,
	}, logger)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		geminiClient.SetDebug(true)
		logger.Debug().Msg("Gemini client debug mode enabled")
	}

	if geminiClient.Configured() {
		logger.Info().
			Str("base_url", cfg.Gemini.BaseURL).
			Str("model", geminiClient.Model()).
			Int("requests_per_minute", cfg.Gemini.RequestsPerMinute).
			Msg("Gemini API configured")
	} else {
		logger.Warn().
			Str("base_url", cfg.Gemini.BaseURL).
			Msg("Gemini API key NOT CONFIGURED - model calls will fail (set MENUSCAN_GEMINI_API_KEY)")
	}

	// Initialize usecase layer
	extractionService := usecase.NewExtractionService(
		geminiClient,
		logger,
		usecase.ExtractionServiceConfig{Locale: cfg.Extraction.Locale},
	)
	presentationService := usecase.NewPresentationService(geminiClient, logger)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(extractionService, presentationService, logger)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	srv := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:     router,
		ReadTimeout: 30 * time.Second,
		// a streaming extraction holds the response open for the whole model call
		WriteTimeout: cfg.Gemini.Timeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("Server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
		_ = srv.Close()
	}
	logger.Info().Msg("Server stopped")
}
