package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bilgisen/newsdeck/internal/api"
	"github.com/bilgisen/newsdeck/internal/bootstrap"
	"github.com/bilgisen/newsdeck/internal/config"
	"github.com/bilgisen/newsdeck/internal/logger"
	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load and validate configuration
	cfg := config.Load()

	// Initialize logger
	if err := bootstrap.InitLogger(cfg); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().Str("env", cfg.Env).Strs("providers", cfg.EnabledProviders).Msg("Starting application...")

	svc, err := bootstrap.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize news service")
	}
	defer func() {
		log.Info().Msg("Closing quota limiter...")
		if err := svc.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing quota limiter")
		}
	}()

	handlers := api.NewHandlers(svc, cfg.CacheControl, cfg.HTTPTimeout)
	app := api.NewApp(handlers, fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
	})

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
