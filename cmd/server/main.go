package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alkime/teeshot/internal/config"
	"github.com/alkime/teeshot/internal/logger"
	"github.com/alkime/teeshot/internal/server"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg.FillFromKeychain()

	// Setup structured logging
	logger := logger.SetupLogger(cfg)

	// Log startup information
	logger.Info("Starting TeeShot server",
		"env", cfg.Env,
		"port", cfg.Port,
		"text_provider", cfg.TextProvider,
		"image_provider", cfg.ImageProvider,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Serve(ctx, cfg, logger); err != nil {
		logger.Error("Server failed", "error", err)
		log.Fatalf("Fatal: %v", err)
	}
}
