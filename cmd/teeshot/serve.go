package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alkime/teeshot/internal/config"
	"github.com/alkime/teeshot/internal/server"
)

// ServeCmd runs the HTTP server.
type ServeCmd struct {
	Port string `flag:"" short:"p" help:"Port to listen on (overrides PORT)"`
}

// Run executes the serve command.
func (c *ServeCmd) Run(log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	cfg.FillFromKeychain()
	if c.Port != "" {
		cfg.Port = c.Port
	}

	return server.Serve(ctx, cfg, log)
}
