package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alkime/teeshot/internal/catalog"
	"github.com/alkime/teeshot/internal/config"
	"github.com/alkime/teeshot/internal/studio"
)

const sweepInterval = 5 * time.Minute

// Serve wires the studio from cfg and serves until ctx is done.
func Serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	st, err := studio.FromConfig(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to configure studio: %w", err)
	}

	cat, err := catalog.Default()
	if err != nil {
		return err
	}

	go st.Sessions().Run(ctx, sweepInterval)

	return Run(ctx, New(ctx, cfg, logger, st, cat))
}
