package studio

import (
	"context"
	"log/slog"

	"github.com/alkime/teeshot/internal/config"
	"github.com/alkime/teeshot/internal/genai"
	"github.com/alkime/teeshot/internal/reference"
	"github.com/alkime/teeshot/internal/session"
	"github.com/alkime/teeshot/internal/storage"
)

// FromConfig builds a studio from configuration. Image storage and video
// are left out when their credentials are missing.
func FromConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Studio, error) {
	keys := cfg.Keys()

	text, models, err := genai.NewTextProvider(cfg.TextProvider, keys, logger)
	if err != nil {
		return nil, err
	}
	if m := cfg.Models(); len(m) > 0 {
		models = m
	}

	img, err := genai.NewImageProvider(cfg.ImageProvider, keys, logger)
	if err != nil {
		return nil, err
	}

	opts := Options{
		Generator:  genai.NewGenerator(text, models, cfg.RetryPolicy(logger), logger),
		Images:     img,
		References: reference.NewFetcher(nil, logger),
		Sessions:   session.NewManager(cfg.SessionTTL, logger),
		Logger:     logger,
	}

	if keys.Gemini != "" {
		opts.Video = genai.NewGemini(keys.Gemini, logger)
	}

	if sc := cfg.Storage(); sc.Configured() {
		s3, err := storage.NewS3(ctx, sc, logger)
		if err != nil {
			logger.Warn("Image storage disabled", "error", err)
		} else {
			opts.Storage = s3
		}
	} else {
		logger.Info("Image storage not configured, images stay local")
	}

	logger.Info("Studio configured",
		"text_provider", text.Name(),
		"models", models,
		"image_provider", cfg.ImageProvider,
		"storage", opts.Storage != nil,
		"video", opts.Video != nil,
	)

	return New(opts), nil
}
