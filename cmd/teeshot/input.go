package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alkime/teeshot/internal/config"
	"github.com/alkime/teeshot/internal/content"
	"github.com/alkime/teeshot/internal/session"
	"github.com/alkime/teeshot/internal/sheet"
	"github.com/alkime/teeshot/internal/studio"
	"github.com/alkime/teeshot/internal/workdir"
)

// SourceFlags select the generated text to work on.
type SourceFlags struct {
	File    string `arg:"" optional:"" help:"File with generated text (stdin when omitted or -)"`
	Format  string `flag:"" short:"f" help:"Format: card, blog, banner, default, or a format hint"`
	Keyword string `flag:"" short:"k" help:"Keyword to highlight"`
}

// read returns the text and its detected format.
func (s SourceFlags) read() (string, content.Format, error) {
	var (
		data []byte
		err  error
	)
	if s.File == "" || s.File == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(s.File)
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to read input: %w", err)
	}

	hint := ""
	if s.Format != "" {
		f, err := content.ParseFormat(s.Format)
		if err != nil {
			return "", "", err
		}
		hint = f.Hint()
	}
	raw := string(data)

	return raw, content.Detect(raw, hint), nil
}

// loadStudio reads configuration and builds the studio.
func loadStudio(ctx context.Context, log *slog.Logger) (*studio.Studio, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	cfg.FillFromKeychain()

	return studio.FromConfig(ctx, cfg, log)
}

// writeRow writes sess's export row to path. With no path the row and the
// generated text go to the session's working directory.
func writeRow(sess *session.Session, path string) (string, error) {
	row := sess.Row()
	if row == nil {
		return "", errors.New("nothing to export")
	}

	if path == "" {
		if err := workdir.Prep(sess.ID); err != nil {
			return "", err
		}
		text, err := workdir.FilePath(sess.ID, "content.txt")
		if err != nil {
			return "", err
		}
		if err := writeFile(text, sess.Generated.Content); err != nil {
			return "", err
		}
		if path, err = workdir.FilePath(sess.ID, "row.tsv"); err != nil {
			return "", err
		}
	}

	if err := writeFile(path, sheet.EncodeTSV(row)); err != nil {
		return "", err
	}

	return path, nil
}

func writeFile(path, data string) error {
	//nolint:gosec // Export files need to be readable
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
