// Package editor opens files in the user's editor.
package editor

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// Command returns the editor to run: $EDITOR, or vi.
func Command() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return "vi"
}

// Open opens filePath in the user's editor and waits for it to exit.
func Open(filePath string, logger *slog.Logger) error {
	editor := Command()
	logger.Info("Opening file in editor", "editor", editor, "path", filePath)

	//nolint:gosec // The editor is chosen by the user
	cmd := exec.Command(editor, filePath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		logger.Error("Failed to open editor", "error", err, "path", filePath)
		return fmt.Errorf("failed to open editor: %w", err)
	}

	return nil
}
