// Package workdir manages where the CLI keeps generated text and exports.
package workdir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvRoot overrides the default root directory.
const EnvRoot = "TEESHOT_HOME"

// Root returns the base directory for all CLI working files:
//
//	$TEESHOT_HOME, or $HOME/Documents/Teeshot
func Root() (string, error) {
	if root := strings.TrimSpace(os.Getenv(EnvRoot)); root != "" {
		return root, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, "Documents", "Teeshot"), nil
}

// WorkPath returns the directory for one session.
func WorkPath(sessionID string) (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "sessions", sessionID), nil
}

// FilePath returns the full path for a file in a session directory.
func FilePath(sessionID, filename string) (string, error) {
	workPath, err := WorkPath(sessionID)
	if err != nil {
		return "", err
	}
	return filepath.Join(workPath, filename), nil
}

// Prep ensures that the session directory exists.
func Prep(sessionID string) error {
	workPath, err := WorkPath(sessionID)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(workPath, 0o755); err != nil {
		return fmt.Errorf("failed to create working directory %s: %w", workPath, err)
	}

	return nil
}
