// Package cli implements the venvman subcommands. Each command struct is a
// thin kong wrapper over a testable run method; the lifecycle decisions live
// in the domain package.
package cli

import (
	"fmt"
	"os"

	"github.com/spohaver/venvman/internal/domain"
)

// workingDir returns the current working directory, which acts as the
// project directory receiving the marker and activation script.
func workingDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to determine working directory: %w", err)
	}
	return dir, nil
}

// resolveBaseDir picks the environments base directory from the flag value,
// the defaults file, or the built-in home default, in that order.
func resolveBaseDir(flagValue string, cfg *domain.Config) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if cfg.BaseDir != "" {
		return cfg.BaseDir, nil
	}
	baseDir, err := domain.DefaultBaseDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return baseDir, nil
}
