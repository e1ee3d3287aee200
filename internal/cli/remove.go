package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/spohaver/venvman/internal/adapter"
	"github.com/spohaver/venvman/internal/domain"
)

// RemoveCmd represents the remove command
type RemoveCmd struct {
	Name    string `arg:"" help:"Name of the virtual environment to remove"`
	BaseDir string `help:"Base directory for virtual environments (default: ~/virtual_environments)" short:"b" type:"path"`
	Force   bool   `help:"Remove without confirmation prompt" short:"f"`
}

// Run executes the remove command
func (c *RemoveCmd) Run(ctx *kong.Context) error {
	// Access verbose flag from the parsed CLI model using reflection
	verbose := false
	if model := ctx.Model; model != nil && model.Target.IsValid() {
		// Get the "Verbose" field from the CLI struct
		if verboseField := model.Target.FieldByName("Verbose"); verboseField.IsValid() && verboseField.Kind() == reflect.Bool {
			verbose = verboseField.Bool()
		}
	}

	projectDir, err := workingDir()
	if err != nil {
		return err
	}

	return c.run(defaultConfigPath, projectDir, verbose)
}

// run is the internal implementation that can be called from tests with custom parameters
func (c *RemoveCmd) run(configPath, projectDir string, verbose bool) error {
	logger := NewLogger(verbose)

	cfg, err := domain.NewConfigManager(configPath).LoadOrDefault(context.Background())
	if err != nil {
		logger.Error("Failed to load defaults from %s: %v", configPath, err)
		return err
	}

	baseDir, err := resolveBaseDir(c.BaseDir, cfg)
	if err != nil {
		logger.Error("Failed to resolve base directory: %v", err)
		return err
	}

	manager := domain.NewEnvManager(adapter.NewVenvAdapter(""), adapter.NewPipAdapter())
	return c.runWithManager(logger, manager, baseDir, projectDir, os.Stdin)
}

// runWithManager executes the remove command against the given manager,
// reading confirmation input from confirmIn (for testing).
func (c *RemoveCmd) runWithManager(logger *Logger, manager domain.EnvManager, baseDir, projectDir string, confirmIn io.Reader) error {
	ctx := context.Background()

	if !c.Force {
		info, err := manager.Inspect(ctx, c.Name, baseDir)
		if err != nil {
			c.handleRemoveError(logger, err)
			return err
		}

		logger.Info("")
		logger.Info("Environment to be deleted:")
		logger.Info("  Name: %s", info.Name)
		logger.Info("  Path: %s", info.Path)
		logger.Info("  Size: %s", info.Size())
		logger.Info("  Created: %s", info.Created.Format(listTimeFormat))
		logger.Info("  Packages: %d", len(info.Packages))
		logger.Info("")
		logger.Prompt("Are you sure you want to delete '%s'? [y/N]: ", c.Name)

		if !readConfirmation(confirmIn) {
			logger.Info("Deletion cancelled.")
			return nil
		}
	}

	result, err := manager.Remove(ctx, domain.RemoveOptions{
		Name:       c.Name,
		BaseDir:    baseDir,
		ProjectDir: projectDir,
	})
	if err != nil {
		c.handleRemoveError(logger, err)
		return err
	}

	for _, warning := range result.Warnings {
		logger.Warn("%s", warning)
	}

	logger.Info("Successfully removed virtual environment '%s'", c.Name)
	if result.MarkerRemoved {
		logger.Info("Removed %s file", domain.MarkerFileName)
	}
	if result.ScriptRemoved {
		logger.Info("Removed %s activation script", domain.ActivationScriptName)
	}

	return nil
}

// readConfirmation reads one line and reports whether it confirms deletion.
func readConfirmation(in io.Reader) bool {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// handleRemoveError prints the cause and a recommended action for remove failures.
func (c *RemoveCmd) handleRemoveError(logger *Logger, err error) {
	if errors.Is(err, domain.ErrEnvNotFound) {
		logger.Error("Virtual environment '%s' does not exist", c.Name)
		logger.Error("Use 'venvman list' to see available environments")
		return
	}

	logger.Error("Failed to remove virtual environment '%s': %v", c.Name, err)
	logger.Error("Check file permissions and try again")
}
