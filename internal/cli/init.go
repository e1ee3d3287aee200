package cli

import (
	"context"
	"errors"
	"reflect"

	"github.com/alecthomas/kong"
	"github.com/spohaver/venvman/internal/domain"
)

// InitCmd represents the init command
type InitCmd struct {
	BaseDir      string `help:"Default base directory for virtual environments" short:"b" type:"path"`
	Requirements string `help:"Default requirements file" short:"r" type:"path"`
	Python       string `help:"Default interpreter used to create environments"`
}

// Run executes the init command
func (c *InitCmd) Run(ctx *kong.Context) error {
	// Access verbose flag from the parsed CLI model using reflection
	verbose := false
	if model := ctx.Model; model != nil && model.Target.IsValid() {
		// Get the "Verbose" field from the CLI struct
		if verboseField := model.Target.FieldByName("Verbose"); verboseField.IsValid() && verboseField.Kind() == reflect.Bool {
			verbose = verboseField.Bool()
		}
	}

	return c.run(defaultConfigPath, verbose)
}

// run is the internal implementation that can be called from tests with custom parameters
func (c *InitCmd) run(configPath string, verbose bool) error {
	logger := NewLogger(verbose)

	logger.Info("Initializing project with %s", configPath)

	config := &domain.Config{
		BaseDir:      c.BaseDir,
		Requirements: c.Requirements,
		Python:       c.Python,
	}

	configManager := domain.NewConfigManager(configPath)
	if err := configManager.Initialize(context.Background(), config); err != nil {
		if errors.Is(err, domain.ErrConfigExists) {
			logger.Error("Configuration file already exists at %s", configPath)
			logger.Error("Remove the existing file or use a different path")
			return err
		}

		logger.Error("Failed to create configuration file: %v", err)
		logger.Error("Check file permissions and try again")
		return err
	}

	logger.Info("Created %s", configPath)
	return nil
}
