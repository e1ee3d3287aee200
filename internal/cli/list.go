package cli

import (
	"context"
	"os"
	"reflect"

	"github.com/alecthomas/kong"
	"github.com/spohaver/venvman/internal/adapter"
	"github.com/spohaver/venvman/internal/domain"
)

// listTimeFormat is how environment creation times are rendered.
const listTimeFormat = "2006-01-02 15:04:05"

// detailedPackageLimit caps the packages shown per environment in detailed mode.
const detailedPackageLimit = 10

// ListCmd represents the list command
type ListCmd struct {
	BaseDir  string `help:"Base directory for virtual environments (default: ~/virtual_environments)" short:"b" type:"path"`
	Detailed bool   `help:"Show detailed information about each environment" short:"d"`
}

// Run executes the list command
func (c *ListCmd) Run(ctx *kong.Context) error {
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
func (c *ListCmd) run(configPath string, verbose bool) error {
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
	return c.runWithManager(logger, manager, baseDir)
}

// runWithManager executes the list command against the given manager (for testing)
func (c *ListCmd) runWithManager(logger *Logger, manager domain.EnvManager, baseDir string) error {
	if _, err := os.Stat(baseDir); os.IsNotExist(err) {
		logger.Info("Base directory %s does not exist.", baseDir)
		return nil
	}

	logger.Verbose("Scanning %s for virtual environments", baseDir)

	infos, err := manager.List(context.Background(), baseDir)
	if err != nil {
		logger.Error("Failed to list virtual environments in %s: %v", baseDir, err)
		logger.Error("Check directory permissions and try again")
		return err
	}

	if len(infos) == 0 {
		logger.Info("No virtual environments found in %s", baseDir)
		return nil
	}

	logger.Info("")
	logger.Info("Virtual environments in %s:", baseDir)
	logger.Info("============================================================")

	if c.Detailed {
		c.printDetailed(logger, infos)
	} else {
		c.printSummary(logger, infos)
	}

	return nil
}

// printSummary renders one aligned row per environment.
func (c *ListCmd) printSummary(logger *Logger, infos []*domain.EnvironmentInfo) {
	for _, info := range infos {
		logger.Info("  %-20s | %8s | %-19s | %3d packages",
			info.Name, info.Size(), info.Created.Format(listTimeFormat), len(info.Packages))
	}

	logger.Info("")
	logger.Info("Found %d virtual environment(s)", len(infos))
	logger.Info("Use --detailed flag for more information")
}

// printDetailed renders one block per environment including the interpreter
// version and the leading installed packages.
func (c *ListCmd) printDetailed(logger *Logger, infos []*domain.EnvironmentInfo) {
	for _, info := range infos {
		logger.Info("")
		logger.Info("Name: %s", info.Name)
		logger.Info("Path: %s", info.Path)
		logger.Info("Created: %s", info.Created.Format(listTimeFormat))
		logger.Info("Size: %s", info.Size())
		logger.Info("Python: %s", info.PythonVersion)
		logger.Info("Packages: %d", len(info.Packages))

		if len(info.Packages) > 0 {
			logger.Info("Installed packages:")
			for i, pkg := range info.Packages {
				if i == detailedPackageLimit {
					logger.Info("  ... and %d more", len(info.Packages)-detailedPackageLimit)
					break
				}
				logger.Info("  - %s", pkg)
			}
		}
		logger.Info("----------------------------------------")
	}
}
