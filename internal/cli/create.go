package cli

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"

	"github.com/alecthomas/kong"
	"github.com/spohaver/venvman/internal/adapter"
	"github.com/spohaver/venvman/internal/domain"
)

const (
	// defaultConfigPath is the default path to the .venvman.toml defaults file
	defaultConfigPath = ".venvman.toml"
)

// CreateCmd represents the create command
type CreateCmd struct {
	Name         string `help:"Name of the virtual environment (default: current directory name)" short:"n"`
	BaseDir      string `help:"Base directory for virtual environments (default: ~/virtual_environments)" short:"b" type:"path"`
	Requirements string `help:"Path to the requirements file (default: ./requirements.txt)" short:"r" type:"path"`
	Python       string `help:"Interpreter used to create the environment (default: python3)"`
	DryRun       bool   `help:"Show the package reconcile plan without changing anything"`
}

// Run executes the create command
func (c *CreateCmd) Run(ctx *kong.Context) error {
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
func (c *CreateCmd) run(configPath, projectDir string, verbose bool) error {
	logger := NewLogger(verbose)

	cfg, err := domain.NewConfigManager(configPath).LoadOrDefault(context.Background())
	if err != nil {
		logger.Error("Failed to load defaults from %s: %v", configPath, err)
		return err
	}

	opts, python, err := c.resolveOptions(cfg, projectDir)
	if err != nil {
		logger.Error("Failed to resolve environment settings: %v", err)
		return err
	}

	manager := domain.NewEnvManager(adapter.NewVenvAdapter(python), adapter.NewPipAdapter())
	return c.runWithManager(logger, manager, opts)
}

// runWithManager executes the create command against the given manager (for testing)
func (c *CreateCmd) runWithManager(logger *Logger, manager domain.EnvManager, opts domain.CreateOptions) error {
	logger.Verbose("Virtual environment name: %s", opts.Name)
	logger.Verbose("Base directory: %s", opts.BaseDir)
	logger.Verbose("Requirements file: %s", opts.RequirementsPath)

	result, err := manager.Create(context.Background(), opts)
	if err != nil {
		c.handleCreateError(logger, opts, err)
		return err
	}

	if opts.DryRun {
		c.printPlan(logger, result)
		return nil
	}

	switch {
	case result.CreatedNew:
		logger.Info("Created virtual environment in %s", result.Env.Path)
	case result.InstallRan:
		logger.Info("Package requirements have changed, packages were installed/updated.")
	case result.Plan != nil:
		logger.Info("Virtual environment already exists, all required packages are installed.")
	default:
		logger.Info("Virtual environment already exists; no requirements manifest to reconcile.")
	}

	if result.InstallRan && logger.IsVerbose() {
		logger.Verbose("Installer output:\n%s", result.InstallerOutput)
	}

	logger.Verbose("Created location marker: %s", result.MarkerPath)
	logger.Verbose("Created activation script: %s", result.ScriptPath)

	logger.Info("")
	logger.Info("Virtual Environment setup completed!")
	logger.Info("Virtual environment location: %s", result.Env.Path)
	logger.Info("To activate: source %s", result.Env.ActivateHookPath())
	logger.Info("To deactivate: deactivate")
	logger.Info("Run './%s' to activate the virtual environment in a NEW shell", domain.ActivationScriptName)

	return nil
}

// printPlan renders the dry-run reconcile plan.
func (c *CreateCmd) printPlan(logger *Logger, result *domain.CreateResult) {
	logger.Info("Dry run: no changes were made.")
	if result.CreatedNew {
		logger.Info("Would create virtual environment at %s", result.Env.Path)
	}

	switch {
	case result.Plan == nil:
		logger.Info("No requirements manifest to reconcile.")
	case result.Plan.InSync():
		logger.Info("Package set is already in sync with the manifest.")
	default:
		logger.Info("Package changes (+ install, - not in manifest):")
		logger.Info("%s", result.Diff)
	}
}

// resolveOptions combines flags, the defaults file, and built-in defaults
// into the final create options, flags winning over the defaults file.
func (c *CreateCmd) resolveOptions(cfg *domain.Config, projectDir string) (domain.CreateOptions, string, error) {
	name := c.Name
	if name == "" {
		name = filepath.Base(projectDir)
	}

	baseDir, err := resolveBaseDir(c.BaseDir, cfg)
	if err != nil {
		return domain.CreateOptions{}, "", err
	}

	python := c.Python
	if python == "" {
		python = cfg.Python
	}
	if python == "" {
		python = domain.DefaultPython
	}

	// A manifest named explicitly (flag or defaults file) must exist; the
	// built-in ./requirements.txt is optional and skipped when absent.
	requirementsPath := c.Requirements
	manifestRequired := c.Requirements != ""
	if requirementsPath == "" && cfg.Requirements != "" {
		requirementsPath = cfg.Requirements
		manifestRequired = true
	}
	if requirementsPath == "" {
		requirementsPath = filepath.Join(projectDir, domain.DefaultRequirementsName)
	}

	return domain.CreateOptions{
		Name:             name,
		BaseDir:          baseDir,
		RequirementsPath: requirementsPath,
		ProjectDir:       projectDir,
		ManifestRequired: manifestRequired,
		DryRun:           c.DryRun,
	}, python, nil
}

// handleCreateError prints the cause and a recommended action for create failures.
func (c *CreateCmd) handleCreateError(logger *Logger, opts domain.CreateOptions, err error) {
	switch {
	case errors.Is(err, domain.ErrRequirementsNotFound):
		logger.Error("Requirements file not found at %s", opts.RequirementsPath)
		logger.Error("Create the manifest or drop the --requirements flag")
	case errors.Is(err, domain.ErrEnvCreation):
		logger.Error("Failed to create virtual environment '%s': %v", opts.Name, err)
	case errors.Is(err, domain.ErrPackageInstall):
		logger.Error("Failed to install packages into '%s': %v", opts.Name, err)
		logger.Error("Inspect the installer output and verify the manifest entries")
	default:
		logger.Error("Failed to set up virtual environment '%s': %v", opts.Name, err)
		logger.Error("Check file permissions and try again")
	}
}
