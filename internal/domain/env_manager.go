package domain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/spohaver/venvman/internal/port"
	"golang.org/x/sync/errgroup"
)

// Directory permission constants
const (
	baseDirMode fs.FileMode = 0o755 // User: rwx, Group: rx, Others: rx
)

// listConcurrency bounds the number of environments inspected in parallel.
const listConcurrency = 4

// EnvManager manages the virtual environment lifecycle. It orchestrates the
// environment provider, the package installer, and the per-project marker
// and activation script to provide a complete environment management
// solution.
type EnvManager interface {
	// Create ensures the named environment exists and its package set
	// matches the requirements manifest, then records the environment
	// location and regenerates the activation script. When opts.DryRun is
	// set it only computes the reconcile plan without touching the disk.
	Create(ctx context.Context, opts CreateOptions) (*CreateResult, error)

	// List enumerates the valid environments under the base directory with
	// their display metadata. A missing base directory yields an empty list.
	List(ctx context.Context, baseDir string) ([]*EnvironmentInfo, error)

	// Inspect gathers the display metadata of a single environment.
	// It returns ErrEnvNotFound when the environment directory is absent.
	Inspect(ctx context.Context, name, baseDir string) (*EnvironmentInfo, error)

	// Remove deletes the environment directory and cleans up the location
	// marker and activation script that reference it.
	Remove(ctx context.Context, opts RemoveOptions) (*RemoveResult, error)
}

// CreateOptions holds the resolved inputs of a create operation.
type CreateOptions struct {
	Name             string // Environment name
	BaseDir          string // Base directory holding environments
	RequirementsPath string // Manifest path; may point at a missing file
	ProjectDir       string // Directory receiving the marker and activation script
	ManifestRequired bool   // Fail instead of skipping when the manifest is missing
	DryRun           bool   // Compute the plan only, change nothing on disk
}

// CreateResult describes what a create operation did (or, in dry-run mode,
// would do).
type CreateResult struct {
	Env             *Environment
	CreatedNew      bool           // A new environment was (or would be) created
	Plan            *ReconcilePlan // Package delta; nil when no manifest applies
	Diff            string         // Rendered line diff of installed vs. required
	InstallRan      bool           // The installer was invoked
	InstallerOutput string         // Combined installer output
	MarkerPath      string         // Location marker path, empty in dry-run mode
	ScriptPath      string         // Activation script path, empty in dry-run mode
}

// RemoveOptions holds the resolved inputs of a remove operation.
type RemoveOptions struct {
	Name       string
	BaseDir    string
	ProjectDir string // Directory holding the marker and activation script
}

// RemoveResult describes the cleanup performed alongside directory deletion.
// Marker and script cleanup failures are reported as warnings rather than
// failing the removal.
type RemoveResult struct {
	Env           *Environment
	MarkerRemoved bool
	ScriptRemoved bool
	Warnings      []string
}

// envManagerImpl is the concrete implementation of EnvManager.
type envManagerImpl struct {
	provider  port.EnvironmentProvider
	installer port.PackageInstaller
}

// NewEnvManager creates a new EnvManager instance. It requires an
// EnvironmentProvider for environment creation and a PackageInstaller for
// package-set queries and installs.
func NewEnvManager(provider port.EnvironmentProvider, installer port.PackageInstaller) EnvManager {
	return &envManagerImpl{
		provider:  provider,
		installer: installer,
	}
}

// Create ensures the environment exists and reconciles its package set.
func (s *envManagerImpl) Create(ctx context.Context, opts CreateOptions) (*CreateResult, error) {
	env := NewEnvironment(opts.Name, opts.BaseDir)
	result := &CreateResult{Env: env}

	reqs, err := LoadRequirements(opts.RequirementsPath)
	if err != nil {
		if !errors.Is(err, ErrRequirementsNotFound) {
			return nil, err
		}
		if opts.ManifestRequired {
			return nil, err
		}
		reqs = nil
	}

	if env.Exists() {
		if err := s.reconcile(ctx, env, reqs, opts.DryRun, result); err != nil {
			return nil, err
		}
	} else {
		result.CreatedNew = true
		if !reqs.IsEmpty() {
			result.Plan = BuildPlan(nil, reqs.Specifiers)
			result.Diff = RenderDiff(nil, reqs.Specifiers)
		}
		if !opts.DryRun {
			if err := s.provision(ctx, env, opts.BaseDir, reqs, result); err != nil {
				return nil, err
			}
		}
	}

	if opts.DryRun {
		return result, nil
	}

	marker := NewLocationMarker(opts.ProjectDir)
	if err := marker.Write(env.Path); err != nil {
		return nil, err
	}
	result.MarkerPath = marker.Path()

	scriptPath, err := WriteActivationScript(opts.ProjectDir, env)
	if err != nil {
		return nil, err
	}
	result.ScriptPath = scriptPath

	return result, nil
}

// provision creates a fresh environment and installs the full manifest.
func (s *envManagerImpl) provision(ctx context.Context, env *Environment, baseDir string, reqs *Requirements, result *CreateResult) error {
	if err := s.provider.Available(ctx); err != nil {
		return err
	}

	if err := os.MkdirAll(baseDir, baseDirMode); err != nil {
		return fmt.Errorf("%w: failed to create base directory %s: %v", ErrEnvCreation, baseDir, err)
	}

	if err := s.provider.Create(ctx, env.Path); err != nil {
		return err
	}

	if reqs.IsEmpty() {
		return nil
	}
	return s.installManifest(ctx, env, reqs, result)
}

// reconcile compares the installed package set against the manifest and
// reinstalls the manifest when they differ. An absent or empty manifest
// leaves the environment untouched.
func (s *envManagerImpl) reconcile(ctx context.Context, env *Environment, reqs *Requirements, dryRun bool, result *CreateResult) error {
	if reqs.IsEmpty() {
		return nil
	}

	installed, err := s.installer.Installed(ctx, env.Path)
	if err != nil {
		return err
	}

	result.Plan = BuildPlan(installed, reqs.Specifiers)
	result.Diff = RenderDiff(installed, reqs.Specifiers)

	if result.Plan.InSync() || dryRun {
		return nil
	}
	return s.installManifest(ctx, env, reqs, result)
}

// installManifest upgrades the installer and installs the full manifest.
func (s *envManagerImpl) installManifest(ctx context.Context, env *Environment, reqs *Requirements, result *CreateResult) error {
	upgradeOut, err := s.installer.Upgrade(ctx, env.Path)
	result.InstallerOutput += upgradeOut
	if err != nil {
		return err
	}

	installOut, err := s.installer.Install(ctx, env.Path, reqs.Path)
	result.InstallerOutput += installOut
	if err != nil {
		return err
	}

	result.InstallRan = true
	return nil
}

// List enumerates valid environments under the base directory. Environment
// metadata is gathered concurrently since size computation and installer
// queries dominate the cost.
func (s *envManagerImpl) List(ctx context.Context, baseDir string) ([]*EnvironmentInfo, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read base directory %s: %w. Check directory permissions", baseDir, err)
	}

	var envs []*Environment
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		env := NewEnvironment(entry.Name(), baseDir)
		if env.Exists() {
			envs = append(envs, env)
		}
	}

	infos := make([]*EnvironmentInfo, len(envs))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(listConcurrency)
	for i, env := range envs {
		eg.Go(func() error {
			infos[i] = s.inspect(egCtx, env)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// ReadDir returns entries sorted by name; keep that order for output.
	return infos, nil
}

// Inspect gathers the display metadata of a single environment.
func (s *envManagerImpl) Inspect(ctx context.Context, name, baseDir string) (*EnvironmentInfo, error) {
	env := NewEnvironment(name, baseDir)
	if _, err := os.Stat(env.Path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no environment named '%s' at %s", ErrEnvNotFound, name, env.Path)
		}
		return nil, fmt.Errorf("failed to check environment at %s: %w", env.Path, err)
	}
	return s.inspect(ctx, env), nil
}

// inspect collects environment metadata, tolerating partial failures: a
// broken interpreter or installer yields empty fields instead of failing
// the listing.
func (s *envManagerImpl) inspect(ctx context.Context, env *Environment) *EnvironmentInfo {
	info := &EnvironmentInfo{Name: env.Name, Path: env.Path}

	if stat, err := os.Stat(env.Path); err == nil {
		info.Created = stat.ModTime()
	}
	info.SizeBytes = dirSize(env.Path)

	if version, err := s.provider.InterpreterVersion(ctx, env.Path); err == nil {
		info.PythonVersion = version
	}
	if packages, err := s.installer.Installed(ctx, env.Path); err == nil {
		sort.Strings(packages)
		info.Packages = packages
	}

	return info
}

// Remove deletes the environment directory and any marker or activation
// script referencing it.
func (s *envManagerImpl) Remove(ctx context.Context, opts RemoveOptions) (*RemoveResult, error) {
	env := NewEnvironment(opts.Name, opts.BaseDir)
	if _, err := os.Stat(env.Path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no environment named '%s' at %s", ErrEnvNotFound, opts.Name, env.Path)
		}
		return nil, fmt.Errorf("failed to check environment at %s: %w", env.Path, err)
	}

	if err := os.RemoveAll(env.Path); err != nil {
		return nil, fmt.Errorf("failed to remove environment directory %s: %w. Check file permissions", env.Path, err)
	}

	result := &RemoveResult{Env: env}

	markerRemoved, err := NewLocationMarker(opts.ProjectDir).RemoveIfPointsTo(env.Path)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("could not clean up location marker: %v", err))
	}
	result.MarkerRemoved = markerRemoved

	scriptRemoved, err := RemoveActivationScriptIfReferences(opts.ProjectDir, env.Path)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("could not clean up activation script: %v", err))
	}
	result.ScriptRemoved = scriptRemoved

	return result, nil
}
