package adapter

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spohaver/venvman/internal/domain"
)

// PipAdapter implements the PackageInstaller interface for pip inside a
// virtual environment. Every call targets the environment's own pip binary
// so the system installation is never touched.
type PipAdapter struct{}

// NewPipAdapter creates a new pip adapter instance.
func NewPipAdapter() *PipAdapter {
	return &PipAdapter{}
}

// pipPath returns the pip executable inside the environment.
func (a *PipAdapter) pipPath(envPath string) string {
	return filepath.Join(envPath, "bin", "pip")
}

// Installed returns the package specifiers currently installed in the
// environment, as reported by 'pip freeze'.
func (a *PipAdapter) Installed(ctx context.Context, envPath string) ([]string, error) {
	cmd := exec.CommandContext(ctx, a.pipPath(envPath), "freeze")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%w: 'pip freeze' failed in %s: %v", domain.ErrPackageInstall, envPath, err)
	}

	var specifiers []string
	for line := range strings.Lines(string(output)) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		specifiers = append(specifiers, line)
	}

	return specifiers, nil
}

// Install installs the full requirements manifest into the environment.
func (a *PipAdapter) Install(ctx context.Context, envPath, manifestPath string) (string, error) {
	cmd := exec.CommandContext(ctx, a.pipPath(envPath), "install", "-r", manifestPath)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("%w: 'pip install -r %s' failed in %s: %v: %s", domain.ErrPackageInstall, manifestPath, envPath, err, firstLine(output))
	}
	return string(output), nil
}

// Upgrade upgrades pip itself inside the environment before packages are
// installed into it.
func (a *PipAdapter) Upgrade(ctx context.Context, envPath string) (string, error) {
	cmd := exec.CommandContext(ctx, a.pipPath(envPath), "install", "-U", "pip")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("%w: pip self-upgrade failed in %s: %v: %s", domain.ErrPackageInstall, envPath, err, firstLine(output))
	}
	return string(output), nil
}
