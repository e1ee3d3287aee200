// Package adapter provides implementations of port interfaces for external
// system integrations. It includes adapters for the venv module and for pip,
// both invoked as subprocesses of the environment's interpreter.
package adapter

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spohaver/venvman/internal/domain"
)

// VenvAdapter implements the EnvironmentProvider interface on top of the
// interpreter's venv module ("python3 -m venv").
type VenvAdapter struct {
	python string
}

// NewVenvAdapter creates a new venv adapter using the given interpreter.
// An empty interpreter falls back to python3 from PATH.
func NewVenvAdapter(python string) *VenvAdapter {
	if python == "" {
		python = domain.DefaultPython
	}
	return &VenvAdapter{python: python}
}

// Available checks that the interpreter exists on PATH and that its venv
// module can be imported.
func (a *VenvAdapter) Available(ctx context.Context) error {
	if _, err := exec.LookPath(a.python); err != nil {
		return fmt.Errorf("%w: interpreter '%s' not found in PATH. Install Python 3 or point --python at an interpreter", domain.ErrEnvCreation, a.python)
	}

	cmd := exec.CommandContext(ctx, a.python, "-c", "import venv")
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: the venv module is not available for '%s': %s. Install it with your system package manager (e.g. 'sudo apt install python3-venv')", domain.ErrEnvCreation, a.python, firstLine(output))
	}

	return nil
}

// Create invokes the venv module to create an environment at the given path.
func (a *VenvAdapter) Create(ctx context.Context, path string) error {
	cmd := exec.CommandContext(ctx, a.python, "-m", "venv", path)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: '%s -m venv %s' failed: %v: %s", domain.ErrEnvCreation, a.python, path, err, firstLine(output))
	}
	return nil
}

// InterpreterVersion reports the version of the environment's interpreter
// by running its --version flag.
func (a *VenvAdapter) InterpreterVersion(ctx context.Context, envPath string) (string, error) {
	python := filepath.Join(envPath, "bin", "python")

	// --version went to stderr until Python 3.4, so capture both streams.
	cmd := exec.CommandContext(ctx, python, "--version")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("failed to query interpreter version at %s: %w", python, err)
	}

	return strings.TrimSpace(string(output)), nil
}

// firstLine trims subprocess output down to its first non-empty line for
// inclusion in error messages.
func firstLine(output []byte) string {
	for line := range strings.Lines(string(output)) {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return "no output"
}
