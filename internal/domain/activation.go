package domain

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// ActivationScriptName is the generated shell entry point written next to a
// project. Running it opens a new interactive shell with the environment's
// activation hook sourced.
const ActivationScriptName = "venv_shell"

// scriptFileMode makes the generated script executable.
const scriptFileMode fs.FileMode = 0o755 // User: rwx, Group: rx, Others: rx

var activationScriptTemplate = template.Must(template.New("venv_shell").Parse(`#!/bin/bash
# Automatically generated virtual environment activation script
# This script opens a NEW shell with the virtual environment activated
echo "Starting new shell with virtual environment '{{.EnvName}}' activated..."
echo "Type 'exit' to return to your original shell."
echo "Virtual environment path: {{.EnvPath}}"
echo ""
cd "{{.ProjectDir}}"
source {{.EnvPath}}/bin/activate
exec "$SHELL"
`))

// WriteActivationScript regenerates the activation script for the given
// project and environment. It returns the script path.
func WriteActivationScript(projectDir string, env *Environment) (string, error) {
	scriptPath := filepath.Join(projectDir, ActivationScriptName)

	var sb strings.Builder
	err := activationScriptTemplate.Execute(&sb, struct {
		EnvName    string
		EnvPath    string
		ProjectDir string
	}{
		EnvName:    env.Name,
		EnvPath:    env.Path,
		ProjectDir: projectDir,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render activation script: %w", err)
	}

	if err := os.WriteFile(scriptPath, []byte(sb.String()), scriptFileMode); err != nil {
		return "", fmt.Errorf("failed to write activation script at %s: %w. Check file permissions", scriptPath, err)
	}

	return scriptPath, nil
}

// RemoveActivationScriptIfReferences deletes the project's activation script
// when its content references the given environment path. It reports whether
// the script was removed.
func RemoveActivationScriptIfReferences(projectDir, envPath string) (bool, error) {
	scriptPath := filepath.Join(projectDir, ActivationScriptName)

	data, err := os.ReadFile(scriptPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read activation script at %s: %w", scriptPath, err)
	}

	if !strings.Contains(string(data), envPath) {
		return false, nil
	}

	if err := os.Remove(scriptPath); err != nil {
		return false, fmt.Errorf("failed to remove activation script at %s: %w", scriptPath, err)
	}
	return true, nil
}
