// Package domain contains the environment lifecycle logic: deciding whether
// an environment exists, reconciling its package set against a requirements
// manifest, and maintaining the on-disk marker and activation script.
package domain

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Environment represents a virtual environment directory identified by a
// name and a base directory. The directory is considered a valid environment
// when it contains an activation hook at bin/activate.
type Environment struct {
	Name string // Environment name
	Path string // Absolute directory path (base/name)
}

// NewEnvironment resolves the environment path from a name and base directory.
func NewEnvironment(name, baseDir string) *Environment {
	return &Environment{
		Name: name,
		Path: filepath.Join(baseDir, name),
	}
}

// ActivateHookPath returns the path to the environment's activation hook.
func (e *Environment) ActivateHookPath() string {
	return filepath.Join(e.Path, "bin", "activate")
}

// Exists reports whether the directory contains a valid environment,
// identified by the presence of the activation hook.
func (e *Environment) Exists() bool {
	info, err := os.Stat(e.ActivateHookPath())
	return err == nil && !info.IsDir()
}

// EnvironmentInfo holds display metadata for a single environment.
type EnvironmentInfo struct {
	Name          string    // Environment name
	Path          string    // Absolute directory path
	Created       time.Time // Directory modification time (creation approximation)
	SizeBytes     int64     // Total on-disk size of regular files
	PythonVersion string    // Interpreter version string, empty when unavailable
	Packages      []string  // Installed package specifiers, sorted
}

// Size returns the on-disk size in human readable form.
func (i *EnvironmentInfo) Size() string {
	return FormatSize(i.SizeBytes)
}

// FormatSize formats a byte count as a human readable string.
func FormatSize(sizeBytes int64) string {
	size := float64(sizeBytes)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024.0 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024.0
	}
	return fmt.Sprintf("%.1f TB", size)
}

// dirSize walks the directory tree and sums the sizes of regular files.
// Unreadable entries are skipped rather than failing the whole walk.
func dirSize(root string) int64 {
	var total int64
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type().IsRegular() {
			if info, err := d.Info(); err == nil {
				total += info.Size()
			}
		}
		return nil
	})
	return total
}
