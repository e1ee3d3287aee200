package domain

import (
	"errors"
	"os"
	"path/filepath"
)

// Built-in fallbacks used when neither flags nor the defaults file provide
// a value.
const (
	// DefaultBaseDirName is the directory under the user's home that holds
	// environments by default.
	DefaultBaseDirName = "virtual_environments"

	// DefaultRequirementsName is the manifest looked up in the project
	// directory by default.
	DefaultRequirementsName = "requirements.txt"

	// DefaultPython is the interpreter used to create environments.
	DefaultPython = "python3"
)

// Config holds the per-project defaults stored in .venvman.toml. Empty
// fields fall back to the built-in defaults at resolution time.
type Config struct {
	BaseDir      string `toml:"base_dir"`
	Requirements string `toml:"requirements"`
	Python       string `toml:"python"`
}

// Validate checks the configuration field values. All fields are optional;
// relative base directories are rejected because the marker file must hold
// an absolute environment path.
func (c *Config) Validate() error {
	if c.BaseDir != "" && !filepath.IsAbs(c.BaseDir) {
		return errors.New("base_dir must be an absolute path")
	}
	return nil
}

// DefaultBaseDir returns the built-in base directory under the user's home.
func DefaultBaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultBaseDirName), nil
}
