package domain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// configFileMode is the permission for the defaults file.
const configFileMode fs.FileMode = 0o644 // User: rw, Group: r, Others: r

// ConfigManager manages the reading and writing of the .venvman.toml
// defaults file.
type ConfigManager struct {
	configPath string
}

// NewConfigManager creates a new ConfigManager instance.
// The configPath parameter specifies the path to the .venvman.toml file.
func NewConfigManager(configPath string) *ConfigManager {
	return &ConfigManager{configPath: configPath}
}

// Initialize creates a new .venvman.toml file with the given defaults.
// It returns ErrConfigExists if the file already exists.
func (m *ConfigManager) Initialize(ctx context.Context, config *Config) error {
	if _, err := os.Stat(m.configPath); err == nil {
		return fmt.Errorf("%w: configuration file already exists at %s. Remove the existing file or use a different path", ErrConfigExists, m.configPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check configuration file existence: %w", err)
	}

	return m.Save(ctx, config)
}

// Load reads the .venvman.toml file and returns the configuration.
// It returns ErrConfigNotFound if the file does not exist.
func (m *ConfigManager) Load(ctx context.Context) (*Config, error) {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: configuration file not found at %s. Run 'venvman init' to create one", ErrConfigNotFound, m.configPath)
		}
		return nil, fmt.Errorf("failed to read configuration file at %s: %w. Check file permissions", m.configPath, err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file at %s: %w. Ensure the file is valid TOML format", m.configPath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// LoadOrDefault reads the defaults file, substituting an empty configuration
// when none exists. Any other load failure is still reported.
func (m *ConfigManager) LoadOrDefault(ctx context.Context) (*Config, error) {
	config, err := m.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			return &Config{}, nil
		}
		return nil, err
	}
	return config, nil
}

// Save writes the configuration to the .venvman.toml file.
func (m *ConfigManager) Save(ctx context.Context, config *Config) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, configFileMode); err != nil {
		return fmt.Errorf("failed to write configuration file to %s: %w. Check file permissions and directory existence", m.configPath, err)
	}

	return nil
}
