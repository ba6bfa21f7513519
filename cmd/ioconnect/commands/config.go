package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Faclon-Labs/connector-go/internal/constants"
	"gopkg.in/yaml.v3"
)

// CLIConfig is the persisted CLI state in ~/.ioconnect/config.yml.
type CLIConfig struct {
	Backend string `yaml:"backend,omitempty"`
	Token   string `yaml:"token,omitempty"`
	OnPrem  bool   `yaml:"on-prem,omitempty"`
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}

	return filepath.Join(home, ".ioconnect", "config.yml"), nil
}

// loadCLIConfig reads the persisted config; a missing file yields a zero value.
func loadCLIConfig() (*CLIConfig, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is derived from the home directory
	if err != nil {
		if os.IsNotExist(err) {
			return &CLIConfig{}, nil
		}

		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config CLIConfig

	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &config, nil
}

// saveCLIConfig writes the config file with restrictive permissions; it holds
// the access token.
func saveCLIConfig(config *CLIConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
