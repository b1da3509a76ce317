package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/temirov/ptree/internal/utils"
)

const (
	errorMissingWorkingDirectory = "initialize configuration: working directory is required"
	errorConfigurationExists     = "configuration file already exists at %s"

	defaultConfigurationTemplate = `shell:
  prompt: "{cwd}> "
  style_prompt: true
editor:
  max_choice_attempts: 0
ignore:
  names: []
  use_ignore_file: true
tree:
  follow_symlinks: true
  max_depth: 0
print:
  summary: true
  clipboard: false
  tokens:
    enabled: false
    model: gpt-4o
`
)

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	// Global writes ~/.ptree/config.yaml instead of the working directory file.
	Global           bool
	Force            bool
	WorkingDirectory string
}

// InitializeConfiguration writes the default configuration and returns its path.
func InitializeConfiguration(options InitOptions) (string, error) {
	destinationPath, destinationError := initDestination(options)
	if destinationError != nil {
		return "", destinationError
	}
	if existsError := refuseExisting(destinationPath, options.Force); existsError != nil {
		return "", existsError
	}
	if err := os.WriteFile(destinationPath, []byte(defaultConfigurationTemplate), 0o600); err != nil {
		return "", fmt.Errorf("write configuration to %s: %w", destinationPath, err)
	}
	return destinationPath, nil
}

func initDestination(options InitOptions) (string, error) {
	if !options.Global {
		if options.WorkingDirectory == "" {
			return "", errors.New(errorMissingWorkingDirectory)
		}
		return filepath.Join(options.WorkingDirectory, utils.ConfigFileName), nil
	}
	homeDirectory, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory for configuration: %w", err)
	}
	configurationDirectory := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
	if err := os.MkdirAll(configurationDirectory, 0o755); err != nil {
		return "", fmt.Errorf("create configuration directory %s: %w", configurationDirectory, err)
	}
	return filepath.Join(configurationDirectory, utils.GlobalConfigFileName), nil
}

// refuseExisting fails when path exists, unless force allows overwriting it.
func refuseExisting(path string, force bool) error {
	_, statError := os.Stat(path)
	switch {
	case statError == nil && !force:
		return fmt.Errorf(errorConfigurationExists, path)
	case statError == nil, errors.Is(statError, fs.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("inspect configuration path %s: %w", path, statError)
	}
}
