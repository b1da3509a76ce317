// Package config loads ptree configuration from the global and local YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/ptree/internal/tokenizer"
	"github.com/temirov/ptree/internal/utils"
)

const (
	// DefaultPromptTemplate renders the working directory followed by "> ".
	DefaultPromptTemplate = "{cwd}> "
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration mirrors the configuration file. Unset scalar fields are nil
// so that a local file only overrides what it names.
type ApplicationConfiguration struct {
	Shell  ShellConfiguration  `mapstructure:"shell"`
	Editor EditorConfiguration `mapstructure:"editor"`
	Ignore IgnoreConfiguration `mapstructure:"ignore"`
	Tree   TreeConfiguration   `mapstructure:"tree"`
	Print  PrintConfiguration  `mapstructure:"print"`
}

// ShellConfiguration configures the prompt.
type ShellConfiguration struct {
	Prompt      string `mapstructure:"prompt"`
	StylePrompt *bool  `mapstructure:"style_prompt"`
}

// EditorConfiguration configures line editing.
type EditorConfiguration struct {
	MaxChoiceAttempts *int `mapstructure:"max_choice_attempts"`
}

// IgnoreConfiguration seeds the session ignore list.
type IgnoreConfiguration struct {
	Names         []string `mapstructure:"names"`
	UseIgnoreFile *bool    `mapstructure:"use_ignore_file"`
}

// TreeConfiguration configures traversal.
type TreeConfiguration struct {
	FollowSymlinks *bool `mapstructure:"follow_symlinks"`
	MaxDepth       *int  `mapstructure:"max_depth"`
}

// PrintConfiguration configures what accompanies a printed tree.
type PrintConfiguration struct {
	Summary   *bool              `mapstructure:"summary"`
	Clipboard *bool              `mapstructure:"clipboard"`
	Tokens    TokenConfiguration `mapstructure:"tokens"`
}

// TokenConfiguration controls token counting of printed trees.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// Settings is a configuration with every default applied.
type Settings struct {
	PromptTemplate    string
	StylePrompt       bool
	MaxChoiceAttempts int
	IgnoreNames       []string
	UseIgnoreFile     bool
	FollowSymlinks    bool
	MaxDepth          int
	Summary           bool
	Clipboard         bool
	TokensEnabled     bool
	TokenModel        string
}

// LoadApplicationConfiguration loads configuration from global and local files.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	localConfig, loadErr := loadConfigurationFromPath(localPath)
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)
	merged.Ignore.Names = utils.DeduplicateStrings(merged.Ignore.Names)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath == "" {
		return filepath.Join(workingDirectory, utils.ConfigFileName)
	}
	if filepath.IsAbs(explicitPath) {
		return explicitPath
	}
	return filepath.Join(workingDirectory, explicitPath)
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	if override.Shell.Prompt != "" {
		result.Shell.Prompt = override.Shell.Prompt
	}
	result.Shell.StylePrompt = pickBool(result.Shell.StylePrompt, override.Shell.StylePrompt)
	result.Editor.MaxChoiceAttempts = pickInt(result.Editor.MaxChoiceAttempts, override.Editor.MaxChoiceAttempts)
	if len(override.Ignore.Names) > 0 {
		result.Ignore.Names = append([]string{}, utils.DeduplicateStrings(override.Ignore.Names)...)
	}
	result.Ignore.UseIgnoreFile = pickBool(result.Ignore.UseIgnoreFile, override.Ignore.UseIgnoreFile)
	result.Tree.FollowSymlinks = pickBool(result.Tree.FollowSymlinks, override.Tree.FollowSymlinks)
	result.Tree.MaxDepth = pickInt(result.Tree.MaxDepth, override.Tree.MaxDepth)
	result.Print.Summary = pickBool(result.Print.Summary, override.Print.Summary)
	result.Print.Clipboard = pickBool(result.Print.Clipboard, override.Print.Clipboard)
	result.Print.Tokens.Enabled = pickBool(result.Print.Tokens.Enabled, override.Print.Tokens.Enabled)
	if override.Print.Tokens.Model != "" {
		result.Print.Tokens.Model = override.Print.Tokens.Model
	}
	return result
}

// Settings applies defaults to every unset field.
func (config ApplicationConfiguration) Settings() Settings {
	settings := Settings{
		PromptTemplate:    DefaultPromptTemplate,
		StylePrompt:       boolOrDefault(config.Shell.StylePrompt, true),
		MaxChoiceAttempts: intOrDefault(config.Editor.MaxChoiceAttempts, 0),
		IgnoreNames:       append([]string(nil), config.Ignore.Names...),
		UseIgnoreFile:     boolOrDefault(config.Ignore.UseIgnoreFile, true),
		FollowSymlinks:    boolOrDefault(config.Tree.FollowSymlinks, true),
		MaxDepth:          intOrDefault(config.Tree.MaxDepth, 0),
		Summary:           boolOrDefault(config.Print.Summary, true),
		Clipboard:         boolOrDefault(config.Print.Clipboard, false),
		TokensEnabled:     boolOrDefault(config.Print.Tokens.Enabled, false),
		TokenModel:        config.Print.Tokens.Model,
	}
	if config.Shell.Prompt != "" {
		settings.PromptTemplate = config.Shell.Prompt
	}
	if settings.TokenModel == "" {
		settings.TokenModel = tokenizer.DefaultModel
	}
	if settings.MaxChoiceAttempts < 0 {
		settings.MaxChoiceAttempts = 0
	}
	if settings.MaxDepth < 0 {
		settings.MaxDepth = 0
	}
	return settings
}

func pickBool(current *bool, override *bool) *bool {
	if override == nil {
		return current
	}
	cloned := *override
	return &cloned
}

func pickInt(current *int, override *int) *int {
	if override == nil {
		return current
	}
	cloned := *override
	return &cloned
}

func boolOrDefault(value *bool, defaultValue bool) bool {
	if value == nil {
		return defaultValue
	}
	return *value
}

func intOrDefault(value *int, defaultValue int) int {
	if value == nil {
		return defaultValue
	}
	return *value
}
