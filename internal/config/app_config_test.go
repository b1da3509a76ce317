package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/ptree/internal/tokenizer"
	"github.com/temirov/ptree/internal/utils"
)

type configTestCase struct {
	name                string
	globalContent       string
	localContent        string
	explicitPath        string
	expectPrompt        string
	expectStyle         bool
	expectAttempts      int
	expectIgnoreNames   []string
	expectFollow        bool
	expectMaxDepth      int
	expectSummary       bool
	expectClipboard     bool
	expectTokensEnabled bool
	expectModel         string
}

func writeConfigFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create config directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []configTestCase{
		{
			name:                "defaults_without_files",
			expectPrompt:        DefaultPromptTemplate,
			expectStyle:         true,
			expectFollow:        true,
			expectSummary:       true,
			expectModel:         tokenizer.DefaultModel,
			expectIgnoreNames:   []string{},
			expectTokensEnabled: false,
		},
		{
			name:                "local_overrides_global",
			globalContent:       "shell:\n  prompt: \"global> \"\n  style_prompt: false\ntree:\n  max_depth: 2\nprint:\n  summary: false\n  clipboard: true\n",
			localContent:        "shell:\n  prompt: \"local> \"\ntree:\n  max_depth: 4\n  follow_symlinks: false\nprint:\n  tokens:\n    enabled: true\n    model: custom\n",
			expectPrompt:        "local> ",
			expectStyle:         false,
			expectFollow:        false,
			expectMaxDepth:      4,
			expectSummary:       false,
			expectClipboard:     true,
			expectTokensEnabled: true,
			expectModel:         "custom",
			expectIgnoreNames:   []string{},
		},
		{
			name:                "explicit_path_replaces_local",
			globalContent:       "editor:\n  max_choice_attempts: 3\n",
			localContent:        "editor:\n  max_choice_attempts: 9\n",
			explicitPath:        "custom.yaml",
			expectPrompt:        DefaultPromptTemplate,
			expectStyle:         true,
			expectAttempts:      3,
			expectFollow:        true,
			expectSummary:       true,
			expectModel:         tokenizer.DefaultModel,
			expectIgnoreNames:   []string{},
			expectTokensEnabled: false,
		},
		{
			name:              "ignore_names_deduplicated",
			localContent:      "ignore:\n  names: [node_modules, .git, node_modules]\n",
			expectPrompt:      DefaultPromptTemplate,
			expectStyle:       true,
			expectFollow:      true,
			expectSummary:     true,
			expectModel:       tokenizer.DefaultModel,
			expectIgnoreNames: []string{"node_modules", ".git"},
		},
		{
			name:              "negative_values_clamped",
			localContent:      "editor:\n  max_choice_attempts: -2\ntree:\n  max_depth: -1\n",
			expectPrompt:      DefaultPromptTemplate,
			expectStyle:       true,
			expectFollow:      true,
			expectSummary:     true,
			expectModel:       tokenizer.DefaultModel,
			expectIgnoreNames: []string{},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDirectory := t.TempDir()
			t.Setenv("HOME", homeDirectory)
			t.Setenv("USERPROFILE", homeDirectory)
			workingDirectory := t.TempDir()

			if testCase.globalContent != "" {
				globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
				writeConfigFile(t, globalPath, testCase.globalContent)
			}
			if testCase.localContent != "" {
				writeConfigFile(t, filepath.Join(workingDirectory, utils.ConfigFileName), testCase.localContent)
			}
			if testCase.explicitPath != "" {
				writeConfigFile(t, filepath.Join(workingDirectory, testCase.explicitPath), "shell:\n  style_prompt: true\n")
			}

			configuration, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory: workingDirectory,
				ExplicitFilePath: testCase.explicitPath,
			})
			if err != nil {
				t.Fatalf("LoadApplicationConfiguration error: %v", err)
			}
			settings := configuration.Settings()

			if settings.PromptTemplate != testCase.expectPrompt {
				t.Errorf("prompt: expected %q, got %q", testCase.expectPrompt, settings.PromptTemplate)
			}
			if settings.StylePrompt != testCase.expectStyle {
				t.Errorf("style prompt: expected %v, got %v", testCase.expectStyle, settings.StylePrompt)
			}
			if settings.MaxChoiceAttempts != testCase.expectAttempts {
				t.Errorf("max choice attempts: expected %d, got %d", testCase.expectAttempts, settings.MaxChoiceAttempts)
			}
			if settings.FollowSymlinks != testCase.expectFollow {
				t.Errorf("follow symlinks: expected %v, got %v", testCase.expectFollow, settings.FollowSymlinks)
			}
			if settings.MaxDepth != testCase.expectMaxDepth {
				t.Errorf("max depth: expected %d, got %d", testCase.expectMaxDepth, settings.MaxDepth)
			}
			if settings.Summary != testCase.expectSummary {
				t.Errorf("summary: expected %v, got %v", testCase.expectSummary, settings.Summary)
			}
			if settings.Clipboard != testCase.expectClipboard {
				t.Errorf("clipboard: expected %v, got %v", testCase.expectClipboard, settings.Clipboard)
			}
			if settings.TokensEnabled != testCase.expectTokensEnabled {
				t.Errorf("tokens enabled: expected %v, got %v", testCase.expectTokensEnabled, settings.TokensEnabled)
			}
			if settings.TokenModel != testCase.expectModel {
				t.Errorf("token model: expected %q, got %q", testCase.expectModel, settings.TokenModel)
			}
			if !reflect.DeepEqual(append([]string{}, settings.IgnoreNames...), testCase.expectIgnoreNames) {
				t.Errorf("ignore names: expected %v, got %v", testCase.expectIgnoreNames, settings.IgnoreNames)
			}
		})
	}
}

func TestLoadApplicationConfigurationRejectsMalformedFile(t *testing.T) {
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)
	t.Setenv("USERPROFILE", homeDirectory)
	workingDirectory := t.TempDir()
	writeConfigFile(t, filepath.Join(workingDirectory, utils.ConfigFileName), "shell: [unterminated\n")

	if _, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory}); err == nil {
		t.Fatalf("expected an error for malformed configuration")
	}
}

func TestLoadApplicationConfigurationRejectsDirectoryPath(t *testing.T) {
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)
	t.Setenv("USERPROFILE", homeDirectory)
	workingDirectory := t.TempDir()
	if err := os.Mkdir(filepath.Join(workingDirectory, utils.ConfigFileName), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if _, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory}); err == nil {
		t.Fatalf("expected an error when the configuration path is a directory")
	}
}
