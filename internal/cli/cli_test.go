package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/ptree/internal/services/clipboard"
	"github.com/temirov/ptree/internal/utils"
)

type recordingCopier struct {
	copied []string
}

func (copier *recordingCopier) Copy(text string) error {
	copier.copied = append(copier.copied, text)
	return nil
}

func createProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, directory := range []string{"cmd", "vendor", filepath.Join("cmd", "tool")} {
		if err := os.MkdirAll(filepath.Join(root, directory), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", directory, err)
		}
	}
	for _, file := range []string{"go.mod", filepath.Join("cmd", "tool", "main.go"), filepath.Join("vendor", "lib.go")} {
		if err := os.WriteFile(filepath.Join(root, file), []byte("package main\n"), 0o600); err != nil {
			t.Fatalf("write %s: %v", file, err)
		}
	}
	return root
}

func isolateHome(t *testing.T) {
	t.Helper()
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)
	t.Setenv("USERPROFILE", homeDirectory)
}

func runCommand(t *testing.T, app *application, input string, arguments ...string) (string, error) {
	t.Helper()
	rootCommand := createRootCommand(app)
	var output bytes.Buffer
	rootCommand.SetOut(&output)
	rootCommand.SetErr(&output)
	rootCommand.SetIn(strings.NewReader(input))
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, arguments))
	executeError := rootCommand.Execute()
	return output.String(), executeError
}

func TestTreeCommand(t *testing.T) {
	isolateHome(t)
	root := createProject(t)

	testCases := []struct {
		name           string
		ignoreFile     string
		arguments      []string
		expectedOutput string
	}{
		{
			name:           "exclusions without summary",
			arguments:      []string{"tree", root, "-e", "vendor", "--summary", "false"},
			expectedOutput: "cmd/\n  tool/\n    main.go\ngo.mod\n",
		},
		{
			name:           "summary by default",
			arguments:      []string{"tree", root, "-e", "vendor", "-e", "go.mod"},
			expectedOutput: "cmd/\n  tool/\n    main.go\n2 directories, 1 file\n",
		},
		{
			name:           "max depth",
			arguments:      []string{"tree", root, "--max-depth", "1", "--summary=false"},
			expectedOutput: "cmd/\nvendor/\ngo.mod\n",
		},
		{
			name:           "ignore file",
			ignoreFile:     "# vendored code\nvendor\ncmd\n",
			arguments:      []string{"tree", root, "--summary=no"},
			expectedOutput: utils.IgnoreFileName + "\ngo.mod\n",
		},
		{
			name:           "ignore file disabled",
			ignoreFile:     "vendor\ncmd\n",
			arguments:      []string{"tree", root, "--summary=off", "--no-ignore-file", "-e", utils.IgnoreFileName, "-e", "cmd"},
			expectedOutput: "vendor/\n  lib.go\ngo.mod\n",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			ignoreFilePath := filepath.Join(root, utils.IgnoreFileName)
			if testCase.ignoreFile != "" {
				if err := os.WriteFile(ignoreFilePath, []byte(testCase.ignoreFile), 0o600); err != nil {
					t.Fatalf("write ignore file: %v", err)
				}
				t.Cleanup(func() { _ = os.Remove(ignoreFilePath) })
			}
			output, err := runCommand(t, newApplication(), "", testCase.arguments...)
			if err != nil {
				t.Fatalf("execute error: %v", err)
			}
			if output != testCase.expectedOutput {
				t.Fatalf("output = %q, want %q", output, testCase.expectedOutput)
			}
		})
	}
}

func TestTreeCommandUsesLocalConfiguration(t *testing.T) {
	isolateHome(t)
	root := createProject(t)
	configuration := "ignore:\n  names: [vendor]\nprint:\n  summary: false\n"
	if err := os.WriteFile(filepath.Join(root, utils.ConfigFileName), []byte(configuration), 0o600); err != nil {
		t.Fatalf("write configuration: %v", err)
	}

	output, err := runCommand(t, newApplication(), "", "tree", root, "-e", utils.ConfigFileName)
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	expected := "cmd/\n  tool/\n    main.go\ngo.mod\n"
	if output != expected {
		t.Fatalf("output = %q, want %q", output, expected)
	}
}

func TestTreeCommandCopiesToClipboard(t *testing.T) {
	isolateHome(t)
	root := createProject(t)
	copier := &recordingCopier{}
	app := newApplication()
	app.newCopier = func() (clipboard.Copier, bool) { return copier, true }

	output, err := runCommand(t, app, "", "tree", root, "-e", "vendor", "--copy", "--summary=false")
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	listing := "cmd/\n  tool/\n    main.go\ngo.mod\n"
	if output != listing+"Copied to clipboard.\n" {
		t.Fatalf("output = %q", output)
	}
	if len(copier.copied) != 1 || copier.copied[0] != listing {
		t.Fatalf("copied = %q", copier.copied)
	}
}

func TestTreeCommandRejectsFile(t *testing.T) {
	isolateHome(t)
	root := createProject(t)
	if _, err := runCommand(t, newApplication(), "", "tree", filepath.Join(root, "go.mod")); err == nil {
		t.Fatalf("expected an error for a file path")
	}
}

func TestInitCommandWritesLocalConfiguration(t *testing.T) {
	isolateHome(t)
	workingDirectory := t.TempDir()
	t.Chdir(workingDirectory)

	output, err := runCommand(t, newApplication(), "", "init")
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if !strings.Contains(output, utils.ConfigFileName) {
		t.Fatalf("output = %q", output)
	}
	if _, statErr := os.Stat(filepath.Join(workingDirectory, utils.ConfigFileName)); statErr != nil {
		t.Fatalf("configuration not written: %v", statErr)
	}
	if _, err := runCommand(t, newApplication(), "", "init"); err == nil {
		t.Fatalf("expected an error without --force")
	}
	if _, err := runCommand(t, newApplication(), "", "init", "--force"); err != nil {
		t.Fatalf("forced init error: %v", err)
	}
}

func TestRootCommandRunsShell(t *testing.T) {
	isolateHome(t)
	root := createProject(t)

	output, err := runCommand(t, newApplication(), "cd cm\t\rpwd\rexit\r", "--dir", root)
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if !strings.Contains(output, "Current directory: "+filepath.Join(root, "cmd")) {
		t.Fatalf("output = %q", output)
	}
}

func TestRootCommandRejectsMissingDirectory(t *testing.T) {
	isolateHome(t)
	if _, err := runCommand(t, newApplication(), "", "--dir", filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected an error for a missing start directory")
	}
}
