package shell_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/ptree/internal/ignore"
	"github.com/temirov/ptree/internal/shell"
)

type recordingCopier struct {
	copied []string
	err    error
}

func (copier *recordingCopier) Copy(text string) error {
	copier.copied = append(copier.copied, text)
	return copier.err
}

type fixedCounter struct {
	tokens int
	err    error
}

func (counter fixedCounter) Name() string {
	return "fixed"
}

func (counter fixedCounter) CountString(input string) (int, error) {
	return counter.tokens, counter.err
}

func TestPrinterPrint(t *testing.T) {
	t.Parallel()
	root := createFixture(t)
	listing := "alpha/\n  inner/\n  a.go\nreadme.md\n"

	testCases := []struct {
		name           string
		printer        shell.Printer
		copier         *recordingCopier
		expectedOutput string
	}{
		{
			name:           "listing only",
			printer:        shell.Printer{},
			expectedOutput: listing,
		},
		{
			name:           "summary with tokens",
			printer:        shell.Printer{Summary: true, Counter: fixedCounter{tokens: 12}},
			expectedOutput: listing + "2 directories, 2 files (12 tokens)\n",
		},
		{
			name:           "token failure omits count",
			printer:        shell.Printer{Summary: true, Counter: fixedCounter{err: errors.New("no encoder")}},
			expectedOutput: listing + "2 directories, 2 files\n",
		},
		{
			name:           "clipboard",
			copier:         &recordingCopier{},
			expectedOutput: listing + "Copied to clipboard.\n",
		},
		{
			name:           "clipboard failure is not fatal",
			copier:         &recordingCopier{err: errors.New("no clipboard")},
			expectedOutput: listing,
		},
		{
			name:           "max depth",
			printer:        shell.Printer{MaxDepth: 1},
			expectedOutput: "alpha/\nreadme.md\n",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			printer := testCase.printer
			if testCase.copier != nil {
				printer.Copier = testCase.copier
			}
			var output bytes.Buffer
			if err := printer.Print(&output, root, ignore.NewSet("node_modules")); err != nil {
				t.Fatalf("Print error: %v", err)
			}
			if output.String() != testCase.expectedOutput {
				t.Fatalf("output = %q, want %q", output.String(), testCase.expectedOutput)
			}
			if testCase.copier != nil {
				if len(testCase.copier.copied) != 1 || testCase.copier.copied[0] != listing {
					t.Fatalf("copied = %q, want %q", testCase.copier.copied, listing)
				}
			}
		})
	}
}

func TestPrinterReportsUnreadableRoot(t *testing.T) {
	t.Parallel()
	var output bytes.Buffer
	printer := shell.Printer{Summary: true}
	if err := printer.Print(&output, filepath.Join(t.TempDir(), "missing"), nil); err != nil {
		t.Fatalf("Print error: %v", err)
	}
	if !strings.Contains(output.String(), "[unreadable:") || !strings.Contains(output.String(), "1 unreadable") {
		t.Fatalf("output = %q", output.String())
	}
}
