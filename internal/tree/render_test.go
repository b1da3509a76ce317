package tree_test

import (
	"bytes"
	"errors"
	"io/fs"
	"testing"

	"github.com/temirov/ptree/internal/tree"
)

func TestFormatEntry(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		entry    tree.Entry
		expected string
	}{
		{name: "root level directory", entry: tree.Entry{Name: "src", Kind: tree.EntryDirectory}, expected: "src/"},
		{name: "file two levels deep", entry: tree.Entry{Depth: 2, Name: "main.go", Kind: tree.EntryFile}, expected: "    main.go"},
		{name: "permission failure", entry: tree.Entry{Depth: 1, Kind: tree.EntryAccessDenied, Err: fs.ErrPermission}, expected: "  [access denied]"},
		{name: "other failure", entry: tree.Entry{Kind: tree.EntryAccessDenied, Err: errors.New("gone")}, expected: "[unreadable: gone]"},
		{name: "cycle", entry: tree.Entry{Depth: 1, Name: "loop", Kind: tree.EntryCycle}, expected: "  [cycle: loop/]"},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			if formatted := tree.FormatEntry(testCase.entry); formatted != testCase.expected {
				t.Fatalf("FormatEntry() = %q, want %q", formatted, testCase.expected)
			}
		})
	}
}

func TestRendererCountsEntries(t *testing.T) {
	t.Parallel()

	entries := []tree.Entry{
		{Name: "a", Kind: tree.EntryDirectory},
		{Depth: 1, Kind: tree.EntryAccessDenied, Err: fs.ErrPermission},
		{Name: "x", Kind: tree.EntryFile},
		{Name: "y", Kind: tree.EntryFile},
	}
	sequence := func(yield func(tree.Entry) bool) {
		for _, entry := range entries {
			if !yield(entry) {
				return
			}
		}
	}

	var output bytes.Buffer
	summary, err := tree.NewRenderer(&output).Render(sequence)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if output.String() != "a/\n  [access denied]\nx\ny\n" {
		t.Fatalf("unexpected output %q", output.String())
	}
	if summary != (tree.Summary{Directories: 1, Files: 2, Unreadable: 1}) {
		t.Fatalf("summary = %+v", summary)
	}
	if line := tree.FormatSummary(summary, -1); line != "1 directory, 2 files, 1 unreadable" {
		t.Fatalf("FormatSummary() = %q", line)
	}
	if line := tree.FormatSummary(tree.Summary{Files: 1}, 7); line != "0 directories, 1 file (7 tokens)" {
		t.Fatalf("FormatSummary() with tokens = %q", line)
	}
}
