package tree

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"strings"
)

const (
	// IndentUnit is prepended once per depth level.
	IndentUnit = "  "
	// DirectoryMarker follows directory names.
	DirectoryMarker = "/"

	accessDeniedNote      = "[access denied]"
	unreadableNoteFormat  = "[unreadable: %v]"
	cycleNoteFormat       = "[cycle: %s" + DirectoryMarker + "]"
	summaryFormat         = "%d %s, %d %s"
	summaryTokensFormat   = " (%d tokens)"
	summaryDeniedFormat   = ", %d unreadable"
	directorySingular     = "directory"
	directoryPlural       = "directories"
	fileSingular          = "file"
	filePlural            = "files"
	errorWriteEntryFormat = "writing entry %s: %w"
)

// Summary counts what a render emitted.
type Summary struct {
	Directories int
	Files       int
	Unreadable  int
}

// Renderer writes entries as indented lines.
type Renderer struct {
	writer io.Writer
}

// NewRenderer returns a Renderer writing to writer.
func NewRenderer(writer io.Writer) *Renderer {
	return &Renderer{writer: writer}
}

// Render writes one line per entry and returns the counts. Writing stops at the first write error.
func (renderer *Renderer) Render(entries iter.Seq[Entry]) (Summary, error) {
	var summary Summary
	for entry := range entries {
		if _, writeError := fmt.Fprintln(renderer.writer, FormatEntry(entry)); writeError != nil {
			return summary, fmt.Errorf(errorWriteEntryFormat, entry.Path, writeError)
		}
		switch entry.Kind {
		case EntryDirectory:
			summary.Directories++
		case EntryFile:
			summary.Files++
		case EntryAccessDenied:
			summary.Unreadable++
		}
	}
	return summary, nil
}

// FormatEntry renders a single entry without the trailing newline.
func FormatEntry(entry Entry) string {
	indent := strings.Repeat(IndentUnit, entry.Depth)
	switch entry.Kind {
	case EntryDirectory:
		return indent + entry.Name + DirectoryMarker
	case EntryAccessDenied:
		if entry.Err == nil || errors.Is(entry.Err, fs.ErrPermission) {
			return indent + accessDeniedNote
		}
		return indent + fmt.Sprintf(unreadableNoteFormat, entry.Err)
	case EntryCycle:
		return indent + fmt.Sprintf(cycleNoteFormat, entry.Name)
	default:
		return indent + entry.Name
	}
}

// FormatSummary renders the summary line. Negative tokens omit the token count.
func FormatSummary(summary Summary, tokens int) string {
	line := fmt.Sprintf(summaryFormat,
		summary.Directories, pluralize(summary.Directories, directorySingular, directoryPlural),
		summary.Files, pluralize(summary.Files, fileSingular, filePlural))
	if summary.Unreadable > 0 {
		line += fmt.Sprintf(summaryDeniedFormat, summary.Unreadable)
	}
	if tokens >= 0 {
		line += fmt.Sprintf(summaryTokensFormat, tokens)
	}
	return line
}

func pluralize(count int, singular string, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}
