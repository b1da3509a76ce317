// Package terminal adapts a console to the editor: it decodes key events from
// the input byte stream, renders the edited line and switches between raw and
// cooked modes.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/temirov/ptree/internal/editor"
)

const (
	defaultColumns = 80

	carriageReturn  = "\r"
	rawLineEnding   = "\r\n"
	eraseLine       = "\x1b[2K"
	cursorUpOneLine = "\x1b[1A"

	errorEnterRawModeFormat = "enter raw mode: %w"
	errorRestoreModeFormat  = "restore terminal mode: %w"
	errorReadLineFormat     = "reading line: %w"
)

// Terminal is a console attached to an input and an output stream.
// It implements editor.KeyReader, editor.LineReader and editor.Display.
type Terminal struct {
	reader      *bufio.Reader
	output      io.Writer
	fd          int
	interactive bool
	rawState    *term.State
	// modeError holds the failure to re-enter raw mode after a line read.
	modeError   error
	makeRaw     func(fd int) (*term.State, error)
	restore     func(fd int, state *term.State) error
	prompt      string
	promptWidth int
	lineWidth   int
	columns     func() int
}

// New returns a Terminal for the process console. Raw mode is available only
// when input is a terminal.
func New(input *os.File, output *os.File) *Terminal {
	fd := int(input.Fd())
	console := NewForStreams(input, output)
	console.fd = fd
	console.interactive = IsInteractive(input)
	outputFd := int(output.Fd())
	console.columns = func() int {
		width, _, sizeError := term.GetSize(outputFd)
		if sizeError != nil || width <= 0 {
			return defaultColumns
		}
		return width
	}
	return console
}

// NewForStreams returns a non-interactive Terminal reading keys from input and rendering to output.
func NewForStreams(input io.Reader, output io.Writer) *Terminal {
	return &Terminal{
		reader:  bufio.NewReader(input),
		output:  output,
		fd:      -1,
		columns: func() int { return defaultColumns },
		makeRaw: term.MakeRaw,
		restore: term.Restore,
	}
}

// IsInteractive reports whether file is a terminal.
func IsInteractive(file *os.File) bool {
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Interactive reports whether raw mode is available.
func (console *Terminal) Interactive() bool {
	return console.interactive
}

// Writer returns the output stream for command output printed outside raw mode.
func (console *Terminal) Writer() io.Writer {
	return console.output
}

// EnterRaw switches the console to raw mode. It does nothing for non-interactive input.
func (console *Terminal) EnterRaw() error {
	if !console.interactive || console.rawState != nil {
		return nil
	}
	previousState, rawError := console.makeRaw(console.fd)
	if rawError != nil {
		return fmt.Errorf(errorEnterRawModeFormat, rawError)
	}
	console.rawState = previousState
	console.modeError = nil
	return nil
}

// Restore returns the console to the mode it had before EnterRaw.
func (console *Terminal) Restore() error {
	if console.rawState == nil {
		return nil
	}
	restoreError := console.restore(console.fd, console.rawState)
	console.rawState = nil
	if restoreError != nil {
		return fmt.Errorf(errorRestoreModeFormat, restoreError)
	}
	return nil
}

// ShowPrompt starts a new edited line by writing prompt.
func (console *Terminal) ShowPrompt(prompt string) {
	console.prompt = prompt
	console.promptWidth = lipgloss.Width(prompt)
	console.lineWidth = console.promptWidth
	io.WriteString(console.output, prompt)
}

// ReadLine reads one line in cooked mode, leaving raw mode for the duration of the read.
// If raw mode cannot be entered again the read fails and so does every later ReadKey.
func (console *Terminal) ReadLine() (line string, err error) {
	wasRaw := console.rawState != nil
	if wasRaw {
		if restoreError := console.Restore(); restoreError != nil {
			return "", restoreError
		}
		defer func() {
			if rawError := console.EnterRaw(); rawError != nil {
				console.modeError = rawError
				line, err = "", rawError
			}
		}()
	}
	line, readError := console.reader.ReadString('\n')
	console.lineWidth = 0
	if readError != nil {
		if errors.Is(readError, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(readError, io.EOF) {
			return "", io.EOF
		}
		return "", fmt.Errorf(errorReadLineFormat, readError)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Echo writes character at the end of the line.
func (console *Terminal) Echo(character rune) {
	io.WriteString(console.output, string(character))
	console.lineWidth += runewidth.RuneWidth(character)
}

// EraseLast blanks the cells occupied by character and moves back over them.
func (console *Terminal) EraseLast(character rune) {
	cellCount := runewidth.RuneWidth(character)
	if cellCount <= 0 {
		return
	}
	back := strings.Repeat("\b", cellCount)
	io.WriteString(console.output, back+strings.Repeat(" ", cellCount)+back)
	console.lineWidth -= cellCount
}

// Redraw erases every row the current line occupies and writes the prompt followed by content.
func (console *Terminal) Redraw(content string) {
	var builder strings.Builder
	builder.WriteString(carriageReturn)
	for row := 1; row < console.occupiedRows(); row++ {
		builder.WriteString(eraseLine)
		builder.WriteString(cursorUpOneLine)
	}
	builder.WriteString(eraseLine)
	builder.WriteString(console.prompt)
	builder.WriteString(content)
	io.WriteString(console.output, builder.String())
	console.lineWidth = console.promptWidth + runewidth.StringWidth(content)
}

// Newline moves to the start of the next row.
func (console *Terminal) Newline() {
	io.WriteString(console.output, rawLineEnding)
	console.lineWidth = 0
}

// Println writes message followed by a line ending that also works in raw mode.
func (console *Terminal) Println(message string) {
	io.WriteString(console.output, strings.ReplaceAll(message, "\n", rawLineEnding)+rawLineEnding)
	console.lineWidth = 0
}

// Columns returns the current width of the console in cells.
func (console *Terminal) Columns() int {
	return console.columns()
}

func (console *Terminal) occupiedRows() int {
	columns := console.Columns()
	if console.lineWidth <= 0 || columns <= 0 {
		return 1
	}
	return (console.lineWidth-1)/columns + 1
}

var (
	_ editor.KeyReader  = (*Terminal)(nil)
	_ editor.LineReader = (*Terminal)(nil)
	_ editor.Display    = (*Terminal)(nil)
)
