// Package editor turns a stream of key events into a finished line of text.
//
// A line is edited by appending and removing characters at its end. The arrow
// keys recall submitted lines from a shared History, and Tab completes the
// current word against the entries of the working directory. The editor is a
// state machine advanced one key at a time by Line.Step, so it can be driven by
// a terminal or by a scripted key sequence.
package editor

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// State is the mode of a line being edited.
type State int

const (
	// StateEditing accepts key events.
	StateEditing State = iota
	// StateChoosing waits for the number of a completion candidate.
	StateChoosing
)

const (
	// ChangeDirectoryPrefix marks buffers whose remainder is completed as a path.
	ChangeDirectoryPrefix = "cd "

	noHistoryCursor = -1

	multipleMatchesMessage = "Multiple matches found:"
	matchLineFormat        = "%d: %s"
	choicePromptMessage    = "Enter the number of your choice:"
	invalidChoiceMessage   = "Invalid choice. Please enter a valid number."
	choiceAbandonedMessage = "Too many invalid choices; completion cancelled."
	completionFailedFormat = "Autocomplete failed: %v"
	errorReadChoiceFormat  = "reading completion choice: %w"
	completionErrorFormat  = "completing %q: %v"
	errorReadKeyFormat     = "reading key: %w"
)

var (
	// ErrInterrupted is returned when the user presses Ctrl-C. The line is discarded.
	ErrInterrupted = errors.New("line interrupted")
	// ErrChoiceAbandoned is returned inside a CompletionError when the choice prompt gives up.
	ErrChoiceAbandoned = errors.New("completion choice abandoned")
)

// CompletionError reports a failed completion attempt. The buffer is left unchanged
// and editing may continue.
type CompletionError struct {
	Partial string
	Err     error
}

func (completionError *CompletionError) Error() string {
	return fmt.Sprintf(completionErrorFormat, completionError.Partial, completionError.Err)
}

func (completionError *CompletionError) Unwrap() error {
	return completionError.Err
}

// Options tunes an Editor.
type Options struct {
	// MaxChoiceAttempts bounds invalid answers to the completion choice prompt.
	// Zero asks until a valid number is entered.
	MaxChoiceAttempts int
	Logger            *zap.Logger
}

// Editor reads lines. It owns no per-line state; every line gets a fresh Line.
type Editor struct {
	history   *History
	suggester SuggestionProvider
	display   Display
	lines     LineReader
	options   Options
}

// New returns an Editor recording into history, completing with suggester, rendering
// to display and reading completion choices from lines.
func New(history *History, suggester SuggestionProvider, display Display, lines LineReader, options Options) *Editor {
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	if history == nil {
		history = NewHistory()
	}
	return &Editor{
		history:   history,
		suggester: suggester,
		display:   display,
		lines:     lines,
		options:   options,
	}
}

// History returns the history lines are recorded into.
func (editor *Editor) History() *History {
	return editor.history
}

// Begin starts a new line completed against directory. The history cursor starts unset.
func (editor *Editor) Begin(directory string) *Line {
	return &Line{
		editor:        editor,
		directory:     directory,
		historyCursor: noHistoryCursor,
		state:         StateEditing,
	}
}

// ReadLine reads keys until Enter and returns the finished line.
// Completion failures are reported on the display and editing continues.
func (editor *Editor) ReadLine(keys KeyReader, directory string) (string, error) {
	line := editor.Begin(directory)
	for {
		key, readError := keys.ReadKey()
		if readError != nil {
			if errors.Is(readError, io.EOF) {
				return "", io.EOF
			}
			return "", fmt.Errorf(errorReadKeyFormat, readError)
		}
		done, stepError := line.Step(key)
		if stepError != nil {
			var completionError *CompletionError
			if errors.As(stepError, &completionError) {
				editor.options.Logger.Debug("completion failed", zap.String("partial", completionError.Partial), zap.Error(completionError.Err))
				continue
			}
			return "", stepError
		}
		if done {
			return line.Buffer(), nil
		}
	}
}

// Line is the state of one line being edited.
type Line struct {
	editor        *Editor
	directory     string
	buffer        []rune
	historyCursor int
	state         State
	done          bool
}

// Buffer returns the current content of the line.
func (line *Line) Buffer() string {
	return string(line.buffer)
}

// HistoryCursor returns the recalled history position, or -1 while typing live.
func (line *Line) HistoryCursor() int {
	return line.historyCursor
}

// State returns the current mode.
func (line *Line) State() State {
	return line.state
}

// Step applies one key event. It reports true once Enter has finished the line.
// Keys after that are ignored.
func (line *Line) Step(key Key) (bool, error) {
	if line.done {
		return true, nil
	}
	switch key.Kind {
	case KeyRune:
		if !unicode.IsControl(key.Rune) {
			line.buffer = append(line.buffer, key.Rune)
			line.editor.display.Echo(key.Rune)
		}
	case KeyBackspace:
		if len(line.buffer) > 0 {
			lastCharacter := line.buffer[len(line.buffer)-1]
			line.buffer = line.buffer[:len(line.buffer)-1]
			line.editor.display.EraseLast(lastCharacter)
		}
	case KeyTab:
		return false, line.complete()
	case KeyArrowUp:
		line.recallOlder()
	case KeyArrowDown:
		line.recallNewer()
	case KeyEnter:
		line.finish()
		return true, nil
	case KeyInterrupt:
		line.editor.display.Newline()
		line.done = true
		return true, ErrInterrupted
	case KeyEndOfInput:
		if len(line.buffer) == 0 {
			line.editor.display.Newline()
			line.done = true
			return true, io.EOF
		}
	}
	return false, nil
}

func (line *Line) finish() {
	line.done = true
	line.editor.display.Newline()
	if line.editor.history.Add(line.Buffer()) {
		line.historyCursor = noHistoryCursor
	}
}

func (line *Line) recallOlder() {
	if line.historyCursor >= line.editor.history.Len()-1 {
		return
	}
	line.historyCursor++
	entry, _ := line.editor.history.Recall(line.historyCursor)
	line.replace(entry)
}

func (line *Line) recallNewer() {
	switch {
	case line.historyCursor > 0:
		line.historyCursor--
		entry, _ := line.editor.history.Recall(line.historyCursor)
		line.replace(entry)
	case line.historyCursor == 0:
		line.historyCursor = noHistoryCursor
		line.replace("")
	}
}

func (line *Line) replace(content string) {
	line.buffer = []rune(content)
	line.editor.display.Redraw(content)
}

// completionTarget splits the buffer into the kept command prefix and the partial name to complete.
func (line *Line) completionTarget() (string, string) {
	content := line.Buffer()
	if strings.HasPrefix(content, ChangeDirectoryPrefix) {
		return ChangeDirectoryPrefix, strings.TrimSpace(content[len(ChangeDirectoryPrefix):])
	}
	return "", content
}

func (line *Line) complete() error {
	keptPrefix, partial := line.completionTarget()
	suggestions, suggestError := line.editor.suggester.Suggest(line.directory, partial)
	if suggestError != nil {
		line.editor.display.Newline()
		line.editor.display.Println(fmt.Sprintf(completionFailedFormat, suggestError))
		line.editor.display.Redraw(line.Buffer())
		return &CompletionError{Partial: partial, Err: suggestError}
	}
	line.editor.options.Logger.Debug("completion", zap.String("partial", partial), zap.Int("matches", len(suggestions)))

	switch len(suggestions) {
	case 0:
		return nil
	case 1:
		line.replace(keptPrefix + suggestions[0])
		return nil
	}

	chosen, chooseError := line.choose(suggestions)
	if chooseError != nil {
		line.editor.display.Redraw(line.Buffer())
		return &CompletionError{Partial: partial, Err: chooseError}
	}
	line.replace(keptPrefix + chosen)
	return nil
}

// choose lists the candidates and reads their 1-based number from the line reader.
func (line *Line) choose(suggestions []string) (string, error) {
	line.state = StateChoosing
	defer func() { line.state = StateEditing }()

	display := line.editor.display
	display.Newline()
	display.Println(multipleMatchesMessage)
	for index, suggestion := range suggestions {
		display.Println(fmt.Sprintf(matchLineFormat, index+1, suggestion))
	}
	display.Println(choicePromptMessage)

	invalidAttempts := 0
	for {
		answer, readError := line.editor.lines.ReadLine()
		if readError != nil {
			return "", fmt.Errorf(errorReadChoiceFormat, readError)
		}
		choice, parseError := strconv.Atoi(strings.TrimSpace(answer))
		if parseError == nil && choice >= 1 && choice <= len(suggestions) {
			return suggestions[choice-1], nil
		}
		invalidAttempts++
		maxAttempts := line.editor.options.MaxChoiceAttempts
		if maxAttempts > 0 && invalidAttempts >= maxAttempts {
			display.Println(choiceAbandonedMessage)
			return "", ErrChoiceAbandoned
		}
		display.Println(invalidChoiceMessage)
	}
}
