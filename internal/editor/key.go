package editor

import "fmt"

// KeyKind identifies the logical key of a key event.
type KeyKind int

const (
	// KeyOther is any key the editor does not act on.
	KeyOther KeyKind = iota
	// KeyRune is a printable character carried in Key.Rune.
	KeyRune
	KeyEnter
	KeyBackspace
	KeyTab
	KeyArrowUp
	KeyArrowDown
	// KeyInterrupt is Ctrl-C.
	KeyInterrupt
	// KeyEndOfInput is Ctrl-D.
	KeyEndOfInput
)

// Key is one key event.
type Key struct {
	Kind KeyKind
	Rune rune
}

// RuneKey returns the key event for a printable character.
func RuneKey(character rune) Key {
	return Key{Kind: KeyRune, Rune: character}
}

// KeysFromString returns one RuneKey per character of text.
func KeysFromString(text string) []Key {
	keys := make([]Key, 0, len(text))
	for _, character := range text {
		keys = append(keys, RuneKey(character))
	}
	return keys
}

func (key Key) String() string {
	switch key.Kind {
	case KeyRune:
		return fmt.Sprintf("%q", key.Rune)
	case KeyEnter:
		return "Enter"
	case KeyBackspace:
		return "Backspace"
	case KeyTab:
		return "Tab"
	case KeyArrowUp:
		return "Up"
	case KeyArrowDown:
		return "Down"
	case KeyInterrupt:
		return "Ctrl-C"
	case KeyEndOfInput:
		return "Ctrl-D"
	default:
		return "Other"
	}
}

// KeyReader blocks until the next key event is available.
type KeyReader interface {
	ReadKey() (Key, error)
}

// LineReader reads one complete line without the trailing newline.
// It is used for prompts that sit outside the key stream.
type LineReader interface {
	ReadLine() (string, error)
}

// Display renders the line being edited.
type Display interface {
	// Echo shows a character appended at the end of the line.
	Echo(character rune)
	// EraseLast removes the on-screen footprint of the last character.
	EraseLast(character rune)
	// Redraw erases the whole visual line and renders the prompt followed by content.
	Redraw(content string)
	// Newline moves to the start of the next line.
	Newline()
	// Println writes a complete message line.
	Println(message string)
}
