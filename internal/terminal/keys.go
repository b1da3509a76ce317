package terminal

import (
	"errors"
	"fmt"
	"io"

	"github.com/temirov/ptree/internal/editor"
)

const (
	keyCodeInterrupt    = 0x03
	keyCodeEndOfInput   = 0x04
	keyCodeBackspace    = 0x08
	keyCodeTab          = '\t'
	keyCodeLineFeed     = '\n'
	keyCodeReturn       = '\r'
	keyCodeEscape       = 0x1b
	keyCodeDelete       = 0x7f
	controlSequenceOpen = '['
	singleShiftThree    = 'O'
	finalByteMinimum    = 0x40
	finalByteMaximum    = 0x7e

	errorReadRuneFormat = "reading input: %w"
)

// ReadKey blocks for the next key event. Escape sequences other than the up and
// down arrows decode to editor.KeyOther.
func (console *Terminal) ReadKey() (editor.Key, error) {
	if console.modeError != nil {
		return editor.Key{}, console.modeError
	}
	character, _, readError := console.reader.ReadRune()
	if readError != nil {
		if errors.Is(readError, io.EOF) {
			return editor.Key{}, io.EOF
		}
		return editor.Key{}, fmt.Errorf(errorReadRuneFormat, readError)
	}

	switch character {
	case keyCodeReturn:
		console.skipBuffered(keyCodeLineFeed)
		return editor.Key{Kind: editor.KeyEnter}, nil
	case keyCodeLineFeed:
		return editor.Key{Kind: editor.KeyEnter}, nil
	case keyCodeDelete, keyCodeBackspace:
		return editor.Key{Kind: editor.KeyBackspace}, nil
	case keyCodeTab:
		return editor.Key{Kind: editor.KeyTab}, nil
	case keyCodeInterrupt:
		return editor.Key{Kind: editor.KeyInterrupt}, nil
	case keyCodeEndOfInput:
		return editor.Key{Kind: editor.KeyEndOfInput}, nil
	case keyCodeEscape:
		return console.readEscapeSequence(), nil
	}
	if character < 0x20 {
		return editor.Key{Kind: editor.KeyOther}, nil
	}
	return editor.RuneKey(character), nil
}

// readEscapeSequence decodes what follows an escape byte. Terminals send a whole
// sequence at once, so a lone escape is recognized by an empty read buffer.
func (console *Terminal) readEscapeSequence() editor.Key {
	if console.reader.Buffered() == 0 {
		return editor.Key{Kind: editor.KeyOther}
	}
	introducer, _ := console.reader.ReadByte()
	if introducer != controlSequenceOpen && introducer != singleShiftThree {
		return editor.Key{Kind: editor.KeyOther}
	}
	for console.reader.Buffered() > 0 {
		finalByte, _ := console.reader.ReadByte()
		if finalByte < finalByteMinimum || finalByte > finalByteMaximum {
			continue
		}
		switch finalByte {
		case 'A':
			return editor.Key{Kind: editor.KeyArrowUp}
		case 'B':
			return editor.Key{Kind: editor.KeyArrowDown}
		}
		return editor.Key{Kind: editor.KeyOther}
	}
	return editor.Key{Kind: editor.KeyOther}
}

func (console *Terminal) skipBuffered(expected byte) {
	if console.reader.Buffered() == 0 {
		return
	}
	nextBytes, peekError := console.reader.Peek(1)
	if peekError == nil && nextBytes[0] == expected {
		_, _ = console.reader.ReadByte()
	}
}
