// Package tokenizer estimates token counts of rendered listings.
package tokenizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel        = "gpt-4o"
	defaultEncodingName = "cl100k_base"

	errorFallbackEncodingFormat = "initialize fallback tokenizer: %w"
)

var errNilEncoding = errors.New("nil tiktoken encoder")

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

type encodingCounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// NewCounter returns a Counter for model. Unknown models use the cl100k_base encoding.
func NewCounter(model string) (Counter, error) {
	normalizedModel := strings.ToLower(strings.TrimSpace(model))
	if normalizedModel == "" {
		normalizedModel = DefaultModel
	}
	encoding, encodingError := tiktoken.EncodingForModel(normalizedModel)
	if encodingError == nil && encoding != nil {
		return encodingCounter{encoding: encoding, name: normalizedModel}, nil
	}
	fallbackEncoding, fallbackError := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackError != nil {
		return nil, fmt.Errorf(errorFallbackEncodingFormat, fallbackError)
	}
	return encodingCounter{encoding: fallbackEncoding, name: defaultEncodingName}, nil
}

func (counter encodingCounter) Name() string {
	return counter.name
}

func (counter encodingCounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errNilEncoding
	}
	return len(counter.encoding.Encode(input, nil, nil)), nil
}
