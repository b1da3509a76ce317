// Package clipboard copies rendered listings to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

const errorClipboardWriteFormat = "copy to clipboard: %w"

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct {
	writeAll func(text string) error
}

// NewService constructs a clipboard service backed by the system clipboard.
func NewService() *Service {
	return &Service{writeAll: clipboard.WriteAll}
}

// Available reports whether a clipboard utility exists on this system.
func Available() bool {
	return !clipboard.Unsupported
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	if writeError := service.writeAll(text); writeError != nil {
		return fmt.Errorf(errorClipboardWriteFormat, writeError)
	}
	return nil
}

var _ Copier = (*Service)(nil)
