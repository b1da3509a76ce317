package shell

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/ptree/internal/services/clipboard"
	"github.com/temirov/ptree/internal/tokenizer"
	"github.com/temirov/ptree/internal/tree"
)

const (
	copiedMessage            = "Copied to clipboard."
	errorRenderTreeFormat    = "rendering %s: %w"
	errorWriteSummaryFormat  = "writing summary: %w"
	warningClipboardMessage  = "clipboard copy failed"
	warningTokenCountMessage = "token counting failed"
)

// Printer renders a directory listing and whatever accompanies it.
type Printer struct {
	Enumerator tree.DirectoryEnumerator
	MaxDepth   int
	Summary    bool
	// Copier receives the rendered listing when set.
	Copier clipboard.Copier
	// Counter adds a token count to the summary when set.
	Counter tokenizer.Counter
	Logger  *zap.Logger
}

// Print writes the listing of root to output, omitting names in ignored.
func (printer Printer) Print(output io.Writer, root string, ignored tree.NameFilter) error {
	logger := printer.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var captured strings.Builder
	destination := output
	if printer.Copier != nil || printer.Counter != nil {
		destination = io.MultiWriter(output, &captured)
	}

	entries := tree.Walk(root, tree.Options{
		Enumerator: printer.Enumerator,
		Ignore:     ignored,
		MaxDepth:   printer.MaxDepth,
	})
	summary, renderError := tree.NewRenderer(destination).Render(entries)
	if renderError != nil {
		return fmt.Errorf(errorRenderTreeFormat, root, renderError)
	}
	logger.Debug("rendered tree", zap.String("root", root), zap.Int("directories", summary.Directories), zap.Int("files", summary.Files))

	if printer.Summary {
		tokens := -1
		if printer.Counter != nil {
			counted, countError := printer.Counter.CountString(captured.String())
			if countError != nil {
				logger.Warn(warningTokenCountMessage, zap.String("model", printer.Counter.Name()), zap.Error(countError))
			} else {
				tokens = counted
			}
		}
		if _, writeError := fmt.Fprintln(output, tree.FormatSummary(summary, tokens)); writeError != nil {
			return fmt.Errorf(errorWriteSummaryFormat, writeError)
		}
	}

	if printer.Copier != nil {
		if copyError := printer.Copier.Copy(captured.String()); copyError != nil {
			logger.Warn(warningClipboardMessage, zap.Error(copyError))
			return nil
		}
		fmt.Fprintln(output, copiedMessage)
	}
	return nil
}
