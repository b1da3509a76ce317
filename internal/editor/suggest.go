package editor

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

const errorListSuggestionsFormat = "listing %s for completion: %w"

// SuggestionProvider lists the names of the immediate children of directory
// starting with prefix, compared case-insensitively.
type SuggestionProvider interface {
	Suggest(directory string, prefix string) ([]string, error)
}

// DirectorySuggester suggests files and directories from the local filesystem.
type DirectorySuggester struct{}

// Suggest returns matching child names in enumeration order.
func (DirectorySuggester) Suggest(directory string, prefix string) ([]string, error) {
	directoryEntries, readDirectoryError := os.ReadDir(directory)
	if readDirectoryError != nil {
		return nil, fmt.Errorf(errorListSuggestionsFormat, directory, readDirectoryError)
	}
	var suggestions []string
	for _, directoryEntry := range directoryEntries {
		if hasFoldedPrefix(directoryEntry.Name(), prefix) {
			suggestions = append(suggestions, directoryEntry.Name())
		}
	}
	return suggestions, nil
}

// hasFoldedPrefix compares the first runes of name with prefix under simple case folding,
// rune for rune, so case mappings that change a rune's length never shift the comparison.
func hasFoldedPrefix(name string, prefix string) bool {
	prefixLength := utf8.RuneCountInString(prefix)
	nameRunes := []rune(name)
	if len(nameRunes) < prefixLength {
		return false
	}
	return strings.EqualFold(string(nameRunes[:prefixLength]), prefix)
}

var _ SuggestionProvider = DirectorySuggester{}
