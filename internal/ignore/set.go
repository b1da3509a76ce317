// Package ignore holds the set of entry names excluded from tree output and the
// dialogue used to edit it.
package ignore

import (
	"strings"

	"github.com/temirov/ptree/internal/utils"
)

const nameSeparator = ","

// Set is an ordered collection of exact, case-sensitive entry names.
// It never holds duplicates.
type Set struct {
	names []string
}

// NewSet returns a set holding the provided names in order, without duplicates.
func NewSet(names ...string) *Set {
	set := &Set{}
	set.Add(names...)
	return set
}

// ParseNames splits raw input on commas, trims each segment and drops empty segments.
func ParseNames(rawInput string) []string {
	segments := strings.Split(rawInput, nameSeparator)
	names := make([]string, 0, len(segments))
	for _, segment := range segments {
		trimmedSegment := strings.TrimSpace(segment)
		if trimmedSegment == utils.EmptyString {
			continue
		}
		names = append(names, trimmedSegment)
	}
	return names
}

// Add appends names and removes duplicates, keeping the first occurrence.
// Blank names are skipped.
func (set *Set) Add(names ...string) {
	for _, name := range names {
		if utils.IsBlank(name) {
			continue
		}
		set.names = append(set.names, name)
	}
	set.names = utils.DeduplicateStrings(set.names)
}

// Remove deletes the provided names and reports how many were present.
func (set *Set) Remove(names ...string) int {
	removedCount := 0
	remainingNames := set.names[:0]
	for _, existingName := range set.names {
		if utils.ContainsString(names, existingName) {
			removedCount++
			continue
		}
		remainingNames = append(remainingNames, existingName)
	}
	set.names = remainingNames
	return removedCount
}

// Clear empties the set.
func (set *Set) Clear() {
	set.names = nil
}

// Contains reports whether name is excluded. A nil set excludes nothing.
func (set *Set) Contains(name string) bool {
	if set == nil {
		return false
	}
	return utils.ContainsString(set.names, name)
}

// Len returns the number of names in the set.
func (set *Set) Len() int {
	if set == nil {
		return 0
	}
	return len(set.names)
}

// Names returns a copy of the names in insertion order.
func (set *Set) Names() []string {
	if set == nil {
		return nil
	}
	return append([]string(nil), set.names...)
}

// String renders the names joined by ", ".
func (set *Set) String() string {
	return strings.Join(set.Names(), nameSeparator+" ")
}
