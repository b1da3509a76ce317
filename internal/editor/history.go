package editor

import "github.com/temirov/ptree/internal/utils"

// History holds submitted lines for recall. It is shared by every line read in a session.
type History struct {
	chronological []string
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

// Add records line as the most recent entry. Blank lines are not recorded.
// It reports whether the line was recorded.
func (history *History) Add(line string) bool {
	if utils.IsBlank(line) {
		return false
	}
	history.chronological = append(history.chronological, line)
	return true
}

// Len returns the number of entries.
func (history *History) Len() int {
	return len(history.chronological)
}

// Recall returns the entry at position, where 0 is the most recent entry and larger positions are older.
func (history *History) Recall(position int) (string, bool) {
	if position < 0 || position >= len(history.chronological) {
		return "", false
	}
	return history.chronological[len(history.chronological)-1-position], true
}

// Entries returns the entries most recent first.
func (history *History) Entries() []string {
	entries := make([]string, len(history.chronological))
	for index := range history.chronological {
		entries[index] = history.chronological[len(history.chronological)-1-index]
	}
	return entries
}
