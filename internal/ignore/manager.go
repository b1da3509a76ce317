package ignore

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	namesPromptMessage       = "Enter the names of directories or files to ignore, separated by commas (leave blank to keep the current list):"
	appendNamesPromptMessage = "Enter additional names to ignore, separated by commas:"
	printConfirmQuestion     = "Print the directory structure? (yes/no)"
	appendConfirmQuestion    = "Add more names to the ignore list? (yes/no)"
	invalidAnswerMessage     = "Please answer 'yes' or 'no'."
	emptyListMessage         = "Ignore list is empty."
	listMessageFormat        = "Ignore list: %s\n"
	removedMessageFormat     = "Removed %d name(s) from the ignore list.\n"
	clearedMessage           = "Ignore list cleared."

	errorReadAnswerFormat = "reading answer: %w"
	errorReadNamesFormat  = "reading ignore names: %w"
)

// LineReader reads one complete line of user input, without the trailing newline.
type LineReader interface {
	ReadLine() (string, error)
}

// Manager runs the dialogues that edit a Set. The set persists between dialogues;
// nothing is discarded when a print is declined.
type Manager struct {
	set    *Set
	input  LineReader
	output io.Writer
}

// NewManager returns a Manager editing set, reading answers from input and writing prompts to output.
func NewManager(set *Set, input LineReader, output io.Writer) *Manager {
	return &Manager{set: set, input: input, output: output}
}

// Set returns the managed set.
func (manager *Manager) Set() *Set {
	return manager.set
}

// PrepareForPrint collects names to add, shows the list and asks for confirmation.
// It reports whether printing should proceed. Declining keeps the collected names.
func (manager *Manager) PrepareForPrint() (bool, error) {
	fmt.Fprintln(manager.output, namesPromptMessage)
	rawNames, readError := manager.input.ReadLine()
	if readError != nil {
		return false, fmt.Errorf(errorReadNamesFormat, readError)
	}
	manager.set.Add(ParseNames(rawNames)...)
	manager.Show()
	return manager.Confirm(printConfirmQuestion)
}

// Edit shows the list and offers to append more names to it.
func (manager *Manager) Edit() error {
	manager.Show()
	appendRequested, confirmError := manager.Confirm(appendConfirmQuestion)
	if confirmError != nil || !appendRequested {
		return confirmError
	}
	fmt.Fprintln(manager.output, appendNamesPromptMessage)
	rawNames, readError := manager.input.ReadLine()
	if readError != nil {
		return fmt.Errorf(errorReadNamesFormat, readError)
	}
	manager.set.Add(ParseNames(rawNames)...)
	manager.Show()
	return nil
}

// Remove deletes the comma-separated names from the list and shows the result.
func (manager *Manager) Remove(rawNames string) {
	removedCount := manager.set.Remove(ParseNames(rawNames)...)
	fmt.Fprintf(manager.output, removedMessageFormat, removedCount)
	manager.Show()
}

// Clear empties the list and shows the result.
func (manager *Manager) Clear() {
	manager.set.Clear()
	fmt.Fprintln(manager.output, clearedMessage)
	manager.Show()
}

// Show writes the current list.
func (manager *Manager) Show() {
	if manager.set.Len() == 0 {
		fmt.Fprintln(manager.output, emptyListMessage)
		return
	}
	fmt.Fprintf(manager.output, listMessageFormat, manager.set.String())
}

// Confirm asks a yes/no question until one of yes, y, no or n is entered.
func (manager *Manager) Confirm(question string) (bool, error) {
	for {
		fmt.Fprintln(manager.output, question)
		answer, readError := manager.input.ReadLine()
		if readError != nil {
			if errors.Is(readError, io.EOF) {
				return false, readError
			}
			return false, fmt.Errorf(errorReadAnswerFormat, readError)
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "yes", "y":
			return true, nil
		case "no", "n":
			return false, nil
		}
		fmt.Fprintln(manager.output, invalidAnswerMessage)
	}
}
