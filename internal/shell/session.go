// Package shell runs the interactive session: it reads command lines with the
// editor, keeps the working directory and the ignore list, and dispatches
// commands.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/temirov/ptree/internal/config"
	"github.com/temirov/ptree/internal/editor"
	"github.com/temirov/ptree/internal/ignore"
	"github.com/temirov/ptree/internal/types"
	"github.com/temirov/ptree/internal/utils"
)

const (
	directoryPlaceholder = "{cwd}"
	volumeSeparator      = `\`
	promptColor          = "12"

	welcomeMessage               = "Welcome! You can use the following commands:"
	helpLineFormat               = "- '%s' %s\n"
	currentDirectoryFormat       = "Current directory: %s\n"
	listingContentsMessage       = "Listing contents:"
	listFailedFormat             = "Unable to list %s: %v\n"
	missingDirectoryMessage      = "Please provide a directory to change to."
	changedDirectoryFormat       = "Changed directory to: %s\n"
	missingVolumeFormat          = "The drive '%s' does not exist.\n"
	missingTargetDirectoryFormat = "The directory '%s' does not exist.\n"
	printCancelledMessage        = "Print cancelled."
	ignoreUsageMessage           = "Usage: ignore [clear | remove <name,...>]"
	unknownCommandMessage        = "Unknown command. Please use 'pwd', 'ls', 'cd <path>', 'print', 'ignore', 'help', or 'exit'."
	errorResolveStartFormat      = "resolving start directory %s: %w"
	errorStartNotDirectoryFormat = "start directory %s is not a directory"
	errorTerminalModeFormat      = "switching terminal mode: %w"
	errorReadCommandFormat       = "reading command: %w"
	errorIgnoreDialogueFormat    = "editing ignore list: %w"
	errorPrintDirectoryFormat    = "printing %s: %w"
)

// Console is the terminal the session talks to.
type Console interface {
	editor.KeyReader
	editor.LineReader
	editor.Display
	ShowPrompt(prompt string)
	EnterRaw() error
	Restore() error
	Interactive() bool
	Writer() io.Writer
}

// Dependencies are the collaborators a Session uses.
type Dependencies struct {
	Console   Console
	Suggester editor.SuggestionProvider
	Printer   Printer
	Logger    *zap.Logger
}

// Session is one interactive run. It owns the working directory, the history
// and the ignore list for the lifetime of the process.
type Session struct {
	directory      string
	settings       config.Settings
	console        Console
	output         io.Writer
	editor         *editor.Editor
	ignoredNames   *ignore.Set
	ignoreManager  *ignore.Manager
	printer        Printer
	promptRenderer lipgloss.Style
	logger         *zap.Logger
}

// NewSession returns a Session starting in startDirectory.
func NewSession(startDirectory string, settings config.Settings, dependencies Dependencies) (*Session, error) {
	resolvedDirectory, resolveError := utils.ResolvePath(utils.EmptyString, startDirectory)
	if resolveError != nil {
		return nil, fmt.Errorf(errorResolveStartFormat, startDirectory, resolveError)
	}
	information, statError := os.Stat(resolvedDirectory)
	if statError != nil {
		return nil, fmt.Errorf(errorResolveStartFormat, startDirectory, statError)
	}
	if !information.IsDir() {
		return nil, fmt.Errorf(errorStartNotDirectoryFormat, resolvedDirectory)
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	suggester := dependencies.Suggester
	if suggester == nil {
		suggester = editor.DirectorySuggester{}
	}
	printer := dependencies.Printer
	if printer.Logger == nil {
		printer.Logger = logger
	}

	console := dependencies.Console
	output := console.Writer()
	ignoredNames := ignore.NewSet(settings.IgnoreNames...)
	lineEditor := editor.New(editor.NewHistory(), suggester, console, console, editor.Options{
		MaxChoiceAttempts: settings.MaxChoiceAttempts,
		Logger:            logger,
	})

	return &Session{
		directory:      resolvedDirectory,
		settings:       settings,
		console:        console,
		output:         output,
		editor:         lineEditor,
		ignoredNames:   ignoredNames,
		ignoreManager:  ignore.NewManager(ignoredNames, console, output),
		printer:        printer,
		promptRenderer: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(promptColor)),
		logger:         logger,
	}, nil
}

// Directory returns the working directory.
func (session *Session) Directory() string {
	return session.directory
}

// History returns the lines submitted so far.
func (session *Session) History() *editor.History {
	return session.editor.History()
}

// IgnoredNames returns the ignore list.
func (session *Session) IgnoredNames() *ignore.Set {
	return session.ignoredNames
}

// Prompt returns the prompt for the current directory.
func (session *Session) Prompt() string {
	prompt := strings.ReplaceAll(session.settings.PromptTemplate, directoryPlaceholder, session.directory)
	if session.settings.StylePrompt && session.console.Interactive() {
		return session.promptRenderer.Render(prompt)
	}
	return prompt
}

// Run shows the help and executes command lines until exit or end of input.
func (session *Session) Run() error {
	session.printHelp()
	for {
		line, readError := session.readCommand()
		if readError != nil {
			if errors.Is(readError, editor.ErrInterrupted) {
				continue
			}
			if errors.Is(readError, io.EOF) {
				return nil
			}
			return readError
		}
		exitRequested, executeError := session.Execute(line)
		if executeError != nil {
			if errors.Is(executeError, io.EOF) {
				return nil
			}
			return executeError
		}
		if exitRequested {
			return nil
		}
	}
}

func (session *Session) readCommand() (string, error) {
	session.console.ShowPrompt(session.Prompt())
	if rawError := session.console.EnterRaw(); rawError != nil {
		return "", fmt.Errorf(errorTerminalModeFormat, rawError)
	}
	line, readError := session.editor.ReadLine(session.console, session.directory)
	if restoreError := session.console.Restore(); restoreError != nil {
		return "", fmt.Errorf(errorTerminalModeFormat, restoreError)
	}
	if readError != nil {
		if errors.Is(readError, editor.ErrInterrupted) || errors.Is(readError, io.EOF) {
			return "", readError
		}
		return "", fmt.Errorf(errorReadCommandFormat, readError)
	}
	return line, nil
}

// Execute runs one command line. It reports true when the session should end.
// User mistakes are reported on the output and never returned as errors.
func (session *Session) Execute(line string) (bool, error) {
	trimmedLine := strings.TrimSpace(line)
	if trimmedLine == utils.EmptyString {
		return false, nil
	}
	commandName, argument, _ := strings.Cut(trimmedLine, " ")
	argument = strings.TrimSpace(argument)
	session.logger.Debug("dispatch", zap.String("command", commandName), zap.String("argument", argument))

	switch commandName {
	case types.CommandPrintWorkingDirectory:
		fmt.Fprintf(session.output, currentDirectoryFormat, session.directory)
	case types.CommandList:
		session.listContents()
	case types.CommandChangeDirectory:
		session.changeDirectory(argument)
	case types.CommandPrint:
		return false, session.printDirectory()
	case types.CommandIgnore:
		return false, session.editIgnoreList(argument)
	case types.CommandHelp:
		session.printHelp()
	case types.CommandExit:
		return true, nil
	default:
		fmt.Fprintln(session.output, unknownCommandMessage)
	}
	return false, nil
}

func (session *Session) printHelp() {
	fmt.Fprintln(session.output, welcomeMessage)
	for _, command := range types.ShellCommands {
		fmt.Fprintf(session.output, helpLineFormat, command.Usage, command.Description)
	}
}

func (session *Session) listContents() {
	directoryEntries, readError := os.ReadDir(session.directory)
	if readError != nil {
		fmt.Fprintf(session.output, listFailedFormat, session.directory, readError)
		return
	}
	fmt.Fprintln(session.output, listingContentsMessage)
	for _, directoryEntry := range directoryEntries {
		fmt.Fprintln(session.output, directoryEntry.Name())
	}
}

func (session *Session) changeDirectory(target string) {
	if target == utils.EmptyString {
		fmt.Fprintln(session.output, missingDirectoryMessage)
		return
	}
	if volume := filepath.VolumeName(target); volume != utils.EmptyString && volume == target {
		volumeRoot := volume + volumeSeparator
		if !isDirectory(volumeRoot) {
			fmt.Fprintf(session.output, missingVolumeFormat, target)
			return
		}
		session.directory = volumeRoot
		fmt.Fprintf(session.output, changedDirectoryFormat, session.directory)
		return
	}
	resolvedTarget, resolveError := utils.ResolvePath(session.directory, target)
	if resolveError != nil || !isDirectory(resolvedTarget) {
		if resolveError != nil {
			resolvedTarget = target
		}
		fmt.Fprintf(session.output, missingTargetDirectoryFormat, resolvedTarget)
		return
	}
	session.directory = resolvedTarget
	fmt.Fprintf(session.output, changedDirectoryFormat, session.directory)
}

func (session *Session) printDirectory() error {
	proceed, dialogueError := session.ignoreManager.PrepareForPrint()
	if dialogueError != nil {
		return dialogueError
	}
	if !proceed {
		fmt.Fprintln(session.output, printCancelledMessage)
		return nil
	}
	if printError := session.printer.Print(session.output, session.directory, session.ignoredNames); printError != nil {
		return fmt.Errorf(errorPrintDirectoryFormat, session.directory, printError)
	}
	return nil
}

func (session *Session) editIgnoreList(argument string) error {
	action, names, _ := strings.Cut(argument, " ")
	switch action {
	case utils.EmptyString:
		if editError := session.ignoreManager.Edit(); editError != nil {
			if errors.Is(editError, io.EOF) {
				return editError
			}
			return fmt.Errorf(errorIgnoreDialogueFormat, editError)
		}
	case types.IgnoreActionClear:
		session.ignoreManager.Clear()
	case types.IgnoreActionRemove:
		if utils.IsBlank(names) {
			fmt.Fprintln(session.output, ignoreUsageMessage)
			return nil
		}
		session.ignoreManager.Remove(names)
	default:
		fmt.Fprintln(session.output, ignoreUsageMessage)
	}
	return nil
}

func isDirectory(path string) bool {
	information, statError := os.Stat(path)
	return statError == nil && information.IsDir()
}
