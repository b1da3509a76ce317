// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/ptree/internal/config"
	"github.com/temirov/ptree/internal/ignore"
	"github.com/temirov/ptree/internal/services/clipboard"
	"github.com/temirov/ptree/internal/shell"
	"github.com/temirov/ptree/internal/terminal"
	"github.com/temirov/ptree/internal/tokenizer"
	"github.com/temirov/ptree/internal/tree"
	"github.com/temirov/ptree/internal/utils"
)

const (
	versionFlagName        = "version"
	configFlagName         = "config"
	verboseFlagName        = "verbose"
	directoryFlagName      = "dir"
	exclusionFlagName      = "e"
	copyFlagName           = "copy"
	summaryFlagName        = "summary"
	tokensFlagName         = "tokens"
	modelFlagName          = "model"
	maxDepthFlagName       = "max-depth"
	followSymlinksFlagName = "follow-symlinks"
	noIgnoreFileFlagName   = "no-ignore-file"
	globalFlagName         = "global"
	forceFlagName          = "force"
	versionTemplate        = "ptree version: %s\n"
	defaultPath            = "."
	rootUse                = "ptree"
	rootShortDescription   = "interactive directory tree shell"
	rootLongDescription    = `ptree is a small shell for moving around a filesystem and printing directory trees.
Commands inside the shell: pwd, ls, cd <path>, print, ignore, help and exit.
Tab completes names in the current directory and the arrow keys recall earlier commands.`
	treeUse              = "tree [path]"
	treeAlias            = "t"
	treeShortDescription = "print a directory tree without starting the shell (" + treeAlias + ")"
	treeLongDescription  = `Print the directory tree below path, or the working directory when path is omitted.
Names given with -e, listed under ignore.names in the configuration or in a .ptreeignore file are left out at every level.`
	treeUsageExample = `  # Print the current directory without node_modules and .git
  ptree tree -e node_modules -e .git

  # Print two levels of ./internal and copy the result
  ptree tree --max-depth 2 --copy ./internal`
	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initLongDescription  = `Write the default configuration to .ptree.yaml in the working directory,
or to ~/.ptree/config.yaml with --global.`

	versionFlagDescription        = "display application version"
	configFlagDescription         = "path to a configuration file replacing the local .ptree.yaml"
	verboseFlagDescription        = "log debug information to stderr"
	directoryFlagDescription      = "directory the shell starts in"
	exclusionFlagDescription      = "exclude entries with this exact name"
	copyFlagDescription           = "copy the rendered tree to the clipboard"
	summaryFlagDescription        = "print a summary line after the tree"
	tokensFlagDescription         = "include a token count in the summary"
	modelFlagDescription          = "tokenizer model to use for token counting"
	maxDepthFlagDescription       = "limit the tree to this many levels (0 for no limit)"
	followSymlinksFlagDescription = "descend into symbolic links to directories"
	noIgnoreFileFlagDescription   = "do not read names from .ptreeignore"
	globalFlagDescription         = "write the global configuration instead of the local one"
	forceFlagDescription          = "overwrite an existing configuration file"

	configurationWrittenFormat      = "Configuration written to %s\n"
	clipboardUnavailableMessage     = "clipboard unavailable on this system"
	workingDirectoryErrorFormat     = "unable to determine working directory: %w"
	errorLoggerFormat               = "initialize logger: %w"
	errorLoadConfigurationFormat    = "load configuration: %w"
	errorLoadIgnoreFileFormat       = "load ignore file: %w"
	errorTokenizerFormat            = "initialize tokenizer: %w"
	errorResolveTreePathFormat      = "resolve path %s: %w"
	errorTreePathNotDirectoryFormat = "path '%s' is not a directory"
)

// application carries the state shared by the commands of one invocation.
type application struct {
	configurationPath string
	verbose           bool
	logger            *zap.Logger
	newCopier         func() (clipboard.Copier, bool)
}

// Execute runs the ptree application.
func Execute() error {
	rootCommand := createRootCommand(newApplication())
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

func newApplication() *application {
	return &application{
		logger: zap.NewNop(),
		newCopier: func() (clipboard.Copier, bool) {
			return clipboard.NewService(), clipboard.Available()
		},
	}
}

// createRootCommand builds the root Cobra command.
func createRootCommand(app *application) *cobra.Command {
	var showVersion bool
	var startDirectory string

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
			logger, loggerError := utils.NewApplicationLogger(app.verbose)
			if loggerError != nil {
				return fmt.Errorf(errorLoggerFormat, loggerError)
			}
			app.logger = logger
			return nil
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return app.runShell(command, startDirectory)
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.PersistentFlags().StringVar(&app.configurationPath, configFlagName, "", configFlagDescription)
	rootCommand.PersistentFlags().BoolVar(&app.verbose, verboseFlagName, false, verboseFlagDescription)
	rootCommand.Flags().StringVar(&startDirectory, directoryFlagName, "", directoryFlagDescription)
	rootCommand.AddCommand(
		createTreeCommand(app),
		createInitCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// treeOptions collects tree flags. Nil pointers leave configuration untouched.
type treeOptions struct {
	exclusions     []string
	copyEnabled    *bool
	summary        *bool
	tokens         *bool
	followSymlinks *bool
	noIgnoreFile   bool
	model          string
	maxDepth       int
}

// overrides expresses the flags given on the command line as configuration.
func (options treeOptions) overrides(command *cobra.Command) config.ApplicationConfiguration {
	overrides := config.ApplicationConfiguration{
		Ignore: config.IgnoreConfiguration{Names: options.exclusions},
		Tree:   config.TreeConfiguration{FollowSymlinks: options.followSymlinks},
		Print: config.PrintConfiguration{
			Summary:   options.summary,
			Clipboard: options.copyEnabled,
			Tokens:    config.TokenConfiguration{Enabled: options.tokens, Model: options.model},
		},
	}
	if command.Flags().Changed(maxDepthFlagName) {
		maxDepth := options.maxDepth
		overrides.Tree.MaxDepth = &maxDepth
	}
	if options.noIgnoreFile {
		useIgnoreFile := false
		overrides.Ignore.UseIgnoreFile = &useIgnoreFile
	}
	return overrides
}

// createTreeCommand returns the tree subcommand.
func createTreeCommand(app *application) *cobra.Command {
	var options treeOptions

	treeCommand := &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Long:    treeLongDescription,
		Example: treeUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			path := defaultPath
			if len(arguments) == 1 {
				path = arguments[0]
			}
			return app.runTree(command, path, options)
		},
	}

	treeCommand.Flags().StringArrayVarP(&options.exclusions, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	registerOptionalBooleanFlag(treeCommand.Flags(), &options.copyEnabled, copyFlagName, copyFlagDescription)
	registerOptionalBooleanFlag(treeCommand.Flags(), &options.summary, summaryFlagName, summaryFlagDescription)
	registerOptionalBooleanFlag(treeCommand.Flags(), &options.tokens, tokensFlagName, tokensFlagDescription)
	registerOptionalBooleanFlag(treeCommand.Flags(), &options.followSymlinks, followSymlinksFlagName, followSymlinksFlagDescription)
	treeCommand.Flags().StringVar(&options.model, modelFlagName, "", modelFlagDescription)
	treeCommand.Flags().IntVar(&options.maxDepth, maxDepthFlagName, 0, maxDepthFlagDescription)
	treeCommand.Flags().BoolVar(&options.noIgnoreFile, noIgnoreFileFlagName, false, noIgnoreFileFlagDescription)
	return treeCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand() *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			workingDirectory, workingDirectoryError := os.Getwd()
			if workingDirectoryError != nil {
				return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
			}
			path, initError := config.InitializeConfiguration(config.InitOptions{
				Global:           global,
				Force:            force,
				WorkingDirectory: workingDirectory,
			})
			if initError != nil {
				return initError
			}
			fmt.Fprintf(command.OutOrStdout(), configurationWrittenFormat, path)
			return nil
		},
	}
	initCommand.Flags().BoolVar(&global, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&force, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// loadSettings merges configuration files, the ignore file of directory and overrides.
func (app *application) loadSettings(directory string, overrides config.ApplicationConfiguration) (config.Settings, error) {
	configuration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: directory,
		ExplicitFilePath: app.configurationPath,
	})
	if loadError != nil {
		return config.Settings{}, fmt.Errorf(errorLoadConfigurationFormat, loadError)
	}
	exclusions := overrides.Ignore.Names
	overrides.Ignore.Names = nil
	settings := configuration.Merge(overrides).Settings()
	if settings.UseIgnoreFile {
		fileNames, ignoreFileError := config.LoadIgnoreFileNames(directory)
		if ignoreFileError != nil {
			return config.Settings{}, fmt.Errorf(errorLoadIgnoreFileFormat, ignoreFileError)
		}
		settings.IgnoreNames = append(settings.IgnoreNames, fileNames...)
	}
	settings.IgnoreNames = utils.DeduplicateStrings(append(settings.IgnoreNames, exclusions...))
	app.logger.Debug("settings loaded", zap.String("directory", directory), zap.Strings("ignore", settings.IgnoreNames))
	return settings, nil
}

// newPrinter builds the printer described by settings.
func (app *application) newPrinter(settings config.Settings) (shell.Printer, error) {
	printer := shell.Printer{
		Enumerator: tree.OSEnumerator{FollowSymlinks: settings.FollowSymlinks},
		MaxDepth:   settings.MaxDepth,
		Summary:    settings.Summary,
		Logger:     app.logger,
	}
	if settings.Clipboard {
		copier, available := app.newCopier()
		if available {
			printer.Copier = copier
		} else {
			app.logger.Warn(clipboardUnavailableMessage)
		}
	}
	if settings.TokensEnabled {
		counter, counterError := tokenizer.NewCounter(settings.TokenModel)
		if counterError != nil {
			return shell.Printer{}, fmt.Errorf(errorTokenizerFormat, counterError)
		}
		printer.Counter = counter
	}
	return printer, nil
}

func (app *application) runTree(command *cobra.Command, path string, options treeOptions) error {
	root, resolveError := resolveDirectory(path)
	if resolveError != nil {
		return resolveError
	}
	settings, settingsError := app.loadSettings(root, options.overrides(command))
	if settingsError != nil {
		return settingsError
	}
	printer, printerError := app.newPrinter(settings)
	if printerError != nil {
		return printerError
	}
	return printer.Print(command.OutOrStdout(), root, ignore.NewSet(settings.IgnoreNames...))
}

func (app *application) runShell(command *cobra.Command, startDirectory string) error {
	if startDirectory == "" {
		startDirectory = defaultPath
	}
	root, resolveError := resolveDirectory(startDirectory)
	if resolveError != nil {
		return resolveError
	}
	settings, settingsError := app.loadSettings(root, config.ApplicationConfiguration{})
	if settingsError != nil {
		return settingsError
	}
	printer, printerError := app.newPrinter(settings)
	if printerError != nil {
		return printerError
	}
	session, sessionError := shell.NewSession(root, settings, shell.Dependencies{
		Console: newConsole(command.InOrStdin(), command.OutOrStdout()),
		Printer: printer,
		Logger:  app.logger,
	})
	if sessionError != nil {
		return sessionError
	}
	return session.Run()
}

// newConsole attaches to the process terminal when both streams are files.
func newConsole(input io.Reader, output io.Writer) *terminal.Terminal {
	inputFile, inputIsFile := input.(*os.File)
	outputFile, outputIsFile := output.(*os.File)
	if inputIsFile && outputIsFile {
		return terminal.New(inputFile, outputFile)
	}
	return terminal.NewForStreams(input, output)
}

func resolveDirectory(path string) (string, error) {
	absolutePath, resolveError := utils.ResolvePath(utils.EmptyString, path)
	if resolveError != nil {
		return "", fmt.Errorf(errorResolveTreePathFormat, path, resolveError)
	}
	information, statError := os.Stat(absolutePath)
	if statError != nil {
		return "", fmt.Errorf(errorResolveTreePathFormat, path, statError)
	}
	if !information.IsDir() {
		return "", fmt.Errorf(errorTreePathNotDirectoryFormat, path)
	}
	return absolutePath, nil
}
