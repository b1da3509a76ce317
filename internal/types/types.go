// Package types defines the command vocabulary shared by the shell and the CLI.
package types

const (
	CommandPrintWorkingDirectory = "pwd"
	CommandList                  = "ls"
	CommandChangeDirectory       = "cd"
	CommandPrint                 = "print"
	CommandIgnore                = "ignore"
	CommandHelp                  = "help"
	CommandExit                  = "exit"

	IgnoreActionClear  = "clear"
	IgnoreActionRemove = "remove"
)

// CommandDescription pairs a command's usage with its one-line help.
type CommandDescription struct {
	Usage       string
	Description string
}

// ShellCommands lists the interactive commands in the order help shows them.
var ShellCommands = []CommandDescription{
	{Usage: CommandPrintWorkingDirectory, Description: "to display the current directory"},
	{Usage: CommandList, Description: "to list the contents of the current directory"},
	{Usage: CommandChangeDirectory + " <path>", Description: "to change the directory"},
	{Usage: CommandPrint, Description: "to print the directory structure"},
	{Usage: CommandIgnore + " [" + IgnoreActionClear + " | " + IgnoreActionRemove + " <names>]", Description: "to review or edit the ignore list"},
	{Usage: CommandHelp, Description: "to display this help message again"},
	{Usage: CommandExit, Description: "to close the program"},
}
