package utils

const (
	// EmptyString represents a reusable empty string constant.
	EmptyString = ""

	// LoggerInitializationFailedMessageFormat reports a logger that could not be built.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"

	// ApplicationExecutionFailedMessage prefixes fatal command errors.
	ApplicationExecutionFailedMessage = "ptree failed"

	// ConfigFileName is the name of the local configuration file.
	ConfigFileName = ".ptree.yaml"

	// GlobalConfigDirectoryName is the directory under the user's home holding the global configuration.
	GlobalConfigDirectoryName = ".ptree"

	// GlobalConfigFileName is the name of the configuration file inside GlobalConfigDirectoryName.
	GlobalConfigFileName = "config.yaml"

	// IgnoreFileName names the per-directory file listing names to ignore, one per line.
	IgnoreFileName = ".ptreeignore"
)
