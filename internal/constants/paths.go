package constants

// Directory and file names for gherkit configuration and logs.
// Path resolution (home directory expansion, project discovery) lives in
// internal/config; only the names are defined here.
const (
	// GlobalConfigDirName is the per-user configuration directory under $HOME.
	GlobalConfigDirName = ".gherkit"

	// ProjectConfigDirName is the per-project configuration directory,
	// discovered relative to the working directory.
	ProjectConfigDirName = ".gherkit"

	// ConfigFileName is the configuration file name (without extension, as
	// consumed by viper).
	ConfigFileName = "config"

	// ConfigFileType is the configuration file format.
	ConfigFileType = "yaml"

	// LogsDirName is the log directory under the global config directory.
	LogsDirName = "logs"

	// LogFileName is the rotating log file name.
	LogFileName = "gherkit.log"
)
