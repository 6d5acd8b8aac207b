package config

import (
	"os"
	"path/filepath"

	"github.com/gherkit/gherkit/internal/constants"
	"github.com/gherkit/gherkit/internal/errors"
)

// GlobalConfigDir returns the per-user configuration directory
// (~/.gherkit).
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve home directory")
	}
	return filepath.Join(home, constants.GlobalConfigDirName), nil
}

// ProjectConfigFile returns the project-local config file path, relative to
// the working directory.
func ProjectConfigFile() string {
	return filepath.Join(constants.ProjectConfigDirName,
		constants.ConfigFileName+"."+constants.ConfigFileType)
}

// LogsDir returns the log directory under the global config directory.
func LogsDir() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.LogsDirName), nil
}
