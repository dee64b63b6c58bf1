package config

import (
	"os"
	"path/filepath"

	"github.com/attestlab/attestd/internal/constants"
)

// GlobalConfigDir returns the global attestd directory, typically ~/.attestd.
// Returns an empty string if the home directory cannot be determined.
func GlobalConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, constants.AttestdHome)
}

// GlobalConfigPath returns the global config file path,
// typically ~/.attestd/config.yaml.
func GlobalConfigPath() string {
	dir := GlobalConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, constants.ConfigFileName)
}

// LocalConfigPath returns the local config file path relative to the working
// directory: .attestd/config.yaml.
func LocalConfigPath() string {
	return filepath.Join(constants.AttestdHome, constants.ConfigFileName)
}

// LogDir returns the directory for rotated log files,
// typically ~/.attestd/logs.
func LogDir() string {
	dir := GlobalConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, constants.LogsDir)
}

// fileExists reports whether the path exists and is a regular file.
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
