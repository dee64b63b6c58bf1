// Package constants provides centralized constant values used throughout attestd.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory and file names used by attestd for configuration and logs.
const (
	// AttestdHome is the hidden directory name where attestd stores its data.
	// This directory is created in the user's home directory.
	AttestdHome = ".attestd"

	// ConfigFileName is the YAML configuration file name.
	ConfigFileName = "config.yaml"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// LogFileName is the rotated log file name.
	LogFileName = "attestd.log"
)

// Server defaults.
const (
	// DefaultListenAddr is the default HTTP listen address.
	DefaultListenAddr = "127.0.0.1:8645"

	// DefaultRequestTimeout bounds one signing request end to end, including
	// the module's compute step.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultShutdownTimeout is how long graceful shutdown waits for
	// in-flight requests before the listener is torn down.
	DefaultShutdownTimeout = 10 * time.Second
)

// Log rotation defaults, interpreted by lumberjack.
const (
	// DefaultLogMaxSizeMB is the size at which a log file is rotated.
	DefaultLogMaxSizeMB = 10

	// DefaultLogMaxBackups is how many rotated files are kept.
	DefaultLogMaxBackups = 3

	// DefaultLogMaxAgeDays is how long rotated files are kept.
	DefaultLogMaxAgeDays = 28
)
