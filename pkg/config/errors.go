package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables or a settings
	// file cannot be parsed into the config struct.
	ErrParsingConfig = errors.New("config.parse_failed")

	// ErrLoadingEnvFile is returned when a requested .env file cannot be loaded.
	ErrLoadingEnvFile = errors.New("config.env_file_failed")

	// ErrReadingFile is returned when a settings file cannot be read.
	ErrReadingFile = errors.New("config.read_file_failed")

	// ErrConfigNotLoaded is returned when a cached config is unexpectedly missing.
	ErrConfigNotLoaded = errors.New("config.not_loaded")

	// ErrNilPointer is returned when a nil pointer is provided to a loader.
	ErrNilPointer = errors.New("config.nil_pointer")
)
