package config

import "errors"

var (
	// ErrParsingConfig wraps env parse failures, including missing required variables.
	ErrParsingConfig = errors.New("config: failed to parse environment")

	// ErrLoadingEnvFile is returned by LoadEnv when a file cannot be read.
	ErrLoadingEnvFile = errors.New("config: failed to load env file")

	ErrNilPointer = errors.New("config: nil pointer")
)
