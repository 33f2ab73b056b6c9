package config

import "errors"

// ErrParsingConfigFailed is returned when the environment does not hold a valid configuration.
var ErrParsingConfigFailed = errors.New("parsing config failed")

// ErrUnsupportedAdapter is returned when DATABASE_ADAPTER names an unknown adapter.
var ErrUnsupportedAdapter = errors.New("unsupported database adapter")

// ErrOpeningDatabaseFailed is returned when a connection cannot be opened or pinged.
var ErrOpeningDatabaseFailed = errors.New("opening database failed")
