package constants

import "errors"

// Configuration errors.
var (
	ErrNoServerConfigured = errors.New("no server configured, use 'immich login' or set IMMICH_SERVER")
	ErrNoAPIKeyConfigured = errors.New("no API key configured, use 'immich login' or set IMMICH_API_KEY")
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
)

// Operation errors.
var (
	ErrAuthCheckFailed   = errors.New("authentication check failed")
	ErrDownloadFailed    = errors.New("download failed")
	ErrSomeDownloadsFail = errors.New("some downloads failed")
	ErrInvalidOutput     = errors.New("invalid output format")
)

// File system errors.
var (
	ErrNotRegularFile             = errors.New("path is not a regular file")
	ErrDirectoryTraversalDetected = errors.New("directory traversal detected in file path")
)
