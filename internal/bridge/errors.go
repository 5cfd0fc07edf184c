package bridge

import "errors"

var (
	// ErrConfigNotFound indicates the shared framework config file is missing
	ErrConfigNotFound = errors.New("shared config file not found")
	// ErrConfigInvalid indicates the shared framework config file could not be read or parsed
	ErrConfigInvalid = errors.New("shared config file is invalid")
	// ErrMalformedOrigin indicates the dev server origin could not be parsed as a URI
	ErrMalformedOrigin = errors.New("malformed dev server origin")
	// ErrEntryRootNotFound indicates the entry script directory does not exist
	ErrEntryRootNotFound = errors.New("entry root directory not found")
)
