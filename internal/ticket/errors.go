package ticket

import (
	"errors"
	"fmt"
)

// Error variables for store operations.
var (
	ErrInvalidIdentifier  = errors.New("invalid identifier")
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotInitialized     = errors.New("not initialized")
	ErrAlreadyInitialized = errors.New("already initialized")
)

// Error variables for configuration.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrRootEmpty          = errors.New("root cannot be empty")
	ErrHomeNotSet         = errors.New("HOME is not set, cannot resolve relative root")
)

// IdentifierError reports an address that does not follow the
// "category/" or "category/id" grammar. It matches [ErrInvalidIdentifier].
type IdentifierError struct {
	Raw string
}

func (e *IdentifierError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidIdentifier, e.Raw)
}

func (e *IdentifierError) Is(target error) bool {
	return target == ErrInvalidIdentifier
}
