package config

import (
	"fmt"
	"strings"
)

// ErrNoConfiguration is returned when no application configuration file can
// be found, or when the one given explicitly does not exist.
type ErrNoConfiguration struct {
	Path string
}

// Error implements [error].
func (e ErrNoConfiguration) Error() string {
	if e.Path == "" {
		return "no upim-contact configuration file found"
	}
	return fmt.Sprintf("configuration file does not exist: %s", e.Path)
}

// ErrMissingOption is returned when a required setting is not set.
type ErrMissingOption struct {
	Name string
}

// Error implements [error].
func (e ErrMissingOption) Error() string {
	return fmt.Sprintf("missing option: %s", e.Name)
}

// ErrInvalidValue is returned when a setting holds a value that breaks its
// rules.
type ErrInvalidValue struct {
	Data  string
	Rules string
}

// Error implements [error].
func (e ErrInvalidValue) Error() string {
	return fmt.Sprintf("invalid value: %s: %s", e.Data, e.Rules)
}

// ErrCollectionDoesNotExist is returned for collection names missing from the
// Collections group.
type ErrCollectionDoesNotExist struct {
	Name string
}

// Error implements [error].
func (e ErrCollectionDoesNotExist) Error() string {
	return fmt.Sprintf("collection is not present in configuration: %s", e.Name)
}

// ErrCannotMakeAbsolutePath is returned for collections with a relative path
// when collection_base is not set.
type ErrCannotMakeAbsolutePath struct {
	Name string
}

// Error implements [error].
func (e ErrCannotMakeAbsolutePath) Error() string {
	return fmt.Sprintf("relative path for collection %s given without collection_base set in configuration", e.Name)
}

// ValidationErrors holds every problem found while validating a
// configuration.
type ValidationErrors []error

// Error implements [error].
func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, err := range v {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// Unwrap returns the errors so they can be matched with errors.Is and
// errors.As.
func (v ValidationErrors) Unwrap() []error {
	return v
}
