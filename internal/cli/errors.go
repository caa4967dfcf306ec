package cli

import (
	"errors"
	"fmt"
)

// ErrMissingName is returned when the new command is not given a contact
// name.
var ErrMissingName = errors.New("expected a contact name for the new command")

// ErrInvalidParam is returned when a '$' in an alias is not followed by a
// parameter index.
type ErrInvalidParam struct {
	Offset int
}

// Error implements [error].
func (e ErrInvalidParam) Error() string {
	return fmt.Sprintf("expected a parameter index after '$' at offset %d", e.Offset)
}

// ErrMissingParam is returned when an alias references a parameter that was
// not given.
type ErrMissingParam struct {
	Index int
}

// Error implements [error].
func (e ErrMissingParam) Error() string {
	return fmt.Sprintf("no value provided for the parameter $%d", e.Index)
}

// ErrParamCount is returned when the number of parameters given to an alias
// differs from the number it uses.
type ErrParamCount struct {
	Expected int
	Received int
}

// Error implements [error].
func (e ErrParamCount) Error() string {
	return fmt.Sprintf("expected %d parameters, but received %d", e.Expected, e.Received)
}

// ErrUnknownAlias is returned for alias names missing from the configuration.
type ErrUnknownAlias struct {
	Name string
}

// Error implements [error].
func (e ErrUnknownAlias) Error() string {
	return fmt.Sprintf("unknown alias: %s", e.Name)
}

// ErrUnexpectedArgument is returned when an alias holds something other than
// options.
type ErrUnexpectedArgument struct {
	Arg string
}

// Error implements [error].
func (e ErrUnexpectedArgument) Error() string {
	return fmt.Sprintf("unexpected argument: %s", e.Arg)
}

// ErrOptionNotAllowed is returned for alias options that are only read before
// aliases are expanded.
type ErrOptionNotAllowed struct {
	Option string
}

// Error implements [error].
func (e ErrOptionNotAllowed) Error() string {
	return fmt.Sprintf("option --%s cannot be used in an alias", e.Option)
}
