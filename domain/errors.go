package domain

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrCursorClosed is returned when operating on a closed [Cursor].
	ErrCursorClosed = errors.New("cursor is closed")
	// ErrScanBeforeNext is returned when [Cursor.Scan] is called before
	// [Cursor.Next].
	ErrScanBeforeNext = errors.New("called Scan before calling Next")
	// ErrTargetNil is returned when a nil target is passed to a [Decoder].
	ErrTargetNil = errors.New("target interface is nil")
	// ErrNonPointer is returned when a [Decoder] target is not a pointer.
	ErrNonPointer = errors.New("target must be a pointer")
	// ErrContactWithoutName is returned when a note has none of the
	// attributes a contact name can be derived from.
	ErrContactWithoutName = errors.New("contact has no name")
	// ErrNoCollection is returned by a [Searcher] when no collection path
	// was provided.
	ErrNoCollection = errors.New("no collection was provided")
)

// ErrMalformedField is returned when a field name or field list is empty or
// lacks its closing delimiter.
type ErrMalformedField struct {
	Input string
}

// Error implements [error].
func (e ErrMalformedField) Error() string {
	return fmt.Sprintf("malformed field: %q", e.Input)
}

// ErrInvalidFieldName is returned when a field name contains a reserved
// keyword or a quote character.
type ErrInvalidFieldName struct {
	Name string
}

// Error implements [error].
func (e ErrInvalidFieldName) Error() string {
	return fmt.Sprintf("invalid field name: %q", e.Name)
}

// ErrUnknownOperator is returned when a comparison operator is not one of
// the supported [FilterOp] tokens.
type ErrUnknownOperator struct {
	Operator string
}

// Error implements [error].
func (e ErrUnknownOperator) Error() string {
	if e.Operator == "" {
		return "missing operator"
	}
	return fmt.Sprintf("unknown operator %q", e.Operator)
}

// ErrUnbalancedParenthesis is returned when a parenthesis is never closed or
// closes a group that was never opened.
type ErrUnbalancedParenthesis struct {
	Input string
}

// Error implements [error].
func (e ErrUnbalancedParenthesis) Error() string {
	return fmt.Sprintf("unbalanced parenthesis in %q", e.Input)
}

// ErrMissingWhereClause is returned when a field list is followed by
// something other than a WHERE clause.
type ErrMissingWhereClause struct {
	Found string
}

// Error implements [error].
func (e ErrMissingWhereClause) Error() string {
	return fmt.Sprintf("expected WHERE clause; found: %q", e.Found)
}

// ErrUnquotedString is returned when a comparison value is neither quoted,
// numeric nor EMPTY.
type ErrUnquotedString struct {
	Value string
}

// Error implements [error].
func (e ErrUnquotedString) Error() string {
	return fmt.Sprintf("string values must be quoted: %s", e.Value)
}

// ErrInvalidOperatorForType is returned when an ordering operator is used
// with a string value.
type ErrInvalidOperatorForType struct {
	Op    FilterOp
	Value string
}

// Error implements [error].
func (e ErrInvalidOperatorForType) Error() string {
	return fmt.Sprintf("operator %s cannot be used with string value %q", e.Op, e.Value)
}

// ErrInvalidCondition is returned when a condition has tokens that do not
// form a comparison or a function clause.
type ErrInvalidCondition struct {
	Condition string
}

// Error implements [error].
func (e ErrInvalidCondition) Error() string {
	return fmt.Sprintf("invalid condition: %q", e.Condition)
}

// FunctionErrorKind classifies [ErrFunctionParse] failures.
type FunctionErrorKind uint8

const (
	// InvalidArguments means the function received the wrong arguments.
	InvalidArguments FunctionErrorKind = iota
	// MissingClosingParenthesis means the argument list is never closed.
	MissingClosingParenthesis
	// NoVariableAssignment means REF or SPLIT was used without binding a
	// variable.
	NoVariableAssignment
	// InvalidOperator means the assignment used something other than "=".
	InvalidOperator
	// UnknownFunction means the assigned expression is not a function.
	UnknownFunction
)

// String implements [fmt.Stringer].
func (k FunctionErrorKind) String() string {
	switch k {
	case InvalidArguments:
		return "invalid arguments"
	case MissingClosingParenthesis:
		return "missing closing parenthesis"
	case NoVariableAssignment:
		return "no variable assignment"
	case InvalidOperator:
		return "invalid operator"
	case UnknownFunction:
		return "unknown function"
	}
	return "FunctionErrorKind(" + strconv.Itoa(int(k)) + ")"
}

// ErrFunctionParse is returned when a function clause cannot be parsed.
type ErrFunctionParse struct {
	Kind   FunctionErrorKind
	Detail string
}

// Error implements [error].
func (e ErrFunctionParse) Error() string {
	return fmt.Sprintf("function: %s: %s", e.Kind, e.Detail)
}

// ErrUnsupportedFunction is returned by a [Matcher] for functions that can
// be parsed but not evaluated.
type ErrUnsupportedFunction struct {
	Function Function
}

// Error implements [error].
func (e ErrUnsupportedFunction) Error() string {
	return fmt.Sprintf("function cannot be evaluated: %s", e.Function)
}

// ErrInvalidNote is returned when a note header line is malformed.
type ErrInvalidNote struct {
	Line   int
	Reason string
}

// Error implements [error].
func (e ErrInvalidNote) Error() string {
	return fmt.Sprintf("invalid note at line %d: %s", e.Line, e.Reason)
}

// ErrDecode wraps third party decoding errors.
type ErrDecode struct {
	Source any
	Target any
}

// Error implements [error].
func (e ErrDecode) Error() string {
	return fmt.Sprintf("cannot decode %T into %T", e.Source, e.Target)
}

// ErrFileExists is returned when creating a file that already exists.
type ErrFileExists struct {
	Path string
}

// Error implements [error].
func (e ErrFileExists) Error() string {
	return fmt.Sprintf("file already exists: %s", e.Path)
}

// ErrCollectionNotFound is returned when a collection directory does not
// exist.
type ErrCollectionNotFound struct {
	Path string
}

// Error implements [error].
func (e ErrCollectionNotFound) Error() string {
	return fmt.Sprintf("collection does not exist: %s", e.Path)
}
