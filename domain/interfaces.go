// Package domain contains domain-specific types and interfaces for upim.
//
// This package defines the parsed form of queries, the records they are
// evaluated against and the interfaces that must be implemented by adapters,
// as well as functional options for configuring searches and cursors.
package domain

import (
	"context"
	"io"
	"iter"
	"os"
)

// Record is the structured data of a contact, organized into named groups of
// fields. Group names are case-insensitive.
type Record interface {
	// Name returns the display name of the record.
	Name() string
	// Path returns the file the record was loaded from, if any.
	Path() string
	// Lookup returns the first value of field inside group.
	Lookup(group, field string) (string, bool)
	// Groups lists the group names in the order they were first seen.
	Groups() []string
	// Fields returns every field of group, in order.
	Fields(group string) []Field
}

// Parser turns query text into its parsed form.
type Parser interface {
	// ParseQuery parses a select list followed by an optional WHERE
	// clause.
	ParseQuery(string) (Query, error)
	// ParseCondition parses a predicate.
	ParseCondition(string) (Condition, error)
	// ParseFunction parses a single function clause.
	ParseFunction(string) (Function, error)
}

// Matcher evaluates conditions against records.
type Matcher interface {
	// Match reports whether the record satisfies the condition.
	Match(Condition, Record) (bool, error)
}

// Comparer compares field values.
type Comparer interface {
	// CompareNumbers parses both values as numbers and compares them,
	// returning an error if either is not a number.
	CompareNumbers(string, string) (int, error)
	// Compare orders two values, numerically when both are numbers and
	// lexically otherwise.
	Compare(string, string) int
}

// FieldNavigator resolves query field addresses against records.
type FieldNavigator interface {
	// GetAddress splits a field address into its group and field name.
	GetAddress(string) (group string, field string)
	// GetField returns the value found at the given address.
	GetField(Record, string) (string, bool)
}

// Projector extracts the selected fields from a record.
type Projector interface {
	// Project returns a row with one value per selected field.
	Project(Record, []string) Row
}

// Sorter orders records.
type Sorter interface {
	// Sort returns the records ordered as specified.
	Sort([]Record, Sort) ([]Record, error)
}

// Decoder converts between different data representations.
type Decoder interface {
	// Decode converts source into the value pointed to by target.
	Decode(any, any) error
}

// Cursor provides iteration over search results.
type Cursor interface {
	// Scan decodes the current row into target.
	Scan(ctx context.Context, target any) error
	// Next advances the cursor to the next row, returning true if
	// available.
	Next() bool
	// Err returns any error that occurred during iteration.
	Err() error
	// Close releases cursor resources and should be called when done.
	Close() error
}

// Storage provides the file operations needed to manage a collection.
type Storage interface {
	// Exists checks if a file exists.
	Exists(string) (bool, error)
	// WalkFiles yields every regular file below a directory.
	WalkFiles(string) iter.Seq2[string, error]
	// ReadFileStream opens a file for streaming reads.
	ReadFileStream(string) (io.ReadCloser, error)
	// CreateFile writes a new file, failing if it already exists.
	CreateFile(string, []byte, os.FileMode) error
	// EnsureDirectoryExists creates a directory and its parents if needed.
	EnsureDirectoryExists(string, os.FileMode) error
}

// NoteReader parses notes.
type NoteReader interface {
	// ReadNote reads a whole note from the reader.
	ReadNote(context.Context, io.Reader) (*Note, error)
}

// NoteWriter serializes notes.
type NoteWriter interface {
	// WriteNote writes the textual form of a note.
	WriteNote(context.Context, io.Writer, *Note) error
}

// Loader reads every record of a collection.
type Loader interface {
	// Load returns the records found below the collection directory.
	Load(context.Context, string) ([]Record, error)
}

// IDGenerator generates unique identifiers.
type IDGenerator interface {
	// GenerateID returns a new identifier with the given length.
	GenerateID(int) (string, error)
}

// Searcher runs queries against a collection.
type Searcher interface {
	// Search returns a cursor over the records matching the query.
	Search(context.Context, Query, ...SearchOption) (Cursor, error)
}
