// Package upim provides the query language used to search contacts stored as
// plain-text notes.
//
// A query selects fields and filters records:
//
//	'Name, Phone' WHERE Phone NOT EMPTY AND REGEX(Email, '@example\.com$')
//
// Queries are parsed with [ParseQuery] and evaluated against records with
// [Match]. To search a whole collection directory, create a [Searcher] by
// calling [NewSearcher].
package upim

import (
	"github.com/vinicius-lino-figueiredo/upim/adapter/contact"
	"github.com/vinicius-lino-figueiredo/upim/adapter/matcher"
	"github.com/vinicius-lino-figueiredo/upim/adapter/note"
	"github.com/vinicius-lino-figueiredo/upim/adapter/parser"
	"github.com/vinicius-lino-figueiredo/upim/adapter/searcher"
	"github.com/vinicius-lino-figueiredo/upim/domain"
)

var (
	// ErrCursorClosed is returned when operating on a closed [Cursor].
	ErrCursorClosed = domain.ErrCursorClosed
	// ErrScanBeforeNext is returned when calling [Cursor.Scan] before
	// calling [Cursor.Next].
	ErrScanBeforeNext = domain.ErrScanBeforeNext
	// ErrTargetNil is returned when a nil target is given to [Cursor.Scan].
	ErrTargetNil = domain.ErrTargetNil
	// ErrContactWithoutName is returned by [NewContact] for notes without
	// any name attribute.
	ErrContactWithoutName = domain.ErrContactWithoutName
	// ErrNoCollection is returned by [Searcher.Search] when no collection
	// is given with [WithCollection].
	ErrNoCollection = domain.ErrNoCollection
)

// ErrMalformedField is returned for empty field names or field lists missing
// their closing quote.
type ErrMalformedField = domain.ErrMalformedField

// ErrInvalidFieldName is returned for field names holding a reserved keyword
// or a quote character.
type ErrInvalidFieldName = domain.ErrInvalidFieldName

// ErrUnknownOperator is returned when a comparison has no valid operator.
type ErrUnknownOperator = domain.ErrUnknownOperator

// ErrUnbalancedParenthesis is returned when parentheses in a condition do not
// match.
type ErrUnbalancedParenthesis = domain.ErrUnbalancedParenthesis

// ErrMissingWhereClause is returned when something other than WHERE follows
// the field list.
type ErrMissingWhereClause = domain.ErrMissingWhereClause

// ErrUnquotedString is returned for comparison values that are neither
// quoted, numbers nor EMPTY.
type ErrUnquotedString = domain.ErrUnquotedString

// ErrInvalidOperatorForType is returned when an ordering operator is used
// with a string value.
type ErrInvalidOperatorForType = domain.ErrInvalidOperatorForType

// ErrInvalidCondition is returned for conditions that cannot be parsed.
type ErrInvalidCondition = domain.ErrInvalidCondition

// ErrFunctionParse is returned when a function clause is malformed. Its Kind
// tells what went wrong.
type ErrFunctionParse = domain.ErrFunctionParse

// ErrUnsupportedFunction is returned by [Match] for functions that parse but
// cannot be evaluated.
type ErrUnsupportedFunction = domain.ErrUnsupportedFunction

// ErrInvalidNote is returned when a note header line cannot be read.
type ErrInvalidNote = domain.ErrInvalidNote

// ErrCollectionNotFound is returned when the collection directory does not
// exist.
type ErrCollectionNotFound = domain.ErrCollectionNotFound

// Query is a parsed query: the selected fields and a [Condition].
type Query = domain.Query

// Condition is the parsed form of a WHERE clause.
type Condition = domain.Condition

// Function is a parsed function clause.
type Function = domain.Function

// Record is a contact as seen by queries: named groups of fields.
type Record = domain.Record

// Note is a parsed plain-text note.
type Note = domain.Note

// Row is a record that matched a query, with its selected values.
type Row = domain.Row

// Sort specifies the field search results are ordered by.
type Sort = domain.Sort

// Cursor iterates over search results.
type Cursor = domain.Cursor

// Searcher runs queries against a collection directory.
type Searcher = domain.Searcher

// SearchOption configures [Searcher.Search].
type SearchOption = domain.SearchOption

var defaultParser = parser.NewParser()

var defaultMatcher = matcher.NewMatcher()

// ParseQuery parses a query: an optional field list followed by an optional
// WHERE clause.
func ParseQuery(s string) (Query, error) {
	return defaultParser.ParseQuery(s)
}

// ParseCondition parses the text of a WHERE clause.
func ParseCondition(s string) (Condition, error) {
	return defaultParser.ParseCondition(s)
}

// ParseFunction parses a single function clause, such as
// REGEX(Email, '@example').
func ParseFunction(s string) (Function, error) {
	return defaultParser.ParseFunction(s)
}

// Match reports whether rec satisfies cond.
func Match(cond Condition, rec Record) (bool, error) {
	return defaultMatcher.Match(cond, rec)
}

// ParseNote parses the text of a note.
func ParseNote(text string) (*Note, error) {
	return note.Parse(text)
}

// NewContact builds a [Record] from a note. Nested notes tagged with a group
// name add their attributes to that group.
func NewContact(path string, n *Note) (Record, error) {
	return contact.NewContact(path, n)
}

// NewSearcher creates a [Searcher]. Every component it uses can be replaced
// with the options in package searcher.
func NewSearcher(options ...searcher.Option) Searcher {
	return searcher.NewSearcher(options...)
}

// WithCollection sets the directory [Searcher.Search] reads records from.
func WithCollection(path string) SearchOption {
	return domain.WithCollection(path)
}

// WithLimit sets the maximum number of rows to return.
func WithLimit(l int) SearchOption {
	return domain.WithLimit(l)
}

// WithSort specifies the order of search results.
func WithSort(s Sort) SearchOption {
	return domain.WithSort(s)
}
