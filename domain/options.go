package domain

import "context"

// RecordFactory builds a [Record] from a note loaded from the given path.
type RecordFactory = func(string, *Note) (Record, error)

// CursorFactory constructs [Cursor] instances from a set of rows with
// configurable options.
type CursorFactory = func(context.Context, []Row, ...CursorOption) (Cursor, error)

// WithCollection sets the directory the search reads records from.
func WithCollection(path string) SearchOption {
	return func(so *SearchOptions) {
		so.Collection = path
	}
}

// WithLimit sets the maximum number of rows to return. Zero or less means no
// limit.
func WithLimit(l int) SearchOption {
	return func(so *SearchOptions) {
		so.Limit = l
	}
}

// WithSort specifies the sort order for search results.
func WithSort(s Sort) SearchOption {
	return func(so *SearchOptions) {
		so.Sort = s
	}
}

// SearchOption configures search behavior through the functional options
// pattern.
type SearchOption func(*SearchOptions)

// SearchOptions contains parameters for customizing search execution.
type SearchOptions struct {
	// Collection is the directory containing the records.
	Collection string
	// Limit specifies the maximum number of rows to return.
	Limit int
	// Sort specifies the sort order for results.
	Sort Sort
}

// WithCursorDecoder sets the decoder used by [Cursor.Scan].
func WithCursorDecoder(d Decoder) CursorOption {
	return func(co *CursorOptions) {
		co.Decoder = d
	}
}

// CursorOption configures cursor behavior through the functional options
// pattern.
type CursorOption func(*CursorOptions)

// CursorOptions contains parameters for customizing cursors.
type CursorOptions struct {
	// Decoder converts rows into user types.
	Decoder Decoder
}
