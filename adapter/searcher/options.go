package searcher

import "github.com/vinicius-lino-figueiredo/upim/domain"

// WithLoader sets the loader that reads the records of a collection.
func WithLoader(l domain.Loader) Option {
	return func(s *Searcher) {
		s.loader = l
	}
}

// WithMatcher sets the matcher implementation for condition evaluations.
func WithMatcher(m domain.Matcher) Option {
	return func(s *Searcher) {
		s.mtchr = m
	}
}

// WithComparer sets the comparer implementation used by the default matcher
// and sorter.
func WithComparer(c domain.Comparer) Option {
	return func(s *Searcher) {
		s.cmpr = c
	}
}

// WithFieldNavigator sets the field navigator used by the default matcher,
// sorter and projector.
func WithFieldNavigator(f domain.FieldNavigator) Option {
	return func(s *Searcher) {
		s.fn = f
	}
}

// WithProjector sets the implementation that will be used to project the
// matching records.
func WithProjector(p domain.Projector) Option {
	return func(s *Searcher) {
		s.proj = p
	}
}

// WithSorter sets the implementation that orders the matching records.
func WithSorter(srt domain.Sorter) Option {
	return func(s *Searcher) {
		s.sorter = srt
	}
}

// WithCursorFactory sets the function that wraps results in a cursor.
func WithCursorFactory(cf domain.CursorFactory) Option {
	return func(s *Searcher) {
		s.curFac = cf
	}
}

// WithDecoder sets the decoder given to every cursor.
func WithDecoder(d domain.Decoder) Option {
	return func(s *Searcher) {
		s.dec = d
	}
}

// Option configures searcher behavior through the functional options
// pattern.
type Option func(*Searcher)
