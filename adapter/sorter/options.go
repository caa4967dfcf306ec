package sorter

import "github.com/vinicius-lino-figueiredo/upim/domain"

// Option configures a [Sorter].
type Option func(*Sorter)

// WithComparer sets the comparer used to order field values.
func WithComparer(c domain.Comparer) Option {
	return func(s *Sorter) {
		s.comparer = c
	}
}

// WithFieldNavigator sets the navigator used to read the sorted field.
func WithFieldNavigator(fn domain.FieldNavigator) Option {
	return func(s *Sorter) {
		s.fieldNavigator = fn
	}
}
