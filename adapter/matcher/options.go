package matcher

import "github.com/vinicius-lino-figueiredo/upim/domain"

// WithComparer sets the comparer implementation for numeric comparisons
// during matching.
func WithComparer(c domain.Comparer) Option {
	return func(mo *Matcher) {
		mo.comparer = c
	}
}

// WithFieldNavigator sets the field navigator for accessing record fields
// during matching.
func WithFieldNavigator(f domain.FieldNavigator) Option {
	return func(mo *Matcher) {
		mo.fieldNavigator = f
	}
}

// Option configures matcher behavior through the functional options pattern.
type Option func(*Matcher)
