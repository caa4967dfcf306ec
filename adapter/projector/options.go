package projector

import "github.com/vinicius-lino-figueiredo/upim/domain"

// WithFieldNavigator sets the [domain.FieldNavigator] that will be used by
// [Projector].
func WithFieldNavigator(fn domain.FieldNavigator) Option {
	return func(p *Projector) {
		p.fn = fn
	}
}

// WithDefaultGroup sets the group whose fields are not qualified when a
// wildcard is expanded.
func WithDefaultGroup(group string) Option {
	return func(p *Projector) {
		p.defaultGroup = group
	}
}

// Option configures projector behavior through the functional options pattern.
type Option func(*Projector)
