package fieldnavigator

// WithDefaultGroup sets the group used for addresses without a group
// qualifier.
func WithDefaultGroup(group string) Option {
	return func(fn *FieldNavigator) {
		fn.defaultGroup = group
	}
}

// Option configures the navigator through the functional options pattern.
type Option func(*FieldNavigator)
