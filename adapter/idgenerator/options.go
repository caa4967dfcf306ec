package idgenerator

import "io"

// Option configures an [IDGenerator].
type Option func(*IDGenerator)

// WithReader sets the source of the random bytes behind every UUID. It is
// mostly useful to make IDs predictable in tests.
func WithReader(r io.Reader) Option {
	return func(i *IDGenerator) {
		i.reader = r
	}
}
