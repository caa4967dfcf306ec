package config

import "github.com/vinicius-lino-figueiredo/upim/domain"

// AliasValidator checks the option string of an alias.
type AliasValidator func(value string) error

// Option configures [Load].
type Option func(*loader)

// WithStorage sets the storage used to check which files exist.
func WithStorage(s domain.Storage) Option {
	return func(l *loader) {
		l.storage = s
	}
}

// WithAliasValidator sets the function every alias is checked with.
func WithAliasValidator(v AliasValidator) Option {
	return func(l *loader) {
		l.validateAlias = v
	}
}

// WithDecoder sets the decoder that fills [Config] from the merged settings.
func WithDecoder(d domain.Decoder) Option {
	return func(l *loader) {
		l.decoder = d
	}
}
