// Package fieldnavigator contains the default [domain.FieldNavigator]
// implementation, resolving "group:field" addresses.
package fieldnavigator

import (
	"strings"

	"github.com/vinicius-lino-figueiredo/upim/domain"
)

// FieldNavigator implements [domain.FieldNavigator].
type FieldNavigator struct {
	defaultGroup string
}

// NewFieldNavigator returns a new implementation of [domain.FieldNavigator].
func NewFieldNavigator(options ...Option) domain.FieldNavigator {
	fn := &FieldNavigator{defaultGroup: domain.DefaultGroup}
	for _, option := range options {
		option(fn)
	}
	return fn
}

// GetAddress implements [domain.FieldNavigator]. The address is split on its
// first colon; the group is lowercased and defaults to the navigator's
// default group.
func (fn *FieldNavigator) GetAddress(field string) (string, string) {
	group, name, found := strings.Cut(field, ":")
	if !found {
		return fn.defaultGroup, field
	}
	return strings.ToLower(strings.TrimSpace(group)), strings.TrimSpace(name)
}

// GetField implements [domain.FieldNavigator].
func (fn *FieldNavigator) GetField(rec domain.Record, field string) (string, bool) {
	group, name := fn.GetAddress(field)
	return rec.Lookup(group, name)
}
