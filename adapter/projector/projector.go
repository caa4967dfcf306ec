// Package projector contains the default [domain.Projector] implementation.
package projector

import (
	"github.com/vinicius-lino-figueiredo/upim/adapter/fieldnavigator"
	"github.com/vinicius-lino-figueiredo/upim/domain"
)

// Wildcard selects every field of a record.
const Wildcard = "*"

// Projector implements [domain.Projector].
type Projector struct {
	fn           domain.FieldNavigator
	defaultGroup string
}

// NewProjector returns a new implementation of [domain.Projector].
func NewProjector(opts ...Option) domain.Projector {
	p := Projector{defaultGroup: domain.DefaultGroup}
	for _, opt := range opts {
		opt(&p)
	}
	if p.fn == nil {
		p.fn = fieldnavigator.NewFieldNavigator(fieldnavigator.WithDefaultGroup(p.defaultGroup))
	}
	return &p
}

// Project implements [domain.Projector]. Fields are returned in selection
// order. [Wildcard] expands to every field of every group, in record order,
// with fields outside the default group written as "group:Field".
func (q *Projector) Project(rec domain.Record, fields []string) domain.Row {
	row := domain.Row{
		Name:   rec.Name(),
		Path:   rec.Path(),
		Values: make([]domain.Value, 0, len(fields)),
	}
	for _, field := range fields {
		if field == Wildcard {
			row.Values = append(row.Values, q.expand(rec)...)
			continue
		}
		value, found := q.fn.GetField(rec, field)
		row.Values = append(row.Values, domain.Value{Field: field, Value: value, Found: found})
	}
	return row
}

func (q *Projector) expand(rec domain.Record) []domain.Value {
	var values []domain.Value
	for _, group := range rec.Groups() {
		for _, f := range rec.Fields(group) {
			name := f.Name
			if group != q.defaultGroup {
				name = group + ":" + f.Name
			}
			values = append(values, domain.Value{Field: name, Value: f.Value, Found: true})
		}
	}
	return values
}
