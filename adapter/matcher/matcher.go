// Package matcher contains the default implementation of [domain.Matcher],
// evaluating parsed conditions against records.
package matcher

import (
	"regexp"
	"sync"

	"github.com/vinicius-lino-figueiredo/upim/adapter/comparer"
	"github.com/vinicius-lino-figueiredo/upim/adapter/fieldnavigator"
	"github.com/vinicius-lino-figueiredo/upim/domain"
)

// Matcher implements [domain.Matcher]. Conditions are never modified, so a
// single Matcher and condition can be shared by concurrent callers.
type Matcher struct {
	comparer       domain.Comparer
	fieldNavigator domain.FieldNavigator
	patterns       sync.Map
}

// NewMatcher returns a new implementation of domain.Matcher.
func NewMatcher(options ...Option) domain.Matcher {
	m := &Matcher{
		comparer:       comparer.NewComparer(),
		fieldNavigator: fieldnavigator.NewFieldNavigator(),
	}

	for _, option := range options {
		option(m)
	}

	return m
}

// Match implements [domain.Matcher]. The only error returned is
// [domain.ErrUnsupportedFunction].
func (m *Matcher) Match(cond domain.Condition, rec domain.Record) (bool, error) {
	switch c := cond.(type) {
	case nil, domain.All:
		return true, nil
	case domain.Filter:
		return m.matchFilter(c, rec), nil
	case domain.FunctionClause:
		return m.matchFunction(c.Function, rec)
	case domain.And:
		ok, err := m.Match(c.Left, rec)
		if err != nil || !ok {
			return false, err
		}
		return m.Match(c.Right, rec)
	case domain.Or:
		ok, err := m.Match(c.Left, rec)
		if err != nil || ok {
			return ok, err
		}
		return m.Match(c.Right, rec)
	}
	return false, nil
}

func (m *Matcher) matchFilter(f domain.Filter, rec domain.Record) bool {
	value, ok := m.fieldNavigator.GetField(rec, f.Field)
	if !ok {
		return f.Op == domain.Not
	}

	switch f.Op {
	case domain.EqualTo:
		return value == f.Value
	case domain.Not:
		return value != f.Value
	}

	comp, err := m.comparer.CompareNumbers(value, f.Value)
	if err != nil {
		return false
	}
	switch f.Op {
	case domain.LessThan:
		return comp < 0
	case domain.LessEq:
		return comp <= 0
	case domain.GreaterThan:
		return comp > 0
	case domain.GreaterEq:
		return comp >= 0
	}
	return false
}

func (m *Matcher) matchFunction(fn domain.Function, rec domain.Record) (bool, error) {
	re, ok := fn.(domain.Regex)
	if !ok {
		return false, domain.ErrUnsupportedFunction{Function: fn}
	}

	value, ok := m.fieldNavigator.GetField(rec, re.Field)
	if !ok {
		return false, nil
	}

	pattern, err := m.compile(re.Pattern)
	if err != nil {
		return false, nil
	}
	return pattern.MatchString(value), nil
}

// compile returns the compiled pattern, caching it for later calls.
func (m *Matcher) compile(expr string) (*regexp.Regexp, error) {
	if cached, ok := m.patterns.Load(expr); ok {
		return cached.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	actual, _ := m.patterns.LoadOrStore(expr, re)
	return actual.(*regexp.Regexp), nil
}
