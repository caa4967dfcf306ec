// Package comparer contains the default [domain.Comparer] implementation.
package comparer

import (
	"cmp"
	"math"
	"strconv"
	"strings"

	"github.com/vinicius-lino-figueiredo/upim/domain"
)

// ErrNotNumber is returned by [Comparer.CompareNumbers] when a value cannot
// be read as a number.
type ErrNotNumber struct {
	Value string
}

// Error implements [error].
func (e ErrNotNumber) Error() string {
	return strconv.Quote(e.Value) + " is not a number"
}

// Comparer implements [domain.Comparer].
type Comparer struct{}

// NewComparer returns a new implementation of [domain.Comparer].
func NewComparer() domain.Comparer {
	return &Comparer{}
}

// CompareNumbers implements [domain.Comparer].
func (c *Comparer) CompareNumbers(a, b string) (int, error) {
	x, err := parseNumber(a)
	if err != nil {
		return 0, err
	}
	y, err := parseNumber(b)
	if err != nil {
		return 0, err
	}
	return cmp.Compare(x, y), nil
}

// Compare implements [domain.Comparer]. Numbers sort before text, and text is
// compared ignoring case, falling back to a byte comparison for values that
// only differ in case.
func (c *Comparer) Compare(a, b string) int {
	x, errA := parseNumber(a)
	y, errB := parseNumber(b)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(x, y)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	if res := strings.Compare(strings.ToLower(a), strings.ToLower(b)); res != 0 {
		return res
	}
	return strings.Compare(a, b)
}

func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) {
		return 0, ErrNotNumber{Value: s}
	}
	return f, nil
}
