package sorter

import (
	"github.com/vinicius-lino-figueiredo/bst"
	"github.com/vinicius-lino-figueiredo/upim/domain"
)

// sortKey is the value a record holds for the sorted field.
type sortKey struct {
	value string
	found bool
}

type bstComparer struct {
	comparer   domain.Comparer
	descending bool
}

// newBSTComparer returns a tree comparer for sort keys. Values are positions
// in the input, so each one is distinct.
func newBSTComparer(comparer domain.Comparer, descending bool) bst.Comparer[sortKey, int] {
	return &bstComparer{
		comparer:   comparer,
		descending: descending,
	}
}

// CompareKeys implements bst.Comparer. Missing values come first.
func (bc *bstComparer) CompareKeys(a sortKey, b sortKey) (int, error) {
	var c int
	switch {
	case !a.found && !b.found:
		c = 0
	case !a.found:
		c = -1
	case !b.found:
		c = 1
	default:
		c = bc.comparer.Compare(a.value, b.value)
	}
	if bc.descending {
		c = -c
	}
	return c, nil
}

// CompareValues implements bst.Comparer.
func (bc *bstComparer) CompareValues(a int, b int) (bool, error) {
	return a == b, nil
}
