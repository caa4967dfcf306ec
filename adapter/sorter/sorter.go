// Package sorter contains the default [domain.Sorter] implementation.
package sorter

import (
	"github.com/vinicius-lino-figueiredo/bst/adapter/avl"
	"github.com/vinicius-lino-figueiredo/upim/adapter/comparer"
	"github.com/vinicius-lino-figueiredo/upim/adapter/fieldnavigator"
	"github.com/vinicius-lino-figueiredo/upim/domain"
)

// Sorter implements [domain.Sorter].
type Sorter struct {
	comparer       domain.Comparer
	fieldNavigator domain.FieldNavigator
}

// NewSorter returns a new implementation of [domain.Sorter].
func NewSorter(options ...Option) domain.Sorter {
	s := &Sorter{
		comparer:       comparer.NewComparer(),
		fieldNavigator: fieldnavigator.NewFieldNavigator(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Sort implements [domain.Sorter]. Records with equal values keep their
// relative order. Ascending order places records missing the field first,
// descending order places them last.
func (s *Sorter) Sort(recs []domain.Record, sort domain.Sort) ([]domain.Record, error) {
	if sort.Field == "" || len(recs) < 2 {
		return recs, nil
	}

	tree := avl.NewBST(false, 8, newBSTComparer(s.comparer, sort.Descending))
	for i, rec := range recs {
		value, found := s.fieldNavigator.GetField(rec, sort.Field)
		if err := tree.Insert(sortKey{value: value, found: found}, i); err != nil {
			return nil, err
		}
	}

	sorted := make([]domain.Record, 0, len(recs))
	for i := range tree.GetAll() {
		sorted = append(sorted, recs[i])
	}
	return sorted, nil
}
