// Package searcher contains the default [domain.Searcher] implementation.
package searcher

import (
	"context"
	"fmt"

	"github.com/vinicius-lino-figueiredo/upim/adapter/collection"
	"github.com/vinicius-lino-figueiredo/upim/adapter/comparer"
	"github.com/vinicius-lino-figueiredo/upim/adapter/cursor"
	"github.com/vinicius-lino-figueiredo/upim/adapter/decoder"
	"github.com/vinicius-lino-figueiredo/upim/adapter/fieldnavigator"
	"github.com/vinicius-lino-figueiredo/upim/adapter/matcher"
	"github.com/vinicius-lino-figueiredo/upim/adapter/projector"
	"github.com/vinicius-lino-figueiredo/upim/adapter/sorter"
	"github.com/vinicius-lino-figueiredo/upim/domain"
)

// Searcher implements [domain.Searcher].
type Searcher struct {
	loader domain.Loader
	mtchr  domain.Matcher
	cmpr   domain.Comparer
	fn     domain.FieldNavigator
	proj   domain.Projector
	sorter domain.Sorter
	curFac domain.CursorFactory
	dec    domain.Decoder
}

// NewSearcher returns a new implementation of [domain.Searcher].
func NewSearcher(opts ...Option) domain.Searcher {
	s := Searcher{
		cmpr:   comparer.NewComparer(),
		fn:     fieldnavigator.NewFieldNavigator(),
		curFac: cursor.NewCursor,
		dec:    decoder.NewDecoder(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.loader == nil {
		s.loader = collection.NewLoader()
	}
	if s.proj == nil {
		s.proj = projector.NewProjector(projector.WithFieldNavigator(s.fn))
	}
	if s.sorter == nil {
		s.sorter = sorter.NewSorter(
			sorter.WithComparer(s.cmpr),
			sorter.WithFieldNavigator(s.fn),
		)
	}
	if s.mtchr == nil {
		s.mtchr = matcher.NewMatcher(
			matcher.WithComparer(s.cmpr),
			matcher.WithFieldNavigator(s.fn),
		)
	}
	return &s
}

// Search implements [domain.Searcher]. Matching records are sorted, limited
// and then projected to the query's select list.
func (s *Searcher) Search(ctx context.Context, qry domain.Query, opts ...domain.SearchOption) (domain.Cursor, error) {
	var options domain.SearchOptions
	for _, opt := range opts {
		opt(&options)
	}
	if options.Collection == "" {
		return nil, domain.ErrNoCollection
	}

	recs, err := s.loader.Load(ctx, options.Collection)
	if err != nil {
		return nil, err
	}

	res, err := s.filter(recs, qry.Condition)
	if err != nil {
		return nil, err
	}

	res, err = s.sorter.Sort(res, options.Sort)
	if err != nil {
		return nil, fmt.Errorf("sorting: %w", err)
	}

	if options.Limit > 0 && len(res) > options.Limit {
		res = res[:options.Limit]
	}

	rows := make([]domain.Row, len(res))
	for i, rec := range res {
		rows[i] = s.proj.Project(rec, qry.Select)
	}
	return s.curFac(ctx, rows, domain.WithCursorDecoder(s.dec))
}

func (s *Searcher) filter(recs []domain.Record, cond domain.Condition) ([]domain.Record, error) {
	res := make([]domain.Record, 0, len(recs))
	for _, rec := range recs {
		matches, err := s.mtchr.Match(cond, rec)
		if err != nil {
			return nil, fmt.Errorf("matching %s: %w", rec.Path(), err)
		}
		if matches {
			res = append(res, rec)
		}
	}
	return res, nil
}
