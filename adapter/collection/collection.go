// Package collection loads every record of a collection directory.
package collection

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/vinicius-lino-figueiredo/upim/adapter/contact"
	"github.com/vinicius-lino-figueiredo/upim/adapter/note"
	"github.com/vinicius-lino-figueiredo/upim/adapter/storage"
	"github.com/vinicius-lino-figueiredo/upim/domain"
	"github.com/vinicius-lino-figueiredo/upim/pkg/logger"
)

// Loader implements [domain.Loader].
type Loader struct {
	storage       domain.Storage
	noteReader    domain.NoteReader
	recordFactory domain.RecordFactory
	log           *logger.Logger
	workers       int
	skipInvalid   bool
}

// NewLoader returns a new implementation of [domain.Loader]. By default files
// are read from the local file system as contacts.
func NewLoader(options ...Option) domain.Loader {
	l := &Loader{
		storage:       storage.NewStorage(),
		noteReader:    note.NewReader(),
		recordFactory: contact.NewContact,
		log:           logger.Nop(),
		workers:       runtime.GOMAXPROCS(0),
	}
	for _, option := range options {
		option(l)
	}
	return l
}

// Load implements [domain.Loader]. Records are returned in path order.
func (l *Loader) Load(ctx context.Context, root string) ([]domain.Record, error) {
	exists, err := l.storage.Exists(root)
	if err != nil {
		return nil, errors.Wrapf(err, "collection %s", root)
	}
	if !exists {
		return nil, domain.ErrCollectionNotFound{Path: root}
	}

	var paths []string
	for path, err := range l.storage.WalkFiles(root) {
		if err != nil {
			return nil, errors.Wrapf(err, "walk %s", path)
		}
		paths = append(paths, path)
	}

	records := make([]domain.Record, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, path := range paths {
		g.Go(func() error {
			rec, err := l.loadFile(gctx, path)
			if err == nil {
				records[i] = rec
				return nil
			}
			if l.skipInvalid && gctx.Err() == nil {
				l.log.Warnw("skipping invalid file", "path", path, "error", err)
				return nil
			}
			return errors.Wrapf(err, "load %s", path)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	loaded := records[:0]
	for _, rec := range records {
		if rec != nil {
			loaded = append(loaded, rec)
		}
	}
	return loaded, nil
}

func (l *Loader) loadFile(ctx context.Context, path string) (domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := l.storage.ReadFileStream(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	n, err := l.noteReader.ReadNote(ctx, f)
	if err != nil {
		return nil, err
	}
	return l.recordFactory(path, n)
}
