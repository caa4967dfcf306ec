package collection

import (
	"github.com/vinicius-lino-figueiredo/upim/domain"
	"github.com/vinicius-lino-figueiredo/upim/pkg/logger"
)

// Option configures a [Loader].
type Option func(*Loader)

// WithStorage sets the storage the collection is read from.
func WithStorage(s domain.Storage) Option {
	return func(l *Loader) {
		l.storage = s
	}
}

// WithNoteReader sets the reader used to parse every file.
func WithNoteReader(r domain.NoteReader) Option {
	return func(l *Loader) {
		l.noteReader = r
	}
}

// WithRecordFactory sets the function that builds records from notes.
func WithRecordFactory(f domain.RecordFactory) Option {
	return func(l *Loader) {
		l.recordFactory = f
	}
}

// WithLogger sets the logger used to report skipped files.
func WithLogger(log *logger.Logger) Option {
	return func(l *Loader) {
		l.log = log
	}
}

// WithWorkers sets how many files are read at the same time. Values lower
// than one are ignored.
func WithWorkers(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithSkipInvalid makes the loader log and skip files that cannot be read as
// records instead of failing.
func WithSkipInvalid(skip bool) Option {
	return func(l *Loader) {
		l.skipInvalid = skip
	}
}
