package cli

import (
	"io"

	"github.com/vinicius-lino-figueiredo/upim/domain"
	"github.com/vinicius-lino-figueiredo/upim/pkg/logger"
)

// Option configures an [App].
type Option func(*App)

// WithSearcher sets the searcher used to run queries.
func WithSearcher(s domain.Searcher) Option {
	return func(a *App) {
		a.searcher = s
	}
}

// WithStorage sets the storage new contacts are written to.
func WithStorage(s domain.Storage) Option {
	return func(a *App) {
		a.storage = s
	}
}

// WithNoteWriter sets the writer that formats new contacts.
func WithNoteWriter(w domain.NoteWriter) Option {
	return func(a *App) {
		a.writer = w
	}
}

// WithIDGenerator sets the generator of file name suffixes.
func WithIDGenerator(g domain.IDGenerator) Option {
	return func(a *App) {
		a.idGen = g
	}
}

// WithLogger sets the application logger.
func WithLogger(l *logger.Logger) Option {
	return func(a *App) {
		a.log = l
	}
}

// WithOutput sets where results are printed.
func WithOutput(w io.Writer) Option {
	return func(a *App) {
		a.out = w
	}
}
