package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/vinicius-lino-figueiredo/upim/adapter/collection"
	"github.com/vinicius-lino-figueiredo/upim/adapter/idgenerator"
	"github.com/vinicius-lino-figueiredo/upim/adapter/note"
	"github.com/vinicius-lino-figueiredo/upim/adapter/searcher"
	"github.com/vinicius-lino-figueiredo/upim/adapter/storage"
	"github.com/vinicius-lino-figueiredo/upim/domain"
	"github.com/vinicius-lino-figueiredo/upim/internal/config"
	"github.com/vinicius-lino-figueiredo/upim/pkg/logger"
)

const (
	suffixLength = 8
	dirMode      = 0o755
	fileMode     = 0o644
)

// App runs upim-contact commands against a configuration.
type App struct {
	cfg      *config.Config
	searcher domain.Searcher
	storage  domain.Storage
	writer   domain.NoteWriter
	idGen    domain.IDGenerator
	log      *logger.Logger
	out      io.Writer
}

// NewApp returns an App for the given configuration.
func NewApp(cfg *config.Config, options ...Option) *App {
	a := &App{
		cfg:     cfg,
		storage: storage.NewStorage(),
		writer:  note.NewWriter(),
		idGen:   idgenerator.NewIDGenerator(),
		log:     logger.Nop(),
		out:     os.Stdout,
	}
	for _, option := range options {
		option(a)
	}
	if a.searcher == nil {
		a.searcher = searcher.NewSearcher(searcher.WithLoader(collection.NewLoader(
			collection.WithStorage(a.storage),
			collection.WithLogger(a.log.WithComponent("collection")),
			collection.WithSkipInvalid(true),
		)))
	}
	return a
}

// Run executes the command described by args.
func (a *App) Run(ctx context.Context, args *Args) error {
	if args.Help {
		_, err := io.WriteString(a.out, Usage())
		return err
	}

	switch args.Command {
	case CommandNew:
		return a.create(ctx, args)
	case CommandAlias:
		value, ok := a.cfg.Aliases[args.Name]
		if !ok {
			return ErrUnknownAlias{Name: args.Name}
		}
		log := a.log.With("alias", args.Name)
		log.Debugw("expanding alias", "options", value, "params", args.Params)
		if err := args.ExpandAlias(value); err != nil {
			log.Debugw("alias expansion failed", "error", err)
			return err
		}
	}
	return a.search(ctx, args)
}

func (a *App) collectionPath(args *Args) (string, error) {
	name := args.Collection
	if name == "" {
		name = a.cfg.DefaultCollection
	}
	path, err := a.cfg.CollectionPath(name)
	if err != nil {
		return "", errors.Wrap(err, "resolving collection")
	}
	return path, nil
}

func (a *App) search(ctx context.Context, args *Args) error {
	dir, err := a.collectionPath(args)
	if err != nil {
		return err
	}

	qry := domain.Query{Select: []string{}, Condition: domain.All{}}
	if args.Query != nil {
		qry = *args.Query
	}
	if a.log.Enabled("debug") {
		a.log.Debugw("searching", "collection", dir, "query", qry.String(), "limit", args.Limit, "sort", args.Sort.Field)
	}

	cur, err := a.searcher.Search(ctx, qry,
		domain.WithCollection(dir),
		domain.WithLimit(args.Limit),
		domain.WithSort(args.Sort),
	)
	if err != nil {
		return errors.Wrap(err, "searching")
	}
	defer cur.Close()

	w := bufio.NewWriter(a.out)
	for cur.Next() {
		var row domain.Row
		if err := cur.Scan(ctx, &row); err != nil {
			return errors.Wrap(err, "reading result")
		}
		if _, err := fmt.Fprintln(w, a.format(row)); err != nil {
			return err
		}
	}
	if err := cur.Err(); err != nil {
		return err
	}
	return w.Flush()
}

// format joins the values of a row, or returns its name when nothing was
// selected.
func (a *App) format(row domain.Row) string {
	if len(row.Values) == 0 {
		return row.Name
	}
	values := make([]string, len(row.Values))
	for i, v := range row.Values {
		values[i] = v.Value
	}
	return strings.Join(values, a.cfg.FieldSeparator)
}

func (a *App) create(ctx context.Context, args *Args) error {
	var buf bytes.Buffer
	n := &domain.Note{Attributes: []domain.Field{{Name: "Name", Value: args.Name}}}
	if err := a.writer.WriteNote(ctx, &buf, n); err != nil {
		return errors.Wrap(err, "formatting contact")
	}

	dir, err := a.collectionPath(args)
	if err != nil {
		return err
	}
	if err := a.storage.EnsureDirectoryExists(dir, dirMode); err != nil {
		return errors.Wrapf(err, "creating %s", dir)
	}

	slug := Slug(args.Name)
	path := filepath.Join(dir, slug+".txt")
	err = a.storage.CreateFile(path, buf.Bytes(), fileMode)
	var exists domain.ErrFileExists
	if errors.As(err, &exists) {
		a.log.Infow("file name taken, adding a suffix", "path", path)
		id, idErr := a.idGen.GenerateID(suffixLength)
		if idErr != nil {
			return errors.Wrap(idErr, "generating file name")
		}
		path = filepath.Join(dir, slug+"-"+id+".txt")
		err = a.storage.CreateFile(path, buf.Bytes(), fileMode)
	}
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}

	_, err = fmt.Fprintln(a.out, path)
	return err
}

// Slug returns a file name for a contact name: lowercase letters and digits,
// with every other run of characters replaced by a single '-'.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return "contact"
	}
	return b.String()
}
