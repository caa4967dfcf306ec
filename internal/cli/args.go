// Package cli implements the upim-contact command line: argument parsing,
// alias expansion and the commands themselves.
package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/vinicius-lino-figueiredo/upim/adapter/parser"
	"github.com/vinicius-lino-figueiredo/upim/domain"
)

// Command is what upim-contact was asked to do.
type Command uint8

const (
	// CommandSearch lists the contacts matching the given filters.
	CommandSearch Command = iota
	// CommandAlias runs the options stored under an alias.
	CommandAlias
	// CommandNew creates a contact.
	CommandNew
)

// Args holds the parsed command line.
type Args struct {
	Command Command
	// Name is the alias or, for CommandNew, the contact name.
	Name   string
	Params []string

	Collection string
	ConfPath   string
	// Query is nil when no filter was given.
	Query    *domain.Query
	Limit    int
	Sort     domain.Sort
	LogLevel string
	Help     bool

	set map[string]bool
}

type flags struct {
	fs      *pflag.FlagSet
	filters []string
	limit   string
}

func newFlags(a *Args) *flags {
	f := &flags{fs: pflag.NewFlagSet("upim-contact", pflag.ContinueOnError)}
	f.fs.SetOutput(io.Discard)
	f.fs.SetNormalizeFunc(normalizeSort)

	f.fs.StringVarP(&a.Collection, "collection", "C", "", "search the named collection instead of the default one")
	f.fs.StringVar(&a.ConfPath, "conf", "", "read this configuration file")
	f.fs.StringArrayVar(&f.filters, "filter", nil, "query to run; repeated filters are combined with AND")
	f.fs.StringVar(&f.limit, "limit", "", "maximum number of contacts to list")
	f.fs.Var(&sortValue{sort: &a.Sort}, "sort-a", "sort ascending by `field`")
	f.fs.Var(&sortValue{sort: &a.Sort, descending: true}, "sort-d", "sort descending by `field`")
	f.fs.StringVar(&a.LogLevel, "log-level", "", "debug, info, warn or error")
	f.fs.BoolVarP(&a.Help, "help", "h", false, "show this help")
	return f
}

// parse reads args into a and returns the positional arguments.
func (f *flags) parse(a *Args, args []string) ([]string, error) {
	if err := f.fs.Parse(args); err != nil {
		return nil, err
	}

	a.set = make(map[string]bool)
	f.fs.Visit(func(fl *pflag.Flag) {
		a.set[fl.Name] = true
	})

	p := parser.NewParser()
	for _, filter := range f.filters {
		q, err := p.ParseQuery(filter)
		if err != nil {
			return nil, errors.Wrapf(err, "--filter %s", filter)
		}
		if a.Query != nil {
			q = a.Query.MergeWith(q)
		}
		a.Query = &q
	}

	// invalid limits are ignored
	if n, err := strconv.Atoi(strings.TrimSpace(f.limit)); err == nil && n > 0 {
		a.Limit = n
	} else {
		delete(a.set, "limit")
	}
	return f.fs.Args(), nil
}

// Parse parses the command line, without the program name.
func Parse(args []string) (*Args, error) {
	a := &Args{}
	rest, err := newFlags(a).parse(a, args)
	if err != nil {
		return nil, err
	}

	switch {
	case len(rest) == 0:
		a.Command = CommandSearch
	case rest[0] == "new":
		if len(rest) < 2 {
			return nil, ErrMissingName
		}
		a.Command = CommandNew
		a.Name = strings.Join(rest[1:], " ")
	default:
		a.Command = CommandAlias
		a.Name = rest[0]
		a.Params = rest[1:]
	}
	return a, nil
}

// Usage returns the description of every option.
func Usage() string {
	var b strings.Builder
	b.WriteString("Usage:\n")
	b.WriteString("  upim-contact [options] [ALIAS [PARAMS...]]\n")
	b.WriteString("  upim-contact [options] new NAME\n\n")
	b.WriteString("Options:\n")
	b.WriteString(newFlags(&Args{}).fs.FlagUsages())
	return b.String()
}

// normalizeSort accepts the long spellings of the sort options.
func normalizeSort(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	switch {
	case strings.HasPrefix(name, "sort-a"):
		return "sort-a"
	case strings.HasPrefix(name, "sort-d"):
		return "sort-d"
	}
	return pflag.NormalizedName(name)
}

// sortValue is a [pflag.Value] sharing its target with the other sort option,
// so the last one given wins.
type sortValue struct {
	sort       *domain.Sort
	descending bool
}

// String implements [pflag.Value].
func (s *sortValue) String() string {
	if s.sort == nil || s.sort.Descending != s.descending {
		return ""
	}
	return s.sort.Field
}

// Set implements [pflag.Value].
func (s *sortValue) Set(field string) error {
	*s.sort = domain.Sort{Field: field, Descending: s.descending}
	return nil
}

// Type implements [pflag.Value].
func (s *sortValue) Type() string {
	return "string"
}
