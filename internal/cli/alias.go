package cli

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/vinicius-lino-figueiredo/upim/pkg/lexis"
)

// SubstituteParams replaces every $N in alias with params[N] and returns the
// result along with the number of distinct parameters used. A '$' preceded by
// a backslash is left as is.
func SubstituteParams(params []string, alias string) (string, int, error) {
	used := make(map[int]bool)
	res, err := substitute(alias, func(n int) (string, error) {
		if n >= len(params) {
			return "", ErrMissingParam{Index: n}
		}
		used[n] = true
		return params[n], nil
	})
	if err != nil {
		return "", 0, err
	}
	return res, len(used), nil
}

func substitute(alias string, param func(int) (string, error)) (string, error) {
	var b strings.Builder
	last := 0
	for i := 0; i < len(alias); i++ {
		if alias[i] != '$' || (i > 0 && alias[i-1] == '\\') {
			continue
		}

		end := i + 1
		for end < len(alias) && '0' <= alias[end] && alias[end] <= '9' {
			end++
		}
		if end == i+1 {
			return "", ErrInvalidParam{Offset: i}
		}
		n, err := strconv.Atoi(alias[i+1 : end])
		if err != nil {
			return "", ErrInvalidParam{Offset: i}
		}

		value, err := param(n)
		if err != nil {
			return "", err
		}
		b.WriteString(alias[last:i])
		b.WriteString(value)
		last = end
		i = end - 1
	}
	b.WriteString(alias[last:])
	return b.String(), nil
}

var filterEnd = []string{"'", `"`, " --"}

// SplitOptions splits the option string of an alias into arguments. Words are
// separated by spaces and may be quoted. The value of --filter runs up to the
// next " --" that is not quoted, so a query does not need to be quoted as a
// whole:
//
//	--filter 'Name,Phone' WHERE Name = '$0' --limit 1
func SplitOptions(s string) []string {
	var words []string
	s = strings.TrimSpace(s)
	for s != "" {
		var word string
		if strings.HasPrefix(s, "-") {
			word, s = cut(s, strings.IndexFunc(s, unicode.IsSpace))
			words = append(words, word)
			if word == "--filter" && s != "" && !strings.HasPrefix(s, "--") {
				word, s = cut(s, filterValueEnd(s))
				words = append(words, word)
			}
			continue
		}
		word, s = cut(s, wordEnd(s))
		words = append(words, lexis.Unquote(word))
	}
	return words
}

// cut splits s at end, or returns all of s when end is negative.
func cut(s string, end int) (string, string) {
	if end < 0 {
		end = len(s)
	}
	return strings.TrimSpace(s[:end]), strings.TrimSpace(s[end:])
}

func wordEnd(s string) int {
	if lexis.IsQuote(s[0]) {
		if n, _, err := lexis.ReadField(s); err == nil {
			return n
		}
	}
	return strings.IndexFunc(s, unicode.IsSpace)
}

func filterValueEnd(s string) int {
	pos := 0
	for {
		i, found := lexis.FindLeftmost(s[pos:], filterEnd)
		if i < 0 {
			return len(s)
		}
		i += pos
		if found == " --" {
			return i
		}
		n, _, err := lexis.ReadField(s[i:])
		if err != nil {
			// unterminated quote
			return len(s)
		}
		pos = i + n
	}
}

// ExpandAlias applies the options stored in an alias, after substituting the
// parameters given on the command line. Options given on the command line
// take precedence; filters from both are combined.
func (a *Args) ExpandAlias(value string) error {
	expanded, n, err := SubstituteParams(a.Params, value)
	if err != nil {
		return errors.Wrapf(err, "alias %s", a.Name)
	}
	if n != len(a.Params) {
		return errors.Wrapf(ErrParamCount{Expected: n, Received: len(a.Params)}, "alias %s", a.Name)
	}

	alias, err := parseAlias(expanded)
	if err != nil {
		return errors.Wrapf(err, "alias %s", a.Name)
	}
	a.merge(alias)
	return nil
}

// ValidateAlias checks that an alias only holds valid options. Parameters
// are replaced by 0, which is valid both quoted and as a number.
func ValidateAlias(value string) error {
	expanded, err := substitute(value, func(int) (string, error) {
		return "0", nil
	})
	if err != nil {
		return err
	}
	_, err = parseAlias(expanded)
	return err
}

// startupOptions are read before the alias is known.
var startupOptions = []string{"conf", "log-level"}

func parseAlias(value string) (*Args, error) {
	alias := &Args{}
	rest, err := newFlags(alias).parse(alias, SplitOptions(value))
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, ErrUnexpectedArgument{Arg: rest[0]}
	}
	for _, name := range startupOptions {
		if alias.set[name] {
			return nil, ErrOptionNotAllowed{Option: name}
		}
	}
	return alias, nil
}

func (a *Args) merge(alias *Args) {
	if !a.set["collection"] {
		a.Collection = alias.Collection
	}
	if !a.set["limit"] {
		a.Limit = alias.Limit
	}
	if !a.set["sort-a"] && !a.set["sort-d"] {
		a.Sort = alias.Sort
	}

	switch {
	case alias.Query == nil:
	case a.Query == nil:
		a.Query = alias.Query
	default:
		q := alias.Query.MergeWith(*a.Query)
		a.Query = &q
	}
}
