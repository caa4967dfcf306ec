package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vinicius-lino-figueiredo/upim/domain"
	"github.com/vinicius-lino-figueiredo/upim/pkg/lexis"
)

// ParseFunction implements [domain.Parser]. It accepts
//
//	REGEX(field, 'pattern')
//	variable = REF(field)
//	variable = REF(SPLIT(field, 'c'))
//	variable = SPLIT(field, 'c')
func (p *Parser) ParseFunction(s string) (domain.Function, error) {
	s = strings.TrimSpace(s)

	if lexis.HasPrefixFold(s, "REGEX(") {
		return parseRegex(s)
	}
	if lexis.HasPrefixFold(s, "REF(") || lexis.HasPrefixFold(s, "SPLIT(") {
		return nil, funcErr(domain.NoVariableAssignment, s)
	}

	end := strings.IndexAny(s, "= \t")
	if end < 0 {
		return nil, funcErr(domain.InvalidOperator, s)
	}
	variable := s[:end]

	rest := strings.TrimLeft(s[end:], " \t")
	op := readOperator(rest)
	if op != "=" {
		return nil, funcErr(domain.InvalidOperator, op)
	}
	rest = strings.TrimSpace(rest[len(op):])

	var fn domain.Function
	var err error
	switch {
	case lexis.HasPrefixFold(rest, "REF("):
		fn, err = parseRef(variable, rest)
	case lexis.HasPrefixFold(rest, "SPLIT("):
		fn, err = parseSplit(variable, rest)
	default:
		return nil, funcErr(domain.UnknownFunction, rest)
	}
	if err != nil {
		return nil, err
	}

	if !validVariable(variable) {
		return nil, funcErr(domain.NoVariableAssignment, variable)
	}
	return fn, nil
}

func funcErr(kind domain.FunctionErrorKind, detail string) error {
	return domain.ErrFunctionParse{Kind: kind, Detail: detail}
}

// readOperator returns the comparison operator s starts with, if any.
func readOperator(s string) string {
	n := 0
	for n < len(s) && strings.IndexByte("=<>", s[n]) >= 0 {
		n++
	}
	if n == 0 && lexis.HasPrefixFold(s, "NOT") {
		return s[:3]
	}
	return s[:n]
}

// validVariable reports whether s can name a variable: a letter or underscore
// followed by letters, digits or underscores.
func validVariable(s string) bool {
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return s != ""
}

// callArgs returns the text between the parentheses of the call s, which must
// start with name immediately followed by "(". Nothing may follow the closing
// parenthesis.
func callArgs(s, name string) (string, error) {
	n, inner, err := lexis.GetParenthesized(s[len(name):])
	if err != nil {
		return "", funcErr(domain.MissingClosingParenthesis, s)
	}
	if trailing := strings.TrimSpace(s[len(name)+n:]); trailing != "" {
		return "", funcErr(domain.InvalidArguments, s)
	}
	return strings.TrimSpace(inner), nil
}

// splitArgs splits a two argument list on its first comma. Field names
// cannot contain commas, so the second argument keeps any other one.
func splitArgs(inner string) (string, string, bool) {
	field, arg, found := strings.Cut(inner, ",")
	return strings.TrimSpace(field), strings.TrimSpace(arg), found
}

func fieldArg(s string) (string, error) {
	name := lexis.Unquote(s)
	if !lexis.ValidFieldName(name) {
		return "", domain.ErrInvalidFieldName{Name: name}
	}
	return name, nil
}

func parseRegex(s string) (domain.Function, error) {
	inner, err := callArgs(s, "REGEX")
	if err != nil {
		return nil, err
	}
	arg, quoted, found := splitArgs(inner)
	if !found || !lexis.IsQuoted(quoted) {
		return nil, funcErr(domain.InvalidArguments, s)
	}

	field, err := fieldArg(arg)
	if err != nil {
		return nil, err
	}

	pattern := lexis.Unquote(quoted)
	if _, err := regexp.Compile(pattern); err != nil {
		return nil, funcErr(domain.InvalidArguments, err.Error())
	}
	return domain.Regex{Field: field, Pattern: pattern}, nil
}

func parseRef(variable, s string) (domain.Function, error) {
	inner, err := callArgs(s, "REF")
	if err != nil {
		return nil, err
	}

	if lexis.HasPrefixFold(inner, "SPLIT(") {
		split, err := parseSplit(variable, inner)
		if err != nil {
			return nil, err
		}
		return domain.Ref{Variable: variable, Split: &split}, nil
	}

	if strings.Contains(inner, ",") {
		return nil, funcErr(domain.InvalidArguments, s)
	}
	field, err := fieldArg(inner)
	if err != nil {
		return nil, err
	}
	return domain.Ref{Variable: variable, Field: field}, nil
}

func parseSplit(variable, s string) (domain.Split, error) {
	inner, err := callArgs(s, "SPLIT")
	if err != nil {
		return domain.Split{}, err
	}
	arg, quoted, found := splitArgs(inner)
	if !found || !lexis.IsQuoted(quoted) {
		return domain.Split{}, funcErr(domain.InvalidArguments, s)
	}

	sep := lexis.Unquote(quoted)
	r, size := utf8.DecodeRuneInString(sep)
	if size == 0 || size != len(sep) || r == utf8.RuneError {
		return domain.Split{}, funcErr(domain.InvalidArguments, s)
	}

	field, err := fieldArg(arg)
	if err != nil {
		return domain.Split{}, err
	}
	return domain.Split{Variable: variable, Field: field, Separator: r}, nil
}
