// Package parser contains the default [domain.Parser] implementation for the
// query language:
//
//	Query     ::= FieldList ( "WHERE" Condition )?
//	Condition ::= Term ( ( "AND" | "OR" ) Term )*
//	Term      ::= "(" Condition ")" | Function | Field Op Value
//
// AND and OR share the same precedence and associate to the left. Keywords
// are case-insensitive.
package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vinicius-lino-figueiredo/upim/domain"
	"github.com/vinicius-lino-figueiredo/upim/pkg/lexis"
)

// Parser implements [domain.Parser]. It holds no state and is safe for
// concurrent use.
type Parser struct{}

// NewParser returns a new implementation of [domain.Parser].
func NewParser() domain.Parser {
	return &Parser{}
}

// ParseQuery implements [domain.Parser].
func (p *Parser) ParseQuery(s string) (domain.Query, error) {
	s = strings.TrimSpace(s)

	sel := []string{}
	rest := s
	if !hasKeyword(s, "WHERE") {
		n, fields, err := lexis.ReadFields(s)
		if err != nil {
			return domain.Query{}, err
		}
		sel = fields
		rest = strings.TrimSpace(s[n:])
	}

	if rest == "" {
		return domain.Query{Select: sel, Condition: domain.All{}}, nil
	}

	if !hasKeyword(rest, "WHERE") {
		return domain.Query{}, domain.ErrMissingWhereClause{Found: rest}
	}

	text := strings.TrimSpace(rest[len("WHERE"):])
	if text == "" {
		return domain.Query{}, domain.ErrMissingWhereClause{Found: rest}
	}

	cond, err := p.ParseCondition(text)
	if err != nil {
		return domain.Query{}, err
	}
	return domain.Query{Select: sel, Condition: cond}, nil
}

// hasKeyword reports whether s starts with the keyword kw followed by a word
// boundary.
func hasKeyword(s, kw string) bool {
	if !lexis.HasPrefixFold(s, kw) {
		return false
	}
	if len(s) == len(kw) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[len(kw):])
	return unicode.IsSpace(r) || r == '('
}
