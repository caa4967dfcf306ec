// Package lexer splits condition text into tokens, keeping quoted strings and
// parentheses intact so keywords inside values are never mistaken for
// connectives.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vinicius-lino-figueiredo/upim/domain"
	"github.com/vinicius-lino-figueiredo/upim/pkg/lexis"
)

// TokenType identifies the kind of a [Token].
type TokenType uint8

const (
	// EOF marks the end of the input.
	EOF TokenType = iota
	// Word is a bare word: field names, numbers and keywords.
	Word
	// String is a quoted literal.
	String
	// Operator is a run of comparison symbols.
	Operator
	// LParen is an opening parenthesis.
	LParen
	// RParen is a closing parenthesis.
	RParen
	// Comma separates function arguments.
	Comma
)

var tokenNames = [...]string{
	EOF:      "end of input",
	Word:     "word",
	String:   "string",
	Operator: "operator",
	LParen:   "'('",
	RParen:   "')'",
	Comma:    "','",
}

// String implements [fmt.Stringer].
func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return "unknown"
}

// Token is a lexical unit of a condition. Pos and End are byte offsets into
// the input.
type Token struct {
	Type TokenType
	// Text is the token as written, quotes included.
	Text string
	// Value is Text without the quotes of a String.
	Value string
	Pos  int
	End  int
}

// Is reports whether t is a word equal to keyword, ignoring case.
func (t Token) Is(keyword string) bool {
	return t.Type == Word && lexis.EqualFold(t.Value, keyword)
}

// wordEnd lists what terminates a bare word. Whitespace other than a space
// is handled separately.
var wordEnd = []string{" ", "(", ")", ",", "'", `"`, "=", "<", ">"}

// Tokenize splits input into tokens. The last token is always EOF.
func Tokenize(input string) ([]Token, error) {
	var toks []Token
	pos := 0
	for {
		for pos < len(input) {
			r, size := utf8.DecodeRuneInString(input[pos:])
			if !unicode.IsSpace(r) {
				break
			}
			pos += size
		}
		if pos == len(input) {
			return append(toks, Token{Type: EOF, Pos: pos, End: pos}), nil
		}

		rest := input[pos:]
		var tok Token
		switch c := rest[0]; {
		case lexis.IsQuote(c):
			n, value, err := lexis.ReadField(rest)
			if err != nil {
				return nil, domain.ErrMalformedField{Input: rest}
			}
			tok = Token{Type: String, Text: rest[:n], Value: value}
		case c == '(':
			tok = Token{Type: LParen, Text: "("}
		case c == ')':
			tok = Token{Type: RParen, Text: ")"}
		case c == ',':
			tok = Token{Type: Comma, Text: ","}
		case isOperator(c):
			n := 1
			for n < len(rest) && isOperator(rest[n]) {
				n++
			}
			tok = Token{Type: Operator, Text: rest[:n]}
		default:
			n, _ := lexis.FindLeftmost(rest, wordEnd)
			if n < 0 {
				n = len(rest)
			}
			if i := strings.IndexFunc(rest[:n], unicode.IsSpace); i >= 0 {
				n = i
			}
			tok = Token{Type: Word, Text: rest[:n]}
		}

		if tok.Type != String {
			tok.Value = tok.Text
		}
		tok.Pos = pos
		tok.End = pos + len(tok.Text)
		toks = append(toks, tok)
		pos = tok.End
	}
}

func isOperator(c byte) bool {
	return c == '=' || c == '<' || c == '>'
}
