package parser

import (
	"errors"
	"math"
	"strconv"

	"github.com/vinicius-lino-figueiredo/upim/adapter/lexer"
	"github.com/vinicius-lino-figueiredo/upim/domain"
	"github.com/vinicius-lino-figueiredo/upim/pkg/lexis"
)

// ParseCondition implements [domain.Parser].
func (p *Parser) ParseCondition(s string) (domain.Condition, error) {
	toks, err := lexer.Tokenize(s)
	if err != nil {
		return nil, err
	}

	cp := &conditionParser{parser: p, src: s, toks: toks}
	cond, err := cp.parseExpr()
	if err != nil {
		return nil, err
	}

	switch tok := cp.peek(); tok.Type {
	case lexer.EOF:
		return cond, nil
	case lexer.RParen:
		return nil, domain.ErrUnbalancedParenthesis{Input: s}
	default:
		return nil, domain.ErrInvalidCondition{Condition: s[tok.Pos:]}
	}
}

type conditionParser struct {
	parser *Parser
	src    string
	toks   []lexer.Token
	pos    int
}

func (cp *conditionParser) peek() lexer.Token {
	return cp.toks[cp.pos]
}

func (cp *conditionParser) parseExpr() (domain.Condition, error) {
	left, err := cp.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		tok := cp.peek()
		and := tok.Is("AND")
		if !and && !tok.Is("OR") {
			return left, nil
		}
		cp.pos++

		right, err := cp.parseTerm()
		if err != nil {
			return nil, err
		}
		if and {
			left = domain.And{Left: left, Right: right}
		} else {
			left = domain.Or{Left: left, Right: right}
		}
	}
}

func (cp *conditionParser) parseTerm() (domain.Condition, error) {
	tok := cp.peek()
	switch tok.Type {
	case lexer.LParen:
		cp.pos++
		cond, err := cp.parseExpr()
		if err != nil {
			return nil, err
		}
		if cp.peek().Type != lexer.RParen {
			return nil, domain.ErrUnbalancedParenthesis{Input: cp.src[tok.Pos:]}
		}
		cp.pos++
		return cond, nil
	case lexer.EOF:
		return nil, domain.ErrInvalidCondition{Condition: cp.src}
	case lexer.RParen:
		return nil, domain.ErrInvalidCondition{Condition: cp.src[tok.Pos:]}
	}
	return cp.parseClause()
}

// parseClause consumes the tokens up to the next connective or closing
// parenthesis at the same depth and parses them as a function or, when they
// do not look like one, as a comparison.
func (cp *conditionParser) parseClause() (domain.Condition, error) {
	start, end, depth := cp.pos, cp.pos, 0
scan:
	for ; ; end++ {
		tok := cp.toks[end]
		switch {
		case tok.Type == lexer.EOF:
			break scan
		case tok.Type == lexer.LParen:
			depth++
		case tok.Type == lexer.RParen:
			if depth == 0 {
				break scan
			}
			depth--
		case depth == 0 && (tok.Is("AND") || tok.Is("OR")):
			break scan
		}
	}
	if end == start {
		return nil, domain.ErrInvalidCondition{Condition: cp.src[cp.peek().Pos:]}
	}

	clause := cp.toks[start:end]
	cp.pos = end
	text := cp.src[clause[0].Pos:clause[len(clause)-1].End]

	fn, err := cp.parser.ParseFunction(text)
	if err == nil {
		return domain.FunctionClause{Function: fn}, nil
	}

	var fe domain.ErrFunctionParse
	if !errors.As(err, &fe) || (fe.Kind != domain.UnknownFunction && fe.Kind != domain.InvalidOperator) {
		return nil, err
	}
	return comparison(text, clause)
}

func comparison(text string, toks []lexer.Token) (domain.Condition, error) {
	field := toks[0]
	if field.Type != lexer.Word && field.Type != lexer.String {
		return nil, domain.ErrInvalidCondition{Condition: text}
	}
	if !lexis.ValidFieldName(field.Value) {
		return nil, domain.ErrInvalidFieldName{Name: field.Value}
	}

	if len(toks) < 2 {
		return nil, domain.ErrInvalidCondition{Condition: text}
	}

	var op domain.FilterOp
	switch opTok := toks[1]; {
	case opTok.Type == lexer.Operator:
		var err error
		if op, err = domain.ParseFilterOp(opTok.Text); err != nil {
			return nil, err
		}
	case opTok.Is("NOT"):
		op = domain.Not
	default:
		return nil, domain.ErrUnknownOperator{Operator: opTok.Text}
	}

	if len(toks) != 3 {
		return nil, domain.ErrInvalidCondition{Condition: text}
	}

	value, err := comparisonValue(op, toks[2])
	if err != nil {
		return nil, err
	}
	return domain.Filter{Field: field.Value, Op: op, Value: value}, nil
}

func comparisonValue(op domain.FilterOp, tok lexer.Token) (string, error) {
	switch {
	case tok.Is("EMPTY"):
		return "", nil
	case tok.Type == lexer.String:
		if op.Ordering() {
			return "", domain.ErrInvalidOperatorForType{Op: op, Value: tok.Value}
		}
		return tok.Value, nil
	case tok.Type == lexer.Word && isNumber(tok.Value):
		return tok.Value, nil
	}
	return "", domain.ErrUnquotedString{Value: tok.Text}
}

func isNumber(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
}
