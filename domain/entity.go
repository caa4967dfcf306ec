package domain

import (
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// DefaultGroup is the group used when a field name carries no group
// qualifier, and the group holding the attributes of a contact's main note.
const DefaultGroup = "default"

// FilterOp is one of the comparison operators accepted in a [Filter].
type FilterOp uint8

const (
	// EqualTo matches when the field value equals the literal.
	EqualTo FilterOp = iota
	// LessThan matches when the field value is numerically lower.
	LessThan
	// LessEq matches when the field value is numerically lower or equal.
	LessEq
	// GreaterThan matches when the field value is numerically greater.
	GreaterThan
	// GreaterEq matches when the field value is numerically greater or
	// equal.
	GreaterEq
	// Not matches when the field value differs from the literal or when the
	// field does not exist.
	Not
)

var filterOpTokens = [...]string{
	EqualTo:     "=",
	LessThan:    "<",
	LessEq:      "<=",
	GreaterThan: ">",
	GreaterEq:   ">=",
	Not:         "NOT",
}

// ParseFilterOp returns the operator represented by token. Matching is exact,
// so callers should uppercase keyword operators beforehand.
func ParseFilterOp(token string) (FilterOp, error) {
	for op, tk := range filterOpTokens {
		if tk == token {
			return FilterOp(op), nil
		}
	}
	return 0, ErrUnknownOperator{Operator: token}
}

// String implements [fmt.Stringer].
func (o FilterOp) String() string {
	if int(o) < len(filterOpTokens) {
		return filterOpTokens[o]
	}
	return "FilterOp(" + strconv.Itoa(int(o)) + ")"
}

// Ordering reports whether the operator compares values numerically.
func (o FilterOp) Ordering() bool {
	return o != EqualTo && o != Not
}

// Function is a clause of the function sublanguage. The set of
// implementations is closed: [Ref], [Split] and [Regex].
type Function interface {
	function()
	String() string
}

// Ref binds Variable to the record referenced by the value of Field, or by
// each value produced by Split when it is set.
type Ref struct {
	Variable string
	Field    string
	Split    *Split
}

// Split binds Variable to the values obtained by splitting Field on
// Separator.
type Split struct {
	Variable  string
	Field     string
	Separator rune
}

// Regex matches when Pattern is found in the value of Field.
type Regex struct {
	Field   string
	Pattern string
}

func (Ref) function()   {}
func (Split) function() {}
func (Regex) function() {}

// String implements [fmt.Stringer].
func (r Ref) String() string {
	if r.Split != nil {
		return r.Variable + " = REF(" + r.Split.call() + ")"
	}
	return r.Variable + " = REF(" + FormatField(r.Field) + ")"
}

// String implements [fmt.Stringer].
func (s Split) String() string {
	return s.Variable + " = " + s.call()
}

func (s Split) call() string {
	return "SPLIT(" + FormatField(s.Field) + ", " + quote(string(s.Separator)) + ")"
}

// String implements [fmt.Stringer].
func (r Regex) String() string {
	return "REGEX(" + FormatField(r.Field) + ", " + quote(r.Pattern) + ")"
}

// Condition is a node of a parsed predicate tree. The set of implementations
// is closed: [All], [Filter], [FunctionClause], [And] and [Or].
type Condition interface {
	condition()
	String() string
}

// All matches every record.
type All struct{}

// Filter compares the value of Field against Value using Op. Value holds the
// literal without quotes; EMPTY is stored as the empty string.
type Filter struct {
	Field string
	Op    FilterOp
	Value string
}

// FunctionClause is a condition made of a single [Function].
type FunctionClause struct {
	Function Function
}

// And matches when both sides match.
type And struct {
	Left  Condition
	Right Condition
}

// Or matches when either side matches.
type Or struct {
	Left  Condition
	Right Condition
}

func (All) condition()            {}
func (Filter) condition()         {}
func (FunctionClause) condition() {}
func (And) condition()            {}
func (Or) condition()             {}

// String implements [fmt.Stringer]. All has no textual form and prints as an
// empty string.
func (All) String() string { return "" }

// String implements [fmt.Stringer].
func (f Filter) String() string {
	var value string
	switch {
	case f.Value == "":
		value = "EMPTY"
	case f.Op.Ordering():
		value = f.Value
	default:
		value = quote(f.Value)
	}
	return FormatField(f.Field) + " " + f.Op.String() + " " + value
}

// String implements [fmt.Stringer].
func (f FunctionClause) String() string { return f.Function.String() }

// String implements [fmt.Stringer].
func (a And) String() string { return binary(a.Left, "AND", a.Right) }

// String implements [fmt.Stringer].
func (o Or) String() string { return binary(o.Left, "OR", o.Right) }

// connectives associate to the left, so only a compound right side needs
// parentheses.
func binary(left Condition, keyword string, right Condition) string {
	r := right.String()
	switch right.(type) {
	case And, Or:
		r = "(" + r + ")"
	}
	return left.String() + " " + keyword + " " + r
}

// Query is a parsed filter: the fields to output and the condition records
// must satisfy.
type Query struct {
	Select    []string
	Condition Condition
}

// MergeWith returns a query matching records accepted by both q and other,
// selecting the fields of q followed by the fields of other that q does not
// select yet.
func (q Query) MergeWith(other Query) Query {
	sel := make([]string, 0, len(q.Select)+len(other.Select))
	for _, field := range slices.Concat(q.Select, other.Select) {
		if !slices.Contains(sel, field) {
			sel = append(sel, field)
		}
	}
	return Query{Select: sel, Condition: mergeConditions(q.Condition, other.Condition)}
}

func mergeConditions(a, b Condition) Condition {
	if isAll(a) {
		return orAll(b)
	}
	if isAll(b) {
		return a
	}
	return And{Left: a, Right: b}
}

func isAll(c Condition) bool {
	if c == nil {
		return true
	}
	_, ok := c.(All)
	return ok
}

func orAll(c Condition) Condition {
	if c == nil {
		return All{}
	}
	return c
}

// String implements [fmt.Stringer]. The output can be parsed back into an
// equivalent query.
func (q Query) String() string {
	var b strings.Builder
	if len(q.Select) > 0 {
		b.WriteString(quote(strings.Join(q.Select, ",")))
	}
	if !isAll(q.Condition) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("WHERE ")
		b.WriteString(q.Condition.String())
	}
	return b.String()
}

// Sort specifies the field used to order results. An empty Field keeps the
// collection order.
type Sort struct {
	Field      string
	Descending bool
}

// Field is a named value inside a group of a [Record] or a [Note].
type Field struct {
	Name  string
	Value string
}

// Note is the parsed form of a plain-text note: tags, attributes and free
// content.
type Note struct {
	Tags       []string
	Attributes []Field
	Content    string
}

// Attribute returns the value of the first attribute called key.
func (n *Note) Attribute(key string) (string, bool) {
	for _, attr := range n.Attributes {
		if attr.Name == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Value is the result of projecting one selected field of a record.
type Value struct {
	Field string
	Value string
	Found bool
}

// Row is a record that matched a query, along with its selected values.
type Row struct {
	Name   string
	Path   string
	Values []Value
}

// Map returns the selected values keyed by field name. Missing fields are
// omitted.
func (r Row) Map() map[string]any {
	m := make(map[string]any, len(r.Values))
	for _, v := range r.Values {
		if v.Found {
			m[v.Field] = v.Value
		}
	}
	return m
}

// FormatField returns name as it must be written in a query, quoting it when
// it would not be read back as a single word.
func FormatField(name string) string {
	if name == "" || strings.ContainsFunc(name, isDelimiter) || isKeyword(name) {
		return quote(name)
	}
	return name
}

func isDelimiter(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune("()=<>,'\"", r)
}

func isKeyword(s string) bool {
	for _, kw := range [...]string{"AND", "OR", "NOT", "WHERE", "EMPTY"} {
		if strings.EqualFold(s, kw) {
			return true
		}
	}
	return false
}

func quote(s string) string {
	if strings.ContainsRune(s, '\'') {
		return `"` + s + `"`
	}
	return "'" + s + "'"
}
