package matcher

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vinicius-lino-figueiredo/upim/domain"
)

// G maps group names to their fields.
type G map[string]map[string]string

type record struct {
	groups G
}

func (r record) Name() string { return r.groups[domain.DefaultGroup]["Name"] }

func (r record) Path() string { return "" }

func (r record) Lookup(group, field string) (string, bool) {
	fields, ok := r.groups[strings.ToLower(group)]
	if !ok {
		return "", false
	}
	v, ok := fields[field]
	return v, ok
}

func (r record) Groups() []string { return nil }

func (r record) Fields(string) []domain.Field { return nil }

func rec(fields map[string]string) record {
	return record{groups: G{domain.DefaultGroup: fields}}
}

type comparerMock struct{ mock.Mock }

// CompareNumbers implements [domain.Comparer].
func (c *comparerMock) CompareNumbers(a, b string) (int, error) {
	call := c.Called(a, b)
	return call.Int(0), call.Error(1)
}

// Compare implements [domain.Comparer].
func (c *comparerMock) Compare(a, b string) int {
	return c.Called(a, b).Int(0)
}

type MatcherTestSuite struct {
	suite.Suite
	mtchr *Matcher
}

func filter(field string, op domain.FilterOp, value string) domain.Filter {
	return domain.Filter{Field: field, Op: op, Value: value}
}

func (s *MatcherTestSuite) Matches(matches bool, err error) {
	s.NoError(err)
	s.True(matches)
}

func (s *MatcherTestSuite) NotMatches(matches bool, err error) {
	s.NoError(err)
	s.False(matches)
}

func (s *MatcherTestSuite) TestAll() {
	s.Matches(s.mtchr.Match(domain.All{}, rec(nil)))
	s.Matches(s.mtchr.Match(nil, rec(nil)))
}

func (s *MatcherTestSuite) TestEquality() {
	r := rec(map[string]string{"Name": "Somebody", "Phone": "555"})

	s.Matches(s.mtchr.Match(filter("Name", domain.EqualTo, "Somebody"), r))
	s.NotMatches(s.mtchr.Match(filter("Name", domain.EqualTo, "somebody"), r))
	s.NotMatches(s.mtchr.Match(filter("Name", domain.Not, "Somebody"), r))
	s.Matches(s.mtchr.Match(filter("Name", domain.Not, "Someone"), r))
	s.Matches(s.mtchr.Match(filter("Phone", domain.EqualTo, "555"), r))
}

// Ordering operators compare numbers, and fail when either side is not one.
func (s *MatcherTestSuite) TestNumeric() {
	r := rec(map[string]string{"Num": "123", "Text": "abc"})

	s.Matches(s.mtchr.Match(filter("Num", domain.LessThan, "200"), r))
	s.NotMatches(s.mtchr.Match(filter("Num", domain.LessThan, "non-numeric-field-value"), r))
	s.NotMatches(s.mtchr.Match(filter("Text", domain.LessThan, "200"), r))
	s.NotMatches(s.mtchr.Match(filter("Text", domain.GreaterThan, "200"), r))

	s.Matches(s.mtchr.Match(filter("Num", domain.LessEq, "123"), r))
	s.Matches(s.mtchr.Match(filter("Num", domain.GreaterEq, "123.0"), r))
	s.NotMatches(s.mtchr.Match(filter("Num", domain.GreaterThan, "123"), r))
	s.Matches(s.mtchr.Match(filter("Num", domain.GreaterThan, "1e2"), r))
}

// A missing field only satisfies NOT.
func (s *MatcherTestSuite) TestMissingField() {
	r := rec(map[string]string{"Name": "Somebody"})

	s.Matches(s.mtchr.Match(filter("Missing", domain.Not, "x"), r))
	s.NotMatches(s.mtchr.Match(filter("Missing", domain.EqualTo, "x"), r))
	s.NotMatches(s.mtchr.Match(filter("Missing", domain.EqualTo, ""), r))
	s.Matches(s.mtchr.Match(filter("Missing", domain.Not, ""), r))
	s.NotMatches(s.mtchr.Match(filter("Missing", domain.LessThan, "1"), r))
	s.Matches(s.mtchr.Match(filter("Other:Name", domain.Not, "x"), r))
}

func (s *MatcherTestSuite) TestGroups() {
	r := record{groups: G{
		domain.DefaultGroup: {"Name": "Somebody"},
		"employer":          {"Name": "Acme"},
	}}

	s.Matches(s.mtchr.Match(filter("Employer:Name", domain.EqualTo, "Acme"), r))
	s.Matches(s.mtchr.Match(filter("employer:Name", domain.EqualTo, "Acme"), r))
	s.Matches(s.mtchr.Match(filter("Name", domain.EqualTo, "Somebody"), r))
	s.Matches(s.mtchr.Match(filter("default:Name", domain.EqualTo, "Somebody"), r))
	s.NotMatches(s.mtchr.Match(filter("Employer:Name", domain.EqualTo, "Somebody"), r))
}

func (s *MatcherTestSuite) TestAndOr() {
	r := rec(map[string]string{"Name": "Somebody", "Phone": "5"})
	yes := filter("Name", domain.EqualTo, "Somebody")
	no := filter("Phone", domain.GreaterThan, "10")

	s.Matches(s.mtchr.Match(domain.And{Left: yes, Right: yes}, r))
	s.NotMatches(s.mtchr.Match(domain.And{Left: yes, Right: no}, r))
	s.NotMatches(s.mtchr.Match(domain.And{Left: no, Right: yes}, r))
	s.Matches(s.mtchr.Match(domain.Or{Left: no, Right: yes}, r))
	s.Matches(s.mtchr.Match(domain.Or{Left: yes, Right: no}, r))
	s.NotMatches(s.mtchr.Match(domain.Or{Left: no, Right: no}, r))
}

// The right side is not evaluated when the left side decides the result.
func (s *MatcherTestSuite) TestShortCircuit() {
	r := rec(map[string]string{"Name": "Somebody"})
	unsupported := domain.FunctionClause{Function: domain.Ref{Variable: "v", Field: "Spouse"}}
	yes := filter("Name", domain.EqualTo, "Somebody")
	no := filter("Name", domain.EqualTo, "Nobody")

	s.NotMatches(s.mtchr.Match(domain.And{Left: no, Right: unsupported}, r))
	s.Matches(s.mtchr.Match(domain.Or{Left: yes, Right: unsupported}, r))

	_, err := s.mtchr.Match(domain.And{Left: yes, Right: unsupported}, r)
	s.ErrorIs(err, domain.ErrUnsupportedFunction{Function: unsupported.Function})
}

func (s *MatcherTestSuite) TestRegex() {
	r := rec(map[string]string{"Email": "someone@example.com"})
	re := func(field, pattern string) domain.Condition {
		return domain.FunctionClause{Function: domain.Regex{Field: field, Pattern: pattern}}
	}

	s.Matches(s.mtchr.Match(re("Email", `@example\.com$`), r))
	s.Matches(s.mtchr.Match(re("Email", "one@"), r))
	s.NotMatches(s.mtchr.Match(re("Email", `^example`), r))
	s.NotMatches(s.mtchr.Match(re("Missing", ".*"), r))
	s.NotMatches(s.mtchr.Match(re("Email", "("), r))

	// cached pattern
	s.Matches(s.mtchr.Match(re("Email", `@example\.com$`), r))
}

func (s *MatcherTestSuite) TestUnsupportedFunctions() {
	r := rec(map[string]string{"Children": "a,b"})
	for _, fn := range []domain.Function{
		domain.Ref{Variable: "v", Field: "Spouse"},
		domain.Split{Variable: "v", Field: "Children", Separator: ','},
	} {
		_, err := s.mtchr.Match(domain.FunctionClause{Function: fn}, r)
		var target domain.ErrUnsupportedFunction
		s.ErrorAs(err, &target)
		s.Equal(fn, target.Function)
	}
}

// Ordering comparisons are delegated to the comparer.
func (s *MatcherTestSuite) TestComparer() {
	c := new(comparerMock)
	s.mtchr = NewMatcher(WithComparer(c)).(*Matcher)
	r := rec(map[string]string{"Num": "x"})

	c.On("CompareNumbers", "x", "1").Return(1, nil).Once()
	s.Matches(s.mtchr.Match(filter("Num", domain.GreaterThan, "1"), r))

	c.On("CompareNumbers", "x", "2").Return(0, errors.New("nope")).Once()
	s.NotMatches(s.mtchr.Match(filter("Num", domain.GreaterEq, "2"), r))

	c.AssertExpectations(s.T())
}

// A parsed condition can be evaluated from many goroutines at once.
func (s *MatcherTestSuite) TestConcurrent() {
	cond := domain.And{
		Left:  domain.FunctionClause{Function: domain.Regex{Field: "Name", Pattern: "^Some"}},
		Right: filter("Age", domain.GreaterEq, "18"),
	}
	r := rec(map[string]string{"Name": "Somebody", "Age": "30"})

	var wg sync.WaitGroup
	results := make([]bool, 32)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = s.mtchr.Match(cond, r)
		}()
	}
	wg.Wait()
	for _, res := range results {
		s.True(res)
	}
}

func (s *MatcherTestSuite) SetupTest() {
	s.mtchr = NewMatcher().(*Matcher)
}

func TestMatcherTestSuite(t *testing.T) {
	suite.Run(t, new(MatcherTestSuite))
}
