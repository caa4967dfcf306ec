// Package lexis contains the string scanning helpers shared by the query
// parsers: field reading, case-insensitive search and parenthesis matching.
package lexis

import (
	"strings"
	"unicode/utf8"

	"github.com/vinicius-lino-figueiredo/upim/domain"
)

// reserved sequences cannot be part of a field name since the parser would
// take them for keywords.
var reserved = []string{" WHERE ", " AND ", " OR "}

// IsQuote reports whether b opens or closes a quoted string.
func IsQuote(b byte) bool {
	return b == '\'' || b == '"'
}

// IsQuoted reports whether s starts and ends with the same quote character.
func IsQuoted(s string) bool {
	return len(s) >= 2 && IsQuote(s[0]) && s[len(s)-1] == s[0]
}

// Unquote removes the surrounding quotes of s, if any.
func Unquote(s string) string {
	if IsQuoted(s) {
		return s[1 : len(s)-1]
	}
	return s
}

// EqualFold reports whether a and b are equal under simple case folding.
func EqualFold(a, b string) bool {
	return strings.EqualFold(a, b)
}

// HasPrefixFold reports whether s begins with prefix, ignoring case.
func HasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// ValidFieldName reports whether name can be used as a field name.
func ValidFieldName(name string) bool {
	if name == "" || strings.ContainsAny(name, `'"`) {
		return false
	}
	i, _ := FindLeftmost(name, reserved)
	return i < 0
}

// ReadField reads the field name at the start of s. A quoted name ends at the
// matching quote, any other name ends at the next space. It returns the number
// of bytes consumed and the name without quotes.
func ReadField(s string) (int, string, error) {
	if s == "" {
		return 0, "", domain.ErrMalformedField{Input: s}
	}
	if IsQuote(s[0]) {
		end := strings.IndexByte(s[1:], s[0])
		if end < 0 {
			return 0, "", domain.ErrMalformedField{Input: s}
		}
		return end + 2, s[1 : end+1], nil
	}
	end := strings.IndexByte(s, ' ')
	if end <= 0 {
		return 0, "", domain.ErrMalformedField{Input: s}
	}
	return end, s[:end], nil
}

// ReadFields reads a comma-separated list of field names at the start of s.
// Quoted lists end at the matching quote and unquoted ones at the next space
// or at the end of the string. Empty input is an empty list.
func ReadFields(s string) (int, []string, error) {
	if s == "" {
		return 0, []string{}, nil
	}

	var n int
	var list string
	if IsQuote(s[0]) {
		var err error
		if n, list, err = ReadField(s); err != nil {
			return 0, nil, err
		}
	} else {
		n = strings.IndexByte(s, ' ')
		if n < 0 {
			n = len(s)
		}
		list = s[:n]
	}

	if strings.TrimSpace(list) == "" {
		return n, []string{}, nil
	}

	parts := strings.Split(list, ",")
	fields := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if !ValidFieldName(name) {
			return 0, nil, domain.ErrInvalidFieldName{Name: name}
		}
		fields = append(fields, name)
	}
	return n, fields, nil
}

// FindLeftmost returns the index of the first occurrence of any pattern in s,
// ignoring case, along with the pattern found. The index is -1 if none is
// found. Earlier patterns win ties.
func FindLeftmost(s string, patterns []string) (int, string) {
	for i := 0; i < len(s); i++ {
		if !utf8.RuneStart(s[i]) {
			continue
		}
		for _, p := range patterns {
			if p != "" && HasPrefixFold(s[i:], p) {
				return i, p
			}
		}
	}
	return -1, ""
}

// FindRightmost returns the index of the last occurrence of any pattern in s,
// ignoring case, along with the pattern found. The index is -1 if none is
// found. Earlier patterns win ties.
func FindRightmost(s string, patterns []string) (int, string) {
	for i := len(s) - 1; i >= 0; i-- {
		if !utf8.RuneStart(s[i]) {
			continue
		}
		for _, p := range patterns {
			if p != "" && HasPrefixFold(s[i:], p) {
				return i, p
			}
		}
	}
	return -1, ""
}

// GetParenthesized reads the parenthesized group s starts with. Quoted text is
// skipped when counting parentheses. It returns the number of bytes consumed,
// including both parentheses, and the text between them.
func GetParenthesized(s string) (int, string, error) {
	if s == "" || s[0] != '(' {
		return 0, "", domain.ErrUnbalancedParenthesis{Input: s}
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case IsQuote(c):
			end := strings.IndexByte(s[i+1:], c)
			if end < 0 {
				return 0, "", domain.ErrUnbalancedParenthesis{Input: s}
			}
			i += end + 1
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i + 1, s[1:i], nil
			}
		}
	}
	return 0, "", domain.ErrUnbalancedParenthesis{Input: s}
}
