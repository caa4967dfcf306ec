// Package note reads and writes the plain-text note format:
//
//	@tag @other-tag
//	[Key: Value]
//
//	Free content.
//
// Header lines hold tags or a single attribute each, and end at the first
// empty line.
package note

import (
	"context"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/dolmen-go/contextio"
	"github.com/vinicius-lino-figueiredo/upim/domain"
)

// Note implements [domain.NoteReader] and [domain.NoteWriter].
type Note struct{}

// NewReader returns a new implementation of [domain.NoteReader].
func NewReader() domain.NoteReader {
	return &Note{}
}

// NewWriter returns a new implementation of [domain.NoteWriter].
func NewWriter() domain.NoteWriter {
	return &Note{}
}

// ReadNote implements [domain.NoteReader]. Reading stops as soon as ctx is
// done.
func (n *Note) ReadNote(ctx context.Context, r io.Reader) (*domain.Note, error) {
	data, err := io.ReadAll(contextio.NewReader(ctx, r))
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// WriteNote implements [domain.NoteWriter].
func (n *Note) WriteNote(ctx context.Context, w io.Writer, note *domain.Note) error {
	text, err := Format(note)
	if err != nil {
		return err
	}
	_, err = io.WriteString(contextio.NewWriter(ctx, w), text)
	return err
}

// Parse parses the text of a note. Tags are stored without the '@' prefix.
func Parse(text string) (*domain.Note, error) {
	note := &domain.Note{}
	rest := text
	for num := 1; rest != ""; num++ {
		line, after, _ := strings.Cut(rest, "\n")
		rest = after
		line = strings.TrimSuffix(line, "\r")

		switch {
		case line == "":
			note.Content = rest
			return note, nil
		case line[0] == '@':
			tags, err := readTags(num, line)
			if err != nil {
				return nil, err
			}
			note.Tags = append(note.Tags, tags...)
		case line[0] == '[':
			attr, err := readAttribute(num, line)
			if err != nil {
				return nil, err
			}
			note.Attributes = append(note.Attributes, attr)
		default:
			return nil, domain.ErrInvalidNote{Line: num, Reason: "invalid metadata: " + line}
		}
	}
	return note, nil
}

func readTags(num int, line string) ([]string, error) {
	var tags []string
	for _, tag := range strings.Fields(line) {
		if tag[0] != '@' {
			return nil, domain.ErrInvalidNote{Line: num, Reason: "tag is missing the '@' symbol: " + tag}
		}
		if len(tag) == 1 {
			return nil, domain.ErrInvalidNote{Line: num, Reason: "empty tag"}
		}
		tags = append(tags, tag[1:])
	}
	return tags, nil
}

func readAttribute(num int, line string) (domain.Field, error) {
	line = strings.TrimRight(line, " \t")
	if !strings.HasSuffix(line, "]") {
		return domain.Field{}, domain.ErrInvalidNote{Line: num, Reason: "invalid metadata: " + line}
	}

	inner := line[1 : len(line)-1]
	if strings.ContainsAny(inner, "[]") {
		return domain.Field{}, domain.ErrInvalidNote{Line: num, Reason: "attribute cannot contain '[' or ']': " + line}
	}

	key, value, found := strings.Cut(inner, ":")
	if !found {
		return domain.Field{}, domain.ErrInvalidNote{Line: num, Reason: "invalid key/value attribute: " + line}
	}
	return domain.Field{Name: strings.TrimSpace(key), Value: strings.TrimSpace(value)}, nil
}

// Format returns the textual form of a note. The header is always followed
// by an empty line. Tags and attributes that could not be read back by
// [Parse] are rejected with [domain.ErrInvalidNote].
func Format(note *domain.Note) (string, error) {
	var b strings.Builder
	num := 1
	if len(note.Tags) > 0 {
		for i, tag := range note.Tags {
			if err := checkTag(num, tag); err != nil {
				return "", err
			}
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte('@')
			b.WriteString(tag)
		}
		b.WriteByte('\n')
		num++
	}
	for _, attr := range note.Attributes {
		if err := checkAttribute(num, attr); err != nil {
			return "", err
		}
		b.WriteString("[" + attr.Name + ": " + attr.Value + "]\n")
		num++
	}
	b.WriteByte('\n')
	b.WriteString(note.Content)
	return b.String(), nil
}

func checkTag(num int, tag string) error {
	if tag == "" {
		return domain.ErrInvalidNote{Line: num, Reason: "empty tag"}
	}
	if strings.IndexFunc(tag, unicode.IsSpace) >= 0 {
		return domain.ErrInvalidNote{Line: num, Reason: "tag cannot contain whitespace: " + strconv.Quote(tag)}
	}
	return nil
}

func checkAttribute(num int, attr domain.Field) error {
	if strings.ContainsAny(attr.Name, "[]:\r\n") {
		return domain.ErrInvalidNote{Line: num, Reason: "invalid attribute name: " + strconv.Quote(attr.Name)}
	}
	if strings.ContainsAny(attr.Value, "[]\r\n") {
		return domain.ErrInvalidNote{Line: num, Reason: "invalid attribute value: " + strconv.Quote(attr.Value)}
	}
	return nil
}
