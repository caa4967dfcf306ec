// Package contact contains the default [domain.Record] implementation: a
// contact built from a note whose content may hold further notes.
//
// The attributes of the main note form the default group. Each nested note
// adds its attributes to the group named after its first tag, or to the
// group of the previous note when it has no tag:
//
//	[Name: Somebody]
//
//	@employer
//	[Name: Acme]
//	[Address: 123 Somewhere]
package contact

import (
	"slices"
	"strings"

	"github.com/vinicius-lino-figueiredo/upim/adapter/note"
	"github.com/vinicius-lino-figueiredo/upim/domain"
)

// Contact implements [domain.Record].
type Contact struct {
	path   string
	name   string
	groups []group
}

type group struct {
	name   string
	fields []domain.Field
}

// NewContact returns a new contact read from the given note. It implements
// [domain.RecordFactory].
func NewContact(path string, n *domain.Note) (domain.Record, error) {
	c := &Contact{path: path}
	c.add(domain.DefaultGroup, n.Attributes)

	current := domain.DefaultGroup
	content := n.Content
	for strings.TrimSpace(content) != "" {
		nested, err := note.Parse(content)
		if err != nil {
			// free text ends the chain
			break
		}
		if len(nested.Tags) > 0 {
			current = strings.ToLower(nested.Tags[0])
		}
		c.add(current, nested.Attributes)
		content = nested.Content
	}

	c.name = c.deriveName()
	if c.name == "" {
		return nil, domain.ErrContactWithoutName
	}
	return c, nil
}

func (c *Contact) add(name string, fields []domain.Field) {
	if len(fields) == 0 {
		return
	}
	c.groups = append(c.groups, group{name: name, fields: fields})
}

func (c *Contact) deriveName() string {
	for _, key := range []string{"Name", "Full Name"} {
		if v, ok := c.Lookup(domain.DefaultGroup, key); ok && v != "" {
			return v
		}
	}
	given := c.first("Given Name", "First Name")
	family := c.first("Family Name", "Last Name")
	return strings.TrimSpace(given + " " + family)
}

func (c *Contact) first(keys ...string) string {
	for _, key := range keys {
		if v, ok := c.Lookup(domain.DefaultGroup, key); ok {
			return v
		}
	}
	return ""
}

// Name implements [domain.Record].
func (c *Contact) Name() string {
	return c.name
}

// Path implements [domain.Record].
func (c *Contact) Path() string {
	return c.path
}

// Lookup implements [domain.Record].
func (c *Contact) Lookup(groupName, field string) (string, bool) {
	groupName = strings.ToLower(groupName)
	for _, g := range c.groups {
		if g.name != groupName {
			continue
		}
		for _, f := range g.fields {
			if f.Name == field {
				return f.Value, true
			}
		}
	}
	return "", false
}

// Groups implements [domain.Record].
func (c *Contact) Groups() []string {
	var names []string
	for _, g := range c.groups {
		if !slices.Contains(names, g.name) {
			names = append(names, g.name)
		}
	}
	return names
}

// Fields implements [domain.Record].
func (c *Contact) Fields(groupName string) []domain.Field {
	groupName = strings.ToLower(groupName)
	var fields []domain.Field
	for _, g := range c.groups {
		if g.name == groupName {
			fields = append(fields, g.fields...)
		}
	}
	return fields
}
