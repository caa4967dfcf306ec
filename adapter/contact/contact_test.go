package contact

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vinicius-lino-figueiredo/upim/adapter/note"
	"github.com/vinicius-lino-figueiredo/upim/domain"
)

type ContactTestSuite struct {
	suite.Suite
}

func (s *ContactTestSuite) contact(text string) (domain.Record, error) {
	n, err := note.Parse(text)
	s.Require().NoError(err)
	return NewContact("/contacts/somebody.txt", n)
}

func (s *ContactTestSuite) TestNestedGroups() {
	c, err := s.contact("@contact\n" +
		"[Name: Favorite Person]\n" +
		"[Phone: 555]\n" +
		"\n" +
		"@employer\n" +
		"[Name: Some Company]\n" +
		"[Address: 123 Somewhere]\n" +
		"\n" +
		"@Spouse @other\n" +
		"[Name: Other Person]\n" +
		"\n" +
		"[Phone: 444]\n" +
		"\n" +
		"Free text follows.\n" +
		"[Ignored: yes]\n")
	s.NoError(err)

	s.Equal("Favorite Person", c.Name())
	s.Equal("/contacts/somebody.txt", c.Path())
	s.Equal([]string{domain.DefaultGroup, "employer", "spouse"}, c.Groups())

	v, ok := c.Lookup("Employer", "Name")
	s.True(ok)
	s.Equal("Some Company", v)

	v, ok = c.Lookup("spouse", "Phone")
	s.True(ok)
	s.Equal("444", v)

	v, ok = c.Lookup(domain.DefaultGroup, "Phone")
	s.True(ok)
	s.Equal("555", v)

	_, ok = c.Lookup(domain.DefaultGroup, "Ignored")
	s.False(ok)
	_, ok = c.Lookup("employer", "Phone")
	s.False(ok)
	_, ok = c.Lookup("nothing", "Name")
	s.False(ok)

	s.Equal([]domain.Field{
		{Name: "Name", Value: "Other Person"},
		{Name: "Phone", Value: "444"},
	}, c.Fields("Spouse"))
}

// Groups may appear more than once; lookups return the first value.
func (s *ContactTestSuite) TestRepeatedGroups() {
	c, err := s.contact("[Name: A]\n\n@phone\n[Number: 1]\n\n@phone\n[Number: 2]\n")
	s.NoError(err)

	v, ok := c.Lookup("phone", "Number")
	s.True(ok)
	s.Equal("1", v)
	s.Equal([]string{domain.DefaultGroup, "phone"}, c.Groups())
	s.Len(c.Fields("phone"), 2)
}

func (s *ContactTestSuite) TestNames() {
	for text, name := range map[string]string{
		"[Name: A]\n[Full Name: B]\n":                    "A",
		"[Full Name: B]\n[Given Name: C]\n":              "B",
		"[Given Name: C]\n[Family Name: D]\n":            "C D",
		"[First Name: E]\n[Last Name: F]\n":              "E F",
		"[Given Name: C]\n[First Name: E]\n":             "C",
		"[Last Name: F]\n":                               "F",
		"[Name: ]\n[Given Name: G]\n":                    "G",
		"[Phone: 1]\n\n@spouse\n[Name: Not This One]\n": "",
	} {
		c, err := s.contact(text)
		if name == "" {
			s.ErrorIs(err, domain.ErrContactWithoutName, text)
			continue
		}
		s.NoError(err, text)
		s.Equal(name, c.Name(), text)
	}
}

func TestContactTestSuite(t *testing.T) {
	suite.Run(t, new(ContactTestSuite))
}
