package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
	dir string
}

func (s *ConfigTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *ConfigTestSuite) write(name, text string) string {
	path := filepath.Join(s.dir, name)
	s.Require().NoError(os.WriteFile(path, []byte(text), 0o644))
	return path
}

func (s *ConfigTestSuite) TestLoad() {
	global := s.write("upim.conf", "; global settings\n"+
		"collection_base = /base\n"+
		"default_collection = global\n"+
		"\n"+
		"[Collections]\n"+
		"global = /global\n")
	app := s.write("upim-contact.conf", "# application settings\n"+
		"[DEFAULT]\n"+
		"default_collection = contacts\n"+
		"\n"+
		"[Collections]\n"+
		"contacts = people\n"+
		"\n"+
		"[Aliases]\n"+
		"phone = --filter 'Name,Phone' WHERE Name = '$0' # not a comment\n")

	cfg, err := Load(Sources{Global: []string{global, filepath.Join(s.dir, "missing.conf")}}, app)
	s.Require().NoError(err)

	s.Equal("contacts", cfg.DefaultCollection)
	s.Equal("/base", cfg.CollectionBase)
	s.Equal(" | ", cfg.FieldSeparator)
	s.Equal(DefaultLogLevel, cfg.LogLevel)
	s.Equal(map[string]string{"global": "/global", "contacts": "people"}, cfg.Collections)
	s.Equal(map[string]string{
		"phone": "--filter 'Name,Phone' WHERE Name = '$0' # not a comment",
	}, cfg.Aliases)
}

// The first application file found is used when none is given.
func (s *ConfigTestSuite) TestApplicationSearch() {
	first := s.write("first.conf", "default_collection = first\nfield_separator = ,\n")
	second := s.write("second.conf", "default_collection = second\n")

	cfg, err := Load(Sources{Application: []string{filepath.Join(s.dir, "none.conf"), first, second}}, "")
	s.Require().NoError(err)
	s.Equal("first", cfg.DefaultCollection)
	s.Equal(",", cfg.FieldSeparator)
}

func (s *ConfigTestSuite) TestNoConfiguration() {
	global := s.write("upim.conf", "default_collection = x\n")

	_, err := Load(Sources{Global: []string{global}}, "")
	s.ErrorIs(err, ErrNoConfiguration{})

	missing := filepath.Join(s.dir, "missing.conf")
	_, err = Load(Sources{Global: []string{global}}, missing)
	s.ErrorIs(err, ErrNoConfiguration{Path: missing})
	s.Contains(err.Error(), missing)
}

func (s *ConfigTestSuite) TestEnvironment() {
	app := s.write("upim-contact.conf", "default_collection = contacts\nlog_level = info\n")
	s.T().Setenv("UPIM_DEFAULT_COLLECTION", "work")
	s.T().Setenv("UPIM_FIELD_SEPARATOR", "'{TAB}'")

	cfg, err := Load(Sources{}, app)
	s.Require().NoError(err)
	s.Equal("work", cfg.DefaultCollection)
	s.Equal("\t", cfg.FieldSeparator)
	s.Equal("info", cfg.LogLevel)
}

// Every problem is reported at once.
func (s *ConfigTestSuite) TestValidation() {
	app := s.write("upim-contact.conf", "field_separator = abc\n"+
		"[Aliases]\n"+
		"good = --limit 1\n"+
		"bad = --filter\n"+
		"worse = --filter WHERE\n")
	invalid := errors.New("invalid alias")

	var seen []string
	_, err := Load(Sources{}, app, WithAliasValidator(func(value string) error {
		seen = append(seen, value)
		if strings.Contains(value, "filter") {
			return invalid
		}
		return nil
	}))

	var errs ValidationErrors
	s.Require().ErrorAs(err, &errs)
	s.Len(errs, 4)
	s.ErrorIs(err, ErrMissingOption{Name: "default_collection"})
	s.ErrorIs(err, ErrInvalidValue{Data: "abc", Rules: "field_separator strings must be quoted"})
	s.ErrorIs(err, invalid)
	s.Contains(err.Error(), "alias bad")
	s.Contains(err.Error(), "alias worse")
	s.Equal([]string{"--filter", "--limit 1", "--filter WHERE"}, seen)
}

func (s *ConfigTestSuite) TestInvalidFile() {
	app := s.write("upim-contact.conf", "[Broken\n")
	_, err := Load(Sources{}, app)
	s.Error(err)
	s.Contains(err.Error(), "reading configuration")
}

func (s *ConfigTestSuite) TestCollectionPath() {
	cfg := &Config{
		CollectionBase: "/base",
		Collections: map[string]string{
			"abs":    "/somewhere/else",
			"rel":    "people",
			"quoted": "'with space'",
		},
	}

	path, err := cfg.CollectionPath("abs")
	s.NoError(err)
	s.Equal(filepath.FromSlash("/somewhere/else"), filepath.FromSlash(path))

	path, err = cfg.CollectionPath("rel")
	s.NoError(err)
	s.Equal(filepath.Join("/base", "people"), path)

	path, err = cfg.CollectionPath("quoted")
	s.NoError(err)
	s.Equal(filepath.Join("/base", "with space"), path)

	_, err = cfg.CollectionPath("nothing")
	s.ErrorIs(err, ErrCollectionDoesNotExist{Name: "nothing"})

	cfg.CollectionBase = ""
	_, err = cfg.CollectionPath("rel")
	s.ErrorIs(err, ErrCannotMakeAbsolutePath{Name: "rel"})
}

func (s *ConfigTestSuite) TestParseSeparator() {
	for in, out := range map[string]string{
		",":                ",",
		"' | '":            " | ",
		`"{SPACE}"`:        " ",
		"'{TAB}-{TAB}'":    "\t-\t",
		`'\u2192'`:         "→",
		`'a\u0041-\u00e9'`: "aA-é",
		"''":               "",
		"":                 "",
		`'\u0041\u0042'`:   "AB",
		"'{SPACE}{SPACE}'": "  ",
	} {
		sep, err := ParseSeparator(in)
		s.NoError(err, in)
		s.Equal(out, sep, in)
	}

	for _, in := range []string{
		"ab",
		`'\n'`,
		`'\u41'`,
		`'\u00411'`,
		`'a\u0041b\u00e9'`,
		`'\uD800'`,
		`'\'`,
		`'\uzzzz'`,
	} {
		_, err := ParseSeparator(in)
		var target ErrInvalidValue
		s.ErrorAs(err, &target, in)
	}
}

func (s *ConfigTestSuite) TestSearchPaths() {
	src := SearchPaths("/home/me", "", "/work")
	s.Equal([]string{
		filepath.Join("/etc/upim", "upim.conf"),
		filepath.Join("/home/me", ".config", "upim", "upim.conf"),
		filepath.Join("/work", ".upim.conf"),
	}, src.Global)
	s.Equal([]string{
		filepath.Join("/etc/upim", "upim-contact.conf"),
		filepath.Join("/home/me", ".config", "upim", "upim-contact.conf"),
	}, src.Application)

	src = SearchPaths("/home/me", "/xdg", "")
	s.Equal([]string{
		filepath.Join("/etc/upim", "upim.conf"),
		filepath.Join("/xdg", "upim", "upim.conf"),
	}, src.Global)

	src = SearchPaths("", "", "")
	s.Equal([]string{filepath.Join("/etc/upim", "upim-contact.conf")}, src.Application)
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
