// Package config reads the upim-contact configuration.
//
// Configuration files use the INI format. Settings live in the DEFAULT group,
// or before any group, and may be overridden with UPIM_ environment
// variables:
//
//	default_collection = contacts
//	collection_base = /home/me/upim
//	field_separator = ' | '
//
//	[Collections]
//	contacts = contacts
//
//	[Aliases]
//	phone = --filter 'Name,Phone' WHERE Name = '$0'
package config

import (
	"maps"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/ini.v1"

	"github.com/vinicius-lino-figueiredo/upim/adapter/decoder"
	"github.com/vinicius-lino-figueiredo/upim/adapter/storage"
	"github.com/vinicius-lino-figueiredo/upim/domain"
	"github.com/vinicius-lino-figueiredo/upim/pkg/lexis"
)

const (
	collectionsGroup = "Collections"
	aliasesGroup     = "Aliases"

	// DefaultFieldSeparator joins output values unless configured otherwise.
	DefaultFieldSeparator = "' | '"
	// DefaultLogLevel is the level used when log_level is not set.
	DefaultLogLevel = "warn"
)

var settings = []string{"default_collection", "collection_base", "field_separator", "log_level"}

// Config is the validated configuration.
type Config struct {
	DefaultCollection string `upim:"default_collection"`
	CollectionBase    string `upim:"collection_base"`
	// FieldSeparator is already unquoted and unescaped.
	FieldSeparator string `upim:"field_separator"`
	LogLevel       string `upim:"log_level"`

	Collections map[string]string `upim:"-"`
	Aliases     map[string]string `upim:"-"`
}

type loader struct {
	storage       domain.Storage
	decoder       domain.Decoder
	validateAlias AliasValidator
}

// Load reads the global configuration files that exist and then the
// application configuration, which is conf when given. Later files override
// earlier ones. Validation problems are all reported together as
// [ValidationErrors].
func Load(src Sources, conf string, options ...Option) (*Config, error) {
	l := &loader{
		storage: storage.NewStorage(),
		decoder: decoder.NewDecoder(),
	}
	for _, option := range options {
		option(l)
	}

	files, err := l.files(src, conf)
	if err != nil {
		return nil, err
	}

	f, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		PreserveSurroundedQuote: true,
	}, files[0], files[1:]...)
	if err != nil {
		return nil, errors.Wrap(err, "reading configuration")
	}

	cfg, err := l.decode(f)
	if err != nil {
		return nil, err
	}

	if errs := l.validate(cfg); len(errs) > 0 {
		return nil, errs
	}
	return cfg, nil
}

func (l *loader) files(src Sources, conf string) ([]any, error) {
	var files []any
	for _, name := range src.Global {
		exists, err := l.storage.Exists(name)
		if err != nil {
			return nil, errors.Wrapf(err, "configuration %s", name)
		}
		if exists {
			files = append(files, name)
		}
	}

	if conf != "" {
		exists, err := l.storage.Exists(conf)
		if err != nil {
			return nil, errors.Wrapf(err, "configuration %s", conf)
		}
		if !exists {
			return nil, ErrNoConfiguration{Path: conf}
		}
		return append(files, conf), nil
	}

	for _, name := range src.Application {
		exists, err := l.storage.Exists(name)
		if err != nil {
			return nil, errors.Wrapf(err, "configuration %s", name)
		}
		if exists {
			return append(files, name), nil
		}
	}
	return nil, ErrNoConfiguration{}
}

func (l *loader) decode(f *ini.File) (*Config, error) {
	v := viper.New()
	v.SetDefault("field_separator", DefaultFieldSeparator)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetEnvPrefix("UPIM")
	for _, key := range settings {
		if err := v.BindEnv(key); err != nil {
			return nil, errors.Wrapf(err, "binding %s", key)
		}
	}

	defaults := make(map[string]any)
	for _, key := range f.Section(ini.DefaultSection).Keys() {
		defaults[key.Name()] = key.Value()
	}
	if err := v.MergeConfigMap(defaults); err != nil {
		return nil, errors.Wrap(err, "merging configuration")
	}

	values := make(map[string]any, len(settings))
	for _, key := range settings {
		values[key] = v.GetString(key)
	}

	cfg := &Config{
		Collections: f.Section(collectionsGroup).KeysHash(),
		Aliases:     f.Section(aliasesGroup).KeysHash(),
	}
	if err := l.decoder.Decode(values, cfg); err != nil {
		return nil, errors.Wrap(err, "decoding configuration")
	}
	return cfg, nil
}

func (l *loader) validate(cfg *Config) ValidationErrors {
	var errs ValidationErrors

	if cfg.DefaultCollection == "" {
		errs = append(errs, ErrMissingOption{Name: "default_collection"})
	}

	sep, err := ParseSeparator(cfg.FieldSeparator)
	if err != nil {
		errs = append(errs, err)
	}
	cfg.FieldSeparator = sep

	if l.validateAlias != nil {
		for _, name := range slices.Sorted(maps.Keys(cfg.Aliases)) {
			if err := l.validateAlias(cfg.Aliases[name]); err != nil {
				errs = append(errs, errors.Wrapf(err, "alias %s", name))
			}
		}
	}
	return errs
}

// CollectionPath returns the directory of the named collection. Relative
// paths are resolved against collection_base.
func (c *Config) CollectionPath(name string) (string, error) {
	path, ok := c.Collections[name]
	if !ok {
		return "", ErrCollectionDoesNotExist{Name: name}
	}
	path = lexis.Unquote(path)
	if filepath.IsAbs(path) {
		return path, nil
	}
	if c.CollectionBase == "" {
		return "", ErrCannotMakeAbsolutePath{Name: name}
	}
	return filepath.Join(c.CollectionBase, path), nil
}

// ParseSeparator reads a field_separator value. Values longer than one
// character must be quoted. {SPACE} and {TAB} stand for a space and a tab, and
// \uXXXX for the character with that code.
func ParseSeparator(val string) (string, error) {
	if utf8.RuneCountInString(val) > 1 && !lexis.IsQuoted(val) {
		return "", ErrInvalidValue{Data: val, Rules: "field_separator strings must be quoted"}
	}
	val = lexis.Unquote(val)
	val = strings.NewReplacer("{SPACE}", " ", "{TAB}", "\t").Replace(val)
	return unescapeUnicode(val)
}

func unescapeUnicode(s string) (string, error) {
	var b strings.Builder
	for {
		i := strings.IndexByte(s, '\\')
		if i < 0 {
			b.WriteString(s)
			return b.String(), nil
		}
		b.WriteString(s[:i])
		rest := s[i+1:]

		code, ok := strings.CutPrefix(rest, "u")
		if !ok {
			return "", invalidEscape(rest)
		}
		n := 0
		for n < len(code) && isHex(code[n]) {
			n++
		}
		if n != 4 {
			return "", invalidEscape(rest)
		}

		u, err := strconv.ParseUint(code[:4], 16, 32)
		r := rune(u)
		if err != nil || !utf8.ValidRune(r) {
			return "", invalidEscape(rest)
		}
		b.WriteRune(r)
		s = code[4:]
	}
}

func invalidEscape(s string) error {
	return ErrInvalidValue{Data: s, Rules: "invalid Unicode escape sequence"}
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}
