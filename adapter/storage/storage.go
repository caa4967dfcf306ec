// Package storage contains the default [domain.Storage] implementation, backed
// by the local file system.
package storage

import (
	"errors"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/vinicius-lino-figueiredo/upim/domain"
)

var osSpecificEnsureDir = func(o osOps, dir string, mode os.FileMode) error {
	return o.MkdirAll(dir, mode)
}

// Storage implements [domain.Storage].
type Storage struct {
	osOps osOps
}

// NewStorage returns a new implementation of [domain.Storage].
func NewStorage() domain.Storage {
	return &Storage{osOps: &osImpl{}}
}

// Exists implements [domain.Storage].
func (s *Storage) Exists(name string) (bool, error) {
	_, err := s.osOps.Stat(name)
	if err != nil {
		if s.osOps.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// WalkFiles implements [domain.Storage]. Files are yielded in lexical order,
// directories are walked depth first. Hidden files and directories are
// skipped and symbolic links to directories are not followed.
func (s *Storage) WalkFiles(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		s.walk(root, yield)
	}
}

func (s *Storage) walk(dir string, yield func(string, error) bool) bool {
	entries, err := s.osOps.ReadDir(dir)
	if err != nil {
		return yield(dir, err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		name := filepath.Join(dir, entry.Name())

		switch typ := entry.Type(); {
		case typ.IsDir():
			if !s.walk(name, yield) {
				return false
			}
			continue
		case typ&os.ModeSymlink != 0:
			info, err := s.osOps.Stat(name)
			if err != nil {
				if s.osOps.IsNotExist(err) {
					// dangling link
					continue
				}
				if !yield(name, err) {
					return false
				}
				continue
			}
			if !info.Mode().IsRegular() {
				continue
			}
		case !typ.IsRegular():
			continue
		}

		if !yield(name, nil) {
			return false
		}
	}
	return true
}

// ReadFileStream implements [domain.Storage].
func (s *Storage) ReadFileStream(name string) (io.ReadCloser, error) {
	return s.osOps.OpenFile(name, os.O_RDONLY, 0)
}

// CreateFile implements [domain.Storage]. It fails with [domain.ErrFileExists]
// if name is already taken.
func (s *Storage) CreateFile(name string, data []byte, mode os.FileMode) error {
	f, err := s.osOps.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return domain.ErrFileExists{Path: name}
		}
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// EnsureDirectoryExists implements [domain.Storage].
func (s *Storage) EnsureDirectoryExists(dir string, mode os.FileMode) error {
	parsedDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	return osSpecificEnsureDir(s.osOps, parsedDir, mode)
}
