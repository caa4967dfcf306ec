package storage

import "os"

type osOps interface {
	IsNotExist(err error) bool
	MkdirAll(path string, perm os.FileMode) error
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
	ReadDir(name string) ([]os.DirEntry, error)
	Stat(name string) (os.FileInfo, error)
}

type osImpl struct{}

// IsNotExist implements [osOps].
func (o *osImpl) IsNotExist(err error) bool {
	return os.IsNotExist(err)
}

// MkdirAll implements [osOps].
func (o *osImpl) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// OpenFile implements [osOps].
func (o *osImpl) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

// ReadDir implements [osOps].
func (o *osImpl) ReadDir(name string) ([]os.DirEntry, error) {
	return os.ReadDir(name)
}

// Stat implements [osOps].
func (o *osImpl) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}
