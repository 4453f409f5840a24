package fs

import (
	"errors"
	iofs "io/fs"
)

var ErrReadOnly = errors.New("embedded filesystem is read-only")

// ReadOnlyFileSystem serves documents bundled into the binary.
type ReadOnlyFileSystem struct {
	fs iofs.FS
}

func NewReadOnlyFileSystem(fsys iofs.FS) *ReadOnlyFileSystem {
	return &ReadOnlyFileSystem{fs: fsys}
}

func (fs *ReadOnlyFileSystem) ReadFile(path string) ([]byte, error) {
	return iofs.ReadFile(fs.fs, path)
}

func (fs *ReadOnlyFileSystem) FileExists(path string) bool {
	_, err := iofs.Stat(fs.fs, path)
	return err == nil
}

func (fs *ReadOnlyFileSystem) WriteFile(path string, data []byte, perm iofs.FileMode) error {
	return ErrReadOnly
}

func (fs *ReadOnlyFileSystem) MkdirAll(path string, perm iofs.FileMode) error {
	return ErrReadOnly
}
