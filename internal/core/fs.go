package core

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem is the set of filesystem calls resources make. Every mutation in
// a run goes through it.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
	Remove(name string) error
	RemoveAll(path string) error
	Readlink(name string) (string, error)
	EvalSymlinks(path string) (string, error)
	Symlink(oldname, newname string) error
	Chmod(name string, mode os.FileMode) error
}

// RealFS is a real filesystem implementation using os package
type RealFS struct{}

func (f *RealFS) Stat(name string) (fs.FileInfo, error)  { return os.Stat(name) }
func (f *RealFS) Lstat(name string) (fs.FileInfo, error) { return os.Lstat(name) }
func (f *RealFS) ReadFile(name string) ([]byte, error)   { return os.ReadFile(name) }
func (f *RealFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}
func (f *RealFS) MkdirAll(path string, perm os.FileMode) error { return os.MkdirAll(path, perm) }
func (f *RealFS) Remove(name string) error                     { return os.Remove(name) }
func (f *RealFS) RemoveAll(path string) error                  { return os.RemoveAll(path) }
func (f *RealFS) Readlink(name string) (string, error)         { return os.Readlink(name) }
func (f *RealFS) EvalSymlinks(path string) (string, error)     { return filepath.EvalSymlinks(path) }
func (f *RealFS) Symlink(oldname, newname string) error        { return os.Symlink(oldname, newname) }
func (f *RealFS) Chmod(name string, mode os.FileMode) error    { return os.Chmod(name, mode) }

// Exists distinguishes "absent" from a real error such as permission denied.
func Exists(fsys FileSystem, path string) (bool, error) {
	_, err := fsys.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
