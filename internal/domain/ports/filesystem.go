package ports

import (
	"io"
	"os"
)

// FileSystem is the slice of file operations the generator needs.
// Lessons are streamed through Open; the template and pages go through ReadFile and WriteFile.
type FileSystem interface {
	Open(name string) (io.ReadCloser, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	Exists(path string) bool
	MkdirAll(path string, perm os.FileMode) error
}

// OSFileSystem is the FileSystem backed by the os package
type OSFileSystem struct{}

// NewOSFileSystem returns the disk backed FileSystem
func NewOSFileSystem() FileSystem {
	return OSFileSystem{}
}

func (OSFileSystem) Open(name string) (io.ReadCloser, error) {
	return os.Open(name) // #nosec G304 - lesson paths come from the lessons directory walk
}

func (OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name) // #nosec G304 - template path is resolved from the working directory
}

func (OSFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// Exists reports whether anything is present at path
func (OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (OSFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}
