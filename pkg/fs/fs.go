// Package fs provides the filesystem abstraction the ticket store runs on.
//
// The main types are:
//   - [FS]: interface for the filesystem operations the store needs
//   - [File]: interface for open files (satisfied by [os.File])
//   - [Real]: production implementation using [os] package
//   - [Faulty]: testing implementation that fails chosen operations on chosen paths
//   - [AtomicWriter]: temp-file + rename writes on top of any [FS]
//
// Example usage:
//
//	fsys := fs.NewReal()
//	entries, err := fsys.ReadDir(root)
//	if err != nil {
//	    return err
//	}
package fs

import (
	"io"
	"os"
	"time"
)

// File represents an OS-backed open file descriptor.
//
// This interface is satisfied by [os.File] and can be used with all
// standard library functions that accept [io.Reader], [io.Writer],
// [io.Seeker], or [io.Closer].
//
// Like [os.File], implementations return an error from Write when the
// file wasn't opened for writing.
type File interface {
	io.ReadWriteCloser
	io.Seeker

	// Stat returns the [os.FileInfo] for this file. See [os.File.Stat].
	Stat() (os.FileInfo, error)

	// Sync commits the file's contents to disk. See [os.File.Sync].
	Sync() error

	// Chmod changes the mode of the file. See [os.File.Chmod].
	Chmod(mode os.FileMode) error
}

// FS defines the filesystem operations used by the ticket store.
//
// All methods mirror their [os] package equivalents, so errors keep their
// usual shape ([*os.PathError], [*os.LinkError]) and helpers like
// [os.IsNotExist] keep working. Paths use OS semantics.
type FS interface {
	// Open opens a file (or directory) for reading. See [os.Open].
	Open(path string) (File, error)

	// OpenFile opens a file with specified flags and permissions. See [os.OpenFile].
	OpenFile(path string, flag int, perm os.FileMode) (File, error)

	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// ReadDir reads a directory and returns its entries sorted by name. See [os.ReadDir].
	ReadDir(path string) ([]os.DirEntry, error)

	// MkdirAll creates a directory and all parents. See [os.MkdirAll].
	MkdirAll(path string, perm os.FileMode) error

	// Stat returns file info. See [os.Stat].
	Stat(path string) (os.FileInfo, error)

	// Exists reports whether a file or directory exists.
	// Returns (false, nil) if not found, (false, err) on other errors.
	Exists(path string) (bool, error)

	// Remove deletes a file or empty directory. See [os.Remove].
	Remove(path string) error

	// RemoveAll deletes a path and any children. See [os.RemoveAll].
	// No error if path doesn't exist.
	RemoveAll(path string) error

	// Rename moves/renames a file or directory. See [os.Rename].
	Rename(oldpath, newpath string) error

	// Chtimes changes the access and modification times. See [os.Chtimes].
	Chtimes(path string, atime, mtime time.Time) error
}

// Compile-time interface checks.
var _ File = (*os.File)(nil)
