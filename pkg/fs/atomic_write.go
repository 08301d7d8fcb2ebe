package fs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
)

// ErrAtomicWriteDirSync indicates the parent directory could not be synced after rename.
//
// When returned, the new file is in place but durability is not guaranteed.
var ErrAtomicWriteDirSync = errors.New("dir sync")

// AtomicWriter writes files atomically using rename.
//
// Content is written to a hidden temp file next to the target (".<name>.tmp-N"),
// synced, then renamed over the target. Readers see either the old or the new
// content, never a partial file.
type AtomicWriter struct {
	fs FS
}

// NewAtomicWriter creates an AtomicWriter that uses the given filesystem.
// Panics if fs is nil.
func NewAtomicWriter(fs FS) *AtomicWriter {
	if fs == nil {
		panic("fs is nil")
	}

	return &AtomicWriter{fs: fs}
}

// AtomicWriteOptions configures [AtomicWriter.Write].
type AtomicWriteOptions struct {
	// SyncDir controls whether the parent directory is synced after rename.
	SyncDir bool

	// Perm is the mode of the written file. Must be non-zero.
	// The temp file is chmod'd explicitly, so umask does not apply.
	Perm os.FileMode
}

// DefaultOptions returns the options used by [AtomicWriter.WriteWithDefaults].
func (*AtomicWriter) DefaultOptions() AtomicWriteOptions {
	return AtomicWriteOptions{
		SyncDir: true,
		Perm:    0o600,
	}
}

// WriteWithDefaults writes content atomically using [AtomicWriter.DefaultOptions].
func (w *AtomicWriter) WriteWithDefaults(path string, r io.Reader) error {
	return w.Write(path, r, w.DefaultOptions())
}

// Write writes everything from r to path atomically.
//
// The parent directory of path must exist. If the directory sync step
// fails, the returned error satisfies errors.Is(err, ErrAtomicWriteDirSync).
func (w *AtomicWriter) Write(path string, r io.Reader, opts AtomicWriteOptions) error {
	if r == nil {
		panic("reader is nil")
	}

	if opts.Perm == 0 {
		return errors.New("opts.Perm must be non-zero")
	}

	dir, base := filepath.Split(path)
	if base == "" || base == "." || base == ".." {
		return fmt.Errorf("path is invalid: %q", path)
	}

	if dir == "" {
		dir = "."
	}

	dir = filepath.Clean(dir)

	tmp, tmpPath, err := w.createTemp(dir, base, opts.Perm)
	if err != nil {
		return err
	}

	committed := false

	defer func() {
		if !committed {
			_ = w.fs.Remove(tmpPath)
		}
	}()

	err = fill(tmp, tmpPath, r, opts.Perm)

	closeErr := tmp.Close()
	if err == nil && closeErr != nil {
		err = fmt.Errorf("close temp file %q: %w", tmpPath, closeErr)
	}

	if err != nil {
		return err
	}

	err = w.fs.Rename(tmpPath, path)
	if err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	committed = true

	if opts.SyncDir {
		return w.syncDir(dir)
	}

	return nil
}

// fill chmods, writes and syncs the temp file.
func fill(file File, path string, r io.Reader, perm os.FileMode) error {
	err := file.Chmod(perm)
	if err != nil {
		return fmt.Errorf("chmod temp file %q: %w", path, err)
	}

	_, err = io.Copy(file, r)
	if err != nil {
		return fmt.Errorf("write temp file %q: %w", path, err)
	}

	err = file.Sync()
	if err != nil {
		return fmt.Errorf("sync temp file %q: %w", path, err)
	}

	return nil
}

const atomicWriteMaxAttempts = 10000

var atomicWriteCounter atomic.Uint64

func (w *AtomicWriter) createTemp(dir, base string, perm os.FileMode) (File, string, error) {
	for range atomicWriteMaxAttempts {
		seq := atomicWriteCounter.Add(1)
		path := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d", base, seq))

		file, err := w.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
		if err == nil {
			return file, path, nil
		}

		if os.IsExist(err) {
			continue
		}

		return nil, "", fmt.Errorf("create temp file: %w", err)
	}

	return nil, "", fmt.Errorf("exhausted temp file attempts in %q", dir)
}

func (w *AtomicWriter) syncDir(dir string) error {
	handle, err := w.fs.Open(dir)
	if err != nil {
		return errors.Join(ErrAtomicWriteDirSync, fmt.Errorf("open dir %q: %w", dir, err))
	}

	syncErr := handle.Sync()
	closeErr := handle.Close()

	if syncErr != nil {
		return errors.Join(ErrAtomicWriteDirSync, fmt.Errorf("%q: %w", dir, syncErr), closeErr)
	}

	if closeErr != nil {
		return fmt.Errorf("close dir %q: %w", dir, closeErr)
	}

	return nil
}
