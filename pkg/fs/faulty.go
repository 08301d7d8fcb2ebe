package fs

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

// Op names an [FS] operation that [Faulty] can fail.
type Op string

// Operations that can be failed. File handle methods are never failed;
// only the FS-level call that would return them.
const (
	OpOpen      Op = "open"
	OpOpenFile  Op = "openfile"
	OpReadFile  Op = "readfile"
	OpReadDir   Op = "readdir"
	OpMkdirAll  Op = "mkdirall"
	OpStat      Op = "stat"
	OpRemove    Op = "remove"
	OpRemoveAll Op = "removeall"
	OpRename    Op = "rename"
	OpChtimes   Op = "chtimes"
)

type injectedError struct {
	Err error
}

func (e *injectedError) Error() string {
	return "injected: " + e.Err.Error()
}

func (e *injectedError) Unwrap() error {
	return e.Err
}

// IsInjected reports whether err (or any wrapped error) was produced by [Faulty].
func IsInjected(err error) bool {
	var injected *injectedError

	return errors.As(err, &injected)
}

// Faulty wraps an [FS] and fails selected operations on selected paths.
//
// Unlike a random fault injector, every failure is scripted by the test:
//
//	fsys := fs.NewFaulty(fs.NewReal())
//	fsys.Fail(fs.OpRemove, ticketPath, syscall.EACCES)
//
// Injected errors have the same shape the [os] package would return
// ([*os.PathError], or [*os.LinkError] for rename) with a real
// [syscall.Errno], so errors.Is(err, syscall.EACCES) works. They are
// additionally marked so [IsInjected] can tell them apart from real failures.
// Faulty never injects ENOENT.
//
// Rename rules match on the old path. Exists is governed by [OpStat] rules.
type Faulty struct {
	fs FS

	mu    sync.Mutex
	rules []faultRule

	injected atomic.Int64
}

type faultRule struct {
	op        Op
	path      string
	errno     syscall.Errno
	remaining int // <0 means unlimited
}

// NewFaulty returns a [Faulty] wrapping underlying. Panics if underlying is nil.
func NewFaulty(underlying FS) *Faulty {
	if underlying == nil {
		panic("underlying fs is nil")
	}

	return &Faulty{fs: underlying}
}

// Fail makes every future op on path fail with errno.
func (f *Faulty) Fail(op Op, path string, errno syscall.Errno) {
	f.add(op, path, errno, -1)
}

// FailOnce makes the next op on path fail with errno.
func (f *Faulty) FailOnce(op Op, path string, errno syscall.Errno) {
	f.add(op, path, errno, 1)
}

// Reset drops all rules.
func (f *Faulty) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.rules = nil
}

// Injected returns how many failures have been injected so far.
func (f *Faulty) Injected() int64 {
	return f.injected.Load()
}

func (f *Faulty) add(op Op, path string, errno syscall.Errno, remaining int) {
	if errno == syscall.ENOENT {
		panic("faulty: ENOENT is never injected, remove the path instead")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.rules = append(f.rules, faultRule{
		op:        op,
		path:      filepath.Clean(path),
		errno:     errno,
		remaining: remaining,
	})
}

// take consumes a matching rule and returns its errno, or 0 if none matches.
func (f *Faulty) take(op Op, path string) syscall.Errno {
	f.mu.Lock()
	defer f.mu.Unlock()

	path = filepath.Clean(path)

	for i := range f.rules {
		rule := &f.rules[i]
		if rule.op != op || rule.path != path || rule.remaining == 0 {
			continue
		}

		if rule.remaining > 0 {
			rule.remaining--
		}

		f.injected.Add(1)

		return rule.errno
	}

	return 0
}

func (f *Faulty) pathErr(op Op, path string) error {
	errno := f.take(op, path)
	if errno == 0 {
		return nil
	}

	return &injectedError{Err: &os.PathError{Op: string(op), Path: path, Err: errno}}
}

func (f *Faulty) Open(path string) (File, error) {
	if err := f.pathErr(OpOpen, path); err != nil {
		return nil, err
	}

	return f.fs.Open(path)
}

func (f *Faulty) OpenFile(path string, flag int, perm os.FileMode) (File, error) {
	if err := f.pathErr(OpOpenFile, path); err != nil {
		return nil, err
	}

	return f.fs.OpenFile(path, flag, perm)
}

func (f *Faulty) ReadFile(path string) ([]byte, error) {
	if err := f.pathErr(OpReadFile, path); err != nil {
		return nil, err
	}

	return f.fs.ReadFile(path)
}

func (f *Faulty) ReadDir(path string) ([]os.DirEntry, error) {
	if err := f.pathErr(OpReadDir, path); err != nil {
		return nil, err
	}

	return f.fs.ReadDir(path)
}

func (f *Faulty) MkdirAll(path string, perm os.FileMode) error {
	if err := f.pathErr(OpMkdirAll, path); err != nil {
		return err
	}

	return f.fs.MkdirAll(path, perm)
}

func (f *Faulty) Stat(path string) (os.FileInfo, error) {
	if err := f.pathErr(OpStat, path); err != nil {
		return nil, err
	}

	return f.fs.Stat(path)
}

func (f *Faulty) Exists(path string) (bool, error) {
	if err := f.pathErr(OpStat, path); err != nil {
		return false, err
	}

	return f.fs.Exists(path)
}

func (f *Faulty) Remove(path string) error {
	if err := f.pathErr(OpRemove, path); err != nil {
		return err
	}

	return f.fs.Remove(path)
}

func (f *Faulty) RemoveAll(path string) error {
	if err := f.pathErr(OpRemoveAll, path); err != nil {
		return err
	}

	return f.fs.RemoveAll(path)
}

func (f *Faulty) Rename(oldpath, newpath string) error {
	errno := f.take(OpRename, oldpath)
	if errno != 0 {
		return &injectedError{Err: &os.LinkError{Op: string(OpRename), Old: oldpath, New: newpath, Err: errno}}
	}

	return f.fs.Rename(oldpath, newpath)
}

func (f *Faulty) Chtimes(path string, atime, mtime time.Time) error {
	if err := f.pathErr(OpChtimes, path); err != nil {
		return err
	}

	return f.fs.Chtimes(path, atime, mtime)
}

var _ FS = (*Faulty)(nil)
