package ticket

import (
	"fmt"
	"log/slog"

	"github.com/calvinalkan/tickets/pkg/fs"
)

const (
	dirPerms  = 0o750
	filePerms = 0o600
)

// Store owns one storage root and performs every operation on it.
//
// Store is not safe for concurrent use, and nothing coordinates two
// processes working on the same root.
type Store struct {
	root   string
	fs     fs.FS
	writer *fs.AtomicWriter
	log    *slog.Logger
}

// StoreOption configures a [Store].
type StoreOption func(*Store)

// WithLogger sets the logger used for debug records and partial-failure
// warnings. The default discards everything.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.log = logger
		}
	}
}

// NewStore returns a store rooted at root. Panics if fsys is nil.
func NewStore(root string, fsys fs.FS, opts ...StoreOption) *Store {
	if fsys == nil {
		panic("fs is nil")
	}

	s := &Store{
		root:   root,
		fs:     fsys,
		writer: fs.NewAtomicWriter(fsys),
		log:    slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Root returns the storage root directory.
func (s *Store) Root() string {
	return s.root
}

// Node parses identifier and builds a node under the store root.
func (s *Store) Node(identifier string, src Source) (*Node, error) {
	ref, err := ParseRef(identifier)
	if err != nil {
		return nil, err
	}

	return NewNode(s.root, ref, src), nil
}

// Initialized reports whether the root directory exists.
func (s *Store) Initialized() (bool, error) {
	return s.fs.Exists(s.root)
}

// Init creates the root directory.
func (s *Store) Init() error {
	exists, err := s.fs.Exists(s.root)
	if err != nil {
		return err
	}

	if exists {
		return fmt.Errorf("%w: %s", ErrAlreadyInitialized, s.root)
	}

	err = s.fs.MkdirAll(s.root, dirPerms)
	if err != nil {
		return fmt.Errorf("create root: %w", err)
	}

	s.log.Debug("initialized", "root", s.root)

	return nil
}

// Purge deletes the root directory and everything below it. A missing root
// is reported with the filesystem's not-found error.
func (s *Store) Purge() error {
	_, err := s.fs.Stat(s.root)
	if err != nil {
		return err
	}

	err = s.fs.RemoveAll(s.root)
	if err != nil {
		return err
	}

	s.log.Debug("purged", "root", s.root)

	return nil
}

// Exists reports whether the node's path exists.
func (s *Store) Exists(n *Node) (bool, error) {
	return s.fs.Exists(n.Path)
}

// Read populates the node from disk.
//
// A ticket gets its Title, Message and Modified; a category only gets
// Modified (the directory's modification time). A path whose kind on disk
// does not match the node's kind fails with [ErrInvalidInput].
func (s *Store) Read(n *Node) error {
	info, err := s.fs.Stat(n.Path)
	if err != nil {
		return err
	}

	if n.IsCategory() {
		if !info.IsDir() {
			return fmt.Errorf("%w: %s is not a directory", ErrInvalidInput, n.Ref.Identifier())
		}

		n.Modified = info.ModTime()

		return nil
	}

	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory, not a ticket", ErrInvalidInput, n.Ref.Identifier())
	}

	data, err := s.fs.ReadFile(n.Path)
	if err != nil {
		return err
	}

	n.Title, n.Message = Decode(data)
	n.Modified = info.ModTime()

	return nil
}
