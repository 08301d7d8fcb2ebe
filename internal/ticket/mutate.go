package ticket

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/calvinalkan/tickets/pkg/fs"
)

// Create creates the category directory or writes the ticket from the
// node's source.
//
// It fails with [ErrAlreadyExists] when the path exists and, for tickets,
// with [ErrNotFound] when the category does not exist. The existence check
// and the creation are not atomic.
func (s *Store) Create(ctx context.Context, n *Node) error {
	exists, err := s.fs.Exists(n.Path)
	if err != nil {
		return err
	}

	if exists {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, n.Ref.Identifier())
	}

	if n.IsCategory() {
		err = s.fs.MkdirAll(n.Path, dirPerms)
		if err != nil {
			return fmt.Errorf("create category %s: %w", n.Category(), err)
		}

		s.log.Debug("created category", "category", n.Category())

		return nil
	}

	parent, err := s.fs.Exists(filepath.Dir(n.Path))
	if err != nil {
		return err
	}

	if !parent {
		return fmt.Errorf("%w: category %s does not exist", ErrNotFound, n.Category())
	}

	err = s.write(ctx, n)
	if err != nil {
		return err
	}

	s.log.Debug("created ticket", "ticket", n.Ref.Identifier())

	return nil
}

// Edit overwrites an existing ticket from the node's source.
//
// It fails with [ErrNotFound] when the path is absent and with
// [ErrInvalidInput] for categories.
func (s *Store) Edit(ctx context.Context, n *Node) error {
	exists, err := s.fs.Exists(n.Path)
	if err != nil {
		return err
	}

	if !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, n.Ref.Identifier())
	}

	if n.IsCategory() {
		return fmt.Errorf("%w: categories cannot be edited: %s", ErrInvalidInput, n.Ref.Identifier())
	}

	err = s.write(ctx, n)
	if err != nil {
		return err
	}

	s.log.Debug("edited ticket", "ticket", n.Ref.Identifier())

	return nil
}

func (s *Store) write(ctx context.Context, n *Node) error {
	switch src := n.source.(type) {
	case Text:
		return s.writeFile(n.Path, []byte(src), filePerms)
	case EditFunc:
		err := src(ctx, n.Path)
		if err != nil {
			return err
		}

		exists, err := s.fs.Exists(n.Path)
		if err != nil {
			return err
		}

		if !exists {
			return fmt.Errorf("%w: edit left no content at %s", ErrInvalidInput, n.Ref.Identifier())
		}

		return nil
	default:
		return fmt.Errorf("%w: no content for %s", ErrInvalidInput, n.Ref.Identifier())
	}
}

// writeFile writes data atomically. A failed directory sync after the
// rename is logged and not returned: the content is already in place.
func (s *Store) writeFile(path string, data []byte, perm os.FileMode) error {
	err := s.writer.Write(path, bytes.NewReader(data), fs.AtomicWriteOptions{
		SyncDir: true,
		Perm:    perm,
	})
	if errors.Is(err, fs.ErrAtomicWriteDirSync) {
		s.log.Warn("directory not synced after write", "path", path, "error", err)

		return nil
	}

	return err
}

// Move relocates the ticket src.
//
// When dst is a category the ticket keeps its id; when dst is a ticket the
// file is renamed to exactly that path. The destination category must exist
// and the target must not. The ticket is copied with its modification time,
// then the source is deleted. If the delete fails the ticket exists at both
// paths and the error is returned; nothing is rolled back.
func (s *Store) Move(src, dst *Node) error {
	srcRef, ok := src.Ref.(TicketRef)
	if !ok {
		return fmt.Errorf("%w: move source must be a ticket, got %s", ErrInvalidInput, src.Ref.Identifier())
	}

	target := dst.Path
	targetRef := dst.Ref

	if dst.IsCategory() {
		target = filepath.Join(dst.Path, srcRef.ID())
		targetRef = TicketRef{category: dst.Category(), id: srcRef.ID()}
	}

	info, err := s.fs.Stat(src.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, srcRef.Identifier())
		}

		return err
	}

	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory, not a ticket", ErrInvalidInput, srcRef.Identifier())
	}

	parent, err := s.fs.Exists(filepath.Dir(target))
	if err != nil {
		return err
	}

	if !parent {
		return fmt.Errorf("%w: category %s does not exist", ErrNotFound, dst.Category())
	}

	exists, err := s.fs.Exists(target)
	if err != nil {
		return err
	}

	if exists {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, targetRef.Identifier())
	}

	data, err := s.fs.ReadFile(src.Path)
	if err != nil {
		return err
	}

	err = s.writeFile(target, data, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("copy %s: %w", srcRef.Identifier(), err)
	}

	err = s.fs.Chtimes(target, time.Time{}, info.ModTime())
	if err != nil {
		s.log.Warn("modification time not preserved", "ticket", targetRef.Identifier(), "error", err)
	}

	err = s.fs.Remove(src.Path)
	if err != nil {
		s.log.Warn("ticket duplicated, source not removed after copy",
			"source", srcRef.Identifier(), "target", targetRef.Identifier(), "error", err)

		return fmt.Errorf("remove %s after copy to %s: %w", srcRef.Identifier(), targetRef.Identifier(), err)
	}

	s.log.Debug("moved ticket", "source", srcRef.Identifier(), "target", targetRef.Identifier())

	return nil
}

// MoveAll moves every ticket of category src into category dst, oldest
// first. src itself is left in place. A failure stops the sequence: tickets
// moved so far stay moved and nothing is retried.
func (s *Store) MoveAll(src, dst *Node) error {
	if !src.IsCategory() || !dst.IsCategory() {
		return fmt.Errorf("%w: move-all requires two categories, got %s and %s",
			ErrInvalidInput, src.Ref.Identifier(), dst.Ref.Identifier())
	}

	exists, err := s.fs.Exists(dst.Path)
	if err != nil {
		return err
	}

	if !exists {
		return fmt.Errorf("%w: category %s does not exist", ErrNotFound, dst.Category())
	}

	tickets, err := s.Collect(src)
	if err != nil {
		return err
	}

	for i, t := range tickets {
		err := s.Move(t, dst)
		if err != nil {
			s.log.Warn("category partially moved",
				"source", src.Category(), "target", dst.Category(),
				"moved", i, "remaining", len(tickets)-i)

			return err
		}
	}

	s.log.Debug("moved category", "source", src.Category(), "target", dst.Category(), "tickets", len(tickets))

	return nil
}

// Remove deletes a ticket file, or a category with everything in it.
// A missing target is reported with the filesystem's not-found error.
func (s *Store) Remove(n *Node) error {
	info, err := s.fs.Stat(n.Path)
	if err != nil {
		return err
	}

	if n.IsCategory() {
		if !info.IsDir() {
			return fmt.Errorf("%w: %s is not a directory", ErrInvalidInput, n.Ref.Identifier())
		}

		err = s.fs.RemoveAll(n.Path)
	} else {
		if info.IsDir() {
			return fmt.Errorf("%w: %s is a directory, not a ticket", ErrInvalidInput, n.Ref.Identifier())
		}

		err = s.fs.Remove(n.Path)
	}

	if err != nil {
		return err
	}

	s.log.Debug("removed", "node", n.Ref.Identifier())

	return nil
}
