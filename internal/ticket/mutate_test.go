package ticket_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/calvinalkan/tickets/internal/ticket"
	"github.com/calvinalkan/tickets/pkg/fs"
)

func TestCreateCategory(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	category := mustCreate(t, store, "hello/", nil)

	info, err := os.Stat(category.Path)
	if err != nil {
		t.Fatalf("category dir missing: %v", err)
	}

	if !info.IsDir() {
		t.Fatal("category should be a directory")
	}

	err = store.Create(context.Background(), mustNode(t, store, "hello/", nil))
	if !errors.Is(err, ticket.ErrAlreadyExists) {
		t.Errorf("second create err=%v, want ErrAlreadyExists", err)
	}
}

func TestCreateTicket(t *testing.T) {
	t.Parallel()

	t.Run("missing category", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		n := mustNode(t, store, "nope/ID-1", ticket.Text("T"))

		err := store.Create(context.Background(), n)
		if !errors.Is(err, ticket.ErrNotFound) {
			t.Errorf("err=%v, want ErrNotFound", err)
		}

		if exists(t, n.Path) {
			t.Error("no file should be written")
		}
	})

	t.Run("existing ticket", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		mustCreate(t, store, "hello/", nil)
		mustCreate(t, store, "hello/ID-1", ticket.Text("first"))

		err := store.Create(context.Background(), mustNode(t, store, "hello/ID-1", ticket.Text("second")))
		if !errors.Is(err, ticket.ErrAlreadyExists) {
			t.Errorf("err=%v, want ErrAlreadyExists", err)
		}

		if got, want := mustRead(t, store, "hello/ID-1").Title, "first"; got != want {
			t.Errorf("title=%q, want=%q", got, want)
		}
	})

	t.Run("no source", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		mustCreate(t, store, "hello/", nil)
		n := mustNode(t, store, "hello/ID-1", nil)

		err := store.Create(context.Background(), n)
		if !errors.Is(err, ticket.ErrInvalidInput) {
			t.Errorf("err=%v, want ErrInvalidInput", err)
		}

		if exists(t, n.Path) {
			t.Error("no file should be written")
		}
	})

	t.Run("edit func", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		mustCreate(t, store, "hello/", nil)

		var gotPath string

		edit := ticket.EditFunc(func(_ context.Context, path string) error {
			gotPath = path

			return os.WriteFile(path, []byte("From editor\n\nbody"), 0o600)
		})

		n := mustCreate(t, store, "hello/ID-1", edit)

		if got, want := gotPath, n.Path; got != want {
			t.Errorf("edit path=%q, want=%q", got, want)
		}

		read := mustRead(t, store, "hello/ID-1")
		if read.Title != "From editor" || read.Message != "body" {
			t.Errorf("read (%q, %q)", read.Title, read.Message)
		}
	})

	t.Run("edit func failure", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		mustCreate(t, store, "hello/", nil)

		errEditor := errors.New("editor exited 1")
		n := mustNode(t, store, "hello/ID-1", ticket.EditFunc(func(context.Context, string) error {
			return errEditor
		}))

		err := store.Create(context.Background(), n)
		if !errors.Is(err, errEditor) {
			t.Errorf("err=%v, want %v", err, errEditor)
		}

		if exists(t, n.Path) {
			t.Error("no file should be written")
		}
	})

	t.Run("edit func writes nothing", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		mustCreate(t, store, "hello/", nil)

		n := mustNode(t, store, "hello/ID-1", ticket.EditFunc(func(context.Context, string) error {
			return nil
		}))

		err := store.Create(context.Background(), n)
		if !errors.Is(err, ticket.ErrInvalidInput) {
			t.Errorf("err=%v, want ErrInvalidInput", err)
		}
	})
}

func TestEdit(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	mustCreate(t, store, "hello/", nil)
	mustCreate(t, store, "hello/ID-1", ticket.Text("old"))

	err := store.Edit(context.Background(), mustNode(t, store, "hello/ID-1", ticket.Text("new\n\nbody")))
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}

	read := mustRead(t, store, "hello/ID-1")
	if read.Title != "new" || read.Message != "body" {
		t.Errorf("read (%q, %q), want (new, body)", read.Title, read.Message)
	}

	err = store.Edit(context.Background(), mustNode(t, store, "hello/ID-2", ticket.Text("x")))
	if !errors.Is(err, ticket.ErrNotFound) {
		t.Errorf("edit missing err=%v, want ErrNotFound", err)
	}

	if exists(t, filepath.Join(store.Root(), "hello", "ID-2")) {
		t.Error("edit must not create a missing ticket")
	}

	err = store.Edit(context.Background(), mustNode(t, store, "hello/", ticket.Text("x")))
	if !errors.Is(err, ticket.ErrInvalidInput) {
		t.Errorf("edit category err=%v, want ErrInvalidInput", err)
	}
}

func TestMoveKeepsIDAcrossCategories(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	mustCreate(t, store, "c1/", nil)
	mustCreate(t, store, "c2/", nil)
	src := mustCreate(t, store, "c1/ID-1", ticket.Text("T\n\nB"))
	setModified(t, src, 7)

	before := mustRead(t, store, "c1/ID-1")

	err := store.Move(src, mustNode(t, store, "c2/", nil))
	if err != nil {
		t.Fatalf("Move: %v", err)
	}

	if exists(t, src.Path) {
		t.Error("source should be gone")
	}

	after := mustRead(t, store, "c2/ID-1")

	if got, want := after.Category(), "c2"; got != want {
		t.Errorf("category=%q, want=%q", got, want)
	}

	if got, want := after.ID(), "ID-1"; got != want {
		t.Errorf("id=%q, want=%q", got, want)
	}

	if after.Title != before.Title || after.Message != before.Message {
		t.Errorf("content changed: (%q, %q) -> (%q, %q)", before.Title, before.Message, after.Title, after.Message)
	}

	if !after.Modified.Equal(before.Modified) {
		t.Errorf("modified=%v, want=%v", after.Modified, before.Modified)
	}
}

func TestMoveToTicketRenames(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	mustCreate(t, store, "c1/", nil)
	mustCreate(t, store, "c2/", nil)
	src := mustCreate(t, store, "c1/ID-1", ticket.Text("T"))

	err := store.Move(src, mustNode(t, store, "c2/ID-9", nil))
	if err != nil {
		t.Fatalf("Move: %v", err)
	}

	if got, want := ids(mustCollect(t, store, "c2/")), []string{"c2/ID-9"}; !cmp.Equal(got, want) {
		t.Errorf("c2 tickets mismatch (-got +want):\n%s", cmp.Diff(got, want))
	}

	if got := mustCollect(t, store, "c1/"); len(got) != 0 {
		t.Errorf("c1 should be empty, got %v", ids(got))
	}
}

func TestMoveRejects(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	mustCreate(t, store, "c1/", nil)
	mustCreate(t, store, "c2/", nil)
	src := mustCreate(t, store, "c1/ID-1", ticket.Text("source"))
	mustCreate(t, store, "c2/ID-1", ticket.Text("occupant"))

	tests := []struct {
		name    string
		src     string
		dst     string
		wantErr error
	}{
		{"category source", "c1/", "c2/", ticket.ErrInvalidInput},
		{"missing source", "c1/ID-404", "c2/", ticket.ErrNotFound},
		{"missing destination category", "c1/ID-1", "c3/", ticket.ErrNotFound},
		{"missing destination category for rename", "c1/ID-1", "c3/ID-2", ticket.ErrNotFound},
		{"occupied target", "c1/ID-1", "c2/", ticket.ErrAlreadyExists},
		{"onto itself", "c1/ID-1", "c1/ID-1", ticket.ErrAlreadyExists},
	}

	for _, tt := range tests {
		err := store.Move(mustNode(t, store, tt.src, nil), mustNode(t, store, tt.dst, nil))
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: err=%v, want %v", tt.name, err, tt.wantErr)
		}
	}

	if got, want := mustRead(t, store, "c1/ID-1").Title, "source"; got != want {
		t.Errorf("source title=%q, want=%q", got, want)
	}

	if got, want := mustRead(t, store, "c2/ID-1").Title, "occupant"; got != want {
		t.Errorf("occupant title=%q, want=%q", got, want)
	}

	if !exists(t, src.Path) {
		t.Error("source should be untouched")
	}
}

func TestMoveLeavesDuplicateWhenDeleteFails(t *testing.T) {
	t.Parallel()

	faulty := fs.NewFaulty(fs.NewReal())
	store := newStoreWith(t, faulty)
	mustCreate(t, store, "c1/", nil)
	mustCreate(t, store, "c2/", nil)
	src := mustCreate(t, store, "c1/ID-1", ticket.Text("T"))

	faulty.Fail(fs.OpRemove, src.Path, syscall.EACCES)

	err := store.Move(src, mustNode(t, store, "c2/", nil))
	if !errors.Is(err, syscall.EACCES) {
		t.Fatalf("err=%v, want EACCES", err)
	}

	if !exists(t, src.Path) {
		t.Error("source should still exist")
	}

	if got, want := mustRead(t, store, "c2/ID-1").Title, "T"; got != want {
		t.Errorf("copy title=%q, want=%q", got, want)
	}
}

func TestMoveAll(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	mustCreate(t, store, "c1/", nil)
	mustCreate(t, store, "c2/", nil)

	titles := map[string]string{"c1/A": "first", "c1/B": "second\n\nwith body", "c1/C": "third"}
	for i, id := range []string{"c1/B", "c1/A", "c1/C"} {
		setModified(t, mustCreate(t, store, id, ticket.Text(titles[id])), i)
	}

	err := store.MoveAll(mustNode(t, store, "c1/", nil), mustNode(t, store, "c2/", nil))
	if err != nil {
		t.Fatalf("MoveAll: %v", err)
	}

	if got := mustCollect(t, store, "c1/"); len(got) != 0 {
		t.Errorf("c1 should be empty, got %v", ids(got))
	}

	if !exists(t, filepath.Join(store.Root(), "c1")) {
		t.Error("source category should stay")
	}

	moved := mustCollect(t, store, "c2/")

	if got, want := ids(moved), []string{"c2/B", "c2/A", "c2/C"}; !cmp.Equal(got, want) {
		t.Errorf("c2 order mismatch (-got +want):\n%s", cmp.Diff(got, want))
	}

	for _, n := range moved {
		want := titles["c1/"+n.ID()]
		if got := string(ticket.Encode(n.Title, n.Message)); got != want {
			t.Errorf("%s content=%q, want=%q", n.Ref.Identifier(), got, want)
		}
	}
}

func TestMoveAllStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	mustCreate(t, store, "c1/", nil)
	mustCreate(t, store, "c2/", nil)

	for i, id := range []string{"c1/A", "c1/B", "c1/C"} {
		setModified(t, mustCreate(t, store, id, ticket.Text(id)), i)
	}

	mustCreate(t, store, "c2/B", ticket.Text("occupant"))

	err := store.MoveAll(mustNode(t, store, "c1/", nil), mustNode(t, store, "c2/", nil))
	if !errors.Is(err, ticket.ErrAlreadyExists) {
		t.Fatalf("err=%v, want ErrAlreadyExists", err)
	}

	if got, want := ids(mustCollect(t, store, "c1/")), []string{"c1/B", "c1/C"}; !cmp.Equal(got, want) {
		t.Errorf("c1 mismatch (-got +want):\n%s", cmp.Diff(got, want))
	}

	if got, want := mustRead(t, store, "c2/A").Title, "c1/A"; got != want {
		t.Errorf("moved title=%q, want=%q", got, want)
	}

	if got, want := mustRead(t, store, "c2/B").Title, "occupant"; got != want {
		t.Errorf("occupant title=%q, want=%q", got, want)
	}
}

func TestMoveAllRejects(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	mustCreate(t, store, "c1/", nil)
	mustCreate(t, store, "c1/A", ticket.Text("T"))

	err := store.MoveAll(mustNode(t, store, "c1/A", nil), mustNode(t, store, "c1/", nil))
	if !errors.Is(err, ticket.ErrInvalidInput) {
		t.Errorf("ticket source err=%v, want ErrInvalidInput", err)
	}

	err = store.MoveAll(mustNode(t, store, "c1/", nil), mustNode(t, store, "c2/B", nil))
	if !errors.Is(err, ticket.ErrInvalidInput) {
		t.Errorf("ticket destination err=%v, want ErrInvalidInput", err)
	}

	err = store.MoveAll(mustNode(t, store, "c1/", nil), mustNode(t, store, "c9/", nil))
	if !errors.Is(err, ticket.ErrNotFound) {
		t.Errorf("missing destination err=%v, want ErrNotFound", err)
	}

	if !exists(t, filepath.Join(store.Root(), "c1", "A")) {
		t.Error("nothing should have moved")
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	mustCreate(t, store, "c1/", nil)
	mustCreate(t, store, "c2/", nil)
	doomed := mustCreate(t, store, "c1/A", ticket.Text("A"))
	sibling := mustCreate(t, store, "c1/B", ticket.Text("B"))
	mustCreate(t, store, "c2/C", ticket.Text("C"))

	err := store.Remove(doomed)
	if err != nil {
		t.Fatalf("Remove ticket: %v", err)
	}

	if exists(t, doomed.Path) {
		t.Error("removed ticket still exists")
	}

	if !exists(t, sibling.Path) {
		t.Error("sibling should be intact")
	}

	category := mustNode(t, store, "c2/", nil)

	err = store.Remove(category)
	if err != nil {
		t.Fatalf("Remove category: %v", err)
	}

	if exists(t, category.Path) {
		t.Error("removed category still exists")
	}

	err = store.Remove(doomed)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("remove missing ticket err=%v, want not-exist", err)
	}

	var pathErr *os.PathError
	if !errors.As(err, &pathErr) {
		t.Errorf("missing ticket err=%T, want *os.PathError", err)
	}

	err = store.Remove(category)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("remove missing category err=%v, want not-exist", err)
	}
}
