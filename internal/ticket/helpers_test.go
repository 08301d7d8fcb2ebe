package ticket_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/calvinalkan/tickets/internal/ticket"
	"github.com/calvinalkan/tickets/pkg/fs"
)

// newStore returns an initialized store over a fresh temp root.
func newStore(t *testing.T) *ticket.Store {
	t.Helper()

	return newStoreWith(t, fs.NewReal())
}

func newStoreWith(t *testing.T, fsys fs.FS) *ticket.Store {
	t.Helper()

	store := ticket.NewStore(filepath.Join(t.TempDir(), ".tickets"), fsys)

	err := store.Init()
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	return store
}

func mustNode(t *testing.T, store *ticket.Store, identifier string, src ticket.Source) *ticket.Node {
	t.Helper()

	n, err := store.Node(identifier, src)
	if err != nil {
		t.Fatalf("node %q: %v", identifier, err)
	}

	return n
}

func mustCreate(t *testing.T, store *ticket.Store, identifier string, src ticket.Source) *ticket.Node {
	t.Helper()

	n := mustNode(t, store, identifier, src)

	err := store.Create(context.Background(), n)
	if err != nil {
		t.Fatalf("create %q: %v", identifier, err)
	}

	return n
}

func mustRead(t *testing.T, store *ticket.Store, identifier string) *ticket.Node {
	t.Helper()

	n := mustNode(t, store, identifier, nil)

	err := store.Read(n)
	if err != nil {
		t.Fatalf("read %q: %v", identifier, err)
	}

	return n
}

func mustCollect(t *testing.T, store *ticket.Store, identifier string) []*ticket.Node {
	t.Helper()

	nodes, err := store.Collect(mustNode(t, store, identifier, nil))
	if err != nil {
		t.Fatalf("collect %q: %v", identifier, err)
	}

	return nodes
}

// setModified pins the modification time of the node's path, counted in
// seconds from a fixed base so ordering does not depend on clock resolution.
func setModified(t *testing.T, n *ticket.Node, offset int) {
	t.Helper()

	mtime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(offset) * time.Second)

	err := os.Chtimes(n.Path, mtime, mtime)
	if err != nil {
		t.Fatalf("chtimes %s: %v", n.Path, err)
	}
}

func ids(nodes []*ticket.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Ref.Identifier())
	}

	return out
}

func exists(t *testing.T, path string) bool {
	t.Helper()

	_, err := os.Stat(path)
	if err == nil {
		return true
	}

	if os.IsNotExist(err) {
		return false
	}

	t.Fatalf("stat %s: %v", path, err)

	return false
}
