package ticket

import (
	"path/filepath"
	"time"
)

// Node is a category or a ticket addressed under a storage root.
//
// Title, Message and Modified stay zero until the node is read through
// [Store.Read]. For categories only Modified is populated.
type Node struct {
	Ref  Ref
	Path string

	Title    string
	Message  string // empty when the ticket has no body
	Modified time.Time

	source Source
}

// NewNode builds a node for ref under root. src is kept as the pending
// content for a later [Store.Create] or [Store.Edit] and may be nil.
// No filesystem access happens here.
func NewNode(root string, ref Ref, src Source) *Node {
	path := filepath.Join(root, ref.Category())
	if t, ok := ref.(TicketRef); ok {
		path = filepath.Join(path, t.ID())
	}

	return &Node{Ref: ref, Path: path, source: src}
}

// IsCategory reports whether the node addresses a category. It depends on
// the identifier only, never on what is on disk.
func (n *Node) IsCategory() bool {
	_, ok := n.Ref.(CategoryRef)
	return ok
}

// ID returns the ticket id, or "" for a category.
func (n *Node) ID() string {
	if t, ok := n.Ref.(TicketRef); ok {
		return t.ID()
	}

	return ""
}

// Category returns the category name of the node.
func (n *Node) Category() string {
	return n.Ref.Category()
}

// Source returns the pending content, or nil.
func (n *Node) Source() Source {
	return n.source
}
