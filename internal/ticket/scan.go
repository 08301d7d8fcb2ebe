package ticket

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Collect reads every ticket directly inside the category node and returns
// them oldest first by modification time.
//
// Hidden entries (names starting with a dot) are skipped. Any other entry
// that cannot be read as a ticket, including a nested directory, fails the
// whole call and no partial result is returned.
func (s *Store) Collect(n *Node) ([]*Node, error) {
	if !n.IsCategory() {
		return nil, fmt.Errorf("%w: collect requires a category, got %s", ErrInvalidInput, n.Ref.Identifier())
	}

	entries, err := s.fs.ReadDir(n.Path)
	if err != nil {
		return nil, err
	}

	tickets := make([]*Node, 0, len(entries))

	for _, entry := range entries {
		if isHidden(entry.Name()) {
			continue
		}

		child := NewNode(s.root, TicketRef{category: n.Category(), id: entry.Name()}, nil)

		err := s.Read(child)
		if err != nil {
			return nil, err
		}

		tickets = append(tickets, child)
	}

	sortByModified(tickets)

	return tickets, nil
}

// Listing is one category with its tickets, as returned by [Store.List].
type Listing struct {
	Category string    `json:"category" yaml:"category"`
	Modified time.Time `json:"modified" yaml:"modified"`
	Tickets  []Entry   `json:"tickets"  yaml:"tickets"`
}

// Entry is a ticket inside a [Listing].
type Entry struct {
	ID       string    `json:"id"                yaml:"id"`
	Title    string    `json:"title"             yaml:"title"`
	Message  string    `json:"message,omitempty" yaml:"message,omitempty"`
	Modified time.Time `json:"modified"          yaml:"modified"`
}

// EntryOf returns the listing entry for a read ticket node.
func EntryOf(n *Node) Entry {
	return Entry{
		ID:       n.ID(),
		Title:    n.Title,
		Message:  n.Message,
		Modified: n.Modified,
	}
}

// List returns every category under the root, oldest directory first, each
// with its tickets as [Store.Collect] orders them. Regular files directly
// under the root are ignored.
func (s *Store) List() ([]Listing, error) {
	initialized, err := s.Initialized()
	if err != nil {
		return nil, err
	}

	if !initialized {
		return nil, fmt.Errorf("%w: %s", ErrNotInitialized, s.root)
	}

	entries, err := s.fs.ReadDir(s.root)
	if err != nil {
		return nil, err
	}

	categories := make([]*Node, 0, len(entries))

	for _, entry := range entries {
		if !entry.IsDir() || isHidden(entry.Name()) {
			continue
		}

		category := NewNode(s.root, CategoryRef{name: entry.Name()}, nil)

		err := s.Read(category)
		if err != nil {
			return nil, err
		}

		categories = append(categories, category)
	}

	sortByModified(categories)

	listings := make([]Listing, 0, len(categories))

	for _, category := range categories {
		tickets, err := s.Collect(category)
		if err != nil {
			return nil, err
		}

		listing := Listing{
			Category: category.Category(),
			Modified: category.Modified,
			Tickets:  make([]Entry, 0, len(tickets)),
		}

		for _, t := range tickets {
			listing.Tickets = append(listing.Tickets, EntryOf(t))
		}

		listings = append(listings, listing)
	}

	s.log.Debug("listed", "root", s.root, "categories", len(listings))

	return listings, nil
}

func sortByModified(nodes []*Node) {
	slices.SortStableFunc(nodes, func(a, b *Node) int {
		return a.Modified.Compare(b.Modified)
	})
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
