package ticket

import "strings"

// Listing markers.
const (
	EmptyCategoryMarker = "NO TICKETS."
	EmptyStoreMarker    = "NO TICKETS."
)

// String renders a ticket as "[id]title" and a category as "name/".
func (n *Node) String() string {
	if n.IsCategory() {
		return n.Ref.Identifier()
	}

	return renderLine(Style{}, n.ID(), n.Title)
}

// Style decorates rendered text, e.g. with terminal colors.
// A nil func leaves its part unchanged.
type Style struct {
	ID       func(string) string
	Title    func(string) string
	Category func(string) string
	Marker   func(string) string
}

func (s Style) apply(f func(string) string, text string) string {
	if f == nil {
		return text
	}

	return f(text)
}

// RenderTicket renders a read ticket: the title, then a blank line and the
// message when there is one.
func RenderTicket(n *Node) string {
	if n.Message == "" {
		return n.Title
	}

	return n.Title + "\n\n" + n.Message
}

// RenderCategory renders the tickets returned by [Store.Collect], one line
// each in the given order, or [EmptyCategoryMarker].
func RenderCategory(tickets []*Node) string {
	return RenderCategoryWith(tickets, Style{})
}

// RenderCategoryWith is [RenderCategory] with a style applied.
func RenderCategoryWith(tickets []*Node, style Style) string {
	entries := make([]Entry, 0, len(tickets))
	for _, t := range tickets {
		entries = append(entries, EntryOf(t))
	}

	return renderEntries(entries, style)
}

// RenderListings renders the result of [Store.List]: every category as
// "name/" followed by its tickets, separated by a blank line, or
// [EmptyStoreMarker] when there are no categories.
func RenderListings(listings []Listing, style Style) string {
	if len(listings) == 0 {
		return style.apply(style.Marker, EmptyStoreMarker)
	}

	blocks := make([]string, 0, len(listings))
	for _, l := range listings {
		header := style.apply(style.Category, l.Category+Separator)
		blocks = append(blocks, header+"\n"+renderEntries(l.Tickets, style))
	}

	return strings.Join(blocks, "\n\n")
}

// RenderAll lists the whole store and renders it.
func (s *Store) RenderAll() (string, error) {
	return s.RenderAllWith(Style{})
}

// RenderAllWith is [Store.RenderAll] with a style applied.
func (s *Store) RenderAllWith(style Style) (string, error) {
	listings, err := s.List()
	if err != nil {
		return "", err
	}

	return RenderListings(listings, style), nil
}

func renderEntries(entries []Entry, style Style) string {
	if len(entries) == 0 {
		return style.apply(style.Marker, EmptyCategoryMarker)
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, renderLine(style, e.ID, e.Title))
	}

	return strings.Join(lines, "\n")
}

func renderLine(style Style, id, title string) string {
	return style.apply(style.ID, "["+id+"]") + style.apply(style.Title, title)
}
