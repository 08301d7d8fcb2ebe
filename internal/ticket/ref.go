package ticket

import "strings"

// Separator splits the category from the ticket id in an identifier.
const Separator = "/"

// Ref addresses either a whole category or one ticket inside it.
//
// The only implementations are [CategoryRef] and [TicketRef]; use a type
// switch to tell them apart.
type Ref interface {
	// Category returns the category name.
	Category() string

	// Identifier returns the canonical address, "cat/" or "cat/id".
	Identifier() string

	isRef()
}

// CategoryRef addresses a category directory.
type CategoryRef struct {
	name string
}

func (r CategoryRef) Category() string   { return r.name }
func (r CategoryRef) Identifier() string { return r.name + Separator }
func (CategoryRef) isRef()               {}

// TicketRef addresses a single ticket file. It always carries an id.
type TicketRef struct {
	category string
	id       string
}

func (r TicketRef) Category() string   { return r.category }
func (r TicketRef) ID() string         { return r.id }
func (r TicketRef) Identifier() string { return r.category + Separator + r.id }
func (TicketRef) isRef()               {}

// ParseRef parses "category/" into a [CategoryRef] and "category/id" into a
// [TicketRef].
//
// The identifier must contain exactly one separator. The category must be
// non-empty, and neither segment may be "." or ".." or start with a dot;
// dot-prefixed names are reserved for in-flight temp files.
func ParseRef(identifier string) (Ref, error) {
	if strings.Count(identifier, Separator) != 1 {
		return nil, &IdentifierError{Raw: identifier}
	}

	category, id, _ := strings.Cut(identifier, Separator)

	if !validSegment(category) {
		return nil, &IdentifierError{Raw: identifier}
	}

	if id == "" {
		return CategoryRef{name: category}, nil
	}

	if !validSegment(id) {
		return nil, &IdentifierError{Raw: identifier}
	}

	return TicketRef{category: category, id: id}, nil
}

func validSegment(s string) bool {
	return s != "" && !strings.HasPrefix(s, ".")
}
