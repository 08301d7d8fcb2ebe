package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/calvinalkan/tickets/internal/ticket"
)

// newStyle returns the listing style for w.
//
// "never" renders plain text, "always" forces ANSI256 colors even when w is
// not a terminal, and "auto" colors only terminals.
func newStyle(w io.Writer, mode string) ticket.Style {
	var renderer *lipgloss.Renderer

	switch mode {
	case "never":
		return ticket.Style{}
	case "always":
		// SetColorProfile is needed as well: the option alone is
		// overridden by detection on non-terminal writers.
		renderer = lipgloss.NewRenderer(w, termenv.WithProfile(termenv.ANSI256))
		renderer.SetColorProfile(termenv.ANSI256)
	default:
		if !isTerminal(w) {
			return ticket.Style{}
		}

		renderer = lipgloss.NewRenderer(w)
	}

	id := renderer.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	category := renderer.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	marker := renderer.NewStyle().Faint(true)

	return ticket.Style{
		ID:       func(s string) string { return id.Render(s) },
		Category: func(s string) string { return category.Render(s) },
		Marker:   func(s string) string { return marker.Render(s) },
	}
}
