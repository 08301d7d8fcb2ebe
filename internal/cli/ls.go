package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/calvinalkan/tickets/internal/ticket"
)

// Output formats for ls.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// LsCmd returns the ls command. It also runs when no command is given.
func LsCmd(store *ticket.Store, style ticket.Style) *Command {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	format := fs.String("format", formatText, "Output format: text, json or yaml")

	return &Command{
		Flags: fs,
		Usage: "ls [--format text|json|yaml]",
		Short: "List every category and its tickets",
		Long: `List every category, oldest first, each followed by its tickets oldest first.
This is also what running tickets without a command does.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) > 0 {
				return usagef("ls takes no arguments")
			}

			switch *format {
			case formatText, formatJSON, formatYAML:
			default:
				return usagef("invalid --format %q (want text, json or yaml)", *format)
			}

			return execLs(o, store, style, *format)
		},
	}
}

func execLs(o *IO, store *ticket.Store, style ticket.Style, format string) error {
	listings, err := store.List()
	if errors.Is(err, ticket.ErrNotInitialized) {
		return fail("", errNotInitialized)
	}

	if err != nil {
		return fail("", err)
	}

	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(listings, "", "  ")
		if err != nil {
			return fail("", fmt.Errorf("encode json: %w", err))
		}

		o.Println(string(data))
	case formatYAML:
		data, err := yaml.Marshal(listings)
		if err != nil {
			return fail("", fmt.Errorf("encode yaml: %w", err))
		}

		o.Printf("%s", data)
	default:
		o.Println(ticket.RenderListings(listings, style))
	}

	return nil
}
