package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/tickets/internal/ticket"
)

// NewCmd returns the new command.
func NewCmd(store *ticket.Store, cfg ticket.Config, env map[string]string) *Command {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	message := fs.StringP("message", "m", "", "Ticket content; opens $EDITOR when omitted")

	return &Command{
		Flags:   fs,
		Usage:   "new <id> [-m <message>]",
		Aliases: []string{"create"},
		Short:   "Create a category or a ticket",
		Long: `Create a category ("name/") or a ticket ("category/id").

A ticket's first line is its title; anything after a blank line is its message.
Without --message the ticket is written in your editor (config editor or $EDITOR).`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) != 1 {
				return usagef("new requires exactly one <id>")
			}

			src := contentSource(o, fs, *message, cfg, env)

			return runMutation(o, store, "new", args[0], src, func(n *ticket.Node) error {
				return store.Create(ctx, n)
			})
		},
	}
}

// contentSource picks --message when given, else the editor.
func contentSource(o *IO, fs *flag.FlagSet, message string, cfg ticket.Config, env map[string]string) ticket.Source {
	if fs.Changed("message") {
		return ticket.Text(message)
	}

	return editorSource(o, cfg, env)
}

// runMutation frames a verb that takes one identifier and reports
// SUCCEEDED. on success.
func runMutation(o *IO, store *ticket.Store, verb, identifier string, src ticket.Source, op func(*ticket.Node) error) error {
	h := header(verb)

	n, err := store.Node(identifier, src)
	if err != nil {
		return fail(h, err)
	}

	h = header(verb, n.Ref)

	err = requireInit(store, h)
	if err != nil {
		return err
	}

	err = op(n)
	if err != nil {
		return fail(h, err)
	}

	o.succeed(h, "")

	return nil
}
