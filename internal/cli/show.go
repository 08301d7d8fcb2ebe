package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/tickets/internal/ticket"
)

// ShowCmd returns the show command.
func ShowCmd(store *ticket.Store, style ticket.Style) *Command {
	return &Command{
		Flags: flag.NewFlagSet("show", flag.ContinueOnError),
		Usage: "show <id>",
		Short: "Show a ticket or list a category",
		Long:  "Print a ticket's title and message, or the tickets of a category oldest first.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) != 1 {
				return usagef("show requires exactly one <id>")
			}

			return execShow(o, store, style, args[0])
		},
	}
}

func execShow(o *IO, store *ticket.Store, style ticket.Style, identifier string) error {
	h := header("show")

	n, err := store.Node(identifier, nil)
	if err != nil {
		return fail(h, err)
	}

	h = header("show", n.Ref)

	err = requireInit(store, h)
	if err != nil {
		return err
	}

	exists, err := store.Exists(n)
	if err != nil {
		return fail(h, err)
	}

	if !exists {
		return fail(h, errNotFound)
	}

	if n.IsCategory() {
		tickets, err := store.Collect(n)
		if err != nil {
			return fail(h, err)
		}

		o.succeed(h, ticket.RenderCategoryWith(tickets, style))

		return nil
	}

	err = store.Read(n)
	if err != nil {
		return fail(h, err)
	}

	o.succeed(h, ticket.RenderTicket(n))

	return nil
}
