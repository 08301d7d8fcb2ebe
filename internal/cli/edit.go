package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/tickets/internal/ticket"
)

// EditCmd returns the edit command.
func EditCmd(store *ticket.Store, cfg ticket.Config, env map[string]string) *Command {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	message := fs.StringP("message", "m", "", "New ticket content; opens $EDITOR when omitted")

	return &Command{
		Flags: fs,
		Usage: "edit <id> [-m <message>]",
		Short: "Replace a ticket's content",
		Long:  "Overwrite an existing ticket with --message, or edit it in your editor.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) != 1 {
				return usagef("edit requires exactly one <id>")
			}

			src := contentSource(o, fs, *message, cfg, env)

			return runMutation(o, store, "edit", args[0], src, func(n *ticket.Node) error {
				return store.Edit(ctx, n)
			})
		},
	}
}
