package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/tickets/internal/ticket"
)

// RemoveCmd returns the remove command.
func RemoveCmd(store *ticket.Store) *Command {
	return &Command{
		Flags:   flag.NewFlagSet("remove", flag.ContinueOnError),
		Usage:   "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a ticket or a whole category",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) != 1 {
				return usagef("remove requires exactly one <id>")
			}

			return runMutation(o, store, "remove", args[0], nil, store.Remove)
		},
	}
}
