package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/tickets/internal/ticket"
)

// PurgeCmd returns the purge command.
func PurgeCmd(store *ticket.Store) *Command {
	fs := flag.NewFlagSet("purge", flag.ContinueOnError)
	force := fs.BoolP("force", "f", false, "Do not ask for confirmation")

	return &Command{
		Flags: fs,
		Usage: "purge [-f]",
		Short: "Delete the ticket root and everything in it",
		Long:  "Delete the ticket root with every category and ticket. Asks first unless --force is given.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) > 0 {
				return usagef("purge takes no arguments")
			}

			h := header("purge")

			if !*force {
				ok, err := confirm(o, "Delete "+store.Root()+" and every ticket in it?")
				if err != nil {
					return fail(h, err)
				}

				if !ok {
					o.succeed(h, "ABORTED.")

					return nil
				}
			}

			err := store.Purge()
			if err != nil {
				return fail(h, err)
			}

			o.succeed(h, "")

			return nil
		},
	}
}
