package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/tickets/internal/ticket"
)

// InitCmd returns the init command.
func InitCmd(store *ticket.Store) *Command {
	return &Command{
		Flags: flag.NewFlagSet("init", flag.ContinueOnError),
		Usage: "init",
		Short: "Create the ticket root",
		Long:  "Create the ticket root directory. Every other command needs it.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) > 0 {
				return usagef("init takes no arguments")
			}

			h := header("init")

			err := store.Init()
			if err != nil {
				return fail(h, err)
			}

			o.succeed(h, "")

			return nil
		},
	}
}

// requireInit fails with the not-initialized message when the root is missing.
func requireInit(store *ticket.Store, h string) error {
	initialized, err := store.Initialized()
	if err != nil {
		return fail(h, err)
	}

	if !initialized {
		return fail(h, errNotInitialized)
	}

	return nil
}
