package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/tickets/internal/ticket"
)

// MoveCmd returns the move command.
func MoveCmd(store *ticket.Store) *Command {
	return &Command{
		Flags:   flag.NewFlagSet("move", flag.ContinueOnError),
		Usage:   "move <id> <dest-id>",
		Aliases: []string{"mv"},
		Short:   "Move or rename tickets",
		Long: `Move a ticket into another category ("dest/"), or to an exact
"dest/id" to rename it. Moving a category moves all of its tickets and
leaves the empty source category in place.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) != 2 {
				return usagef("move requires <id> and <dest-id>")
			}

			h := header("move")

			src, err := store.Node(args[0], nil)
			if err != nil {
				return fail(h, err)
			}

			dst, err := store.Node(args[1], nil)
			if err != nil {
				return fail(h, err)
			}

			h = header("move", src.Ref, dst.Ref)

			err = requireInit(store, h)
			if err != nil {
				return err
			}

			if src.IsCategory() {
				err = store.MoveAll(src, dst)
			} else {
				err = store.Move(src, dst)
			}

			if err != nil {
				return fail(h, err)
			}

			o.succeed(h, "")

			return nil
		},
	}
}
