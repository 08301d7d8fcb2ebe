package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/tickets/internal/ticket"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(cfg ticket.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Long:  "Display the effective configuration and where it was loaded from.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			execPrintConfig(o, cfg)

			return nil
		},
	}
}

func execPrintConfig(o *IO, cfg ticket.Config) {
	o.Println("root=" + cfg.RootAbs)

	if cfg.Editor != "" {
		o.Println("editor=" + cfg.Editor)
	}

	o.Println("log_level=" + cfg.LogLevel)
	o.Println("color=" + cfg.Color)

	o.Println("")
	o.Println("# sources")

	sources := cfg.Sources
	if sources == (ticket.ConfigSources{}) {
		o.Println("(defaults only)")

		return
	}

	if sources.Global != "" {
		o.Println("global_config=" + sources.Global)
	}

	if sources.Explicit != "" {
		o.Println("explicit_config=" + sources.Explicit)
	}

	if sources.EnvRoot {
		o.Println("root_from=" + ticket.EnvRoot)
	}

	if sources.FlagRoot {
		o.Println("root_from=--root")
	}
}
