package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/tickets/internal/ticket"
	"github.com/calvinalkan/tickets/pkg/fs"
)

// Run is the main entry point. Returns exit code.
//
// args includes the program name. env replaces the process environment
// for config and editor lookup. A signal on sigCh (may be nil) cancels the
// running command, which stops a running editor.
func Run(in io.Reader, out, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	o := NewIO(in, out, errOut)

	globals := flag.NewFlagSet("tickets", flag.ContinueOnError)
	globals.SetInterspersed(false)
	globals.SetOutput(&strings.Builder{})

	configPath := globals.StringP("config", "c", "", "Use specified config file")
	root := globals.String("root", "", "Use <dir> as the ticket root")
	color := globals.String("color", "", "Colorize listings: auto, always or never")
	verbose := globals.BoolP("verbose", "v", false, "Log debug records to stderr")

	if len(args) == 0 {
		args = []string{"tickets"}
	}

	err := globals.Parse(args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(out, globals, buildCommands(nil, ticket.Config{}, nil, ticket.Style{}))

			return ExitOK
		}

		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		printUsage(errOut, globals, buildCommands(nil, ticket.Config{}, nil, ticket.Style{}))

		return ExitUsage
	}

	if *color != "" && !slices.Contains(ticket.ColorModes, *color) {
		o.ErrPrintln("error: invalid --color", *color, "(want auto, always or never)")

		return ExitUsage
	}

	cfg, err := ticket.LoadConfig(ticket.LoadConfigInput{
		ConfigPath:   *configPath,
		RootOverride: *root,
		Env:          env,
	})
	if err != nil {
		o.ErrPrintln("ERROR:", err)

		return ExitConfig
	}

	if *color != "" {
		cfg.Color = *color
	}

	logger := newLogger(errOut, logLevel(cfg.LogLevel, *verbose))
	store := ticket.NewStore(cfg.RootAbs, fs.NewReal(), ticket.WithLogger(logger))
	style := newStyle(out, cfg.Color)

	commands := buildCommands(store, cfg, env, style)

	rest := globals.Args()
	if len(rest) == 0 {
		return commands[0].Run(ctx, o, nil)
	}

	cmd := findCommand(commands, rest[0])
	if cmd == nil {
		o.ErrPrintln("error: unknown command:", rest[0])
		o.ErrPrintln()
		printUsage(errOut, globals, commands)

		return ExitUsage
	}

	logger.Debug("running command", "command", cmd.Name(), "root", cfg.RootAbs)

	return cmd.Run(ctx, o, rest[1:])
}

// buildCommands returns every command; ls comes first as the default.
func buildCommands(store *ticket.Store, cfg ticket.Config, env map[string]string, style ticket.Style) []*Command {
	return []*Command{
		LsCmd(store, style),
		InitCmd(store),
		NewCmd(store, cfg, env),
		ShowCmd(store, style),
		EditCmd(store, cfg, env),
		MoveCmd(store),
		RemoveCmd(store),
		PurgeCmd(store),
		PrintConfigCmd(cfg),
	}
}

func findCommand(commands []*Command, name string) *Command {
	for _, cmd := range commands {
		if cmd.Name() == name || slices.Contains(cmd.Aliases, name) {
			return cmd
		}
	}

	return nil
}

func printUsage(w io.Writer, globals *flag.FlagSet, commands []*Command) {
	fprintln(w, `tickets - personal ticket tracker

Usage: tickets [flags] [command] [args]

Without a command every category and its tickets are listed.

Global flags:`)

	var buf strings.Builder
	globals.SetOutput(&buf)
	globals.PrintDefaults()
	globals.SetOutput(&strings.Builder{})
	_, _ = io.WriteString(w, buf.String())

	fprintln(w)
	fprintln(w, "Commands:")

	for _, cmd := range commands {
		fprintln(w, cmd.HelpLine())
	}

	fprintln(w)
	fprintln(w, "Run 'tickets <command> --help' for details.")
}
