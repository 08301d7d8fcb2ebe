package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// newLogger creates the structured logger handed to the store.
// When w is a terminal it uses slog.TextHandler for human-readable output,
// otherwise slog.JSONHandler so redirected logs stay machine-parseable.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	var handler slog.Handler

	options := &slog.HandlerOptions{Level: level}
	if isTerminal(w) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}

	return slog.New(handler)
}

// logLevel maps the configured level name, with -v forcing debug.
func logLevel(name string, verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}

	var level slog.Level

	err := level.UnmarshalText([]byte(name))
	if err != nil {
		return slog.LevelWarn
	}

	return level
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}
