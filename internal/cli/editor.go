package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"

	"github.com/calvinalkan/tickets/internal/ticket"
)

// Editor errors.
var (
	ErrEditorNotSet  = errors.New("the environment variable EDITOR is not set")
	ErrEditorInvalid = errors.New("the environment variable EDITOR is not valid UTF-8")
	ErrEditorFailed  = errors.New("editor failed")
	ErrEditorEmpty   = errors.New("ticket is empty after editing, nothing written")
)

// resolveEditor returns the editor command line.
// Priority: config.Editor -> $EDITOR -> error.
func resolveEditor(cfg ticket.Config, env map[string]string) (string, error) {
	editor := cfg.Editor
	if editor == "" {
		editor = env["EDITOR"]
	}

	if strings.TrimSpace(editor) == "" {
		return "", ErrEditorNotSet
	}

	if !utf8.ValidString(editor) {
		return "", ErrEditorInvalid
	}

	return editor, nil
}

// editorSource returns the content source that opens the user's editor.
//
// The current ticket content (empty for a new ticket) is copied to a temp
// file, the editor runs on that file, and the result is written over the
// ticket atomically. Empty content is rejected and leaves the ticket as it
// was.
func editorSource(o *IO, cfg ticket.Config, env map[string]string) ticket.EditFunc {
	return func(ctx context.Context, path string) error {
		editor, err := resolveEditor(cfg, env)
		if err != nil {
			return err
		}

		tmpDir := env["TMPDIR"]
		if tmpDir == "" {
			tmpDir = os.TempDir()
		}

		tmp := filepath.Join(tmpDir, "tickets-"+uuid.NewString())

		current, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read ticket: %w", err)
		}

		err = os.WriteFile(tmp, current, 0o600)
		if err != nil {
			return fmt.Errorf("create temp file: %w", err)
		}

		defer func() { _ = os.Remove(tmp) }()

		err = runEditor(ctx, o, editor, tmp)
		if err != nil {
			return err
		}

		edited, err := os.ReadFile(tmp)
		if err != nil {
			return fmt.Errorf("read temp file: %w", err)
		}

		if len(bytes.TrimSpace(edited)) == 0 {
			return ErrEditorEmpty
		}

		err = atomic.WriteFile(path, bytes.NewReader(edited))
		if err != nil {
			return fmt.Errorf("write ticket: %w", err)
		}

		return nil
	}
}

// runEditor runs the editor on path and waits for it. The editor string is
// split into fields, so "code --wait" works.
func runEditor(ctx context.Context, o *IO, editor, path string) error {
	fields := strings.Fields(editor)

	cmd := exec.CommandContext(ctx, fields[0], append(fields[1:], path)...)
	cmd.Stdin = o.in
	cmd.Stdout = o.out
	cmd.Stderr = o.errOut

	err := cmd.Run()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEditorFailed, fields[0], err)
	}

	return nil
}
