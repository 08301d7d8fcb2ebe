package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// CLI provides a clean interface for running CLI commands in tests.
// It manages a temp home directory and environment variables, so the
// default root is <Dir>/.tickets and no user config is picked up.
type CLI struct {
	t   *testing.T
	Dir string
	Env map[string]string
}

// NewCLI creates a new test CLI with a temp home directory.
func NewCLI(t *testing.T) *CLI {
	t.Helper()

	dir := t.TempDir()

	return &CLI{
		t:   t,
		Dir: dir,
		Env: map[string]string{
			"HOME":            dir,
			"XDG_CONFIG_HOME": filepath.Join(dir, ".config"),
			"TMPDIR":          dir,
		},
	}
}

// Run executes the CLI with the given args and returns stdout, stderr, and exit code.
// Args should not include "tickets" - it is added automatically.
func (r *CLI) Run(args ...string) (string, string, int) {
	return r.RunWithInput(strings.NewReader(""), args...)
}

// RunWithInput executes the CLI with stdin and returns stdout, stderr, and exit code.
// stdin must be a string or io.Reader; panics otherwise.
func (r *CLI) RunWithInput(stdin any, args ...string) (string, string, int) {
	var inReader io.Reader

	switch v := stdin.(type) {
	case string:
		inReader = strings.NewReader(v)
	case io.Reader:
		inReader = v
	default:
		panic(fmt.Sprintf("stdin must be string or io.Reader, got %T", stdin))
	}

	var outBuf, errBuf bytes.Buffer

	fullArgs := append([]string{"tickets"}, args...)
	code := Run(inReader, &outBuf, &errBuf, fullArgs, r.Env, nil)

	return outBuf.String(), errBuf.String(), code
}

// MustRun executes the CLI and fails the test if the command returns non-zero.
// Returns trimmed stdout on success.
func (r *CLI) MustRun(args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(args...)
	if code != 0 {
		r.t.Fatalf("command %v failed with exit code %d\nstderr: %s", args, code, stderr)
	}

	return strings.TrimSpace(stdout)
}

// MustFail executes the CLI and fails the test if the command succeeds.
// Also fails if stdout is not empty. Returns trimmed stderr.
func (r *CLI) MustFail(args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(args...)
	if code == 0 {
		r.t.Fatalf("command %v should have failed but succeeded\nstdout: %s", args, stdout)
	}

	if stdout != "" {
		r.t.Fatalf("command %v failed but stdout should be empty\nstdout: %s", args, stdout)
	}

	return strings.TrimSpace(stderr)
}

// Root returns the default ticket root.
func (r *CLI) Root() string {
	return filepath.Join(r.Dir, ".tickets")
}

// Path returns the on-disk path of an identifier like "cat/id".
func (r *CLI) Path(identifier string) string {
	return filepath.Join(r.Root(), filepath.FromSlash(identifier))
}

// ReadTicket reads and returns the raw content of a ticket file.
func (r *CLI) ReadTicket(identifier string) string {
	r.t.Helper()

	content, err := os.ReadFile(r.Path(identifier))
	if err != nil {
		r.t.Fatalf("failed to read ticket %s: %v", identifier, err)
	}

	return string(content)
}

// WriteTicket writes content to a ticket file.
func (r *CLI) WriteTicket(identifier, content string) {
	r.t.Helper()

	err := os.WriteFile(r.Path(identifier), []byte(content), 0o600)
	if err != nil {
		r.t.Fatalf("failed to write ticket %s: %v", identifier, err)
	}
}

// Touch sets the modification time of an identifier's path to a fixed
// base plus offset seconds.
func (r *CLI) Touch(identifier string, offset int) {
	r.t.Helper()

	mtime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(offset) * time.Second)

	err := os.Chtimes(r.Path(identifier), mtime, mtime)
	if err != nil {
		r.t.Fatalf("failed to touch %s: %v", identifier, err)
	}
}

// AssertContains fails the test if content doesn't contain substr.
func AssertContains(t *testing.T, content, substr string) {
	t.Helper()

	if !strings.Contains(content, substr) {
		t.Errorf("content should contain %q\ncontent:\n%s", substr, content)
	}
}

// AssertNotContains fails the test if content contains substr.
func AssertNotContains(t *testing.T, content, substr string) {
	t.Helper()

	if strings.Contains(content, substr) {
		t.Errorf("content should NOT contain %q\ncontent:\n%s", substr, content)
	}
}
