package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/calvinalkan/tickets/internal/ticket"
)

const succeeded = "SUCCEEDED."

// Messages the list and show verbs print in place of an error text.
var (
	errNotInitialized = errors.New("NOT INITIALIZED, PLEASE init.")
	errNotFound       = errors.New("NOT FOUND.")
)

// header builds "tickets :: verb[ :: cat/id[ => cat/id]]".
func header(verb string, refs ...ticket.Ref) string {
	h := "tickets :: " + verb
	if len(refs) == 0 {
		return h
	}

	addrs := make([]string, 0, len(refs))
	for _, ref := range refs {
		addrs = append(addrs, ref.Identifier())
	}

	return h + " :: " + strings.Join(addrs, " => ")
}

// frameError is a failed verb. It prints as "<header>\n\nERROR: <err>",
// or just "ERROR: <err>" without a header.
type frameError struct {
	header string
	err    error
}

func (e *frameError) Error() string { return e.err.Error() }
func (e *frameError) Unwrap() error { return e.err }

func fail(header string, err error) error {
	return &frameError{header: header, err: err}
}

// usageError reports bad arguments; the command help follows it.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, a ...any) error {
	return &usageError{msg: fmt.Sprintf(format, a...)}
}

// succeed prints the header and body, or SUCCEEDED. when body is empty.
func (o *IO) succeed(header, body string) {
	if body == "" {
		body = succeeded
	}

	if header == "" {
		o.Println(body)
		return
	}

	o.Println(header + "\n\n" + body)
}

func (o *IO) reportFailure(err error) {
	h := ""

	var framed *frameError
	if errors.As(err, &framed) {
		h = framed.header
		err = framed.err
	}

	msg := "ERROR: " + err.Error()
	if h != "" {
		msg = h + "\n\n" + msg
	}

	o.ErrPrintln(msg)
}
