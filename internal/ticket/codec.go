package ticket

import (
	"context"
	"strings"
)

// Decode splits raw ticket bytes into a title and a message.
//
// The title is the first line, trimmed. The message is everything after
// the first newline, trimmed; it is empty when the ticket has no body.
func Decode(data []byte) (string, string) {
	head, rest, _ := strings.Cut(string(data), "\n")

	return strings.TrimSpace(head), strings.TrimSpace(rest)
}

// Encode returns the file content for title and an optional message.
func Encode(title, message string) []byte {
	if message == "" {
		return []byte(title)
	}

	return []byte(title + "\n\n" + message)
}

// Source provides the content written by [Store.Create] and [Store.Edit].
//
// The only implementations are [Text] and [EditFunc].
type Source interface {
	isSource()
}

// Text is written verbatim as the full ticket file.
type Text string

func (Text) isSource() {}

// EditFunc populates the ticket file at path, typically by running an
// interactive editor. It must leave content at path or return an error.
type EditFunc func(ctx context.Context, path string) error

func (EditFunc) isSource() {}
