package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
)

// confirm asks a yes/no question. On an interactive terminal the question
// goes through liner; otherwise it is written to stderr and one line is
// read from in. Anything but "y" or "yes" declines, as does a missing
// reader, EOF or Ctrl-C.
func confirm(o *IO, question string) (bool, error) {
	if o.in == nil {
		return false, nil
	}

	prompt := question + " (yes/no): "

	if isTerminal(o.in) && isTerminal(o.out) {
		line := liner.NewLiner()
		defer line.Close()

		line.SetCtrlCAborts(true)

		answer, err := line.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return false, nil
		}

		if err != nil {
			return false, fmt.Errorf("read answer: %w", err)
		}

		return isYes(answer), nil
	}

	_, _ = fmt.Fprint(o.errOut, prompt)

	answer, err := bufio.NewReader(o.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}

	o.ErrPrintln()

	return isYes(answer), nil
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
