package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxAttempts bounds how many invalid answers a question tolerates.
const maxAttempts = 3

// ErrCancelled is returned when input ends before a question is answered.
var ErrCancelled = errors.New("prompt cancelled")

// Option is one labeled choice of a single-choice question.
type Option struct {
	Label string
	Value string
}

// Provider asks questions and returns the answers.
type Provider interface {
	// Select returns the Value of the chosen option.
	Select(ctx context.Context, question string, options []Option) (string, error)
	// Confirm returns the yes/no answer, or def when the answer is empty.
	Confirm(ctx context.Context, question string, def bool) (bool, error)
}

// Terminal is a Provider reading answers line by line.
type Terminal struct {
	reader *bufio.Reader
	w      io.Writer
}

// NewTerminal returns a Terminal reading from r and writing menus to w.
func NewTerminal(r io.Reader, w io.Writer) *Terminal {
	return &Terminal{reader: bufio.NewReader(r), w: w}
}

// Select presents a numbered list and returns the selected option's value.
func (t *Terminal) Select(ctx context.Context, question string, options []Option) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("question %q has no options", question)
	}

	fmt.Fprintf(t.w, "\n%s\n", question)
	for i, opt := range options {
		fmt.Fprintf(t.w, "  %d) %s\n", i+1, opt.Label)
	}

	var last string
	for attempt := 0; attempt < maxAttempts; attempt++ {
		fmt.Fprintf(t.w, "Enter number [1-%d]: ", len(options))

		line, err := t.readLine(ctx)
		if err != nil {
			return "", err
		}

		num, convErr := strconv.Atoi(line)
		if convErr == nil && num >= 1 && num <= len(options) {
			return options[num-1].Value, nil
		}
		last = line
		fmt.Fprintf(t.w, "Please choose a number between 1 and %d.\n", len(options))
	}

	return "", fmt.Errorf("invalid selection %q: choose 1-%d", last, len(options))
}

// Confirm asks a yes/no question. An empty answer selects def.
func (t *Terminal) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}

	var last string
	for attempt := 0; attempt < maxAttempts; attempt++ {
		fmt.Fprintf(t.w, "%s %s ", question, hint)

		line, err := t.readLine(ctx)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		last = line
		fmt.Fprintln(t.w, "Please answer y or n.")
	}

	return false, fmt.Errorf("invalid answer %q: expected y or n", last)
}

// readLine returns the next trimmed line. A final line without a newline is
// still accepted; EOF with nothing read is a cancellation.
func (t *Terminal) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrCancelled, err)
	}

	line, err := t.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", ErrCancelled
			}
			return strings.TrimSpace(line), nil
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
