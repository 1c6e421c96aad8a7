package actor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// HumanActor is the operator-controlled actor. Prompts and
// notifications are printed to the console; answers are read one line
// at a time from the input stream. Human queries are never retried,
// never suppressed and never time-bounded.
type HumanActor struct {
	name string
	in   *bufio.Reader
	out  io.Writer
}

// NewHumanActor creates a console actor reading from in and writing
// to out.
func NewHumanActor(name string, in io.Reader, out io.Writer) *HumanActor {
	return &HumanActor{
		name: name,
		in:   bufio.NewReader(in),
		out:  out,
	}
}

func (a *HumanActor) Name() string { return a.name }

// Decide shows the prompt and blocks on a line of input.
func (a *HumanActor) Decide(ctx context.Context, prompt string) (string, error) {
	fmt.Fprintf(a.out, "\n%s\n> ", prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input for %s: %w", a.name, err)
	}
	return strings.TrimSpace(line), nil
}

// Notify prints the message; private messages carry a marker so the
// operator knows not to read them aloud.
func (a *HumanActor) Notify(text string, private bool) {
	if private {
		fmt.Fprintf(a.out, "\n[private] %s\n", text)
		return
	}
	fmt.Fprintf(a.out, "%s\n", text)
}
