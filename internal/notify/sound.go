package notify

import (
	"context"
	"errors"
	"io"
	"os"
)

// Signaler plays the audible completion signal.
type Signaler interface {
	Signal(ctx context.Context) error
}

// BellSignaler rings the terminal bell.
type BellSignaler struct {
	W io.Writer
}

func (b BellSignaler) Signal(context.Context) error {
	w := b.W
	if w == nil {
		w = os.Stderr
	}
	_, err := io.WriteString(w, "\a")
	return err
}

// CommandSignaler runs an external player such as paplay or afplay.
type CommandSignaler struct {
	Argv []string
	run  runFunc
}

func NewCommandSignaler(argv []string) *CommandSignaler {
	return &CommandSignaler{Argv: argv, run: runCommand}
}

func (c *CommandSignaler) Signal(ctx context.Context) error {
	if len(c.Argv) == 0 {
		return errors.New("notify: empty sound command")
	}
	run := c.run
	if run == nil {
		run = runCommand
	}
	return run(ctx, c.Argv[0], c.Argv[1:]...)
}

// FallbackSignaler tries each signaler in order until one succeeds.
type FallbackSignaler []Signaler

func (f FallbackSignaler) Signal(ctx context.Context) error {
	var errs []error
	for _, s := range f {
		err := s.Signal(ctx)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
