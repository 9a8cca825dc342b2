// Package prompt implements interactive prompt-validate-retry loops over
// an injectable input and output.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoInput is returned when the input ends before an answer is accepted.
var ErrNoInput = errors.New("prompt: no more input")

// Prompter reads answers line by line from in and writes prompts to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Prompter over in and out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Out returns the writer prompts are printed to.
func (p *Prompter) Out() io.Writer {
	return p.out
}

// Line prints msg and returns the next input line with surrounding
// whitespace removed.
func (p *Prompter) Line(msg string) (string, error) {
	fmt.Fprint(p.out, msg)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", fmt.Errorf("prompt: read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Ask prints msg and reads lines until parse accepts one. parse returns
// the parsed value, or a non-empty complaint that is printed before asking
// again. There is no retry limit; Ask only gives up when the input fails.
func Ask[T any](p *Prompter, msg string, parse func(answer string) (v T, complaint string)) (T, error) {
	for {
		line, err := p.Line(msg)
		if err != nil {
			var zero T
			return zero, err
		}
		v, complaint := parse(line)
		if complaint == "" {
			return v, nil
		}
		fmt.Fprintln(p.out, complaint)
	}
}

// Confirm asks a yes/no question. Only "y" and "n" are accepted, in
// either case; anything else prints invalid and asks again.
func Confirm(p *Prompter, msg, invalid string) (bool, error) {
	return Ask(p, msg, func(answer string) (bool, string) {
		switch strings.ToLower(answer) {
		case "y":
			return true, ""
		case "n":
			return false, ""
		}
		return false, invalid
	})
}

// OneOf asks until the answer equals one of choices.
func OneOf(p *Prompter, msg, invalid string, choices ...string) (string, error) {
	return Ask(p, msg, func(answer string) (string, string) {
		for _, c := range choices {
			if answer == c {
				return c, ""
			}
		}
		return "", invalid
	})
}

// NonEmpty asks until a non-blank answer is given.
func NonEmpty(p *Prompter, msg, invalid string) (string, error) {
	return Ask(p, msg, func(answer string) (string, string) {
		if answer == "" {
			return "", invalid
		}
		return answer, ""
	})
}
