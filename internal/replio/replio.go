// Package replio is the input layer for cmd/primrec's --repl mode: a
// readline-backed reader when attached to a terminal, a plain buffered
// reader otherwise, mirrored on internal/input/input.go's
// InteractiveCommandReader/DirectCommandReader split.
package replio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// LineReader reads one REPL line at a time. Implementations must have
// Close called on them before disposal.
type LineReader interface {
	ReadLine() (string, error)
	Close() error
}

// direct reads lines from an arbitrary io.Reader without escape-sequence
// handling; used when stdin is not a tty.
type direct struct {
	r *bufio.Reader
}

// NewDirectReader wraps r in a buffered LineReader.
func NewDirectReader(r io.Reader) LineReader {
	return &direct{r: bufio.NewReader(r)}
}

func (d *direct) ReadLine() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = d.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" && err == io.EOF {
			return "", io.EOF
		}
	}

	return line, nil
}

func (d *direct) Close() error {
	return nil
}

// interactive reads lines via GNU-readline-style editing and history,
// intended for use when stdin and stdout are both attached to a tty.
type interactive struct {
	rl *readline.Instance
}

// NewInteractiveReader initializes readline with the given prompt.
func NewInteractiveReader(prompt string) (LineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}
	return &interactive{rl: rl}, nil
}

func (i *interactive) ReadLine() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = i.rl.Readline()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		line = strings.TrimSpace(line)
	}

	return line, nil
}

func (i *interactive) Close() error {
	return i.rl.Close()
}
