package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/arthur-debert/shine/pkg/errors"
)

// LineBackend reads answers line by line from a reader and writes the
// questions to a writer.
//
// A single goroutine reads the input, started on the first prompt. A prompt
// abandoned through its context leaves the pending line for the next prompt.
type LineBackend struct {
	in  *bufio.Reader
	out io.Writer

	start sync.Once
	lines chan string
	err   error
}

// NewLineBackend creates a line backend.
func NewLineBackend(in io.Reader, out io.Writer) *LineBackend {
	return &LineBackend{
		in:    bufio.NewReader(in),
		out:   out,
		lines: make(chan string),
	}
}

// PromptLine writes "question: " and reads one line.
func (b *LineBackend) PromptLine(question string) (string, error) {
	return b.PromptLineContext(context.Background(), question)
}

// PromptLineContext is PromptLine returning ctx.Err() if ctx ends first.
func (b *LineBackend) PromptLineContext(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := b.ask(question + ": "); err != nil {
		return "", err
	}
	return b.readLine(ctx)
}

// PromptConfirm writes "question [y/n]: " and reads until the answer is
// y, yes, n or no in any case.
func (b *LineBackend) PromptConfirm(question string) (bool, error) {
	return b.PromptConfirmContext(context.Background(), question)
}

// PromptConfirmContext is PromptConfirm returning ctx.Err() if ctx ends first.
func (b *LineBackend) PromptConfirmContext(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	for {
		if err := b.ask(question + " [y/n]: "); err != nil {
			return false, err
		}
		line, err := b.readLine(ctx)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if err := b.ask("Please enter Y or N\n"); err != nil {
			return false, err
		}
	}
}

// PromptChoice writes "question [a/b/c]: " and reads one line. The answer
// is not validated here.
func (b *LineBackend) PromptChoice(question string, choices []string) (string, error) {
	return b.PromptChoiceContext(context.Background(), question, choices)
}

// PromptChoiceContext is PromptChoice returning ctx.Err() if ctx ends first.
func (b *LineBackend) PromptChoiceContext(ctx context.Context, question string, choices []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := b.ask(fmt.Sprintf("%s [%s]: ", question, strings.Join(choices, "/"))); err != nil {
		return "", err
	}
	return b.readLine(ctx)
}

func (b *LineBackend) ask(text string) error {
	if _, err := io.WriteString(b.out, text); err != nil {
		return errors.Wrap(err, errors.ErrWrite, "failed to write prompt")
	}
	return nil
}

// readLine returns the next line without its terminator. A final line
// without a newline is returned as-is; end of input with nothing read is a
// PROMPT_READ error.
func (b *LineBackend) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b.start.Do(func() { go b.pump() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-b.lines:
		if !ok {
			return "", errors.Wrap(b.err, errors.ErrPromptRead, "failed to read user input")
		}
		return line, nil
	}
}

// pump feeds lines to readLine until the input fails. The error is kept
// in b.err before lines is closed.
func (b *LineBackend) pump() {
	for {
		line, err := b.in.ReadString('\n')
		if err != nil {
			if line != "" && err == io.EOF {
				b.lines <- strings.TrimRight(line, "\r\n")
			}
			b.err = err
			close(b.lines)
			return
		}
		b.lines <- strings.TrimRight(line, "\r\n")
	}
}
