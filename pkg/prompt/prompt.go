// Package prompt asks the user questions on the terminal.
//
// An Adapter validates answers and re-asks when needed; a Backend collects
// the raw input. LineBackend reads lines from any io.Reader and is what
// pipes and tests use; InteractiveBackend uses pterm's interactive widgets on
// a real terminal.
package prompt

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/shine/pkg/errors"
	"github.com/arthur-debert/shine/pkg/logging"
	"github.com/arthur-debert/shine/pkg/render"
	"github.com/arthur-debert/shine/pkg/style"
)

// InvalidChoiceMessage is shown when an answer is not one of the choices.
const InvalidChoiceMessage = "Please select one of the available options"

// Backend collects raw answers.
type Backend interface {
	PromptLine(question string) (string, error)
	PromptConfirm(question string) (bool, error)
	PromptChoice(question string, choices []string) (string, error)
}

// ContextBackend is a Backend that can abandon a prompt when its context
// ends, leaving the input usable for the next prompt.
type ContextBackend interface {
	Backend
	PromptLineContext(ctx context.Context, question string) (string, error)
	PromptConfirmContext(ctx context.Context, question string) (bool, error)
	PromptChoiceContext(ctx context.Context, question string, choices []string) (string, error)
}

// Adapter asks questions through a Backend and reports invalid answers
// through a renderer.
type Adapter struct {
	backend Backend
	r       *render.Renderer
	logger  zerolog.Logger
}

// New creates an adapter. Notices about invalid answers are written to r,
// or to stdout when r is nil.
func New(backend Backend, r *render.Renderer) *Adapter {
	if r == nil {
		r = render.New(os.Stdout)
	}
	return &Adapter{
		backend: backend,
		r:       r,
		logger:  logging.GetLogger("prompt"),
	}
}

// Auto uses InteractiveBackend when in and out are both terminals and
// LineBackend otherwise. A nil r renders notices to out.
func Auto(in io.Reader, out io.Writer, r *render.Renderer) *Adapter {
	if r == nil {
		r = render.New(out)
	}
	inFile, inOK := in.(*os.File)
	outFile, outOK := out.(*os.File)
	if inOK && outOK && render.IsTerminal(inFile) && render.IsTerminal(outFile) {
		return New(NewInteractiveBackend(), r)
	}
	return New(NewLineBackend(in, out), r)
}

// AskYesNo blocks until the user answers yes or no.
func (a *Adapter) AskYesNo(question string) (bool, error) {
	return a.AskYesNoContext(context.Background(), question)
}

// AskText blocks until the user enters a line and returns it trimmed.
func (a *Adapter) AskText(question string) (string, error) {
	return a.AskTextContext(context.Background(), question)
}

// AskChoice blocks until the user picks one of choices and returns it.
// Answers outside the set are reported and asked again; they never reach
// the caller. Matching ignores case, the returned value is always an
// element of choices.
func (a *Adapter) AskChoice(question string, choices []string) (string, error) {
	return a.AskChoiceContext(context.Background(), question, choices)
}

// AskYesNoContext is AskYesNo returning ctx.Err() if ctx ends first.
func (a *Adapter) AskYesNoContext(ctx context.Context, question string) (bool, error) {
	ok, err := a.confirm(ctx, question)
	if err != nil {
		return false, err
	}
	a.logger.Debug().Str("question", question).Bool("answer", ok).Msg("Confirmation answered")
	return ok, nil
}

// AskTextContext is AskText returning ctx.Err() if ctx ends first.
func (a *Adapter) AskTextContext(ctx context.Context, question string) (string, error) {
	answer, err := a.line(ctx, question)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// AskChoiceContext is AskChoice returning ctx.Err() if ctx ends first.
func (a *Adapter) AskChoiceContext(ctx context.Context, question string, choices []string) (string, error) {
	if len(choices) == 0 {
		return "", errors.New(errors.ErrInvalidInput, "at least one choice is required").
			WithDetail("question", question)
	}

	for {
		answer, err := a.choice(ctx, question, choices)
		if err != nil {
			return "", err
		}
		if choice, ok := match(strings.TrimSpace(answer), choices); ok {
			return choice, nil
		}

		a.logger.Debug().Str("answer", answer).Strs("choices", choices).Msg("Answer is not a valid choice")
		notice := InvalidChoiceMessage
		if hint := style.Suggest(strings.TrimSpace(answer), choices); hint != "" {
			notice += fmt.Sprintf(" (did you mean %q?)", hint)
		}
		if err := a.r.Error(notice); err != nil {
			return "", err
		}
	}
}

func match(answer string, choices []string) (string, bool) {
	for _, c := range choices {
		if c == answer {
			return c, true
		}
	}
	for _, c := range choices {
		if strings.EqualFold(c, answer) {
			return c, true
		}
	}
	return "", false
}

func (a *Adapter) line(ctx context.Context, question string) (string, error) {
	if cb, ok := a.backend.(ContextBackend); ok {
		return cb.PromptLineContext(ctx, question)
	}
	return await(ctx, func() (string, error) { return a.backend.PromptLine(question) })
}

func (a *Adapter) confirm(ctx context.Context, question string) (bool, error) {
	if cb, ok := a.backend.(ContextBackend); ok {
		return cb.PromptConfirmContext(ctx, question)
	}
	return await(ctx, func() (bool, error) { return a.backend.PromptConfirm(question) })
}

func (a *Adapter) choice(ctx context.Context, question string, choices []string) (string, error) {
	if cb, ok := a.backend.(ContextBackend); ok {
		return cb.PromptChoiceContext(ctx, question, choices)
	}
	return await(ctx, func() (string, error) { return a.backend.PromptChoice(question, choices) })
}

type result[T any] struct {
	value T
	err   error
}

// await runs ask in a goroutine for backends without context support. When
// ctx ends first the goroutine stays blocked in the backend and its answer
// is discarded.
func await[T any](ctx context.Context, ask func() (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	if ctx.Done() == nil {
		return ask()
	}

	done := make(chan result[T], 1)
	go func() {
		v, err := ask()
		done <- result[T]{v, err}
	}()

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-done:
		return res.value, res.err
	}
}
