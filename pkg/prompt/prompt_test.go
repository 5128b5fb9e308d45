package prompt_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/shine/pkg/errors"
	"github.com/arthur-debert/shine/pkg/prompt"
	"github.com/arthur-debert/shine/pkg/render"
)

func newAdapter(t *testing.T, input string) (*prompt.Adapter, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	r := render.New(&out)
	return prompt.New(prompt.NewLineBackend(strings.NewReader(input), &out), r), &out
}

// scripted returns canned answers and counts how often it was asked.
type scripted struct {
	answers []string
	asked   int
}

func (s *scripted) next() (string, error) {
	if s.asked >= len(s.answers) {
		return "", errors.New(errors.ErrPromptRead, "no more answers")
	}
	s.asked++
	return s.answers[s.asked-1], nil
}

func (s *scripted) PromptLine(string) (string, error) { return s.next() }

func (s *scripted) PromptConfirm(string) (bool, error) {
	a, err := s.next()
	return a == "y", err
}

func (s *scripted) PromptChoice(string, []string) (string, error) { return s.next() }

func TestAskChoice_RepromptsUntilValid(t *testing.T) {
	a, out := newAdapter(t, "c\na\n")

	got, err := a.AskChoice("pick", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "a", got)

	assert.Equal(t,
		"pick [a/b]: ✗ "+prompt.InvalidChoiceMessage+" (did you mean \"a\"?)\npick [a/b]: ",
		out.String())
}

func TestAskChoice_NeverReturnsOutsideChoices(t *testing.T) {
	backend := &scripted{answers: []string{"", "maybe", "  B  "}}
	var out bytes.Buffer
	a := prompt.New(backend, render.New(&out))

	got, err := a.AskChoice("pick", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "b", got, "case-insensitive match returns the listed choice")
	assert.Equal(t, 3, backend.asked)
	assert.Equal(t, 2, strings.Count(out.String(), prompt.InvalidChoiceMessage))
}

func TestAskChoice_EmptyChoices(t *testing.T) {
	a, _ := newAdapter(t, "x\n")

	_, err := a.AskChoice("pick", nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestAskChoice_EndOfInput(t *testing.T) {
	a, _ := newAdapter(t, "c\n")

	_, err := a.AskChoice("pick", []string{"a"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPromptRead))
}

func TestAskYesNo(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"No\n", false},
		{"maybe\n\ny\n", true},
		{"yes", true},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			a, out := newAdapter(t, tt.input)
			got, err := a.AskYesNo("Continue?")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, strings.HasPrefix(out.String(), "Continue? [y/n]: "))
		})
	}
}

func TestAskYesNo_RepromptMessage(t *testing.T) {
	a, out := newAdapter(t, "sure\nn\n")

	got, err := a.AskYesNo("Continue?")
	require.NoError(t, err)
	assert.False(t, got)
	assert.Equal(t, "Continue? [y/n]: Please enter Y or N\nContinue? [y/n]: ", out.String())
}

func TestAskYesNo_EndOfInput(t *testing.T) {
	a, _ := newAdapter(t, "")

	_, err := a.AskYesNo("Continue?")
	assert.True(t, errors.IsErrorCode(err, errors.ErrPromptRead))
}

func TestAskText(t *testing.T) {
	a, out := newAdapter(t, "  Ada Lovelace \r\nnext\n")

	got, err := a.AskText("Name")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got)
	assert.Equal(t, "Name: ", out.String())

	got, err = a.AskText("Again")
	require.NoError(t, err)
	assert.Equal(t, "next", got)
}

func TestContextVariants(t *testing.T) {
	t.Run("answer arrives first", func(t *testing.T) {
		a, _ := newAdapter(t, "b\n")
		got, err := a.AskChoiceContext(context.Background(), "pick", []string{"a", "b"})
		require.NoError(t, err)
		assert.Equal(t, "b", got)
	})

	t.Run("cancelled while waiting", func(t *testing.T) {
		pr, pw := io.Pipe()
		defer pw.Close()

		a := prompt.New(prompt.NewLineBackend(pr, io.Discard), render.New(io.Discard))
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := a.AskTextContext(ctx, "Name")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("already cancelled", func(t *testing.T) {
		backend := &scripted{answers: []string{"y"}}
		a := prompt.New(backend, render.New(io.Discard))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := a.AskYesNoContext(ctx, "Continue?")
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, backend.asked)
	})
}

func TestContextVariants_AdapterUsableAfterCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	a := prompt.New(prompt.NewLineBackend(pr, &out), render.New(io.Discard))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := a.AskTextContext(ctx, "first")
	require.ErrorIs(t, err, context.DeadlineExceeded)

	go func() {
		_, _ = io.WriteString(pw, "alice\n")
		_, _ = io.WriteString(pw, "b\n")
	}()

	got, err := a.AskText("second")
	require.NoError(t, err)
	assert.Equal(t, "alice", got, "the line typed after the cancel goes to the next question")

	choice, err := a.AskChoiceContext(context.Background(), "third", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "b", choice)

	assert.Equal(t, "first: second: third [a/b]: ", out.String())
}

func TestContextVariants_CancelledBeforeReading(t *testing.T) {
	var out bytes.Buffer
	a := prompt.New(prompt.NewLineBackend(strings.NewReader("y\n"), &out), render.New(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := a.AskYesNoContext(ctx, "Continue?")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())

	ok, err := a.AskYesNo("Continue?")
	require.NoError(t, err)
	assert.True(t, ok, "the unread answer is still available")
}

func TestAuto_UsesLineBackendForPipes(t *testing.T) {
	var out bytes.Buffer
	a := prompt.Auto(strings.NewReader("hello\n"), &out, nil)

	got, err := a.AskText("Say")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	assert.Equal(t, "Say: ", out.String())
}
