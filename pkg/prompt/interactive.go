package prompt

import (
	"github.com/pterm/pterm"

	"github.com/arthur-debert/shine/pkg/errors"
)

// InteractiveBackend uses pterm's interactive confirm, text input and
// select widgets. It needs a real terminal on stdin.
type InteractiveBackend struct{}

// NewInteractiveBackend creates an interactive backend.
func NewInteractiveBackend() *InteractiveBackend {
	return &InteractiveBackend{}
}

// PromptLine shows a text input.
func (b *InteractiveBackend) PromptLine(question string) (string, error) {
	answer, err := pterm.DefaultInteractiveTextInput.Show(question)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrPromptRead, "failed to read user input")
	}
	return answer, nil
}

// PromptConfirm shows a yes/no confirm.
func (b *InteractiveBackend) PromptConfirm(question string) (bool, error) {
	answer, err := pterm.DefaultInteractiveConfirm.Show(question)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrPromptRead, "failed to read user input")
	}
	return answer, nil
}

// PromptChoice shows a select list over choices.
func (b *InteractiveBackend) PromptChoice(question string, choices []string) (string, error) {
	answer, err := pterm.DefaultInteractiveSelect.
		WithOptions(choices).
		Show(question)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrPromptRead, "failed to read user input")
	}
	return answer, nil
}
