package render

import (
	"github.com/arthur-debert/shine/pkg/style"
)

// Message writes "<glyph> <text>" in the colour of category c.
func (r *Renderer) Message(c style.Category, text string) error {
	return r.message(string(c), r.registry.StyleFor(c), text)
}

// Info writes a blue informational message.
func (r *Renderer) Info(text string) error { return r.Message(style.Info, text) }

// Success writes a green success message.
func (r *Renderer) Success(text string) error { return r.Message(style.Success, text) }

// Warning writes a yellow warning message.
func (r *Renderer) Warning(text string) error { return r.Message(style.Warning, text) }

// Error writes a red error message.
func (r *Renderer) Error(text string) error { return r.Message(style.Error, text) }

// Debug writes a magenta debug message.
func (r *Renderer) Debug(text string) error { return r.Message(style.Debug, text) }

// Progress writes a cyan progress message.
func (r *Renderer) Progress(text string) error { return r.Message(style.Progress, text) }

// Log writes text in the style of the named level. Names outside the
// category set are written with the neutral style.
func (r *Renderer) Log(level, text string) error {
	attrs, err := r.registry.Lookup(level)
	if err != nil {
		r.logger.Debug().Err(err).Str("level", level).Msg("Unknown level, using neutral style")
	}
	return r.message(level, attrs, text)
}

// Print writes inline markup such as "[bold]Done[/bold] in [dim]3s[/dim]".
func (r *Renderer) Print(markup string) error {
	if r.format == FormatJSON {
		return r.record(record{Message: r.registry.Strip(markup)})
	}
	return r.emit(r.registry.Markup(markup))
}

func (r *Renderer) message(name string, attrs style.Attributes, text string) error {
	if r.format == FormatJSON {
		return r.record(record{Category: name, Message: text})
	}
	return r.emit(r.registry.Paint(attrs.Color, attrs.Bold, attrs.Glyph+" "+text))
}

// line writes one pre-styled line. In JSON mode the plain text is recorded
// under the given category name.
func (r *Renderer) line(category, styled, plain string) error {
	if r.format == FormatJSON {
		return r.record(record{Category: category, Message: plain})
	}
	return r.emit(styled)
}

// notice reports a recovered input problem in the style of category c.
func (r *Renderer) notice(c style.Category, text string, cause error) error {
	r.logger.Warn().Err(cause).Str("category", string(c)).Msg(text)
	return r.Message(c, text)
}
