package render

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/shine/pkg/style"
)

const barCells = 20

// ProgressBar writes "desc: [████░░░░] current/total (p%)" with a 20-cell bar.
func (r *Renderer) ProgressBar(current, total int, desc string) error {
	if desc == "" {
		desc = "Progress"
	}
	pct := 0.0
	if total > 0 {
		pct = float64(current) / float64(total) * 100
	}
	pct = min(max(pct, 0), 100)
	filled := int(pct / 5)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barCells-filled)
	text := fmt.Sprintf("%s: [%s] %d/%d (%.1f%%)", desc, bar, current, total, pct)
	return r.line("progress", r.registry.Paint(style.Cyan, false, text), text)
}

// StepProgress writes a "Step n/total" heading followed by desc.
func (r *Renderer) StepProgress(current, total int, desc string) error {
	step := fmt.Sprintf("Step %d/%d", current, total)
	styled := "\n" + r.registry.Paint(style.Cyan, true, step) + "\n" + r.registry.Paint(style.Cyan, false, desc)
	return r.line("progress", styled, step+": "+desc)
}

// OperationStart announces an operation, with optional details.
func (r *Renderer) OperationStart(op, details string) error {
	plain := op
	styled := "\n" + r.registry.Tag("title").Render(op)
	if details != "" {
		plain += " - " + details
		styled += " - " + details
	}
	return r.line("progress", styled, plain)
}

// OperationComplete reports a finished operation, with an optional result.
func (r *Renderer) OperationComplete(op, result string) error {
	plain := fmt.Sprintf("%s %s Complete", r.registry.StyleFor(style.Success).Glyph, op)
	styled := r.registry.Paint(style.Green, true, plain)
	if result != "" {
		plain += " → " + result
		styled += " → " + result
	}
	return r.line(string(style.Success), styled, plain)
}

// StatusUpdate writes a green status line, with an optional count in
// parentheses.
func (r *Renderer) StatusUpdate(msg string, count ...int) error {
	if len(count) > 0 {
		msg = fmt.Sprintf("%s (%s)", msg, humanize.Comma(int64(count[0])))
	}
	return r.line("status", r.registry.Paint(style.Green, false, msg), msg)
}

// SearchResult writes "Found N results for 'query'".
func (r *Renderer) SearchResult(count int, query string) error {
	msg := fmt.Sprintf("Found %s results for '%s'", humanize.Comma(int64(count)), query)
	return r.line("status", r.registry.Paint(style.Green, false, msg), msg)
}

var stepColors = map[string]style.Color{
	"processing": style.Yellow,
	"complete":   style.Green,
	"failed":     style.Red,
	"skipped":    style.Gray,
	"warning":    style.Yellow,
}

// ProcessStep writes a step name coloured by its status: processing,
// complete, failed, skipped or warning. Other statuses are blue.
func (r *Renderer) ProcessStep(name, status string) error {
	color, ok := stepColors[strings.ToLower(status)]
	if !ok {
		color = style.Blue
	}
	return r.line(status, r.registry.Paint(color, false, name), name)
}

// Loading writes "⏳ msg...".
func (r *Renderer) Loading(msg string) error {
	text := "⏳ " + msg + "..."
	return r.line("progress", r.registry.Paint(style.Yellow, false, text), text)
}

// ConnectionItem writes a ranked result: index, name and score on one line
// and the preview, cut to Settings.PreviewWidth, indented below.
func (r *Renderer) ConnectionItem(index int, name string, score float64, preview string, opts ...CallOption) error {
	cfg := r.callConfig(opts)
	cut := Truncate(preview, cfg.preview(r.settings.PreviewWidth))
	head := fmt.Sprintf("%d. %s Score: %.3f", index, name, score)
	styled := fmt.Sprintf("   %s %s Score: %s\n      %s",
		r.registry.Tag("index").Render(fmt.Sprintf("%d.", index)),
		r.registry.Tag("name").Render(name),
		r.registry.Tag("score").Render(fmt.Sprintf("%.3f", score)),
		r.registry.Tag("dim").Render(cut))
	return r.line("item", styled, head+" "+cut)
}

// Preview writes text dimmed and cut to Settings.TextPreviewWidth.
func (r *Renderer) Preview(text string, opts ...CallOption) error {
	cfg := r.callConfig(opts)
	cut := Truncate(text, cfg.preview(r.settings.TextPreviewWidth))
	return r.line("preview", r.registry.Tag("dim").Render(cut), cut)
}

// Decision writes a highlighted decision block.
func (r *Renderer) Decision(text string) error {
	styled := "\n" + r.registry.Paint(style.Yellow, true, "Decision:") + "\n" + r.registry.Paint(style.Yellow, false, "   "+text)
	return r.line("decision", styled, text)
}

// Countdown writes "message: Ns" once per second down to 1, then
// "message: Done!". It returns ctx.Err() if ctx ends first.
func (r *Renderer) Countdown(ctx context.Context, seconds int, message string) error {
	if message == "" {
		message = "Waiting"
	}
	for i := seconds; i > 0; i-- {
		text := fmt.Sprintf("%s: %ds", message, i)
		if err := r.line("countdown", r.registry.Paint(style.Yellow, false, text), text); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.clock.After(time.Second):
		}
	}
	done := message + ": Done!"
	return r.line("countdown", r.registry.Paint(style.Green, false, done), done)
}

// Spinner runs fn while showing message. On a colour terminal a pterm
// spinner is animated; elsewhere a progress line is written before fn and a
// success or error line after. The error of fn is returned.
func (r *Renderer) Spinner(message string, fn func() error) error {
	if f, ok := r.out.(*os.File); ok && r.color && IsTerminal(f) {
		spinner, err := pterm.DefaultSpinner.WithWriter(f).Start(message)
		if err == nil {
			if ferr := fn(); ferr != nil {
				spinner.Fail(fmt.Sprintf("%s: %v", message, ferr))
				return ferr
			}
			spinner.Success(message)
			return nil
		}
		r.logger.Debug().Err(err).Msg("Spinner unavailable")
	}

	if err := r.Progress(message); err != nil {
		return err
	}
	if err := fn(); err != nil {
		_ = r.Error(fmt.Sprintf("%s: %v", message, err))
		return err
	}
	return r.Success(message)
}
