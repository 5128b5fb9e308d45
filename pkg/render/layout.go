package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/shine/pkg/style"
)

// drawPanel boxes body with a rounded border. The title, when set, sits on
// the top-left of the border in bold border colour.
func (r *Renderer) drawPanel(title, body string, border style.Color) string {
	box := pterm.DefaultBox.
		WithBoxStyle(pterm.NewStyle(border.Pterm())).
		WithTitleTopLeft()
	if title != "" {
		label := r.registry.Paint(border, true, title)
		// pterm sizes the box from the body; keep room for the title.
		if need := ansi.StringWidth(title) + 2; maxWidth(body) < need {
			body = fitWidth(body, need)
		}
		box = box.WithTitle(label)
	}
	return box.Sprint(body)
}

// Panel writes body in a bordered box.
func (r *Renderer) Panel(body, title string, color style.Color) error {
	if color == style.NoColor {
		color = style.Blue
	}
	return r.block("panel", title, body, func() (string, error) {
		return r.drawPanel(title, r.registry.Markup(body), color), nil
	})
}

// SectionPanel writes a titled panel.
func (r *Renderer) SectionPanel(title, body string, color style.Color) error {
	return r.Panel(body, title, color)
}

// StatusPanel writes msg in a yellow box.
func (r *Renderer) StatusPanel(msg string) error {
	return r.colouredPanel(msg, style.Yellow)
}

// CompletionPanel writes msg in a green box.
func (r *Renderer) CompletionPanel(msg string) error {
	return r.colouredPanel(msg, style.Green)
}

// ErrorPanel writes msg in a red box.
func (r *Renderer) ErrorPanel(msg string) error {
	return r.colouredPanel(msg, style.Red)
}

func (r *Renderer) colouredPanel(msg string, color style.Color) error {
	return r.block("panel", "", msg, func() (string, error) {
		return r.drawPanel("", r.registry.Paint(color, false, msg), color), nil
	})
}

// Rule writes a horizontal line across the layout width with title centred.
func (r *Renderer) Rule(title string) error {
	return r.block("rule", title, nil, func() (string, error) {
		return r.rule(title), nil
	})
}

func (r *Renderer) rule(title string) string {
	line := func(n int) string {
		if n <= 0 {
			return ""
		}
		return r.registry.Paint(style.Green, false, strings.Repeat("─", n))
	}
	if title == "" {
		return line(r.width)
	}

	label := " " + r.registry.Tag("title").Render(title) + " "
	rest := r.width - ansi.StringWidth(label)
	if rest < 2 {
		return label
	}
	left := rest / 2
	return line(left) + label + line(rest-left)
}

// ThinDivider writes a dim line of 60 dashes.
func (r *Renderer) ThinDivider() error {
	dashes := strings.Repeat("-", 60)
	return r.line("divider", r.registry.Tag("dim").Render(dashes), dashes)
}

// Header writes a bold blue heading preceded by a blank line.
func (r *Renderer) Header(text string) error {
	return r.line("header", "\n"+r.registry.Tag("title").Render(text), text)
}

// Subheader writes a bold cyan heading.
func (r *Renderer) Subheader(text string) error {
	return r.line("subheader", r.registry.Tag("subtitle").Render(text), text)
}

// Separator writes an empty line.
func (r *Renderer) Separator() error {
	if r.format == FormatJSON {
		return nil
	}
	return r.emit("")
}

// PanelSpec is one panel of a column layout.
type PanelSpec struct {
	Title string      `json:"title"`
	Body  string      `json:"body"`
	Color style.Color `json:"color,omitempty"`
}

var columnColors = []style.Color{style.Blue, style.Green, style.Yellow, style.Cyan, style.Magenta}

// Columns writes the panels side by side with equal widths. Missing titles
// become "Column N" and missing colours cycle through blue, green, yellow,
// cyan and magenta.
func (r *Renderer) Columns(panels []PanelSpec) error {
	if len(panels) == 0 {
		return nil
	}
	specs := make([]PanelSpec, len(panels))
	for i, p := range panels {
		if p.Title == "" {
			p.Title = fmt.Sprintf("Column %d", i+1)
		}
		if p.Color == style.NoColor {
			p.Color = columnColors[i%len(columnColors)]
		}
		specs[i] = p
	}

	return r.block("columns", "", specs, func() (string, error) {
		n := len(specs)
		// Each box adds two border cells and one padding cell per side.
		inner := (r.width-(n-1))/n - 4
		if inner < 10 {
			inner = 10
		}

		boxes := make([]string, 0, 2*n-1)
		for i, p := range specs {
			if i > 0 {
				boxes = append(boxes, " ")
			}
			title := Truncate(p.Title, inner-2)
			body := fitWidth(r.registry.Markup(p.Body), inner)
			boxes = append(boxes, r.drawPanel(title, body, p.Color))
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, boxes...), nil
	})
}

// SideBySide writes two panels next to each other, blue on the left and
// green on the right.
func (r *Renderer) SideBySide(left, right, leftTitle, rightTitle string) error {
	if leftTitle == "" {
		leftTitle = "Left"
	}
	if rightTitle == "" {
		rightTitle = "Right"
	}
	return r.Columns([]PanelSpec{
		{Title: leftTitle, Body: left, Color: style.Blue},
		{Title: rightTitle, Body: right, Color: style.Green},
	})
}

// Diff shows two versions of a text as a Before/After pair.
func (r *Renderer) Diff(before, after string) error {
	return r.SideBySide(before, after, "Before", "After")
}
