package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/shine/pkg/errors"
	"github.com/arthur-debert/shine/pkg/payload"
	"github.com/arthur-debert/shine/pkg/style"
)

// KeyValue draws a mapping as "Key: value" lines in a blue panel. Keys are
// title-cased ("first_name" becomes "First Name"). Values that are not a
// mapping are passed to Render.
func (r *Renderer) KeyValue(v any, title string, opts ...CallOption) (Result, error) {
	m, ok := payload.Normalize(v).(*payload.Map)
	if !ok {
		return r.Render(v, title, opts...)
	}
	return r.keyValue(m, title, r.callConfig(opts))
}

func (r *Renderer) keyValue(m *payload.Map, title string, cfg callConfig) (Result, error) {
	if title == "" {
		title = DefaultTitle
	}
	res := Result{Kind: payload.KindKeyValue, Rows: m.Len()}

	err := r.block(res.Kind.String(), title, m, func() (string, error) {
		labels := make([]string, 0, m.Len())
		width := 0
		m.Each(func(k string, _ any) {
			label := TitleKey(k) + ":"
			labels = append(labels, label)
			if w := runewidth.StringWidth(label); w > width {
				width = w
			}
		})

		lines := make([]string, 0, m.Len())
		i := 0
		m.Each(func(_ string, v any) {
			key := r.registry.Tag("key").Render(padRight(labels[i], width))
			lines = append(lines, key+" "+r.registry.Tag("value").Render(payload.Stringify(v)))
			i++
		})
		return r.drawPanel(title, strings.Join(lines, "\n"), cfg.borderOr(style.Blue)), nil
	})
	return res, err
}

// JSON draws v pretty-printed and highlighted in a cyan panel. A string is
// parsed first; if it is not valid JSON an error notice is written instead.
func (r *Renderer) JSON(v any, title string, opts ...CallOption) (Result, error) {
	cfg := r.callConfig(opts)
	if s, ok := v.(string); ok {
		parsed, err := payload.DecodeJSON([]byte(s))
		if err != nil {
			return r.malformed(err)
		}
		v = parsed
	}
	return r.structured(payload.Normalize(v), title, cfg)
}

func (r *Renderer) structured(v any, title string, cfg callConfig) (Result, error) {
	if title == "" {
		title = DefaultTitle
	}
	res := Result{Kind: payload.KindStructured}

	err := r.block(res.Kind.String(), title, v, func() (string, error) {
		pretty, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", errors.Wrap(err, errors.ErrRender, "failed to encode JSON block")
		}
		body := r.highlight(string(pretty), "json")
		return r.drawPanel(title, body, cfg.borderOr(style.Cyan)), nil
	})
	return res, err
}

// Table draws a sequence of mappings as a grid. Columns are the keys of the
// first row in order, cells are cut to the cell width, and rows past the row
// cap are counted in a caption. An empty sequence writes a warning instead.
// Values that are not a sequence of mappings are passed to Render.
func (r *Renderer) Table(v any, title string, opts ...CallOption) (Result, error) {
	rows, ok := payload.Normalize(v).([]any)
	if !ok || !payload.IsTable(rows) {
		return r.Render(v, title, opts...)
	}
	return r.table(rows, title, r.callConfig(opts))
}

func (r *Renderer) table(rows []any, title string, cfg callConfig) (Result, error) {
	if title == "" {
		title = "Table"
	}
	res := Result{Kind: payload.KindTable}

	var columns []string
	if len(rows) > 0 {
		columns = rows[0].(*payload.Map).Keys()
	}
	if len(columns) == 0 {
		res.Notice = errors.New(errors.ErrEmptyTable, "no rows to render").WithDetail("title", title)
		return res, r.notice(style.Warning, "No data for table", res.Notice)
	}

	shown := rows
	if cfg.maxRows > 0 && len(rows) > cfg.maxRows {
		shown = rows[:cfg.maxRows]
		res.Hidden = len(rows) - cfg.maxRows
	}
	res.Columns = columns
	res.Rows = len(shown)
	r.logger.Debug().
		Strs("columns", columns).
		Int("rows", res.Rows).
		Int("hidden", res.Hidden).
		Msg("Rendering table")

	if r.format == FormatJSON {
		return res, r.record(record{Kind: res.Kind.String(), Title: title, Data: shown, Hidden: res.Hidden})
	}

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = TitleKey(col)
	}
	data := pterm.TableData{header}
	for _, row := range shown {
		m := row.(*payload.Map)
		cells := make([]string, len(columns))
		for i, col := range columns {
			value, _ := m.Get(col)
			cells[i] = Truncate(payload.Stringify(value), cfg.cellWidth)
		}
		data = append(data, cells)
	}

	grid, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return res, errors.Wrap(err, errors.ErrRender, "failed to draw table")
	}

	var b strings.Builder
	b.WriteString(r.registry.Tag("title").Render(title))
	b.WriteString("\n")
	b.WriteString(grid)
	if res.Hidden > 0 {
		caption := fmt.Sprintf("Showing %s of %s rows (%s hidden)",
			humanize.Comma(int64(res.Rows)),
			humanize.Comma(int64(len(rows))),
			humanize.Comma(int64(res.Hidden)))
		b.WriteString("\n")
		b.WriteString(r.registry.Tag("caption").Render(caption))
	}
	return res, r.emit(b.String())
}

// List draws a sequence one item per line, numbered or bulleted.
// Values that are not a sequence are passed to Render.
func (r *Renderer) List(v any, title string, opts ...CallOption) (Result, error) {
	items, ok := payload.Normalize(v).([]any)
	if !ok {
		return r.Render(v, title, opts...)
	}
	return r.list(items, title, r.callConfig(opts))
}

func (r *Renderer) list(items []any, title string, cfg callConfig) (Result, error) {
	if title == "" {
		title = "List"
	}
	res := Result{Kind: payload.KindList, Rows: len(items)}

	err := r.block(res.Kind.String(), title, items, func() (string, error) {
		lines := make([]string, len(items))
		for i, item := range items {
			prefix := "• "
			if cfg.numbered {
				prefix = fmt.Sprintf("%d. ", i+1)
			}
			lines[i] = r.registry.Tag("index").Render(prefix) + r.registry.Tag("value").Render(payload.Stringify(item))
		}
		return r.drawPanel(title, strings.Join(lines, "\n"), cfg.borderOr(style.Blue)), nil
	})
	return res, err
}

// Tree draws a mapping as a tree rooted at title with one branch per key.
// Each branch shows at most Settings.TreeMaxItems leaves, each cut to
// Settings.TreeItemWidth (or the PreviewWidth call option).
func (r *Renderer) Tree(v any, title string, opts ...CallOption) (Result, error) {
	m, ok := payload.Normalize(v).(*payload.Map)
	if !ok {
		return r.Render(v, title, opts...)
	}
	cfg := r.callConfig(opts)
	if title == "" {
		title = "Tree"
	}
	res := Result{Kind: payload.KindTree, Rows: m.Len()}

	err := r.block(res.Kind.String(), title, m, func() (string, error) {
		root := pterm.TreeNode{Text: r.registry.Tag("title").Render(title)}
		width := cfg.preview(r.settings.TreeItemWidth)
		m.Each(func(key string, value any) {
			items := branchItems(value)
			branch := pterm.TreeNode{
				Text: r.registry.Tag("name").Render(key) + fmt.Sprintf(" (%d items)", len(items)),
			}
			for i, item := range items {
				if i == r.settings.TreeMaxItems {
					more := fmt.Sprintf("… %d more", len(items)-i)
					branch.Children = append(branch.Children, pterm.TreeNode{Text: r.registry.Tag("muted").Render(more)})
					break
				}
				leaf := Truncate(payload.Stringify(item), width)
				branch.Children = append(branch.Children, pterm.TreeNode{Text: r.registry.Tag("dim").Render(leaf)})
			}
			root.Children = append(root.Children, branch)
		})

		s, err := pterm.DefaultTree.WithRoot(root).Srender()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrRender, "failed to draw tree")
		}
		return s, nil
	})
	return res, err
}

// branchItems returns the leaves of a tree branch.
func branchItems(v any) []any {
	switch val := v.(type) {
	case nil:
		return nil
	case []any:
		return val
	case *payload.Map:
		items := make([]any, 0, val.Len())
		val.Each(func(k string, x any) {
			items = append(items, k+": "+payload.Stringify(x))
		})
		return items
	}
	return []any{v}
}

// Code draws source with syntax highlighting and line numbers in a green panel.
func (r *Renderer) Code(src, language, title string, opts ...CallOption) error {
	cfg := r.callConfig(opts)
	if title == "" {
		title = "Code"
	}
	src = strings.TrimRight(src, "\n")

	return r.block("code", title, map[string]string{"language": language, "source": src}, func() (string, error) {
		lines := strings.Split(r.highlight(src, language), "\n")
		gutter := len(fmt.Sprint(len(lines)))
		for i, line := range lines {
			num := fmt.Sprintf("%*d │", gutter, i+1)
			lines[i] = r.registry.Tag("dim").Render(num) + " " + line
		}
		return r.drawPanel(title, strings.Join(lines, "\n"), cfg.borderOr(style.Green)), nil
	})
}

// highlight colours src for the given chroma lexer name. Without colour, or
// when highlighting fails, src is returned unchanged.
func (r *Renderer) highlight(src, language string) string {
	if !r.color {
		return src
	}
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, src, language, "terminal", "monokai"); err != nil {
		r.logger.Debug().Err(err).Str("language", language).Msg("Highlighting failed")
		return src
	}
	return strings.TrimRight(buf.String(), "\n")
}

// Markdown renders markdown through glamour.
func (r *Renderer) Markdown(src string) error {
	return r.block("markdown", "", src, func() (string, error) {
		styleName := "notty"
		if r.color {
			styleName = "dark"
		}
		tr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(styleName),
			glamour.WithWordWrap(r.width),
		)
		if err != nil {
			r.logger.Debug().Err(err).Msg("Markdown renderer unavailable, writing source")
			return src, nil
		}
		out, err := tr.Render(src)
		if err != nil {
			r.logger.Debug().Err(err).Msg("Markdown rendering failed, writing source")
			return src, nil
		}
		return strings.TrimRight(out, "\n"), nil
	})
}
