// Package render writes styled terminal output.
//
// A Renderer owns the output sink, the style registry and the settings. The
// host application builds one and passes it to the code that prints:
//
//	r := render.New(os.Stdout)
//	r.Success("Deployed")
//	r.Render(rows, "Users") // picks a table, a key/value panel, a list...
//
// Every call writes to the sink once. Input problems (unparseable JSON, empty
// tables, unknown categories) are shown as styled notices rather than
// returned; the only error a call returns is a failed write.
package render

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/zoobzio/clockz"
	"golang.org/x/term"

	"github.com/arthur-debert/shine/pkg/errors"
	"github.com/arthur-debert/shine/pkg/logging"
	"github.com/arthur-debert/shine/pkg/payload"
	"github.com/arthur-debert/shine/pkg/style"
)

// DefaultWidth is used when the sink is not a terminal.
const DefaultWidth = 80

// Settings holds the caps and thresholds the renderer applies when a call
// does not override them.
type Settings struct {
	// SmallMapThreshold is the mapping size from which Render uses the
	// structured block instead of the key/value panel.
	SmallMapThreshold int
	// CellWidth caps table cells.
	CellWidth int
	// MaxRows caps table rows; the rest are counted in the caption.
	MaxRows int
	// PreviewWidth caps ConnectionItem previews.
	PreviewWidth int
	// TreeItemWidth caps tree leaves.
	TreeItemWidth int
	// TreeMaxItems caps leaves per tree branch.
	TreeMaxItems int
	// TextPreviewWidth caps Preview.
	TextPreviewWidth int
	// Numbered selects numbered (true) or bulleted list items.
	Numbered bool
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		SmallMapThreshold: payload.DefaultThreshold,
		CellWidth:         50,
		MaxRows:           10,
		PreviewWidth:      80,
		TreeItemWidth:     60,
		TreeMaxItems:      5,
		TextPreviewWidth:  200,
		Numbered:          true,
	}
}

// Renderer writes styled output to a sink.
type Renderer struct {
	out      io.Writer
	registry *style.Registry
	format   Format
	color    bool
	width    int
	settings Settings
	clock    clockz.Clock
	logger   zerolog.Logger
}

// Option configures a Renderer.
type Option func(*options)

type options struct {
	registry *style.Registry
	format   Format
	color    *bool
	width    int
	settings Settings
	clock    clockz.Clock
}

// WithRegistry sets the style registry. The default is style.Default().
func WithRegistry(reg *style.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// WithFormat sets the output format. The default is FormatAuto.
func WithFormat(f Format) Option {
	return func(o *options) { o.format = f }
}

// WithColor forces colour on or off regardless of the detected format.
func WithColor(enabled bool) Option {
	return func(o *options) { o.color = &enabled }
}

// WithWidth sets the width used by rules and column layouts.
func WithWidth(width int) Option {
	return func(o *options) { o.width = width }
}

// WithSettings replaces the default settings.
func WithSettings(s Settings) Option {
	return func(o *options) { o.settings = s }
}

// WithClock sets the clock driving Countdown.
func WithClock(c clockz.Clock) Option {
	return func(o *options) { o.clock = c }
}

// New creates a renderer writing to w.
//
// With FormatAuto an *os.File sink is inspected with DetectFormat; any other
// writer gets FormatText so buffers and pipes receive plain output.
func New(w io.Writer, opts ...Option) *Renderer {
	o := options{
		registry: style.Default(),
		format:   FormatAuto,
		settings: DefaultSettings(),
		clock:    clockz.RealClock,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = style.Default()
	}
	if o.clock == nil {
		o.clock = clockz.RealClock
	}

	format := o.format
	if format == FormatAuto {
		format = FormatText
		if f, ok := w.(*os.File); ok {
			format = DetectFormat(f)
		}
	}
	if o.color != nil && format != FormatJSON {
		if *o.color {
			format = FormatTerminal
		} else {
			format = FormatText
		}
	}
	color := format == FormatTerminal

	lr := lipgloss.NewRenderer(w)
	if color {
		lr.SetColorProfile(termenv.ANSI)
	} else {
		lr.SetColorProfile(termenv.Ascii)
	}

	width := o.width
	if width <= 0 {
		width = terminalWidth(w)
	}

	r := &Renderer{
		out:      w,
		registry: o.registry.WithRenderer(lr),
		format:   format,
		color:    color,
		width:    width,
		settings: sanitize(o.settings),
		clock:    o.clock,
		logger:   logging.GetLogger("render"),
	}
	r.logger.Debug().
		Str("format", format.String()).
		Bool("color", color).
		Int("width", width).
		Msg("Renderer created")
	return r
}

// sanitize replaces non-positive caps with the defaults.
func sanitize(s Settings) Settings {
	d := DefaultSettings()
	fix := func(v *int, def int) {
		if *v <= 0 {
			*v = def
		}
	}
	fix(&s.SmallMapThreshold, d.SmallMapThreshold)
	fix(&s.CellWidth, d.CellWidth)
	fix(&s.MaxRows, d.MaxRows)
	fix(&s.PreviewWidth, d.PreviewWidth)
	fix(&s.TreeItemWidth, d.TreeItemWidth)
	fix(&s.TreeMaxItems, d.TreeMaxItems)
	fix(&s.TextPreviewWidth, d.TextPreviewWidth)
	return s
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return DefaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// Format returns the resolved output format.
func (r *Renderer) Format() Format { return r.format }

// Color reports whether ANSI styling is emitted.
func (r *Renderer) Color() bool { return r.color }

// Width returns the layout width.
func (r *Renderer) Width() int { return r.width }

// Settings returns the renderer settings.
func (r *Renderer) Settings() Settings { return r.settings }

// Registry returns the style registry bound to this renderer's colour profile.
func (r *Renderer) Registry() *style.Registry { return r.registry }

// Writer returns the output sink.
func (r *Renderer) Writer() io.Writer { return r.out }

// emit writes s, newline-terminated, in a single Write.
func (r *Renderer) emit(s string) error {
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	if !r.color {
		s = ansi.Strip(s)
	}
	if _, err := io.WriteString(r.out, s); err != nil {
		return errors.Wrap(err, errors.ErrWrite, "failed to write output")
	}
	return nil
}

// record is one line of FormatJSON output.
type record struct {
	Kind     string `json:"kind,omitempty"`
	Title    string `json:"title,omitempty"`
	Data     any    `json:"data,omitempty"`
	Hidden   int    `json:"hidden,omitempty"`
	Category string `json:"category,omitempty"`
	Message  string `json:"message,omitempty"`
}

func (r *Renderer) record(rec record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, errors.ErrRender, "failed to encode output record")
	}
	return r.emit(string(b))
}

// block emits a structured record in JSON mode and the drawn text otherwise.
func (r *Renderer) block(kind, title string, data any, draw func() (string, error)) error {
	if r.format == FormatJSON {
		return r.record(record{Kind: kind, Title: title, Data: data})
	}
	s, err := draw()
	if err != nil {
		return err
	}
	return r.emit(s)
}

// CallOption overrides a setting for a single call.
type CallOption func(*callConfig)

type callConfig struct {
	threshold    int
	maxRows      int
	cellWidth    int
	previewWidth int
	numbered     bool
	border       style.Color
}

// Threshold overrides Settings.SmallMapThreshold.
func Threshold(n int) CallOption {
	return func(c *callConfig) { c.threshold = n }
}

// MaxRows overrides Settings.MaxRows.
func MaxRows(n int) CallOption {
	return func(c *callConfig) { c.maxRows = n }
}

// CellWidth overrides Settings.CellWidth.
func CellWidth(n int) CallOption {
	return func(c *callConfig) { c.cellWidth = n }
}

// PreviewWidth overrides the preview cap of the call.
func PreviewWidth(n int) CallOption {
	return func(c *callConfig) { c.previewWidth = n }
}

// Numbered selects numbered or bulleted list items.
func Numbered(on bool) CallOption {
	return func(c *callConfig) { c.numbered = on }
}

// BorderColor overrides the panel border colour.
func BorderColor(c style.Color) CallOption {
	return func(cfg *callConfig) { cfg.border = c }
}

func (r *Renderer) callConfig(opts []CallOption) callConfig {
	cfg := callConfig{
		threshold: r.settings.SmallMapThreshold,
		maxRows:   r.settings.MaxRows,
		cellWidth: r.settings.CellWidth,
		numbered:  r.settings.Numbered,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// preview returns the per-call preview cap, or def when none was given.
func (c callConfig) preview(def int) int {
	if c.previewWidth > 0 {
		return c.previewWidth
	}
	return def
}

// borderOr returns the per-call border colour, or def when none was given.
func (c callConfig) borderOr(def style.Color) style.Color {
	if c.border != style.NoColor {
		return c.border
	}
	return def
}
