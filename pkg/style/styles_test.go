package style_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/shine/pkg/errors"
	"github.com/arthur-debert/shine/pkg/style"
)

func plainRegistry(t *testing.T, reg *style.Registry) *style.Registry {
	t.Helper()
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return reg.WithRenderer(r)
}

func TestStyleFor_Defaults(t *testing.T) {
	reg := style.Default()

	tests := []struct {
		category style.Category
		color    style.Color
		glyph    string
	}{
		{style.Info, style.Blue, "ℹ"},
		{style.Success, style.Green, "✓"},
		{style.Warning, style.Yellow, "⚠"},
		{style.Error, style.Red, "✗"},
		{style.Debug, style.Magenta, "[debug]"},
		{style.Progress, style.Cyan, "▶"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			attrs := reg.StyleFor(tt.category)
			assert.Equal(t, tt.color, attrs.Color)
			assert.Equal(t, tt.glyph, attrs.Glyph)
		})
	}
}

func TestStyleFor_IsStable(t *testing.T) {
	reg := style.Default()
	for _, c := range style.Categories() {
		first := reg.StyleFor(c)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, reg.StyleFor(c), "category %s changed between calls", c)
		}
	}
}

func TestLookup(t *testing.T) {
	reg := style.Default()

	t.Run("known name is case insensitive", func(t *testing.T) {
		attrs, err := reg.Lookup("  WARNING ")
		require.NoError(t, err)
		assert.Equal(t, style.Yellow, attrs.Color)
	})

	t.Run("unknown name falls back to neutral", func(t *testing.T) {
		attrs, err := reg.Lookup("sucess")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownCategory))
		assert.Equal(t, style.Neutral, attrs)
		assert.Equal(t, "success", errors.GetErrorDetails(err)["suggestion"])
	})

	t.Run("no suggestion for distant names", func(t *testing.T) {
		_, err := reg.Lookup("zzzzzzzzzzzz")
		require.Error(t, err)
		_, hasSuggestion := errors.GetErrorDetails(err)["suggestion"]
		assert.False(t, hasSuggestion)
	})
}

func TestParse_Overlay(t *testing.T) {
	reg, err := style.Parse([]byte(`
categories:
  info:
    color: bright-blue
tags:
  title:
    color: magenta
    underline: true
  brand:
    color: green
    bold: true
`))
	require.NoError(t, err)

	info := reg.StyleFor(style.Info)
	assert.Equal(t, style.BrightBlue, info.Color)
	assert.Equal(t, "ℹ", info.Glyph, "glyph should come from the defaults")
	assert.Equal(t, style.Green, reg.StyleFor(style.Success).Color)
	assert.Contains(t, reg.Tags(), "brand")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown category", "categories:\n  loud:\n    color: red\n"},
		{"unknown colour", "categories:\n  info:\n    color: chartreuse\n"},
		{"unknown tag colour", "tags:\n  brand:\n    color: teal\n"},
		{"invalid yaml", "categories: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := style.Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrStyleLoad))
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "styles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  debug:\n    glyph: \"🐛\"\n"), 0644))

	reg, err := style.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "🐛", reg.StyleFor(style.Debug).Glyph)
	assert.Equal(t, style.Magenta, reg.StyleFor(style.Debug).Color)

	_, err = style.Load(filepath.Join(dir, "missing.yaml"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrStyleLoad))
}

func TestMarkup(t *testing.T) {
	reg := plainRegistry(t, style.Default())

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single tag", "[bold]hello[/bold]", "hello"},
		{"nested tags", "[title]Step [yellow]1[/yellow][/title]", "Step 1"},
		{"category tag", "[error]boom[/error] done", "boom done"},
		{"unknown tag untouched", "[sparkly]x[/sparkly]", "[sparkly]x[/sparkly]"},
		{"plain text", "no markup", "no markup"},
		{"same tag nested", "[bold]a [bold]b[/bold] c[/bold]", "a b c"},
		{"interleaved names", "[bold]a [dim]b[/bold] c[/dim]", "a [dim]b c[/dim]"},
		{"unclosed tag", "[bold]open", "[bold]open"},
		{"stray closing tag", "done[/bold]", "done[/bold]"},
		{"multi-line body", "[info]one\ntwo[/info]", "one\ntwo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reg.Markup(tt.input))
		})
	}
}

func TestMarkup_AppliesColor(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)
	reg := style.Default().WithRenderer(r)

	out := reg.Markup("[red]alert[/red]")
	assert.Contains(t, out, "alert")
	assert.NotEqual(t, "alert", out)
}

func TestMarkup_NestedSameTagStylesWholeSpan(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)
	reg := style.Default().WithRenderer(r)

	out := reg.Markup("[bold]a [bold]b[/bold] c[/bold]")
	assert.NotContains(t, out, "[bold]")
	assert.NotContains(t, out, "[/bold]")
	assert.Contains(t, out, " c")
}

func TestStrip(t *testing.T) {
	reg := style.Default()
	assert.Equal(t, "Step 1 of 3", reg.Strip("[title]Step [index]1[/index][/title] of 3"))
	assert.Equal(t, "[sparkly]x", reg.Strip("[sparkly]x"))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want style.Color
		ok   bool
	}{
		{"Blue", style.Blue, true},
		{"bright_cyan", style.BrightCyan, true},
		{"grey", style.Gray, true},
		{"dim", style.Gray, true},
		{"", style.NoColor, true},
		{"teal", style.Color("teal"), false},
	}
	for _, tt := range tests {
		got, ok := style.ParseColor(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}

func TestColorConversions(t *testing.T) {
	assert.Equal(t, pterm.FgRed, style.Red.Pterm())
	assert.Equal(t, pterm.FgDefault, style.Color("teal").Pterm())
	assert.Equal(t, lipgloss.Color("6"), style.Cyan.Lipgloss())
	assert.Equal(t, lipgloss.NoColor{}, style.NoColor.Lipgloss())
}

func TestSuggest(t *testing.T) {
	candidates := []string{"alpha", "beta", "gamma"}
	assert.Equal(t, "beta", style.Suggest("bta", candidates))
	assert.Equal(t, "gamma", style.Suggest("GAMA", candidates))
	assert.Equal(t, "", style.Suggest("zzzzzz", candidates))
	assert.Equal(t, "", style.Suggest("x", nil))
}
