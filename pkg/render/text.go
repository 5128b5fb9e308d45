package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Ellipsis is appended to truncated text.
const Ellipsis = "..."

// Truncate keeps the first limit grapheme clusters of s and appends Ellipsis
// when s is longer. A limit of zero or less disables truncation.
func Truncate(s string, limit int) string {
	if limit <= 0 || uniseg.GraphemeClusterCount(s) <= limit {
		return s
	}

	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for i := 0; i < limit && g.Next(); i++ {
		b.WriteString(g.Str())
	}
	b.WriteString(Ellipsis)
	return b.String()
}

// TitleKey turns a mapping key into a label: "first_name" becomes "First Name".
func TitleKey(key string) string {
	// A Caser keeps state between calls, so each call gets its own.
	return cases.Title(language.Und).String(strings.ReplaceAll(key, "_", " "))
}

// padRight pads unstyled s with spaces to the given display width.
func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// fitWidth cuts or pads every line of s to exactly width cells. Escape
// sequences do not count towards the width.
func fitWidth(s string, width int) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		w := ansi.StringWidth(line)
		if w > width {
			line = ansi.Truncate(line, width, "…")
			w = ansi.StringWidth(line)
		}
		if w < width {
			line += strings.Repeat(" ", width-w)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// maxWidth returns the widest line of s in cells.
func maxWidth(s string) int {
	widest := 0
	for _, line := range strings.Split(s, "\n") {
		if w := ansi.StringWidth(line); w > widest {
			widest = w
		}
	}
	return widest
}
