package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// Color is a colour token. Tokens name the 16 ANSI colours so the user's
// terminal theme decides the actual RGB values.
type Color string

const (
	Black         Color = "black"
	Red           Color = "red"
	Green         Color = "green"
	Yellow        Color = "yellow"
	Blue          Color = "blue"
	Magenta       Color = "magenta"
	Cyan          Color = "cyan"
	White         Color = "white"
	Gray          Color = "gray"
	BrightRed     Color = "bright-red"
	BrightGreen   Color = "bright-green"
	BrightYellow  Color = "bright-yellow"
	BrightBlue    Color = "bright-blue"
	BrightMagenta Color = "bright-magenta"
	BrightCyan    Color = "bright-cyan"
	BrightWhite   Color = "bright-white"
	NoColor       Color = ""
)

type colorDef struct {
	ansi  string
	pterm pterm.Color
}

var colorTable = map[Color]colorDef{
	Black:         {"0", pterm.FgBlack},
	Red:           {"1", pterm.FgRed},
	Green:         {"2", pterm.FgGreen},
	Yellow:        {"3", pterm.FgYellow},
	Blue:          {"4", pterm.FgBlue},
	Magenta:       {"5", pterm.FgMagenta},
	Cyan:          {"6", pterm.FgCyan},
	White:         {"7", pterm.FgWhite},
	Gray:          {"8", pterm.FgGray},
	BrightRed:     {"9", pterm.FgLightRed},
	BrightGreen:   {"10", pterm.FgLightGreen},
	BrightYellow:  {"11", pterm.FgLightYellow},
	BrightBlue:    {"12", pterm.FgLightBlue},
	BrightMagenta: {"13", pterm.FgLightMagenta},
	BrightCyan:    {"14", pterm.FgLightCyan},
	BrightWhite:   {"15", pterm.FgLightWhite},
}

// ParseColor normalises a token ("Blue", "bright_cyan", "grey", "dim").
func ParseColor(s string) (Color, bool) {
	token := strings.ToLower(strings.TrimSpace(s))
	token = strings.ReplaceAll(token, "_", "-")
	switch token {
	case "":
		return NoColor, true
	case "grey", "dim":
		return Gray, true
	}
	c := Color(token)
	_, ok := colorTable[c]
	return c, ok
}

// Colors lists every known colour token.
func Colors() []Color {
	return []Color{
		Black, Red, Green, Yellow, Blue, Magenta, Cyan, White, Gray,
		BrightRed, BrightGreen, BrightYellow, BrightBlue, BrightMagenta, BrightCyan, BrightWhite,
	}
}

// Lipgloss returns the lipgloss colour for the token.
func (c Color) Lipgloss() lipgloss.TerminalColor {
	if def, ok := colorTable[c]; ok {
		return lipgloss.Color(def.ansi)
	}
	return lipgloss.NoColor{}
}

// Pterm returns the pterm foreground colour for the token.
func (c Color) Pterm() pterm.Color {
	if def, ok := colorTable[c]; ok {
		return def.pterm
	}
	return pterm.FgDefault
}
