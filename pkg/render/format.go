package render

import (
	"os"
	"slices"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/shine/pkg/errors"
)

// Format selects how a Renderer encodes its output.
type Format int

const (
	// FormatAuto resolves to FormatTerminal or FormatText when the renderer is built.
	FormatAuto Format = iota
	// FormatTerminal keeps ANSI styling.
	FormatTerminal
	// FormatText keeps the layout and removes every escape sequence.
	FormatText
	// FormatJSON writes one JSON record per call.
	FormatJSON
)

// formatNames holds the canonical name of each Format first, then the
// spellings ParseFormat also accepts.
var formatNames = [...][]string{
	FormatAuto:     {"auto", ""},
	FormatTerminal: {"term", "terminal"},
	FormatText:     {"text", "plain"},
	FormatJSON:     {"json"},
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f][0]
}

// Formats lists the canonical format names.
func Formats() []string {
	names := make([]string, len(formatNames))
	for f, spellings := range formatNames {
		names[f] = spellings[0]
	}
	return names
}

// ParseFormat accepts a canonical name or alias, ignoring case and
// surrounding space. The empty string is FormatAuto.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for f, spellings := range formatNames {
		if slices.Contains(spellings, name) {
			return Format(f), nil
		}
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s).
		WithDetail("known", Formats())
}

// DetectFormat picks FormatTerminal only for a colour-capable terminal with
// NO_COLOR unset, and FormatText otherwise.
func DetectFormat(output *os.File) Format {
	switch {
	case os.Getenv("NO_COLOR") != "", !IsTerminal(output):
		return FormatText
	case termenv.NewOutput(output).ColorProfile() == termenv.Ascii:
		return FormatText
	}
	return FormatTerminal
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
