package render_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/shine/pkg/errors"
	"github.com/arthur-debert/shine/pkg/render"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		format   render.Format
		expected string
	}{
		{render.FormatAuto, "auto"},
		{render.FormatTerminal, "term"},
		{render.FormatText, "text"},
		{render.FormatJSON, "json"},
		{render.Format(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected render.Format
		wantErr  bool
	}{
		{"auto", render.FormatAuto, false},
		{"", render.FormatAuto, false},
		{"term", render.FormatTerminal, false},
		{"TERMINAL", render.FormatTerminal, false},
		{"text", render.FormatText, false},
		{"plain", render.FormatText, false},
		{" Json ", render.FormatJSON, false},
		{"invalid", render.FormatAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			format, err := render.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				assert.Contains(t, err.Error(), "unknown format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestFormats_RoundTrip(t *testing.T) {
	assert.Equal(t, []string{"auto", "term", "text", "json"}, render.Formats())

	for _, name := range render.Formats() {
		f, err := render.ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, name, f.String())
	}
}

func TestDetectFormat(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer f.Close()

	t.Run("regular file is text", func(t *testing.T) {
		assert.Equal(t, render.FormatText, render.DetectFormat(f))
		assert.False(t, render.IsTerminal(f))
	})

	t.Run("NO_COLOR wins", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.Equal(t, render.FormatText, render.DetectFormat(f))
	})

	t.Run("nil file", func(t *testing.T) {
		assert.False(t, render.IsTerminal(nil))
	})
}

func TestNew_AutoFormat(t *testing.T) {
	r, _ := newRenderer(t)
	assert.Equal(t, render.FormatText, r.Format(), "buffers get plain text")
	assert.False(t, r.Color())

	r, _ = newRenderer(t, render.WithColor(true))
	assert.Equal(t, render.FormatTerminal, r.Format())

	r, _ = newRenderer(t, render.WithFormat(render.FormatTerminal), render.WithColor(false))
	assert.Equal(t, render.FormatText, r.Format())
}

func TestNew_SanitizesSettings(t *testing.T) {
	r, _ := newRenderer(t, render.WithSettings(render.Settings{MaxRows: -1, CellWidth: 20}))

	s := r.Settings()
	assert.Equal(t, 10, s.MaxRows)
	assert.Equal(t, 20, s.CellWidth)
	assert.Equal(t, 10, s.SmallMapThreshold)
	assert.False(t, s.Numbered)
	assert.Equal(t, 80, r.Width())
}
